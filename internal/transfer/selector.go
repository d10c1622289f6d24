package transfer

import (
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CandidateExtension is the suffix, compared case-insensitively, that
// selects files for transfer.
const CandidateExtension = ".jpg"

// IsCandidate reports whether name, lowercased, ends with CandidateExtension.
func IsCandidate(name string) bool {
	return strings.HasSuffix(cases.Lower(language.Und).String(name), CandidateExtension)
}

// SelectCandidates lists dir once and returns the names of non-directory
// entries that satisfy IsCandidate. Order follows the listing.
func SelectCandidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &EnvironmentError{Op: OpListSource, Path: dir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsCandidate(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
