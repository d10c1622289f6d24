package transfer

import (
	"errors"
	"os"
)

var errNotDirectory = errors.New("not a directory")

// CheckSource verifies that path exists and is a directory. Symlinks are
// followed.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &SourceNotFoundError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return &SourceNotFoundError{Path: path, Err: errNotDirectory}
	}
	return nil
}

// PrepareDestination creates path and any missing parents. An existing
// directory is not an error.
func PrepareDestination(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return &EnvironmentError{Op: OpCreateDestination, Path: path, Err: err}
	}
	return nil
}
