package preflight

import (
	"time"

	"dcimport/internal/config"
	"dcimport/internal/transfer"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for cfg. now selects the dated
// destination directory that a transfer started at that moment would use.
func RunAll(cfg *config.Config, now time.Time) []Result {
	if cfg == nil {
		return nil
	}

	paths := transfer.ResolvePaths(cfg.Transfer, now)
	source := CheckSourceDirectory("Source directory", paths.Source)

	results := []Result{
		source,
		CheckDestinationBase("Destination base", cfg.Transfer.DestinationBase),
		CheckDatedDirectory("Today's directory", paths.Destination),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	// Listing an unreadable source would only repeat the failure above.
	if source.Passed {
		results = append(results, CheckCandidates("Candidate files", paths.Source))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
