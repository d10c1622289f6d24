// Package logging assembles structured slog loggers and formatting helpers used
// across dcimport.
//
// It owns the configurable console/JSON handlers, writes one log file per
// transfer run, and exposes context-aware helpers so every record from a run
// carries the same run_id. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
//
// Log records are diagnostics. The human-readable transfer report is written
// by the console reporter, not through this package.
package logging
