package transfer

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"dcimport/internal/config"
	"dcimport/internal/logging"
)

// Runner performs one transfer per Run call.
type Runner struct {
	cfg      config.Transfer
	reporter Reporter
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the clock used to name the destination directory.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.NewComponentLogger(logger, "transfer")
	}
}

// NewRunner builds a Runner for cfg. A nil reporter discards events.
func NewRunner(cfg config.Transfer, reporter Reporter, opts ...Option) *Runner {
	if reporter == nil {
		reporter = nopReporter{}
	}
	r := &Runner{
		cfg:      cfg,
		reporter: reporter,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the transfer. The returned error is non-nil only when the run
// aborted (*SourceNotFoundError or *EnvironmentError); per-file failures are
// recorded in the Result instead.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := logging.WithContext(ctx, r.logger)
	started := r.now()
	paths := ResolvePaths(r.cfg, started)
	result := &Result{Paths: paths}

	logger.Info("transfer started",
		logging.String(logging.FieldEventType, "transfer_started"),
		logging.String("source", paths.Source),
		logging.String("destination", paths.Destination),
	)

	if err := CheckSource(paths.Source); err != nil {
		logging.ErrorWithContext(logger, "source directory not found", "source_not_found",
			logging.String("source", paths.Source),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "ensure the device is mounted and transfer.mount_point is correct"),
		)
		r.reporter.Aborted(err)
		return result, err
	}

	if err := PrepareDestination(paths.Destination); err != nil {
		logging.ErrorWithContext(logger, "destination directory unavailable", "destination_failed",
			logging.String("destination", paths.Destination),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions and free space under transfer.destination_base"),
		)
		r.reporter.Aborted(err)
		return result, err
	}
	r.reporter.Destination(paths.Destination)

	names, err := SelectCandidates(paths.Source)
	if err != nil {
		logging.ErrorWithContext(logger, "source listing failed", "source_list_failed",
			logging.String("source", paths.Source),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check read permission on the source directory"),
		)
		r.reporter.Aborted(err)
		return result, err
	}
	logger.Debug("candidates selected", logging.Int("count", len(names)))

	result.Outcomes = make([]Outcome, 0, len(names))
	for _, name := range names {
		r.reporter.Copying(name)
		err := CopyFile(filepath.Join(paths.Source, name), filepath.Join(paths.Destination, name))
		result.Outcomes = append(result.Outcomes, Outcome{Name: name, Err: err})
		if err != nil {
			logging.WarnWithContext(logger, "file copy failed", "copy_failed",
				logging.String(logging.FieldFile, name),
				logging.Error(err),
				logging.String(logging.FieldImpact, "file skipped; remaining files continue"),
			)
			r.reporter.CopyFailed(name, err)
			continue
		}
		logger.Debug("file copied", logging.String(logging.FieldFile, name))
	}

	copied := result.Copied()
	logger.Info("transfer finished",
		logging.String(logging.FieldEventType, "transfer_finished"),
		logging.Int("copied", copied),
		logging.Int("failed", len(names)-copied),
		logging.Duration("elapsed", r.now().Sub(started)),
	)
	r.reporter.Finished(copied)
	return result, nil
}
