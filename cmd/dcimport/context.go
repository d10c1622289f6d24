package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dcimport/internal/config"
	"dcimport/internal/console"
	"dcimport/internal/logging"
	"dcimport/internal/runctx"
	"dcimport/internal/runlock"
	"dcimport/internal/transfer"
)

const (
	triggerManual = "manual"
	triggerUdev   = "udev"
)

type commandContext struct {
	configFlag *string
	now        func() time.Time

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		now:        time.Now,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger opens the per-run log file and prunes expired ones.
func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	now := c.now()
	logger, logPath, err := logging.NewFromConfig(cfg, now)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logger.Info("run log opened",
		logging.String("log_file", logPath),
		logging.String("log_level", cfg.Logging.Level),
		logging.Bool("console", cfg.Logging.Console),
	)
	if logPath != "" {
		removed := logging.CleanupOldLogs(logger, now, cfg.Logging.RetentionDays,
			logging.RunLogTarget(cfg.Paths.LogDir, logPath))
		if removed > 0 {
			logger.Debug("pruned expired run logs", logging.Int("removed", removed))
		}
	}
	return logger, nil
}

// runTransfer performs one locked transfer, printing progress to out. Aborted
// runs are reported through the printer and are not returned as errors; only
// failures to start a run are.
func (c *commandContext) runTransfer(ctx context.Context, out io.Writer, logger *slog.Logger, trigger string) (*transfer.Result, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		if errors.Is(err, runlock.ErrBusy) {
			logging.WarnWithContext(logger, "transfer skipped; lock held", "transfer_locked",
				logging.String("lock", cfg.LockPath()),
				logging.String(logging.FieldErrorHint, "wait for the running transfer to finish"),
				logging.String(logging.FieldImpact, "no files copied by this invocation"),
			)
		}
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release transfer lock failed", logging.Error(err))
		}
	}()

	ctx = runctx.WithRunID(ctx, uuid.NewString())
	ctx = runctx.WithTrigger(ctx, trigger)

	runner := transfer.NewRunner(cfg.Transfer, console.NewPrinter(out),
		transfer.WithLogger(logger),
		transfer.WithClock(c.now),
	)
	// Aborts are reported by the printer and logged by the runner.
	result, _ := runner.Run(ctx)
	return result, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
