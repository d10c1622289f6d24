package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dcimport/internal/devicewatch"
	"dcimport/internal/logging"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run a transfer whenever a camera card is inserted",
		Long: "watch listens for udev block device events and runs the transfer once the\n" +
			"source directory appears on the newly mounted device. Linux only.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			monitor := devicewatch.New(cfg, logger, func(evtCtx context.Context, device string) error {
				fmt.Fprintf(out, "\nDevice %s detected\n", device)
				_, err := ctx.runTransfer(evtCtx, out, logger, triggerUdev)
				return err
			})
			if err := monitor.Start(runCtx); err != nil {
				return fmt.Errorf("start device watch: %w", err)
			}
			defer monitor.Stop()

			fmt.Fprintf(out, "Watching for %s (press Ctrl+C to stop)\n", cfg.SourceDir())
			<-runCtx.Done()
			logger.Info("watch stopped", logging.String(logging.FieldEventType, "watch_stopped"))
			return nil
		},
	}
}
