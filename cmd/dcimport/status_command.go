package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"dcimport/internal/console"
	"dcimport/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the source and destination without copying anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := console.ShouldColorize(out)

			results := preflight.RunAll(cfg, ctx.now())
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, result := range results {
				if !result.Passed {
					failed++
				}
				rows = append(rows, []string{result.Name, statusLabel(result.Passed, colorize), result.Detail})
			}

			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))
			if failed == 0 {
				fmt.Fprintln(out, "Ready to transfer")
			} else {
				fmt.Fprintf(out, "%d check(s) failed\n", failed)
			}
			return nil
		},
	}
}

func statusLabel(passed, colorize bool) string {
	label, color := "ERROR", text.FgRed
	if passed {
		label, color = "OK", text.FgGreen
	}
	if colorize {
		return color.Sprint(label)
	}
	return label
}
