package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"broom/internal/preflight"
	"broom/internal/render"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report launcher preconditions without running anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			results := preflight.Report(st)
			rows := make([][]string, 0, len(results))
			failed := false
			for _, result := range results {
				rows = append(rows, []string{result.Name, yesNo(result.Passed), result.Detail})
				if !result.Passed {
					failed = true
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Table(out,
				[]string{"Check", "OK", "Detail"},
				rows,
				[]render.Alignment{render.AlignLeft, render.AlignLeft, render.AlignLeft},
			))

			if failed {
				// Same code a gated run would exit with.
				return exitWith(2)
			}
			return nil
		},
	}
}
