package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"broom/internal/config"
	"broom/internal/journal"
	"broom/internal/render"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or the moves of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			cfg, err := config.Load(st.Rules)
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}
			if !cfg.Journal.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Journaling is disabled in the rules file; no history is recorded.")
				return nil
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunMoves(cmd, store, args[0])
			}
			return printRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *journal.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
			strconv.Itoa(run.Counts.Scanned),
			strconv.Itoa(run.Counts.Keyword + run.Counts.Extension + run.Counts.Mime),
			strconv.Itoa(run.Counts.Archived),
			strconv.Itoa(run.Counts.Errors),
		})
	}

	fmt.Fprintln(out, render.Table(out,
		[]string{"Run", "Started", "Duration", "Scanned", "Routed", "Archived", "Errors"},
		rows,
		[]render.Alignment{render.AlignLeft, render.AlignLeft, render.AlignRight, render.AlignRight, render.AlignRight, render.AlignRight, render.AlignRight},
	))
	return nil
}

func printRunMoves(cmd *cobra.Command, store *journal.Store, runID string) error {
	moves, err := store.Moves(cmd.Context(), runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(moves) == 0 {
		fmt.Fprintf(out, "No moves recorded for run %s.\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(moves))
	for _, move := range moves {
		rows = append(rows, []string{move.Stage, move.Rule, move.Source, move.Destination})
	}

	fmt.Fprintln(out, render.Table(out,
		[]string{"Stage", "Rule", "Source", "Destination"},
		rows,
		[]render.Alignment{render.AlignLeft, render.AlignLeft, render.AlignLeft, render.AlignLeft},
	))
	return nil
}
