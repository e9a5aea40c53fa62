package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"broom/internal/config"
	"broom/internal/engine"
	"broom/internal/journal"
	"broom/internal/logging"
)

// Exit codes contract: 0 clean, 2 unusable rules file, 3 rules that parse
// but fail validation, 4 finished with per-file errors. Anything the engine
// cannot classify exits 1 through main.
const (
	exitConfigError     = 2
	exitValidationError = 3
	exitPartialFailure  = 4
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "broom-engine --config <rules file>",
		Short: "Route downloads into their configured target folders",
		Long: `broom-engine scans the configured downloads directory once and moves
each regular file to the first matching destination: keyword rules in file
order, then extension rules, then MIME rules, and finally a dated archive
folder for files nothing matched. Hidden files and directories are left
alone. Name collisions at the destination get a " (n)" suffix instead of
overwriting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, configPath, dryRun, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Rules file path")
	_ = cmd.MarkFlagRequired("config")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan moves without touching any files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run summary as JSON on stdout")

	return cmd
}

func runEngine(cmd *cobra.Command, configPath string, dryRun, jsonOutput bool) error {
	errOut := cmd.ErrOrStderr()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(errOut, "broom-engine: ERROR: %v\n", err)
		return exitWith(exitConfigError)
	}

	if err := cfg.Validate(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(errOut, "RULES VALIDATION FAILED:")
			for _, problem := range verr.Problems {
				fmt.Fprintf(errOut, "  - %s\n", problem)
			}
			return exitWith(exitValidationError)
		}
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: errOut,
	})
	if err != nil {
		fmt.Fprintf(errOut, "broom-engine: ERROR: %v\n", err)
		return exitWith(exitConfigError)
	}

	eng := engine.New(cfg, logger)
	summary, err := eng.Run(cmd.Context(), dryRun)
	if err != nil {
		return err
	}

	// History is best effort. A broken journal must not undo a run that
	// already moved files.
	if !dryRun && cfg.Journal.Enabled {
		recordRun(cmd, cfg.Journal.Path, summary, logger)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(summary); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
	} else {
		printSummary(cmd.OutOrStdout(), summary)
	}

	if summary.Counts.Errors > 0 {
		return exitWith(exitPartialFailure)
	}
	return nil
}

func recordRun(cmd *cobra.Command, path string, summary *engine.Summary, logger *slog.Logger) {
	store, err := journal.Open(path)
	if err != nil {
		logger.Warn("journal unavailable", slog.String("path", path), slog.Any("error", err))
		return
	}
	defer store.Close()

	if err := store.Record(cmd.Context(), summary); err != nil {
		logger.Warn("journal write failed", slog.String("path", path), slog.Any("error", err))
	}
}
