package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"broom/internal/config"
	"broom/internal/settings"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Settings and rules file utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create sample settings and rules files",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			// Resolved by ensureSettings: the --settings flag when given,
			// otherwise the default location.
			settingsPath := ctx.settingsPath

			out := cmd.OutOrStdout()
			wrote := false

			if overwrite || !fileExists(settingsPath) {
				if err := settings.CreateSample(settingsPath); err != nil {
					return fmt.Errorf("create sample settings: %w", err)
				}
				fmt.Fprintf(out, "Wrote sample settings to %s\n", settingsPath)
				wrote = true
			}
			if overwrite || !fileExists(st.Rules) {
				if err := config.CreateSample(st.Rules); err != nil {
					return fmt.Errorf("create sample rules: %w", err)
				}
				fmt.Fprintf(out, "Wrote sample rules to %s\n", st.Rules)
				wrote = true
			}

			if !wrote {
				fmt.Fprintln(out, "Settings and rules already exist (use --overwrite to replace them).")
				return nil
			}
			fmt.Fprintln(out, "Edit the rules file so every target directory exists before running broom.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective launcher settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			data, err := toml.Marshal(st)
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			out := cmd.OutOrStdout()
			if ctx.settingsPath != "" {
				fmt.Fprintf(out, "# %s\n", ctx.settingsPath)
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the rules file the engine would receive",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			cfg, err := config.Load(st.Rules)
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				var verr *config.ValidationError
				if errors.As(err, &verr) {
					errOut := cmd.ErrOrStderr()
					fmt.Fprintln(errOut, "RULES VALIDATION FAILED:")
					for _, problem := range verr.Problems {
						fmt.Fprintf(errOut, "  - %s\n", problem)
					}
					return exitWith(3)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rules at %s are valid: %d keyword, %d extension, %d MIME rules.\n",
				st.Rules, len(cfg.Routing.Keyword), len(cfg.Routing.Extensions), len(cfg.Routing.Mime))
			return nil
		},
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
