package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var settingsFlag string

	ctx := newCommandContext(&settingsFlag)

	rootCmd := &cobra.Command{
		Use:   "broom",
		Short: "Downloads cleanup launcher",
		// Root flags are parsed before subcommand dispatch so that
		// "broom --settings x run --engine-flag" keeps --settings for the
		// launcher while everything after "run" stays the engine's.
		TraverseChildren: true,
		SilenceUsage:     true,
		SilenceErrors:    true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&settingsFlag, "settings", "s", "",
		"Launcher settings file path (built-in defaults apply when the file does not exist yet)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
