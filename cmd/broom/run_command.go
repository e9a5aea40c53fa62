package main

import (
	"github.com/spf13/cobra"

	"broom/internal/launcher"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [engine args...]",
		Short: "Run the cleanup engine if no other run is active",
		Long: `Run validates that the engine, its runtime, and the rules file are in
place, takes the run lock, and starts the engine with --config prepended to
any arguments given here. Everything after "run" is forwarded to the engine
verbatim, flags included, so launcher flags such as --settings must come
before "run".

Exit codes: 0 on success or when another run already holds the lock (the
invocation is skipped, not failed); 2 when a precondition is missing;
otherwise the engine's own exit code.`,
		// Arguments belong to the engine, so nothing here is parsed.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			l := launcher.New(st)
			l.Stderr = cmd.ErrOrStderr()
			code, err := l.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			return exitWith(code)
		},
	}

	return cmd
}
