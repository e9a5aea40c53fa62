package launcher

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gofrs/flock"

	"broom/internal/preflight"
	"broom/internal/settings"
)

// Exit codes for the launcher's own outcomes. Anything else is the engine's
// exit code relayed verbatim.
const (
	ExitOK           = 0
	ExitPrecondition = 2
)

// Launcher checks preconditions, holds the run lock, and delegates to the
// engine. Engine is an interface so tests can stand in a fake.
type Launcher struct {
	Settings *settings.Settings
	Engine   Invoker
	Stderr   io.Writer
}

// New builds a launcher that invokes the configured engine subprocess.
func New(st *settings.Settings) *Launcher {
	return &Launcher{
		Settings: st,
		Engine:   NewCommandEngine(st.Engine.Runtime, st.Engine.Path),
		Stderr:   os.Stderr,
	}
}

// Run executes one gated engine invocation and returns the process exit
// code. Precondition failures and lock contention are reported on Stderr;
// the returned error covers only unexpected lock or spawn failures.
func (l *Launcher) Run(ctx context.Context, args []string) (int, error) {
	if err := l.checkPreconditions(); err != nil {
		fmt.Fprintf(l.stderr(), "broom: ERROR: %v\n", err)
		return ExitPrecondition, nil
	}

	if err := l.Settings.EnsureLockDir(); err != nil {
		return ExitOK, err
	}
	lock := flock.New(l.Settings.Lock)
	acquired, err := lock.TryLock()
	if err != nil {
		return ExitOK, fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		fmt.Fprintln(l.stderr(), "broom: another cleanup run is in progress; skipping")
		return ExitOK, nil
	}
	defer func() { _ = lock.Unlock() }()

	return l.Engine.Invoke(ctx, l.Settings.Rules, args)
}

func (l *Launcher) checkPreconditions() error {
	if err := preflight.CheckRuntime(l.Settings.Engine.Runtime, l.Settings.Engine.Path); err != nil {
		return err
	}
	if err := preflight.CheckEngine(l.Settings.Engine.Path); err != nil {
		return err
	}
	return preflight.CheckConfig(l.Settings.Rules)
}

func (l *Launcher) stderr() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}
