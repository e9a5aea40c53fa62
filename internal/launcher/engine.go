package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Invoker is the engine contract: start a run against a rules file with
// passthrough arguments and report the run's exit code.
type Invoker interface {
	Invoke(ctx context.Context, rulesPath string, args []string) (int, error)
}

// CommandEngine invokes the engine as a subprocess, optionally through an
// interpreter, with stdio handed through. It blocks until the engine exits.
type CommandEngine struct {
	Runtime string
	Path    string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewCommandEngine constructs a CommandEngine bound to the process stdio.
func NewCommandEngine(runtime, path string) *CommandEngine {
	return &CommandEngine{
		Runtime: runtime,
		Path:    path,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Invoke runs the engine with "--config <rulesPath>" prepended and the
// caller's arguments appended unmodified. Arguments are never interpreted or
// reordered here; they are the engine's business.
func (e *CommandEngine) Invoke(ctx context.Context, rulesPath string, args []string) (int, error) {
	name := e.Path
	argv := make([]string, 0, len(args)+3)
	if strings.TrimSpace(e.Runtime) != "" {
		name = e.Runtime
		argv = append(argv, e.Path)
	}
	argv = append(argv, "--config", rulesPath)
	argv = append(argv, args...)

	cmd := commandContext(ctx, name, argv...) //nolint:gosec
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("start engine: %w", err)
}

var _ Invoker = (*CommandEngine)(nil)
