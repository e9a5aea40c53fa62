package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// Kind classifies a failed launcher precondition. Every Kind maps to the
// same exit code; the distinction exists for messages and tests.
type Kind string

const (
	KindMissingRuntime Kind = "missing-runtime"
	KindMissingEngine  Kind = "missing-engine"
	KindMissingConfig  Kind = "missing-config"
)

// Error is a fatal precondition failure.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// CheckRuntime resolves the interpreter on the execution path. When no
// interpreter is configured the engine is executed directly, and the check
// falls through to the engine file itself: a bare command name is resolved
// on PATH, an existing file must carry the execute bit, and a missing file
// is left for CheckEngine to report.
func CheckRuntime(runtime, enginePath string) error {
	command := strings.TrimSpace(runtime)
	direct := command == ""
	if direct {
		command = strings.TrimSpace(enginePath)
	}
	if command == "" {
		return &Error{Kind: KindMissingRuntime, Detail: "no engine runtime configured"}
	}

	if strings.ContainsRune(command, '/') {
		info, err := os.Stat(command)
		if err != nil {
			if direct && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return &Error{Kind: KindMissingRuntime, Detail: fmt.Sprintf("runtime %s unavailable: %v", command, err)}
		}
		if info.Mode().IsRegular() && !executable(command) {
			return &Error{Kind: KindMissingRuntime, Detail: fmt.Sprintf("runtime %s is not executable", command)}
		}
		return nil
	}

	if _, err := exec.LookPath(command); err != nil {
		return &Error{Kind: KindMissingRuntime, Detail: fmt.Sprintf("runtime %q not found on PATH", command)}
	}
	return nil
}

// CheckEngine verifies the engine entry point exists.
func CheckEngine(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: KindMissingEngine, Detail: fmt.Sprintf("engine not found at %s", path)}
	}
	if err != nil {
		return &Error{Kind: KindMissingEngine, Detail: fmt.Sprintf("engine at %s: %v", path, err)}
	}
	if info.IsDir() {
		return &Error{Kind: KindMissingEngine, Detail: fmt.Sprintf("engine path %s is a directory", path)}
	}
	return nil
}

// CheckConfig verifies the rules file exists. Its contents are the engine's
// business.
func CheckConfig(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: KindMissingConfig, Detail: fmt.Sprintf("rules file not found at %s", path)}
	}
	if err != nil {
		return &Error{Kind: KindMissingConfig, Detail: fmt.Sprintf("rules file at %s: %v", path, err)}
	}
	if info.IsDir() {
		return &Error{Kind: KindMissingConfig, Detail: fmt.Sprintf("rules path %s is a directory", path)}
	}
	return nil
}
