package main

import "fmt"

// exitStatus carries a specific process exit code out of a cobra command.
// Diagnostics were already written to stderr by the time it is returned, so
// main exits silently with the code.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &exitStatus{code: code}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
