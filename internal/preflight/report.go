package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"broom/internal/settings"
)

func executable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}

// Result reports one readiness probe for display.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Report evaluates every launcher precondition plus lock directory access
// for the status command. Unlike the run path, it does not short-circuit.
func Report(st *settings.Settings) []Result {
	results := make([]Result, 0, 4)

	results = append(results, toResult("Runtime", runtimeDetail(st), CheckRuntime(st.Engine.Runtime, st.Engine.Path)))
	results = append(results, toResult("Engine", st.Engine.Path, CheckEngine(st.Engine.Path)))
	results = append(results, toResult("Rules", st.Rules, CheckConfig(st.Rules)))
	results = append(results, CheckDirectoryAccess("Lock directory", filepath.Dir(st.Lock)))

	return results
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func toResult(name, detail string, err error) Result {
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func runtimeDetail(st *settings.Settings) string {
	if st.Engine.Runtime != "" {
		return st.Engine.Runtime
	}
	return "direct execution"
}
