package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"broom/internal/settings"
)

// WriteFile creates path with the given contents, making parent directories
// as needed.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteEngineScript writes an executable stub engine that appends its
// received arguments (one per line) to argvPath and exits with exitCode.
// An empty argvPath skips recording.
func WriteEngineScript(t testing.TB, path string, exitCode int, argvPath string) string {
	t.Helper()

	script := "#!/bin/sh\n"
	if argvPath != "" {
		script += fmt.Sprintf("for arg in \"$@\"; do printf '%%s\\n' \"$arg\" >> %q; done\n", argvPath)
	}
	script += fmt.Sprintf("exit %d\n", exitCode)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write engine stub %s: %v", path, err)
	}
	return path
}

// NewSettings builds launcher settings rooted in a per-test temp directory:
// a stub engine exiting 0, an empty rules file, and a lock path beside them.
func NewSettings(t testing.TB) *settings.Settings {
	t.Helper()

	base := t.TempDir()
	engine := WriteEngineScript(t, filepath.Join(base, "broom-engine"), 0, "")
	rules := filepath.Join(base, "rules.toml")
	WriteFile(t, rules, "[paths]\n")

	return &settings.Settings{
		Engine: settings.Engine{Path: engine},
		Rules:  rules,
		Lock:   filepath.Join(base, "broom.lock"),
	}
}
