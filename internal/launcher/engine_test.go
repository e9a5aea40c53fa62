package launcher_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"broom/internal/launcher"
	"broom/internal/testsupport"
)

func TestCommandEngineExitCodes(t *testing.T) {
	for _, want := range []int{0, 1, 2, 130, 255} {
		base := t.TempDir()
		path := testsupport.WriteEngineScript(t, filepath.Join(base, "broom-engine"), want, "")

		engine := launcher.NewCommandEngine("", path)
		engine.Stdout = &bytes.Buffer{}
		engine.Stderr = &bytes.Buffer{}

		code, err := engine.Invoke(context.Background(), filepath.Join(base, "rules.toml"), nil)
		if err != nil {
			t.Fatalf("Invoke returned error: %v", err)
		}
		if code != want {
			t.Fatalf("expected exit %d, got %d", want, code)
		}
	}
}

func TestCommandEnginePrependsConfigAndForwardsArgs(t *testing.T) {
	base := t.TempDir()
	argvPath := filepath.Join(base, "argv.txt")
	path := testsupport.WriteEngineScript(t, filepath.Join(base, "broom-engine"), 0, argvPath)

	engine := launcher.NewCommandEngine("", path)
	engine.Stdout = &bytes.Buffer{}
	engine.Stderr = &bytes.Buffer{}

	rules := filepath.Join(base, "rules.toml")
	args := []string{"--dry-run", "a b", "", "plain"}
	if _, err := engine.Invoke(context.Background(), rules, args); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	data, err := os.ReadFile(argvPath)
	if err != nil {
		t.Fatalf("read recorded argv: %v", err)
	}
	got := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	want := append([]string{"--config", rules}, args...)
	if len(got) != len(want) {
		t.Fatalf("expected %d argv entries, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("argv[%d]: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestCommandEngineRunsThroughInterpreter(t *testing.T) {
	base := t.TempDir()
	argvPath := filepath.Join(base, "argv.txt")
	// No execute bit: the script only runs via the interpreter.
	script := "for arg in \"$@\"; do printf '%s\\n' \"$arg\" >> \"" + argvPath + "\"; done\nexit 3\n"
	path := filepath.Join(base, "engine.sh")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	engine := launcher.NewCommandEngine("sh", path)
	engine.Stdout = &bytes.Buffer{}
	engine.Stderr = &bytes.Buffer{}

	rules := filepath.Join(base, "rules.toml")
	code, err := engine.Invoke(context.Background(), rules, []string{"extra"})
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}

	data, err := os.ReadFile(argvPath)
	if err != nil {
		t.Fatalf("read recorded argv: %v", err)
	}
	got := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	want := []string{"--config", rules, "extra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("argv[%d]: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestCommandEngineSpawnFailure(t *testing.T) {
	engine := launcher.NewCommandEngine("", filepath.Join(t.TempDir(), "absent"))
	engine.Stdout = &bytes.Buffer{}
	engine.Stderr = &bytes.Buffer{}

	if _, err := engine.Invoke(context.Background(), "rules.toml", nil); err == nil {
		t.Fatal("expected spawn failure for missing engine binary")
	}
}
