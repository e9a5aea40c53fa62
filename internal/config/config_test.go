package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"broom/internal/config"
)

func writeRules(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestLoadExpandsPathsAndAppliesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := writeRules(t, `
[paths]
downloads = "~/Downloads"
archive_base = "~/Downloads/archive"

[routing.extensions]
".PDF" = "~/docs"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(tempHome, "Downloads"); cfg.Paths.Downloads != want {
		t.Fatalf("unexpected downloads dir: got %q want %q", cfg.Paths.Downloads, want)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if want := filepath.Join(tempHome, ".local", "share", "broom", "journal.db"); cfg.Journal.Path != want {
		t.Fatalf("unexpected journal path: %q", cfg.Journal.Path)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	target, ok := cfg.Routing.Extensions["pdf"]
	if !ok {
		t.Fatalf("expected extension key normalized to %q, have %v", "pdf", cfg.Routing.Extensions)
	}
	if want := filepath.Join(tempHome, "docs"); target != want {
		t.Fatalf("unexpected extension target: got %q want %q", target, want)
	}
}

func TestLoadPreservesKeywordOrder(t *testing.T) {
	base := t.TempDir()
	path := writeRules(t, `
[paths]
downloads = "`+base+`"
archive_base = "`+base+`"

[[routing.keyword]]
keyword = "invoice"
target = "`+base+`"

[[routing.keyword]]
keyword = "inv"
target = "`+base+`"

[[routing.keyword]]
keyword = "report"
target = "`+base+`"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []string{"invoice", "inv", "report"}
	if len(cfg.Routing.Keyword) != len(want) {
		t.Fatalf("expected %d keyword rules, got %d", len(want), len(cfg.Routing.Keyword))
	}
	for i, rule := range cfg.Routing.Keyword {
		if rule.Keyword != want[i] {
			t.Fatalf("keyword rule %d: got %q want %q", i, rule.Keyword, want[i])
		}
	}
}

func TestLoadRejectsShellExpressionsInPaths(t *testing.T) {
	path := writeRules(t, `
[paths]
downloads = "~/Downloads; rm -rf /"
archive_base = "~/Downloads/archive"
`)

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for shell expression in path")
	} else if !strings.Contains(err.Error(), "not allowed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing rules file")
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	base := t.TempDir()
	missingA := filepath.Join(base, "missing-a")
	missingB := filepath.Join(base, "missing-b")

	path := writeRules(t, `
[paths]
downloads = "`+base+`"
archive_base = "`+missingA+`"

[[routing.keyword]]
keyword = "invoice"
target = "`+missingB+`"

[routing.extensions]
pdf = "`+missingB+`"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(verr.Problems), verr.Problems)
	}
}

func TestValidateRequiresDownloadsAndArchive(t *testing.T) {
	cfg := config.Default()
	err := cfg.Validate()
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", verr.Problems)
	}
}

func TestValidateRejectsFileTarget(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	path := writeRules(t, `
[paths]
downloads = "`+base+`"
archive_base = "`+file+`"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("expected not-a-directory problem, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, ".config", "broom", "rules.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if len(cfg.Routing.Keyword) == 0 {
		t.Fatal("expected sample to include keyword rules")
	}
	if cfg.Paths.Downloads != filepath.Join(tempHome, "Downloads") {
		t.Fatalf("unexpected sample downloads dir: %q", cfg.Paths.Downloads)
	}
}
