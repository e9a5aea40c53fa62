package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"broom/internal/config"
)

// RulesOption customizes the generated rules configuration.
type RulesOption func(*rulesBuilder)

type rulesBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewRules produces a rules config seeded with unique temp directories per
// test: a downloads dir, an archive base, and any requested routing targets,
// all created up front so validation passes.
func NewRules(t testing.TB, opts ...RulesOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Downloads = makeDir(t, base, "downloads")
	cfgVal.Paths.ArchiveBase = makeDir(t, base, "archive")
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")
	cfgVal.Routing.Extensions = map[string]string{}
	cfgVal.Routing.Mime = map[string]string{}

	builder := &rulesBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithKeywordRule appends a keyword rule routing to a fresh target directory.
func WithKeywordRule(keyword, dirName string) RulesOption {
	return func(b *rulesBuilder) {
		target := makeDir(b.t, b.baseDir, dirName)
		b.cfg.Routing.Keyword = append(b.cfg.Routing.Keyword, config.KeywordRule{
			Keyword: keyword,
			Target:  target,
		})
	}
}

// WithExtensionRule maps an extension (no dot) to a fresh target directory.
func WithExtensionRule(ext, dirName string) RulesOption {
	return func(b *rulesBuilder) {
		b.cfg.Routing.Extensions[ext] = makeDir(b.t, b.baseDir, dirName)
	}
}

// WithMimeRule maps a MIME key to a fresh target directory.
func WithMimeRule(key, dirName string) RulesOption {
	return func(b *rulesBuilder) {
		b.cfg.Routing.Mime[key] = makeDir(b.t, b.baseDir, dirName)
	}
}

// WithJournalDisabled turns off run recording.
func WithJournalDisabled() RulesOption {
	return func(b *rulesBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated rules.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Downloads)
}

// WriteRulesFile marshals the rules to a TOML file the engine binary can
// load with --config.
func WriteRulesFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal rules: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "rules.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	return path
}

func makeDir(t testing.TB, base, name string) string {
	t.Helper()
	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	return dir
}
