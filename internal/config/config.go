package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_rules.toml
var sampleRules string

// Paths names the directories a run reads from and archives into.
type Paths struct {
	Downloads   string `toml:"downloads"`
	ArchiveBase string `toml:"archive_base"`
}

// KeywordRule routes file names containing Keyword (caseless substring) to
// Target. Rules are evaluated in the order they appear in the rules file.
type KeywordRule struct {
	Keyword string `toml:"keyword"`
	Target  string `toml:"target"`
}

// Routing holds the match rules in precedence order: keyword, then
// extension, then MIME type. Files nothing matches fall back to the archive.
type Routing struct {
	Keyword    []KeywordRule     `toml:"keyword"`
	Extensions map[string]string `toml:"extensions"`
	Mime       map[string]string `toml:"mime"`
}

// Journal configures the run history database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for engine log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is a fully expanded rules file.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Routing Routing `toml:"routing"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`
}

// DefaultRulesPath returns the absolute path to the default rules file
// location.
func DefaultRulesPath() (string, error) {
	return ExpandPath("~/.config/broom/rules.toml")
}

// Load parses and normalizes a rules file. The returned config has every
// path expanded; call Validate before running against it.
func Load(path string) (*Config, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("rules path: %w", err)
	}

	file, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer file.Close()

	cfg := Default()
	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateSample writes a sample rules file to the specified location.
func CreateSample(path string) error {
	return writeSample(path, sampleRules)
}
