package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_settings.toml
var sampleSettings string

const (
	defaultEnginePath = "~/.local/lib/broom/broom-engine"
	defaultRulesPath  = "~/.config/broom/rules.toml"
	defaultLockPath   = "~/.local/share/broom/broom.lock"
)

// Engine locates the cleanup engine and the interpreter that runs it.
type Engine struct {
	// Runtime is an optional interpreter command resolved on PATH, for
	// engine builds that are scripts. When empty the engine file is
	// executed directly.
	Runtime string `toml:"runtime"`
	Path    string `toml:"path"`
}

// Settings holds everything the launcher needs to gate and start a run.
type Settings struct {
	Engine Engine `toml:"engine"`
	Rules  string `toml:"rules"`
	Lock   string `toml:"lock"`
}

// Default returns Settings populated with repository defaults.
func Default() Settings {
	return Settings{
		Engine: Engine{Path: defaultEnginePath},
		Rules:  defaultRulesPath,
		Lock:   defaultLockPath,
	}
}

// DefaultSettingsPath returns the absolute path to the default settings file
// location.
func DefaultSettingsPath() (string, error) {
	return expandPath("~/.config/broom/broom.toml")
}

// Load locates and parses a settings file. The returned settings have all
// path fields expanded. The bool reports whether a file was found; absence
// leaves the defaults in force.
func Load(path string) (*Settings, string, bool, error) {
	st := Default()

	resolvedPath, exists, err := resolveSettingsPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open settings: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&st); err != nil {
			return nil, "", false, fmt.Errorf("parse settings: %w", err)
		}
	}

	if err := st.normalize(); err != nil {
		return nil, "", false, err
	}
	return &st, resolvedPath, exists, nil
}

func resolveSettingsPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat settings: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultSettingsPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("broom.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (s *Settings) normalize() error {
	var err error

	s.Engine.Runtime = strings.TrimSpace(s.Engine.Runtime)
	if strings.TrimSpace(s.Engine.Path) == "" {
		s.Engine.Path = defaultEnginePath
	}
	if s.Engine.Path, err = expandPath(s.Engine.Path); err != nil {
		return fmt.Errorf("engine.path: %w", err)
	}

	if strings.TrimSpace(s.Rules) == "" {
		s.Rules = defaultRulesPath
	}
	if s.Rules, err = expandPath(s.Rules); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	if strings.TrimSpace(s.Lock) == "" {
		s.Lock = defaultLockPath
	}
	if s.Lock, err = expandPath(s.Lock); err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	return nil
}

// EnsureLockDir creates the directory that will hold the lock file.
func (s *Settings) EnsureLockDir() error {
	if err := os.MkdirAll(filepath.Dir(s.Lock), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	return nil
}

// CreateSample writes a sample settings file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleSettings), 0o644); err != nil {
		return fmt.Errorf("write sample settings: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
