package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Tokens that would only appear in a path through shell injection or a
// copy/paste accident. Expansion supports "~" and environment variables;
// anything fancier is rejected outright.
var forbiddenPathTokens = []string{"$(", "`", ";", "|", "&"}

// ExpandPath expands "~" and environment variables and resolves the result
// to an absolute, cleaned path. Shell-like expressions are rejected.
func ExpandPath(pathValue string) (string, error) {
	if strings.TrimSpace(pathValue) == "" {
		return "", errors.New("path is empty")
	}
	for _, token := range forbiddenPathTokens {
		if strings.Contains(pathValue, token) {
			return "", fmt.Errorf("shell expression %q not allowed in path %q", token, pathValue)
		}
	}

	pathValue = os.ExpandEnv(pathValue)
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

func writeSample(path, sample string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
