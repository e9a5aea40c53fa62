package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// ValidationError aggregates every problem found in a rules file so a bad
// configuration can be fixed in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rules validation failed: %s", strings.Join(e.Problems, "; "))
}

// Validate ensures the rules are usable: required paths are set and every
// configured target directory already exists. All violations are collected
// and returned together as a *ValidationError.
func (c *Config) Validate() error {
	var problems []string

	problems = append(problems, checkDirectory("paths.downloads", c.Paths.Downloads)...)
	problems = append(problems, checkDirectory("paths.archive_base", c.Paths.ArchiveBase)...)

	for i, rule := range c.Routing.Keyword {
		label := fmt.Sprintf("routing.keyword[%d]", i)
		if rule.Keyword == "" {
			problems = append(problems, label+": keyword must be set")
		}
		problems = append(problems, checkDirectory(label, rule.Target)...)
	}
	for _, ext := range sortedKeys(c.Routing.Extensions) {
		problems = append(problems, checkDirectory("routing.extensions."+ext, c.Routing.Extensions[ext])...)
	}
	for _, key := range sortedKeys(c.Routing.Mime) {
		problems = append(problems, checkDirectory("routing.mime."+key, c.Routing.Mime[key])...)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkDirectory(label, dir string) []string {
	if strings.TrimSpace(dir) == "" {
		return []string{label + ": directory must be set"}
	}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []string{fmt.Sprintf("%s: missing directory %s", label, dir)}
	case err != nil:
		return []string{fmt.Sprintf("%s: stat %s: %v", label, dir, err)}
	case !info.IsDir():
		return []string{fmt.Sprintf("%s: %s is not a directory", label, dir)}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
