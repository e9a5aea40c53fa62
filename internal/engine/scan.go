package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// discoverFiles lists regular, non-hidden files at the top level of dir,
// ordered case-insensitively by name. Symlinks count when they point at a
// regular file; subdirectories are never descended into. A missing directory
// yields an empty scan since validation normally rejects it earlier.
func discoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read downloads directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			// Vanished or broken entries are simply skipped.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}
