package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// collisionSafeTarget returns destDir/name, appending " (n)" before the
// extension until the name is unused.
func collisionSafeTarget(destDir, name string) string {
	candidate := filepath.Join(destDir, name)
	if !pathExists(candidate) {
		return candidate
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
		if !pathExists(candidate) {
			return candidate
		}
	}
}

// Unreadable candidates count as free; the move itself will surface the
// real error.
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// moveFile renames src to dest, falling back to copy-and-remove when the
// destination is on another filesystem.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("copy to destination: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("flush destination: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
