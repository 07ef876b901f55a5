// Package ioutils provides file system utilities for pls.
//
// This package contains functions for:
//   - Natural-order episode traversal
//   - Atomic file writing
//   - Filename sanitization
//   - Directory creation
//   - Cover art lookup and thumbnails
//
// All functions operate on an afero.Fs so callers can substitute an
// in-memory file system in tests.
package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var (
	invalidChars     = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpaceRun = regexp.MustCompile(`\s+`)
)

// TempSuffix is appended to a file name while WriteFileAtomic is writing it.
const TempSuffix = ".tmp"

// WriteFileAtomic writes data to path by writing a sibling temporary file
// and renaming it over the destination.
//
// The file is created with mode 0644. A reader never observes a partially
// written file: it sees either the old content or the new one.
//
// Example:
//
//	err := WriteFileAtomic(fs, "/home/me/.config/pls/bleach.toml", []byte(doc.String()))
func WriteFileAtomic(fs afero.Fs, path string, data []byte) error {
	if err := EnsureDir(fs, filepath.Dir(path)); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp := path + TempSuffix
	f, err := fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = fs.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Bleach: Part 1/2")  // Returns "Bleach_ Part 1_2"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaceRun.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755. If the directory already exists,
// no error is returned.
func EnsureDir(fs afero.Fs, path string) error {
	return fs.MkdirAll(path, 0o755)
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory.
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
