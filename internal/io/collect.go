package ioutils

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// TraversalError is returned by Collector.List when the root directory is
// missing, is not a directory, or cannot be read.
type TraversalError struct {
	Dir string
	Err error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("list episodes in %q: %v", e.Dir, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// Collector lists episode files below a directory.
//
// Only regular files are returned. Directories, including symlinks to
// directories, are descended into but never emitted themselves. A directory
// reachable by several paths is listed once, so link cycles end. The result
// is sorted with CompareNatural over the full path, which is the order that
// defines "next" and "previous" for a show.
//
// Example:
//
//	c := NewCollector(afero.NewOsFs(), nil)
//	episodes, err := c.List("/media/shows/Bleach")
//	// [/media/shows/Bleach/ep1.mkv /media/shows/Bleach/ep2.mkv /media/shows/Bleach/ep10.mkv]
type Collector struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewCollector creates a Collector over fs. A nil logger uses slog.Default().
func NewCollector(fs afero.Fs, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{fs: fs, logger: logger}
}

// List returns every regular file below dir as an absolute path, in
// natural order. An existing but empty dir yields an empty slice and a nil
// error. Nested directories that cannot be read are skipped.
func (c *Collector) List(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &TraversalError{Dir: dir, Err: err}
	}

	info, err := c.fs.Stat(abs)
	if err != nil {
		return nil, &TraversalError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &TraversalError{Dir: dir, Err: errors.New("not a directory")}
	}

	entries, err := afero.ReadDir(c.fs, abs)
	if err != nil {
		return nil, &TraversalError{Dir: dir, Err: err}
	}

	w := &walk{Collector: c, visited: map[string]bool{c.realPath(abs): true}, result: []string{}}
	w.visit(abs, entries)
	SortNatural(w.result)
	return w.result, nil
}

// realPath identifies a directory for cycle detection. Only the operating
// system's filesystem has symlinks to resolve.
func (c *Collector) realPath(path string) string {
	if _, ok := c.fs.(*afero.OsFs); ok {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			return resolved
		}
	}
	return filepath.Clean(path)
}

// walk is the state of one List call. Each real directory is entered once,
// so links back into an ancestor or a sibling add nothing.
type walk struct {
	*Collector
	visited map[string]bool
	result  []string
}

func (w *walk) visit(dir string, entries []os.FileInfo) {
	// Real entries go first so that files are listed under their own path
	// rather than through a link into the same directory.
	var links []os.FileInfo
	for _, entry := range entries {
		if entry.Mode()&os.ModeSymlink != 0 {
			links = append(links, entry)
			continue
		}
		w.visitEntry(filepath.Join(dir, entry.Name()), entry.Mode())
	}

	for _, entry := range links {
		path := filepath.Join(dir, entry.Name())
		target, err := w.fs.Stat(path)
		if err != nil {
			w.logger.Debug("skipping dangling symlink", "path", path, "err", err)
			continue
		}
		w.visitEntry(path, target.Mode())
	}
}

func (w *walk) visitEntry(path string, mode os.FileMode) {
	switch {
	case mode.IsDir():
		id := w.realPath(path)
		if w.visited[id] {
			w.logger.Debug("skipping directory already listed", "path", path, "real", id)
			return
		}
		w.visited[id] = true

		children, err := afero.ReadDir(w.fs, path)
		if err != nil {
			w.logger.Debug("skipping unreadable directory", "path", path, "err", err)
			return
		}
		w.visit(path, children)
	case mode.IsRegular():
		w.result = append(w.result, path)
	}
}
