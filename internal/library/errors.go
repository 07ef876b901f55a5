package library

import (
	"fmt"
	"strings"
)

// MissingDirectoryError is returned when none of a fragment's directory
// keys names an existing directory.
type MissingDirectoryError struct {
	Key string

	// Checked lists the directory keys that were tried, in order.
	Checked []string
}

func (e *MissingDirectoryError) Error() string {
	return fmt.Sprintf("show %q: no existing directory in %s", e.Key, strings.Join(e.Checked, ", "))
}

// NoEpisodesError is returned when a show has no next episode recorded and
// its directory holds no files to start from.
type NoEpisodesError struct {
	Key string
	Dir string
}

func (e *NoEpisodesError) Error() string {
	return fmt.Sprintf("show %q: no episodes in %s", e.Key, e.Dir)
}

// OpenerError wraps a failure of the Opener.
type OpenerError struct {
	Path string
	Err  error
}

func (e *OpenerError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenerError) Unwrap() error {
	return e.Err
}
