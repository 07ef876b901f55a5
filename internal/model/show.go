package model

import (
	"path/filepath"
	"slices"
)

// EpisodeLister lists the episode files of a directory as absolute paths
// in playback order. ioutils.Collector is the production implementation.
type EpisodeLister interface {
	List(dir string) ([]string, error)
}

// Show is one tracked series: a directory of episode files and a pointer to
// the episode that should play next.
//
// Shows are only built by NewShow once Dir is known to be an existing
// directory. Next is relative to Dir and may name a file that no longer
// exists; that is checked when the episode is played, not when the show is
// loaded.
//
// Navigation always lists the directory afresh and locates the current
// episode by path equality, so files added or removed between calls are
// seen immediately.
//
// Example:
//
//	show := NewShow("Bleach", "/media/Bleach", "ep02.mkv", collector)
//	show.CurrentEpisode()         // "/media/Bleach/ep02.mkv"
//	_ = show.AdvanceToNextEpisode()
//	show.Next                     // "ep03.mkv"
type Show struct {
	// Name is the display name.
	Name string

	// Dir is the absolute, cleaned root directory of the show.
	Dir string

	// Next is the path of the next episode relative to Dir, using the
	// host's path separator.
	Next string

	episodes EpisodeLister
}

// NewShow creates a Show whose navigation lists episodes with lister.
func NewShow(name, dir, next string, lister EpisodeLister) *Show {
	return &Show{
		Name:     name,
		Dir:      filepath.Clean(dir),
		Next:     filepath.Clean(next),
		episodes: lister,
	}
}

// CurrentEpisode returns the absolute path of the next episode to play.
// It does no I/O and does not check that the file exists.
func (s *Show) CurrentEpisode() string {
	return filepath.Join(s.Dir, s.Next)
}

// Episodes returns every episode of the show in playback order.
func (s *Show) Episodes() ([]string, error) {
	return s.episodes.List(s.Dir)
}

// AdvanceToNextEpisode moves Next to the episode following the current
// one.
//
// When the current episode is the last one, or is not in the listing at
// all (deleted or renamed since it was recorded), Next is left unchanged
// and no error is returned. An error is returned only when the show
// directory cannot be listed.
func (s *Show) AdvanceToNextEpisode() error {
	episodes, err := s.Episodes()
	if err != nil {
		return err
	}

	i := slices.Index(episodes, s.CurrentEpisode())
	if i < 0 || i+1 >= len(episodes) {
		return nil
	}

	s.Next = s.relative(episodes[i+1])
	return nil
}

// PreviousEpisode returns the absolute path of the episode before the
// current one. ok is false when the current episode is the first one or
// is not in the listing.
func (s *Show) PreviousEpisode() (path string, ok bool, err error) {
	episodes, err := s.Episodes()
	if err != nil {
		return "", false, err
	}

	i := slices.Index(episodes, s.CurrentEpisode())
	if i <= 0 {
		return "", false, nil
	}
	return episodes[i-1], true, nil
}

// RemainingEpisodes returns the current episode and every one after it.
// It returns nil when the current episode is not in the listing.
func (s *Show) RemainingEpisodes() ([]string, error) {
	episodes, err := s.Episodes()
	if err != nil {
		return nil, err
	}

	i := slices.Index(episodes, s.CurrentEpisode())
	if i < 0 {
		return nil, nil
	}
	return episodes[i:], nil
}

// relative converts an episode path from the listing into a path relative
// to Dir. Paths outside Dir are kept as they are.
func (s *Show) relative(path string) string {
	rel, err := filepath.Rel(s.Dir, path)
	if err != nil {
		return path
	}
	return rel
}
