package model

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticLister returns a fixed listing for one directory.
type staticLister struct {
	dir      string
	episodes []string
	err      error
}

func (l *staticLister) List(dir string) ([]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	if dir != l.dir {
		return nil, errors.New("unexpected dir " + dir)
	}
	out := make([]string, len(l.episodes))
	for i, ep := range l.episodes {
		out[i] = filepath.Join(l.dir, ep)
	}
	return out, nil
}

func newTestShow(next string, episodes ...string) *Show {
	return NewShow("Test", "/shows/test", next, &staticLister{dir: "/shows/test", episodes: episodes})
}

func TestShow_CurrentEpisode(t *testing.T) {
	show := newTestShow("Season 1/ep1.mkv")
	assert.Equal(t, "/shows/test/Season 1/ep1.mkv", show.CurrentEpisode())
}

func TestShow_AdvanceToNextEpisode(t *testing.T) {
	tests := []struct {
		name     string
		next     string
		episodes []string
		want     string
	}{
		{"middle", "b", []string{"a", "b", "c"}, "c"},
		{"first", "a", []string{"a", "b", "c"}, "b"},
		{"last stays", "c", []string{"a", "b", "c"}, "c"},
		{"missing stays", "gone", []string{"a", "b", "c"}, "gone"},
		{"nested", "s1/e2", []string{"s1/e1", "s1/e2", "s2/e1"}, "s2/e1"},
		{"empty listing", "a", nil, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show := newTestShow(tt.next, tt.episodes...)
			require.NoError(t, show.AdvanceToNextEpisode())
			assert.Equal(t, filepath.FromSlash(tt.want), show.Next)
		})
	}
}

func TestShow_AdvanceTwiceAtEnd(t *testing.T) {
	show := newTestShow("b", "a", "b", "c")

	require.NoError(t, show.AdvanceToNextEpisode())
	require.NoError(t, show.AdvanceToNextEpisode())
	assert.Equal(t, "c", show.Next)
}

func TestShow_AdvanceListingError(t *testing.T) {
	show := NewShow("Test", "/shows/test", "a", &staticLister{err: errors.New("boom")})

	assert.Error(t, show.AdvanceToNextEpisode())
	assert.Equal(t, "a", show.Next)
}

func TestShow_PreviousEpisode(t *testing.T) {
	tests := []struct {
		name   string
		next   string
		want   string
		wantOK bool
	}{
		{"middle", "b", "/shows/test/a", true},
		{"first", "a", "", false},
		{"missing", "gone", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show := newTestShow(tt.next, "a", "b", "c")
			got, ok, err := show.PreviousEpisode()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.next, show.Next)
		})
	}
}

func TestShow_RemainingEpisodes(t *testing.T) {
	show := newTestShow("b", "a", "b", "c")

	got, err := show.RemainingEpisodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"/shows/test/b", "/shows/test/c"}, got)

	show.Next = "gone"
	got, err = show.RemainingEpisodes()
	require.NoError(t, err)
	assert.Nil(t, got)
}
