package audio

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/bogem/id3v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"github.com/handiism/pls/internal/model"
)

// DefaultTitleCacheSize is the number of episode descriptions kept by a
// TitleReader.
const DefaultTitleCacheSize = 512

// titleEntry is a cached description, valid while the file is unchanged.
type titleEntry struct {
	modTime time.Time
	size    int64
	episode model.Episode
}

// TitleReader describes episode files for display, using the ID3 title
// (TIT2) of MP3 episodes when one is present.
//
// Renderers describe the same handful of episodes on every frame, so
// results are kept in an LRU cache and reused until the file's size or
// modification time changes.
//
// Example:
//
//	reader, _ := NewTitleReader(fs, DefaultTitleCacheSize)
//	ep := reader.Describe("/podcasts/Hardcore History/show-56.mp3")
//	fmt.Println(ep.Label()) // "Supernova in the East I"
type TitleReader struct {
	fs    afero.Fs
	cache *lru.Cache[string, titleEntry]
}

// NewTitleReader creates a TitleReader caching up to size descriptions.
func NewTitleReader(fs afero.Fs, size int) (*TitleReader, error) {
	cache, err := lru.New[string, titleEntry](size)
	if err != nil {
		return nil, err
	}
	return &TitleReader{fs: fs, cache: cache}, nil
}

// Describe returns display information for the episode at path. Files
// that cannot be read are described from their name alone.
func (r *TitleReader) Describe(path string) model.Episode {
	ep := model.DescribeEpisode(path)

	info, err := r.fs.Stat(path)
	if err != nil {
		return ep
	}
	if cached, ok := r.cache.Get(path); ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.episode
	}

	if title := r.readTitle(path); title != "" {
		ep.Title = title
	}
	r.cache.Add(path, titleEntry{modTime: info.ModTime(), size: info.Size(), episode: ep})
	return ep
}

// Purge drops every cached description.
func (r *TitleReader) Purge() {
	r.cache.Purge()
}

func (r *TitleReader) readTitle(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return ""
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	tag, err := id3v2.ParseReader(f, id3v2.Options{Parse: true, ParseFrames: []string{"Title"}})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(tag.Title())
}
