package library

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/pls/internal/config"
	ioutils "github.com/handiism/pls/internal/io"
	"github.com/handiism/pls/internal/model"
)

// DefaultLoadLimit bounds the number of fragments parsed at the same time.
const DefaultLoadLimit = 8

// Fragment keys.
const (
	keyName      = "name"
	keyDirectory = "directory"
	keyNext      = "next"
)

// Loader builds shows from fragment files.
//
// A fragment names the show, its directory and the episode to play next:
//
//	name = "Bleach"
//	directory = "/media/anime/Bleach"
//	directory_htpc = "D:\\Anime\\Bleach"
//	next = "Season 1/ep 03.mkv"
//
// directory_<hostname> overrides directory on the named machine, so one
// synced config directory serves several hosts.
type Loader struct {
	fs        afero.Fs
	collector *ioutils.Collector
	hostname  string
	limit     int
	logger    *slog.Logger
}

// NewLoader creates a Loader resolving host overrides for hostname.
func NewLoader(fs afero.Fs, hostname string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fs:        fs,
		collector: ioutils.NewCollector(fs, logger),
		hostname:  hostname,
		limit:     DefaultLoadLimit,
		logger:    logger,
	}
}

// Collector returns the episode lister shared by every loaded show.
func (l *Loader) Collector() *ioutils.Collector {
	return l.collector
}

// DirectoryKeys returns the fragment keys consulted for a show's directory,
// most specific first.
func (l *Loader) DirectoryKeys() []string {
	var keys []string
	if l.hostname != "" {
		keys = append(keys, keyDirectory+"_"+l.hostname)
		if lower := strings.ToLower(l.hostname); lower != l.hostname {
			keys = append(keys, keyDirectory+"_"+lower)
		}
	}
	return append(keys, keyDirectory)
}

// LoadShow builds the show described by the fragment at fragmentPath.
// Non-fatal problems are returned as warnings.
func (l *Loader) LoadShow(fragmentPath, key string) (*model.Show, []string, error) {
	doc, err := config.LoadDocument(l.fs, fragmentPath)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string

	name, ok := doc.GetString(keyName)
	if !ok || name == "" {
		name = key
		warnings = append(warnings, fmt.Sprintf("show %q has no name, using its key", key))
	}

	dir, err := l.resolveDirectory(doc, key, filepath.Dir(fragmentPath))
	if err != nil {
		return nil, warnings, err
	}

	next, ok := doc.GetString(keyNext)
	if ok && strings.TrimSpace(next) == "" {
		ok = false
		warnings = append(warnings, fmt.Sprintf("show %q has an empty next, starting from the first episode", key))
	}
	if ok {
		next = filepath.FromSlash(next)
	} else {
		episodes, err := l.collector.List(dir)
		if err != nil {
			return nil, warnings, fmt.Errorf("show %q: %w", key, err)
		}
		if len(episodes) == 0 {
			return nil, warnings, &NoEpisodesError{Key: key, Dir: dir}
		}
		next, err = filepath.Rel(dir, episodes[0])
		if err != nil {
			return nil, warnings, fmt.Errorf("show %q: %w", key, err)
		}
	}

	return model.NewShow(name, dir, next, l.collector), warnings, nil
}

// resolveDirectory returns the first directory key whose value is an
// existing directory. Relative values are taken from base.
func (l *Loader) resolveDirectory(doc *config.Document, key, base string) (string, error) {
	candidates := l.DirectoryKeys()
	for _, candidate := range candidates {
		value, ok := doc.GetString(candidate)
		if !ok || value == "" {
			continue
		}
		dir := filepath.FromSlash(value)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		dir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if ioutils.IsDir(l.fs, dir) {
			return dir, nil
		}
		l.logger.Debug("show directory does not exist", "show", key, "key", candidate, "dir", dir)
	}
	return "", &MissingDirectoryError{Key: key, Checked: candidates}
}

// LoadResult is the outcome of LoadShows.
type LoadResult struct {
	// Keys lists every fragment found, sorted, whether or not it loaded.
	Keys []string

	// Shows maps fragment keys to the shows that loaded.
	Shows map[string]*model.Show

	// Warnings holds non-fatal problems, including fragments that failed
	// to load, sorted by fragment key.
	Warnings []string
}

// FragmentKey returns the show key of a fragment file and whether the file
// is a fragment at all.
func FragmentKey(fileName string) (string, bool) {
	switch {
	case fileName == config.MainFileName,
		strings.HasPrefix(fileName, "."),
		strings.HasSuffix(fileName, ioutils.TempSuffix),
		filepath.Ext(fileName) != ".toml":
		return "", false
	}
	key := strings.TrimSuffix(fileName, ".toml")
	return key, key != ""
}

// LoadShows loads every fragment in rootDir. mainFile is the base name of
// the main config, which is never a fragment whatever it is called.
//
// A fragment that fails to load is logged and left out; it never affects
// the other shows. An error is returned only when rootDir cannot be read.
func (l *Loader) LoadShows(rootDir, mainFile string) (*LoadResult, error) {
	entries, err := afero.ReadDir(l.fs, rootDir)
	if err != nil {
		return nil, fmt.Errorf("read config directory: %w", err)
	}

	type outcome struct {
		key      string
		show     *model.Show
		warnings []string
	}

	var (
		mu       sync.Mutex
		outcomes []outcome
	)

	var g errgroup.Group
	g.SetLimit(l.limit)

	for _, entry := range entries {
		if entry.Name() == mainFile {
			continue
		}
		key, ok := FragmentKey(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(rootDir, entry.Name())
		if !ioutils.IsRegularFile(l.fs, path) {
			continue
		}

		g.Go(func() error {
			show, warnings, err := l.LoadShow(path, key)
			for _, w := range warnings {
				l.logger.Warn(w, "path", path)
			}
			if err != nil {
				l.logger.Warn("skipping show", "show", key, "path", path, "error", err)
				warnings = append(warnings, err.Error())
			}

			mu.Lock()
			outcomes = append(outcomes, outcome{key: key, show: show, warnings: warnings})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].key < outcomes[j].key })

	result := &LoadResult{Shows: make(map[string]*model.Show, len(outcomes))}
	for _, o := range outcomes {
		result.Keys = append(result.Keys, o.key)
		if o.show != nil {
			result.Shows[o.key] = o.show
		}
		result.Warnings = append(result.Warnings, o.warnings...)
	}
	return result, nil
}
