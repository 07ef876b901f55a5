package library

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"

	"github.com/spf13/afero"

	"github.com/handiism/pls/internal/config"
	ioutils "github.com/handiism/pls/internal/io"
	"github.com/handiism/pls/internal/model"
	"github.com/handiism/pls/internal/opener"
)

// Main config keys.
const (
	keyVersion  = "version"
	keyOrdering = "ordering"
)

// Opener opens a file with whatever the user has set up to handle it.
type Opener interface {
	Open(path string) error
}

type options struct {
	fs       afero.Fs
	opener   Opener
	hostname string
	logger   *slog.Logger
}

// Option configures a State.
type Option func(*options)

// WithFs sets the filesystem. The default is the operating system's.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithOpener sets the Opener used to play episodes and open config files.
func WithOpener(op Opener) Option {
	return func(o *options) { o.opener = op }
}

// WithHostname sets the host name used to pick directory_<hostname>
// overrides.
func WithHostname(hostname string) Option {
	return func(o *options) { o.hostname = hostname }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// State is everything a renderer shows: the shows in display order, the
// selection and the message of the last failure.
//
// A State is not safe for concurrent use. Renderers call its methods from
// a single goroutine.
type State struct {
	// ConfigVersion is the schema version of the main config.
	ConfigVersion config.Version

	// SelectedKey is the key of the selected show. It may name a key that
	// has no loaded show.
	SelectedKey string

	// OrderedKeys lists show keys in display order, without duplicates:
	// the keys of the main config's ordering first, then every other
	// fragment in alphabetical order.
	OrderedKeys []string

	// Shows holds the shows that loaded, by key.
	Shows map[string]*model.Show

	// ConfigPath is the absolute path of the main config file.
	ConfigPath string

	// Error is a user visible message. It stays until ClearError.
	Error string

	AboutWindowIsOpen bool

	// Warnings lists problems found while loading.
	Warnings []string

	opts   options
	loader *Loader
	doc    *config.Document
}

// New loads the main config at configPath and every show fragment next to
// it.
//
// A main config that cannot be read or parsed is an error. Shows that fail
// to load are left out and reported in Warnings.
func New(configPath string, opts ...Option) (*State, error) {
	o := options{
		fs:     afero.NewOsFs(),
		opener: opener.System{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	configPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	doc, err := config.LoadDocument(o.fs, configPath)
	if err != nil {
		return nil, err
	}

	s := &State{
		ConfigPath: configPath,
		opts:       o,
		loader:     NewLoader(o.fs, o.hostname, o.logger),
		doc:        doc,
	}

	ordering := s.readOrdering()

	loaded, err := s.loader.LoadShows(filepath.Dir(configPath), filepath.Base(configPath))
	if err != nil {
		return nil, err
	}
	s.Shows = loaded.Shows
	s.Warnings = append(s.Warnings, loaded.Warnings...)
	s.OrderedKeys = mergeOrdering(ordering, loaded.Keys)

	s.readVersion()

	if len(s.OrderedKeys) > 0 {
		s.SelectedKey = s.OrderedKeys[0]
	}

	s.opts.logger.Debug("state loaded",
		"config", configPath,
		"version", s.ConfigVersion,
		"shows", len(s.Shows),
		"keys", len(s.OrderedKeys))
	return s, nil
}

func (s *State) readOrdering() []string {
	if _, present := s.doc.Get(keyOrdering); !present {
		return nil
	}
	ordering, skipped, ok := s.doc.GetStringSlice(keyOrdering)
	if !ok {
		s.warn("ordering is not an array, ignoring it")
		return nil
	}
	if skipped > 0 {
		s.warn(fmt.Sprintf("ordering has %d non-string entries, ignoring them", skipped))
	}
	return ordering
}

func (s *State) readVersion() {
	raw, ok := s.doc.GetString(keyVersion)
	if !ok {
		s.ConfigVersion = config.DefaultVersion
		s.warn(fmt.Sprintf("config has no version, assuming %s", config.DefaultVersion))
		return
	}
	v, known := config.ParseVersion(raw)
	if !known {
		s.warn(fmt.Sprintf("unknown config version %q, assuming %s", raw, config.DefaultVersion))
	}
	s.ConfigVersion = v
}

func (s *State) warn(msg string) {
	s.opts.logger.Warn(msg, "config", s.ConfigPath)
	s.Warnings = append(s.Warnings, msg)
}

// mergeOrdering returns the declared keys in their order, followed by the
// remaining fragment keys sorted alphabetically. Duplicates are dropped.
func mergeOrdering(declared, fragments []string) []string {
	seen := make(map[string]bool, len(declared)+len(fragments))
	keys := make([]string, 0, len(declared)+len(fragments))
	for _, key := range declared {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	var rest []string
	for _, key := range fragments {
		if !seen[key] {
			seen[key] = true
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Reload loads the config again. On success every field is replaced and
// the selection is kept if its key still exists. On failure the State is
// left as it was.
func (s *State) Reload() error {
	fresh, err := New(s.ConfigPath, s.optionList()...)
	if err != nil {
		return err
	}
	if slices.Contains(fresh.OrderedKeys, s.SelectedKey) {
		fresh.SelectedKey = s.SelectedKey
	}
	*s = *fresh
	return nil
}

func (s *State) optionList() []Option {
	o := s.opts
	return []Option{WithFs(o.fs), WithOpener(o.opener), WithHostname(o.hostname), WithLogger(o.logger)}
}

// ConfigDir returns the directory holding the main config and fragments.
func (s *State) ConfigDir() string {
	return filepath.Dir(s.ConfigPath)
}

// FragmentPath returns the path of the fragment file of a show key.
func (s *State) FragmentPath(key string) string {
	return filepath.Join(s.ConfigDir(), key+".toml")
}

// SaveShow writes the show's next episode back to its fragment. The
// fragment is read again first so that edits made since loading are kept.
func (s *State) SaveShow(key string) error {
	show, ok := s.Shows[key]
	if !ok {
		return fmt.Errorf("show %q is not loaded", key)
	}

	path := s.FragmentPath(key)
	doc, err := config.LoadDocument(s.opts.fs, path)
	if err != nil {
		return err
	}
	if err := doc.Set(keyNext, filepath.ToSlash(show.Next)); err != nil {
		return fmt.Errorf("show %q: %w", key, err)
	}
	if err := doc.Save(s.opts.fs, path); err != nil {
		return err
	}
	s.opts.logger.Debug("saved show", "show", key, "next", show.Next)
	return nil
}

// Select selects the show key. It reports false for keys that are not in
// OrderedKeys.
func (s *State) Select(key string) bool {
	if !slices.Contains(s.OrderedKeys, key) {
		return false
	}
	s.SelectedKey = key
	return true
}

// SelectedShow returns the selected show, if it loaded.
func (s *State) SelectedShow() (*model.Show, bool) {
	show, ok := s.Shows[s.SelectedKey]
	return show, ok
}

// AdvanceSelected plays the next episode of the selected show and moves the
// show on to the one after it.
//
// The episode must be an existing file, otherwise nothing happens apart
// from Error being set. The show advances and is saved even if the Opener
// fails. Every failure is also recorded in Error.
func (s *State) AdvanceSelected() error {
	show, ok := s.SelectedShow()
	if !ok {
		return s.fail(fmt.Errorf("show %q is not loaded", s.SelectedKey))
	}

	episode := show.CurrentEpisode()
	if !ioutils.IsRegularFile(s.opts.fs, episode) {
		return s.fail(fmt.Errorf("episode %s does not exist", episode))
	}

	var errs []error
	if err := s.open(episode); err != nil {
		errs = append(errs, err)
	}

	if err := show.AdvanceToNextEpisode(); err != nil {
		errs = append(errs, fmt.Errorf("advance %q: %w", s.SelectedKey, err))
	} else if err := s.SaveShow(s.SelectedKey); err != nil {
		errs = append(errs, fmt.Errorf("save %q: %w", s.SelectedKey, err))
	}

	if err := errors.Join(errs...); err != nil {
		return s.fail(err)
	}
	return nil
}

// ReplayPreviousEpisode opens the episode before the selected show's next
// one. The show is not changed.
func (s *State) ReplayPreviousEpisode() error {
	show, ok := s.SelectedShow()
	if !ok {
		return s.fail(fmt.Errorf("show %q is not loaded", s.SelectedKey))
	}

	previous, ok, err := show.PreviousEpisode()
	if err != nil {
		return s.fail(err)
	}
	if !ok {
		return s.fail(fmt.Errorf("show %q has no previous episode", s.SelectedKey))
	}
	if err := s.open(previous); err != nil {
		return s.fail(err)
	}
	return nil
}

// OpenConfigFile opens the selected show's fragment, or the main config if
// the show has no fragment.
func (s *State) OpenConfigFile() error {
	path := s.ConfigPath
	if s.SelectedKey != "" {
		if fragment := s.FragmentPath(s.SelectedKey); ioutils.IsRegularFile(s.opts.fs, fragment) {
			path = fragment
		}
	}
	if err := s.open(path); err != nil {
		return s.fail(err)
	}
	return nil
}

// ClearError dismisses the current error message.
func (s *State) ClearError() {
	s.Error = ""
}

// ToggleAbout opens or closes the about window.
func (s *State) ToggleAbout() {
	s.AboutWindowIsOpen = !s.AboutWindowIsOpen
}

func (s *State) open(path string) error {
	s.opts.logger.Info("opening", "path", path)
	if err := s.opts.opener.Open(path); err != nil {
		return &OpenerError{Path: path, Err: err}
	}
	return nil
}

func (s *State) fail(err error) error {
	s.opts.logger.Error("operation failed", "show", s.SelectedKey, "error", err)
	s.Error = err.Error()
	return err
}

// DefaultMainConfig is written by Init.
const DefaultMainConfig = `# pls main configuration.
#
# Every other .toml file in this directory describes one show:
#
#   name = "Bleach"
#   directory = "/media/anime/Bleach"
#   directory_<hostname> = "D:/Anime/Bleach"
#   next = "Season 1/ep 01.mkv"

version = "1.0.0"

# Show keys (fragment file names without .toml) in display order.
# Shows not listed here follow alphabetically.
ordering = []
`

// Init creates the config directory and a default main config. An existing
// main config is left alone. It reports whether a file was created.
func Init(fs afero.Fs, configPath string) (bool, error) {
	if err := ioutils.EnsureDir(fs, filepath.Dir(configPath)); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := ioutils.WriteFileAtomic(fs, configPath, []byte(DefaultMainConfig)); err != nil {
		return false, fmt.Errorf("write %s: %w", configPath, err)
	}
	return true, nil
}
