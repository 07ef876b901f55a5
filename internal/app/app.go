// Package app wires settings, logging and the show library together for
// the pls binaries.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/handiism/pls/internal/config"
	"github.com/handiism/pls/internal/library"
	"github.com/handiism/pls/internal/logging"
	"github.com/handiism/pls/internal/opener"
	"github.com/handiism/pls/internal/tui"
)

// App holds what every command needs.
type App struct {
	Settings *config.Settings
	Logger   *slog.Logger
	Fs       afero.Fs
	Hostname string

	closer io.Closer
}

// New resolves settings from v and sets up logging. Log records go to the
// log file and, if console is not nil, to console.
func New(v *viper.Viper, console io.Writer) (*App, error) {
	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.Setup(settings, console)
	if err != nil && console == nil {
		// Nothing else would show it: the TUI has no console logger.
		fmt.Fprintf(os.Stderr, "pls: %v\n", err)
	}

	hostname, err := settings.ResolveHostname()
	if err != nil {
		logger.Warn("cannot determine hostname, host overrides disabled", "error", err)
		hostname = ""
	}

	return &App{
		Settings: settings,
		Logger:   logger,
		Fs:       afero.NewOsFs(),
		Hostname: hostname,
		closer:   closer,
	}, nil
}

// Close releases the log file.
func (a *App) Close() error {
	return a.closer.Close()
}

// Opener returns the configured episode opener.
func (a *App) Opener() library.Opener {
	if a.Settings.Player != "" {
		return opener.With{App: a.Settings.Player}
	}
	return opener.System{}
}

// Init creates the config directory and main config if they are missing.
func (a *App) Init() (bool, error) {
	path := a.Settings.MainConfigPath()
	created, err := library.Init(a.Fs, path)
	if err != nil {
		return false, err
	}
	if created {
		a.Logger.Info("created config", "path", path)
	}
	return created, nil
}

// LoadState loads the main config and every show.
func (a *App) LoadState() (*library.State, error) {
	state, err := library.New(a.Settings.MainConfigPath(),
		library.WithFs(a.Fs),
		library.WithOpener(a.Opener()),
		library.WithHostname(a.Hostname),
		library.WithLogger(a.Logger))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.Settings.MainConfigPath(), err)
	}
	return state, nil
}

// RunTUI runs the terminal interface, creating the config on first use.
func (a *App) RunTUI() error {
	if _, err := a.Init(); err != nil {
		return err
	}
	state, err := a.LoadState()
	if err != nil {
		return err
	}
	return tui.Run(state, a.Fs, a.Logger)
}
