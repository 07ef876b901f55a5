package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// MainFileName is the reserved name of the main config file. Every other
// .toml file next to it is a show fragment.
const MainFileName = "pls.toml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PLS"

// Settings holds the application settings that live outside the show
// config: where that config is, which host we are on and how to log.
type Settings struct {
	// ConfigDir is the directory holding pls.toml and the show fragments.
	ConfigDir string `mapstructure:"config_dir"`

	// Hostname selects directory_<hostname> overrides. Empty means the
	// operating system's host name.
	Hostname string `mapstructure:"hostname"`

	// Log settings
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSize    int    `mapstructure:"log_max_size"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`

	// Player opens episodes. Empty means the default application for the
	// file type.
	Player string `mapstructure:"player"`

	// PlaylistFormat is the default format for playlist export.
	PlaylistFormat string `mapstructure:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `mapstructure:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	return &Settings{
		ConfigDir:      filepath.Join(configDir, "pls"),
		LogLevel:       "info",
		LogFile:        filepath.Join(cacheDir, "pls", "pls.log"),
		LogMaxSize:     5,
		LogMaxBackups:  3,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// SetDefaults registers every setting with v so that environment variables
// (PLS_CONFIG_DIR, PLS_HOSTNAME, PLS_LOG_LEVEL, ...) are picked up.
func SetDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("config_dir", d.ConfigDir)
	v.SetDefault("hostname", d.Hostname)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_max_size", d.LogMaxSize)
	v.SetDefault("log_max_backups", d.LogMaxBackups)
	v.SetDefault("player", d.Player)
	v.SetDefault("playlist_format", d.PlaylistFormat)
	v.SetDefault("m3u_extended", d.M3UExtended)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load resolves settings from v, which should have been prepared with
// SetDefaults and optionally bound to command line flags.
func Load(v *viper.Viper) (*Settings, error) {
	s := DefaultSettings()
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if s.ConfigDir == "" {
		return nil, fmt.Errorf("config_dir must not be empty")
	}
	return s, nil
}

// MainConfigPath returns the location of pls.toml.
func (s *Settings) MainConfigPath() string {
	return filepath.Join(s.ConfigDir, MainFileName)
}

// ResolveHostname returns the configured hostname, falling back to the
// operating system's.
func (s *Settings) ResolveHostname() (string, error) {
	if s.Hostname != "" {
		return s.Hostname, nil
	}
	return os.Hostname()
}
