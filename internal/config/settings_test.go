package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "m3u", s.PlaylistFormat)
	assert.Equal(t, MainFileName, filepath.Base(s.MainConfigPath()))
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLS_CONFIG_DIR", dir)
	t.Setenv("PLS_HOSTNAME", "htpc")
	t.Setenv("PLS_LOG_LEVEL", "debug")
	t.Setenv("PLS_PLAYER", "mpv")

	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, MainFileName), s.MainConfigPath())
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "mpv", s.Player)

	host, err := s.ResolveHostname()
	require.NoError(t, err)
	assert.Equal(t, "htpc", host)
}

func TestLoad_EmptyConfigDir(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("config_dir", "")

	_, err := Load(v)
	assert.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input  string
		want   Version
		wantOK bool
	}{
		{"1.0.0", Version1, true},
		{"", DefaultVersion, false},
		{"2.0.0", DefaultVersion, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseVersion(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
