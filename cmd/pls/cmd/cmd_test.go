package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupConfig writes a config directory with one show and points the
// command line at it.
func setupConfig(t *testing.T) (configDir, showDir string) {
	t.Helper()
	root := t.TempDir()
	configDir = filepath.Join(root, "config")
	showDir = filepath.Join(root, "tv", "frasier")

	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.MkdirAll(showDir, 0o755))
	for _, name := range []string{"ep1.mkv", "ep2.mkv", "ep10.mkv"} {
		require.NoError(t, os.WriteFile(filepath.Join(showDir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "pls.toml"), []byte("version = \"1.0.0\"\n"), 0o644))
	fragment := "name = \"Frasier\"\ndirectory = '" + filepath.ToSlash(showDir) + "'\nnext = \"ep2.mkv\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "frasier.toml"), []byte(fragment), 0o644))

	t.Setenv("PLS_CONFIG_DIR", configDir)
	t.Setenv("PLS_LOG_FILE", filepath.Join(root, "pls.log"))
	t.Setenv("PLS_LOG_LEVEL", "error")
	return configDir, showDir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNext(t *testing.T) {
	_, showDir := setupConfig(t)

	out, err := execute(t, "next", "frasier")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(showDir, "ep2.mkv")+"\n", out)
}

func TestLast(t *testing.T) {
	_, showDir := setupConfig(t)

	out, err := execute(t, "last")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(showDir, "ep1.mkv")+"\n", out)
}

func TestList(t *testing.T) {
	setupConfig(t)

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "frasier")
	assert.Contains(t, out, "Frasier")
	assert.Contains(t, out, "ep2.mkv")
}

func TestUnknownShow(t *testing.T) {
	setupConfig(t)

	_, err := execute(t, "next", "cheers")
	assert.ErrorContains(t, err, "unknown show")
}

func TestPlaylist(t *testing.T) {
	_, showDir := setupConfig(t)
	target := filepath.Join(t.TempDir(), "frasier.m3u")

	_, err := execute(t, "playlist", "frasier", "--format", "m3u", "--output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#PLAYLIST:Frasier")
	assert.Contains(t, string(data), filepath.Join(showDir, "ep2.mkv")+"\n")
	assert.Contains(t, string(data), filepath.Join(showDir, "ep10.mkv")+"\n")
	assert.NotContains(t, string(data), filepath.Join(showDir, "ep1.mkv")+"\n")
}

func TestInitAndWhere(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "fresh")
	t.Setenv("PLS_CONFIG_DIR", configDir)
	t.Setenv("PLS_LOG_FILE", filepath.Join(root, "pls.log"))

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	assert.FileExists(t, filepath.Join(configDir, "pls.toml"))

	out, err = execute(t, "where")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(configDir, "pls.toml"))
}
