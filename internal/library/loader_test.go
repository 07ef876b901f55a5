package library

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/pls/internal/config"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLoader_LoadShow(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/bleach/ep1.mkv", "")
	writeFile(t, fs, "/tv/bleach/ep2.mkv", "")
	writeFile(t, fs, "/cfg/bleach.toml", "name = \"Bleach\"\ndirectory = \"/tv/bleach\"\nnext = \"ep2.mkv\"\n")

	show, warnings, err := NewLoader(fs, "", nil).LoadShow("/cfg/bleach.toml", "bleach")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Bleach", show.Name)
	assert.Equal(t, "/tv/bleach", show.Dir)
	assert.Equal(t, "/tv/bleach/ep2.mkv", show.CurrentEpisode())
}

func TestLoader_NextNotChecked(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/a/ep1.mkv", "")
	writeFile(t, fs, "/cfg/a.toml", "name = \"A\"\ndirectory = \"/tv/a\"\nnext = \"Season 9/gone.mkv\"\n")

	show, _, err := NewLoader(fs, "", nil).LoadShow("/cfg/a.toml", "a")
	require.NoError(t, err)
	assert.Equal(t, "/tv/a/Season 9/gone.mkv", show.CurrentEpisode())
}

func TestLoader_DefaultsToFirstEpisode(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/a/s1/ep10.mkv", "")
	writeFile(t, fs, "/tv/a/s1/ep2.mkv", "")
	writeFile(t, fs, "/cfg/a.toml", "name = \"A\"\ndirectory = \"/tv/a\"\n")

	show, _, err := NewLoader(fs, "", nil).LoadShow("/cfg/a.toml", "a")
	require.NoError(t, err)
	assert.Equal(t, "s1/ep2.mkv", show.Next)
}

func TestLoader_EmptyNextStartsFromFirstEpisode(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/a/ep2.mkv", "")
	writeFile(t, fs, "/tv/a/ep1.mkv", "")
	writeFile(t, fs, "/cfg/a.toml", "name = \"A\"\ndirectory = \"/tv/a\"\nnext = \"  \"\n")

	show, warnings, err := NewLoader(fs, "", nil).LoadShow("/cfg/a.toml", "a")
	require.NoError(t, err)
	assert.Equal(t, "ep1.mkv", show.Next)
	assert.Equal(t, "/tv/a/ep1.mkv", show.CurrentEpisode())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "empty next")
}

func TestLoader_NameFallsBackToKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/a/ep1.mkv", "")
	writeFile(t, fs, "/cfg/a.toml", "directory = \"/tv/a\"\n")

	show, warnings, err := NewLoader(fs, "", nil).LoadShow("/cfg/a.toml", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", show.Name)
	assert.Len(t, warnings, 1)
}

func TestLoader_HostOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/generic/ep1.mkv", "")
	writeFile(t, fs, "/tv/host/ep1.mkv", "")
	writeFile(t, fs, "/tv/lower/ep1.mkv", "")

	tests := []struct {
		name     string
		fragment string
		hostname string
		want     string
	}{
		{
			name:     "exact host wins",
			fragment: "directory = \"/tv/generic\"\ndirectory_HTPC = \"/tv/host\"\ndirectory_htpc = \"/tv/lower\"\n",
			hostname: "HTPC",
			want:     "/tv/host",
		},
		{
			name:     "lowercase host",
			fragment: "directory = \"/tv/generic\"\ndirectory_htpc = \"/tv/lower\"\n",
			hostname: "HTPC",
			want:     "/tv/lower",
		},
		{
			name:     "other host ignored",
			fragment: "directory = \"/tv/generic\"\ndirectory_laptop = \"/tv/host\"\n",
			hostname: "htpc",
			want:     "/tv/generic",
		},
		{
			name:     "missing override directory falls back",
			fragment: "directory = \"/tv/generic\"\ndirectory_htpc = \"/tv/absent\"\n",
			hostname: "htpc",
			want:     "/tv/generic",
		},
		{
			name:     "relative to config directory",
			fragment: "directory = \"../tv/generic\"\n",
			want:     "/tv/generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFile(t, fs, "/cfg/show.toml", "name = \"Show\"\n"+tt.fragment)

			show, _, err := NewLoader(fs, tt.hostname, nil).LoadShow("/cfg/show.toml", "show")
			require.NoError(t, err)
			assert.Equal(t, tt.want, show.Dir)
		})
	}
}

func TestLoader_MissingDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/cfg/a.toml", "name = \"A\"\ndirectory = \"/nowhere\"\n")

	_, _, err := NewLoader(fs, "box", nil).LoadShow("/cfg/a.toml", "a")
	var mderr *MissingDirectoryError
	require.True(t, errors.As(err, &mderr))
	assert.Equal(t, "a", mderr.Key)
	assert.Equal(t, []string{"directory_box", "directory"}, mderr.Checked)
}

func TestLoader_NoEpisodes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tv/empty", 0o755))
	writeFile(t, fs, "/cfg/a.toml", "name = \"A\"\ndirectory = \"/tv/empty\"\n")

	_, _, err := NewLoader(fs, "", nil).LoadShow("/cfg/a.toml", "a")
	var neerr *NoEpisodesError
	require.True(t, errors.As(err, &neerr))
	assert.Equal(t, "/tv/empty", neerr.Dir)
}

func TestLoader_MalformedFragment(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/cfg/a.toml", "name = \n")

	_, _, err := NewLoader(fs, "", nil).LoadShow("/cfg/a.toml", "a")
	var perr *config.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/cfg/a.toml", perr.Path)
}

func TestLoader_LoadShowsIsolatesFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/a/ep1.mkv", "")
	writeFile(t, fs, "/tv/b/ep1.mkv", "")
	writeFile(t, fs, "/cfg/pls.toml", "version = \"1.0.0\"\n")
	writeFile(t, fs, "/cfg/a.toml", "name = \"A\"\ndirectory = \"/tv/a\"\n")
	writeFile(t, fs, "/cfg/b.toml", "name = \"B\"\ndirectory = \"/tv/b\"\n")
	writeFile(t, fs, "/cfg/broken.toml", "name = = \"x\"\n")
	writeFile(t, fs, "/cfg/lost.toml", "name = \"Lost\"\ndirectory = \"/tv/lost\"\n")
	writeFile(t, fs, "/cfg/notes.txt", "not a fragment")
	writeFile(t, fs, "/cfg/.hidden.toml", "name = \"Hidden\"\n")

	result, err := NewLoader(fs, "", nil).LoadShows("/cfg", config.MainFileName)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "broken", "lost"}, result.Keys)
	assert.Len(t, result.Shows, 2)
	assert.Contains(t, result.Shows, "a")
	assert.Contains(t, result.Shows, "b")
	assert.Len(t, result.Warnings, 2)
}

func TestLoader_LoadShowsSkipsRenamedMainConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tv/a/ep1.mkv", "")
	writeFile(t, fs, "/cfg/main.toml", "version = \"1.0.0\"\n")
	writeFile(t, fs, "/cfg/a.toml", "name = \"A\"\ndirectory = \"/tv/a\"\n")

	result, err := NewLoader(fs, "", nil).LoadShows("/cfg", "main.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Keys)
	assert.Empty(t, result.Warnings)
}

func TestLoader_LoadShowsMissingRoot(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs(), "", nil).LoadShows("/nope", config.MainFileName)
	assert.Error(t, err)
}

func TestFragmentKey(t *testing.T) {
	tests := []struct {
		file string
		key  string
		ok   bool
	}{
		{"bleach.toml", "bleach", true},
		{"my show.toml", "my show", true},
		{"pls.toml", "", false},
		{".bleach.toml", "", false},
		{"bleach.toml.tmp", "", false},
		{"bleach.txt", "", false},
		{".toml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			key, ok := FragmentKey(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}
