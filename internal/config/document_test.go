package config

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFragment = `# Bleach, watched on the couch
name = "Bleach"   # display name

directory = '/media/anime/Bleach'
directory_htpc = "/mnt/tv/Bleach"
next = 'Season 1/ep 02.mkv' # keep me

tags = [
  "anime", # long running
  "subbed",
]

[ui]
colour = "orange"
`

func TestParseDocument_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"fragment", sampleFragment},
		{"empty", ""},
		{"no trailing newline", "name = \"x\""},
		{"crlf", "name = \"x\"\r\nnext = 'y'\r\n"},
		{"multiline string", "notes = \"\"\"\nline # not a comment\n[not a header]\n\"\"\"\nnext = 'a'\n"},
		{"dotted and quoted keys", "a.b = 1\n\"odd key\" = 2\n'lit' = 3\n"},
		{"array of tables", "[[seen]]\nep = 1\n[[seen]]\nep = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument(tt.text)
			require.NoError(t, err)
			once := doc.String()
			assert.Equal(t, tt.text, once)

			again, err := ParseDocument(once)
			require.NoError(t, err)
			assert.Equal(t, once, again.String())
		})
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	_, err := ParseDocument("name = \"unterminated\nnext = 1\n")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Greater(t, perr.Line, 0)
}

func TestDocument_Get(t *testing.T) {
	doc, err := ParseDocument(sampleFragment)
	require.NoError(t, err)

	name, ok := doc.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "Bleach", name)

	next, ok := doc.GetString("next")
	require.True(t, ok)
	assert.Equal(t, "Season 1/ep 02.mkv", next)

	tags, skipped, ok := doc.GetStringSlice("tags")
	require.True(t, ok)
	assert.Zero(t, skipped)
	assert.Equal(t, []string{"anime", "subbed"}, tags)

	_, ok = doc.GetString("missing")
	assert.False(t, ok)

	ui, ok := doc.GetTable("ui")
	require.True(t, ok)
	colour, ok := ui.GetString("colour")
	require.True(t, ok)
	assert.Equal(t, "orange", colour)
	assert.Equal(t, []string{"colour"}, ui.Keys())

	assert.Equal(t, []string{"name", "directory", "directory_htpc", "next", "tags", "ui"}, doc.Keys())
}

func TestDocument_SetExistingKeepsFormatting(t *testing.T) {
	doc, err := ParseDocument(sampleFragment)
	require.NoError(t, err)

	require.NoError(t, doc.Set("next", "Season 1/ep 03.mkv"))

	want := `# Bleach, watched on the couch
name = "Bleach"   # display name

directory = '/media/anime/Bleach'
directory_htpc = "/mnt/tv/Bleach"
next = 'Season 1/ep 03.mkv' # keep me

tags = [
  "anime", # long running
  "subbed",
]

[ui]
colour = "orange"
`
	assert.Equal(t, want, doc.String())

	next, _ := doc.GetString("next")
	assert.Equal(t, "Season 1/ep 03.mkv", next)
}

func TestDocument_SetSameValueIsNoop(t *testing.T) {
	text := "next = \"ep1.mkv\"\n"
	doc, err := ParseDocument(text)
	require.NoError(t, err)

	require.NoError(t, doc.Set("next", "ep1.mkv"))
	assert.Equal(t, text, doc.String())
}

func TestDocument_SetInsertsMissingKey(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "after last root entry",
			text: "name = \"x\"\n\n[ui]\na = 1\n",
			want: "name = \"x\"\nnext = 'ep1.mkv'\n\n[ui]\na = 1\n",
		},
		{
			name: "before header comment",
			text: "# settings\n\n# ui block\n[ui]\na = 1\n",
			want: "# settings\n\nnext = 'ep1.mkv'\n# ui block\n[ui]\na = 1\n",
		},
		{
			name: "missing trailing newline",
			text: "name = \"x\"",
			want: "name = \"x\"\nnext = 'ep1.mkv'\n",
		},
		{
			name: "empty document",
			text: "",
			want: "next = 'ep1.mkv'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument(tt.text)
			require.NoError(t, err)
			require.NoError(t, doc.Set("next", "ep1.mkv"))
			assert.Equal(t, tt.want, doc.String())

			reparsed, err := ParseDocument(doc.String())
			require.NoError(t, err)
			next, ok := reparsed.GetString("next")
			require.True(t, ok)
			assert.Equal(t, "ep1.mkv", next)
		})
	}
}

func TestDocument_SetRejectsTables(t *testing.T) {
	doc, err := ParseDocument("a.b = 1\n[ui]\nc = 2\n")
	require.NoError(t, err)

	assert.ErrorIs(t, doc.Set("a", "x"), ErrNotScalar)
	assert.ErrorIs(t, doc.Set("ui", "x"), ErrNotScalar)
	assert.ErrorIs(t, doc.Set("new", map[string]any{"k": 1}), ErrNotScalar)
}

func TestDocument_SetArray(t *testing.T) {
	doc, err := ParseDocument("version = \"1.0.0\"\n")
	require.NoError(t, err)

	require.NoError(t, doc.Set("ordering", []string{"b", "a"}))
	ordering, _, ok := doc.GetStringSlice("ordering")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, ordering)

	reparsed, err := ParseDocument(doc.String())
	require.NoError(t, err)
	ordering, _, _ = reparsed.GetStringSlice("ordering")
	assert.Equal(t, []string{"b", "a"}, ordering)
}

func TestDocument_SetValueWithHash(t *testing.T) {
	doc, err := ParseDocument("next = \"ep#1.mkv\" # c\n")
	require.NoError(t, err)

	require.NoError(t, doc.Set("next", "ep#2.mkv"))
	assert.Equal(t, "next = 'ep#2.mkv' # c\n", doc.String())
}

func TestLoadAndSaveDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/bleach.toml", []byte(sampleFragment), 0o644))

	doc, err := LoadDocument(fs, "/cfg/bleach.toml")
	require.NoError(t, err)
	require.NoError(t, doc.Save(fs, "/cfg/bleach.toml"))

	data, err := afero.ReadFile(fs, "/cfg/bleach.toml")
	require.NoError(t, err)
	assert.Equal(t, sampleFragment, string(data))

	require.NoError(t, afero.WriteFile(fs, "/cfg/broken.toml", []byte("= nope"), 0o644))
	_, err = LoadDocument(fs, "/cfg/broken.toml")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/cfg/broken.toml", perr.Path)
}
