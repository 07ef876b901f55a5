package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/pls/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp and VLC
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files.
	FormatPLS

	// FormatWPL creates .wpl files.
	FormatWPL

	// FormatZPL creates .zpl files.
	FormatZPL
)

// ParsePlaylistFormat maps a format name ("m3u", "pls", "wpl", "zpl") to a
// PlaylistFormat.
func ParsePlaylistFormat(name string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "m3u", "m3u8":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	case "wpl":
		return FormatWPL, nil
	case "zpl":
		return FormatZPL, nil
	}
	return FormatM3U, fmt.Errorf("unknown playlist format %q", name)
}

// Extension returns the file extension for the format, including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// Playlist is an ordered queue of episodes under a title.
type Playlist struct {
	Title    string
	Episodes []model.Episode
}

// PlaylistCreator generates playlist files in various formats.
//
// A show's remaining episodes, from the next one to the last, are exported
// so that an external player can work through them in order. Entries use
// absolute paths, so the playlist can be saved anywhere.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(&Playlist{Title: "Bleach", Episodes: eps})
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,S01E02 · Bleach
//	// /media/Bleach/Bleach.S01E02.mkv
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with titles
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects M3U output, where it adds #EXTINF lines.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the format the creator writes.
func (p *PlaylistCreator) Format() PlaylistFormat {
	return p.format
}

// CreatePlaylist renders the playlist in the creator's format.
func (p *PlaylistCreator) CreatePlaylist(pl *Playlist) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(pl)
	case FormatWPL:
		return p.createSMIL(pl, "<?wpl version=\"1.0\"?>", false)
	case FormatZPL:
		return p.createSMIL(pl, "<?zpl version=\"2.0\"?>", true)
	default:
		return p.createM3U(pl)
	}
}

// createM3U generates an M3U playlist. Durations are unknown, so extended
// entries use -1 as the M3U convention allows.
func (p *PlaylistCreator) createM3U(pl *Playlist) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
		if pl.Title != "" {
			fmt.Fprintf(&sb, "#PLAYLIST:%s\n", pl.Title)
		}
	}

	for _, ep := range pl.Episodes {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", ep.Label())
		}
		sb.WriteString(ep.Path + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist:
//
//	[playlist]
//	File1=/media/Bleach/ep01.mkv
//	Title1=ep01.mkv
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(pl *Playlist) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, ep := range pl.Episodes {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, ep.Path)
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, ep.Label())
		fmt.Fprintf(&sb, "Length%d=-1\n", idx)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(pl.Episodes))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createSMIL generates the SMIL body shared by WPL and ZPL playlists.
func (p *PlaylistCreator) createSMIL(pl *Playlist, declaration string, extendedMeta bool) string {
	var sb strings.Builder

	sb.WriteString(declaration + "\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(pl.Title))
	if extendedMeta {
		sb.WriteString("    <meta name=\"Generator\" content=\"pls\"/>\n")
		fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(pl.Episodes))
	}
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, ep := range pl.Episodes {
		if extendedMeta {
			fmt.Fprintf(&sb, "      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\"/>\n",
				escapeXML(ep.Path), escapeXML(pl.Title), escapeXML(ep.Label()))
			continue
		}
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(ep.Path))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
