package model

import (
	"fmt"
	"path/filepath"
	"strings"

	ptn "github.com/middelink/go-parse-torrent-name"
)

// Episode describes an episode file for display.
//
// Season and Number are parsed from scene-style file names such as
// "Bleach.S01E02.720p.mkv"; both are zero when the name carries no such
// marker. Title comes from the same parse, or from embedded tags when a
// caller fills it in (see audio.TitleReader).
type Episode struct {
	// Path is the absolute path of the episode file.
	Path string

	// FileName is the base name of Path.
	FileName string

	// Title is a human readable title, empty if none could be derived.
	Title string

	Season int
	Number int
}

// DescribeEpisode derives display information from an episode path.
func DescribeEpisode(path string) Episode {
	ep := Episode{
		Path:     path,
		FileName: filepath.Base(path),
	}

	info, err := ptn.Parse(ep.FileName)
	if err != nil || info == nil {
		return ep
	}
	ep.Season = info.Season
	ep.Number = info.Episode
	if info.Episode > 0 {
		ep.Title = strings.TrimSpace(info.Title)
	}
	return ep
}

// Code returns an "S01E02" style marker, or "" when the number is unknown.
func (e Episode) Code() string {
	switch {
	case e.Number <= 0:
		return ""
	case e.Season <= 0:
		return fmt.Sprintf("E%02d", e.Number)
	}
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}

// Label returns the text a renderer shows for the episode.
//
// Example:
//
//	DescribeEpisode("/tv/Bleach.S01E02.720p.mkv").Label() // "S01E02 · Bleach"
//	DescribeEpisode("/tv/ep 2.mkv").Label()               // "ep 2.mkv"
func (e Episode) Label() string {
	code := e.Code()
	switch {
	case code != "" && e.Title != "":
		return code + " · " + e.Title
	case e.Title != "":
		return e.Title
	case code != "":
		return code + " · " + e.FileName
	}
	return e.FileName
}
