package tui

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ioutils "github.com/handiism/pls/internal/io"
)

// Cover preview size in terminal cells. Each cell shows two pixels.
const (
	coverColumns = 24
	coverRows    = 12
)

// coverMsg carries the rendered cover of a show. cover is empty when the
// show has none.
type coverMsg struct {
	key   string
	cover string
	err   error
}

// loadCover finds and renders the cover image in dir off the update loop.
func loadCover(images *ioutils.ImageService, key, dir string) tea.Cmd {
	return func() tea.Msg {
		path, ok := images.FindCover(dir)
		if !ok {
			return coverMsg{key: key}
		}
		img, err := images.Thumbnail(path, coverColumns, coverRows*2)
		if err != nil {
			return coverMsg{key: key, err: err}
		}
		return coverMsg{key: key, cover: renderCover(img)}
	}
}

// renderCover draws img with upper half blocks: the foreground colour is
// the upper pixel and the background colour the lower one.
func renderCover(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img, x, y))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(img, x, y+1))
			}
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
