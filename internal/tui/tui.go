// Package tui provides a Bubble Tea terminal user interface for pls.
package tui

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/handiism/pls/internal/audio"
	ioutils "github.com/handiism/pls/internal/io"
	"github.com/handiism/pls/internal/library"
	"github.com/handiism/pls/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// detail is what the detail pane shows for the selected show. It is
// computed when the selection or the show changes, not on every frame.
type detail struct {
	key     string
	loaded  bool
	episode model.Episode
	missing bool // the next episode is not in the directory listing
	index   int  // 1-based position of the next episode
	total   int
	err     error
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state  *library.State
	titles *audio.TitleReader
	images *ioutils.ImageService
	logger *slog.Logger

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model
	filter   textinput.Model

	filtering bool
	detail    detail

	covers       map[string]string
	loadingCover string
	initCmd      tea.Cmd

	width  int
	height int
}

// NewModel creates a TUI model over state. fs is used to read episode tags
// and cover art.
func NewModel(state *library.State, fs afero.Fs, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.Default()
	}

	titles, err := audio.NewTitleReader(fs, audio.DefaultTitleCacheSize)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "show name"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 30

	m := Model{
		state:    state,
		titles:   titles,
		images:   ioutils.NewImageService(fs),
		logger:   logger,
		keys:     defaultKeys,
		help:     help.New(),
		spinner:  sp,
		progress: prog,
		filter:   ti,
		covers:   make(map[string]string),
	}
	m.refresh()
	m.initCmd = m.requestCover()
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width/3, 10), 40)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)

	case coverMsg:
		if msg.err != nil {
			m.logger.Debug("cover preview failed", "show", msg.key, "error", msg.err)
		}
		m.covers[msg.key] = msg.cover
		if m.loadingCover == msg.key {
			m.loadingCover = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.loadingCover == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Play):
		_ = m.state.AdvanceSelected()
		m.refresh()

	case key.Matches(msg, m.keys.Replay):
		_ = m.state.ReplayPreviousEpisode()

	case key.Matches(msg, m.keys.Reload):
		if err := m.state.Reload(); err != nil {
			m.logger.Error("reload failed", "error", err)
			m.state.Error = fmt.Sprintf("reload failed: %v", err)
		} else {
			clear(m.covers)
			m.titles.Purge()
		}
		m.refresh()

	case key.Matches(msg, m.keys.Edit):
		_ = m.state.OpenConfigFile()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue("")
		cmd := m.filter.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.About):
		m.state.ToggleAbout()

	case key.Matches(msg, m.keys.Clear):
		if m.state.AboutWindowIsOpen {
			m.state.ToggleAbout()
		} else {
			m.state.ClearError()
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	cmd := m.requestCover()
	return m, cmd
}

// updateFilter feeds keys to the search box and selects the first show
// matching its text.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		cmd := m.requestCover()
		return m, cmd
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if k, ok := m.findShow(m.filter.Value()); ok && k != m.state.SelectedKey {
		m.state.Select(k)
		m.refresh()
	}
	return m, cmd
}

func (m Model) findShow(query string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return "", false
	}
	for _, k := range m.state.OrderedKeys {
		if strings.Contains(strings.ToLower(m.displayName(k)), query) || strings.Contains(strings.ToLower(k), query) {
			return k, true
		}
	}
	return "", false
}

// move changes the selection by delta, stopping at either end.
func (m *Model) move(delta int) {
	keys := m.state.OrderedKeys
	if len(keys) == 0 {
		return
	}
	i := slices.Index(keys, m.state.SelectedKey)
	i = min(max(i+delta, 0), len(keys)-1)
	if keys[i] != m.state.SelectedKey {
		m.state.Select(keys[i])
		m.refresh()
	}
}

// refresh recomputes the detail pane for the selected show.
func (m *Model) refresh() {
	d := detail{key: m.state.SelectedKey}
	show, ok := m.state.SelectedShow()
	if !ok {
		m.detail = d
		return
	}
	d.loaded = true
	d.episode = m.titles.Describe(show.CurrentEpisode())

	episodes, err := show.Episodes()
	if err != nil {
		d.err = err
		m.detail = d
		return
	}
	d.total = len(episodes)
	d.index = slices.Index(episodes, show.CurrentEpisode()) + 1
	d.missing = d.index == 0
	m.detail = d
}

// requestCover starts loading the selected show's cover unless it is
// already known or loading.
func (m *Model) requestCover() tea.Cmd {
	k := m.state.SelectedKey
	if _, done := m.covers[k]; done || m.loadingCover == k {
		return nil
	}
	show, ok := m.state.SelectedShow()
	if !ok {
		return nil
	}
	m.loadingCover = k
	return tea.Batch(loadCover(m.images, k, show.Dir), m.spinner.Tick)
}

func (m Model) displayName(k string) string {
	if show, ok := m.state.Shows[k]; ok {
		return show.Name
	}
	return k
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("▶ pls"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.state.ConfigPath))
	b.WriteString("\n\n")

	if m.state.AboutWindowIsOpen {
		b.WriteString(m.viewAbout())
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewList(), "    ", m.viewDetail()))
	}
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.state.Error))
		b.WriteString(dimStyle.Render("  (x to dismiss)"))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder

	if m.filtering {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.state.OrderedKeys) == 0 {
		b.WriteString(dimStyle.Render("No shows yet."))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Add a .toml file per show to " + m.state.ConfigDir()))
		return b.String()
	}

	for _, k := range m.state.OrderedKeys {
		name := m.displayName(k)
		_, loaded := m.state.Shows[k]
		switch {
		case k == m.state.SelectedKey:
			b.WriteString(selectedStyle.Render("› " + name))
		case !loaded:
			b.WriteString(dimStyle.Render("  " + name))
		default:
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) viewDetail() string {
	d := m.detail
	if d.key == "" {
		return ""
	}

	var b strings.Builder
	if !d.loaded {
		b.WriteString(warningStyle.Render("! " + d.key))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No episode available. Check the log for why this show did not load."))
		return b.String()
	}

	show := m.state.Shows[d.key]
	b.WriteString(subtitleStyle.Render(show.Name))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(show.Dir))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Next: "))
	b.WriteString(d.episode.Label())
	b.WriteString("\n")

	switch {
	case d.err != nil:
		b.WriteString(errorStyle.Render(d.err.Error()))
	case d.missing:
		b.WriteString(warningStyle.Render("Not found in " + show.Dir))
	default:
		b.WriteString(m.progress.ViewAs(float64(d.index-1) / float64(d.total)))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d", d.index, d.total)))
	}
	b.WriteString("\n\n")

	switch cover, ok := m.covers[d.key]; {
	case m.loadingCover == d.key:
		b.WriteString(m.spinner.View())
		b.WriteString(dimStyle.Render(" cover"))
	case ok && cover != "":
		b.WriteString(cover)
	}

	return b.String()
}

func (m Model) viewAbout() string {
	lines := []string{
		titleStyle.Render("pls") + " keeps your place in every show.",
		"",
		fmt.Sprintf("Config:  %s", m.state.ConfigPath),
		fmt.Sprintf("Version: %s", m.state.ConfigVersion),
		fmt.Sprintf("Shows:   %d loaded, %d listed", len(m.state.Shows), len(m.state.OrderedKeys)),
	}
	if n := len(m.state.Warnings); n > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("%d warning(s) while loading:", n)))
		for _, w := range m.state.Warnings {
			lines = append(lines, warningStyle.Render("! "+w))
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// Run starts the TUI application.
func Run(state *library.State, fs afero.Fs, logger *slog.Logger) error {
	m, err := NewModel(state, fs, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
