// Package tui implements the interactive dashboard using bubbletea.
package tui

import (
	"context"

	"github.com/Veraticus/lumina/internal/app"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/period"
	"github.com/Veraticus/lumina/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Source is what the dashboard reads from.
type Source interface {
	Hydrate(ctx context.Context) error
	View(p period.Period) app.View
	Profile() model.UserProfile
}

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	source    Source
	lastError error
	profile   model.UserProfile
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	bar       progress.Model
	view      app.View
	config    Config
	period    period.Period
	width     int
	height    int
	ready     bool
	quitting  bool
}

func newModel(ctx context.Context, src Source, cfg Config) Model {
	bar := progress.New(
		progress.WithSolidFill(string(cfg.Theme.Primary)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth(cfg.Width)),
	)
	bar.EmptyColor = string(cfg.Theme.EmptyBar)

	h := help.New()
	h.Width = cfg.Width

	return Model{
		ctx:    ctx,
		source: src,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		bar:    bar,
		period: cfg.Period,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Init loads the first view.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = barWidth(msg.Width)

	case viewLoadedMsg:
		m.lastError = msg.err
		if msg.err == nil {
			m.view = msg.view
			m.profile = msg.profile
			m.period = msg.view.Period
		}
		m.ready = true
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.TogglePeriod):
		if m.period == period.CurrentMonth {
			m.period = period.AllTime
		} else {
			m.period = period.CurrentMonth
		}
		return m, m.load()

	case key.Matches(msg, m.keymap.Month):
		m.period = period.CurrentMonth
		return m, m.load()

	case key.Matches(msg, m.keymap.AllTime):
		m.period = period.AllTime
		return m, m.load()

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.reload()

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// load recomputes the view of the current period from memory.
func (m Model) load() tea.Cmd {
	src, p := m.source, m.period
	return func() tea.Msg {
		return viewLoadedMsg{view: src.View(p), profile: src.Profile()}
	}
}

// reload re-reads the saved state before recomputing the view, picking up
// writes made by other lumina commands.
func (m Model) reload() tea.Cmd {
	ctx, src, p := m.ctx, m.source, m.period
	return func() tea.Msg {
		if err := src.Hydrate(ctx); err != nil {
			return viewLoadedMsg{err: err}
		}
		return viewLoadedMsg{view: src.View(p), profile: src.Profile()}
	}
}

func barWidth(width int) int {
	return max(10, min(width/3, 32))
}
