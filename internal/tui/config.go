package tui

import (
	"github.com/Veraticus/lumina/internal/period"
	"github.com/Veraticus/lumina/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Width    int
	Height   int
	Period   period.Period
	Recent   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Width:    80,
		Height:   24,
		Period:   period.CurrentMonth,
		Recent:   5,
		ShowHelp: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithPeriod sets the period shown first.
func WithPeriod(p period.Period) Option {
	return func(c *Config) {
		c.Period = p
	}
}

// WithRecent sets how many recent transactions are listed.
func WithRecent(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Recent = n
		}
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
