// Package themes holds the visual styles of the dashboard.
package themes

import (
	"github.com/Veraticus/lumina/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Muted       lipgloss.Style
	Card        lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	Balance     lipgloss.Style
	StatusError lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	ChartColors []lipgloss.Color
	Primary     lipgloss.Color
	Border      lipgloss.Color
	EmptyBar    lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary:     cli.PrimaryColor,
	Border:      lipgloss.Color("#404040"),
	EmptyBar:    lipgloss.Color("#333333"),
	ChartColors: cli.ChartColors,

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Muted: lipgloss.NewStyle().
		Foreground(cli.SubtleColor),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 2),
	Income: lipgloss.NewStyle().
		Foreground(cli.IncomeColor),
	Expense: lipgloss.NewStyle().
		Foreground(cli.ExpenseColor),
	Balance: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	StatusError: lipgloss.NewStyle().
		Foreground(cli.ErrorColor).
		Bold(true),
	Tab: lipgloss.NewStyle().
		Foreground(cli.SubtleColor).
		Padding(0, 1),
	ActiveTab: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#0f172a")).
		Background(cli.PrimaryColor).
		Padding(0, 1),
}

// ChartColor returns the color of the i-th category in a breakdown.
func (t Theme) ChartColor(i int) lipgloss.Color {
	if len(t.ChartColors) == 0 {
		return t.Primary
	}
	return t.ChartColors[i%len(t.ChartColors)]
}
