// Package cli renders lumina output for the terminal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (sky blue).
	PrimaryColor = lipgloss.Color("#38BDF8")
	// IncomeColor marks money coming in.
	IncomeColor = lipgloss.Color("#34D399")
	// ExpenseColor marks money going out.
	ExpenseColor = lipgloss.Color("#F87171")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#34D399")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FBBF24")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#F87171")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#A78BFA")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// ChartColors cycle through the categories of the spending breakdown.
	ChartColors = []lipgloss.Color{
		"#38BDF8", "#34D399", "#FBBF24", "#F87171",
		"#A78BFA", "#F472B6", "#22D3EE", "#2DD4BF",
	}

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	IncomeStyle  = lipgloss.NewStyle().Foreground(IncomeColor)
	ExpenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// BalanceStyle highlights the headline balance.
	BalanceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// TokenStyle sets a sync token apart from surrounding text.
	TokenStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	AppIcon     = "✦"
	ChartIcon   = "📊"
	SyncIcon    = "⇄"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the app icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(AppIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	))
}
