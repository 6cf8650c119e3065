package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/service"
	"github.com/Veraticus/lumina/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

// RenderSummary renders the balance, income, expense and spending breakdown.
func RenderSummary(s Strings, symbol, title string, st stats.FinancialStats) string {
	lines := []string{
		SubtitleStyle.Render(s.Balance),
		BalanceStyle.Render(FormatAmount(symbol, st.Balance)),
		"",
		IncomeStyle.Render(fmt.Sprintf("▲ %s  +%s", s.Income, FormatAmount(symbol, st.TotalIncome))),
		ExpenseStyle.Render(fmt.Sprintf("▼ %s  -%s", s.Expense, FormatAmount(symbol, st.TotalExpense))),
	}

	breakdown := st.Breakdown()
	if len(breakdown) > 0 {
		lines = append(lines, "", BoldStyle.Render(s.Spending))
		lines = append(lines, renderBreakdown(symbol, breakdown)...)
	}

	return RenderBox(title, strings.Join(lines, "\n"))
}

func renderBreakdown(symbol string, breakdown []stats.CategoryAmount) []string {
	nameWidth := 0
	for _, c := range breakdown {
		nameWidth = max(nameWidth, lipgloss.Width(c.Category))
	}

	lines := make([]string, 0, len(breakdown))
	for i, c := range breakdown {
		filled := int(c.Share*barWidth + 0.5)
		if filled == 0 && c.Share > 0 {
			filled = 1
		}
		bar := lipgloss.NewStyle().
			Foreground(ChartColors[i%len(ChartColors)]).
			Render(strings.Repeat("█", filled)) +
			SubtleStyle.Render(strings.Repeat("░", barWidth-filled))

		lines = append(lines, fmt.Sprintf("%s %s %5.1f%%  %s",
			padRight(c.Category, nameWidth),
			bar,
			c.Share*100,
			FormatAmount(symbol, c.Amount)))
	}
	return lines
}

// RenderTransactions renders transactions as a table, newest first.
func RenderTransactions(s Strings, symbol string, txns []model.Transaction) string {
	if len(txns) == 0 {
		return SubtleStyle.Render(s.NoData)
	}

	headers := []string{s.Date, s.Category, s.Description, s.Amount, s.ID}
	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, []string{
			txn.Date.String(),
			txn.Category,
			truncate(txn.Description, 32),
			FormatSigned(symbol, txn.Type, txn.Amount),
			shortID(txn.ID),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = TableCellStyle.Render(padRight(h, widths[i]))
	}
	b.WriteString(TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)))
	b.WriteString("\n")

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			text := padRight(cell, widths[i])
			if i == 3 {
				text = amountStyle(txns[r].Type).Render(text)
			}
			cells[i] = TableCellStyle.Render(text)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderProfile renders the profile settings.
func RenderProfile(s Strings, p model.UserProfile) string {
	currency := p.Currency
	if c, ok := model.CurrencyBySymbol(p.Currency); ok {
		currency = fmt.Sprintf("%s (%s)", c.Symbol, c.Code)
	}
	rows := [][2]string{
		{s.Name, p.Name},
		{s.Currency, currency},
		{s.Language, string(p.Language)},
		{s.SyncID, p.SyncID},
		{s.LastSync, FormatLastSync(s, p.LastSync)},
	}

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = SubtitleStyle.Render(padRight(r[0], width)) + "  " + r[1]
	}
	return RenderBox(p.Name, strings.Join(lines, "\n"))
}

// RenderHistory renders the local sync history.
func RenderHistory(s Strings, events []service.SyncEvent) string {
	if len(events) == 0 {
		return SubtleStyle.Render(s.Never)
	}
	lines := make([]string, len(events))
	for i, e := range events {
		arrow := "↑"
		if e.Direction == service.SyncPull {
			arrow = "↓"
		}
		lines[i] = fmt.Sprintf("%s %-4s  %s  %s  %d",
			arrow,
			e.Direction,
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.SyncID,
			e.TransactionCount)
	}
	return strings.Join(lines, "\n")
}

// FormatLastSync renders a last sync time, or "never".
func FormatLastSync(s Strings, t *time.Time) string {
	if t == nil {
		return s.Never
	}
	return t.Local().Format("2006-01-02 15:04")
}

func amountStyle(t model.TransactionType) lipgloss.Style {
	if t == model.TypeIncome {
		return IncomeStyle
	}
	return ExpenseStyle
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
