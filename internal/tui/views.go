package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/lumina/internal/cli"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/period"
	"github.com/charmbracelet/lipgloss"
)

// compactWidth is the width below which the cards stack vertically.
const compactWidth = 72

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.theme.Muted.Render("Loading…")
	}

	s := cli.For(m.profile.Language)
	sections := []string{
		m.renderHeader(s),
		m.renderCards(s),
		m.renderSpending(s),
		m.renderRecent(s),
	}
	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render(cli.ErrorIcon+" "+m.lastError.Error()))
	}
	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(s cli.Strings) string {
	title := m.theme.Title.Render(cli.AppIcon + " lumina")
	name := m.theme.Subtitle.Render(m.profile.Name)

	month, all := m.theme.Tab, m.theme.Tab
	if m.period == period.AllTime {
		all = m.theme.ActiveTab
	} else {
		month = m.theme.ActiveTab
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, month.Render(s.Dashboard), " ", all.Render(s.History))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", name),
		tabs,
		"")
}

func (m Model) renderCards(s cli.Strings) string {
	symbol := m.profile.Currency
	st := m.view.Stats

	cards := []string{
		m.card(s.Balance, m.theme.Balance.Render(cli.FormatAmount(symbol, st.Balance))),
		m.card(s.Income, m.theme.Income.Render("+"+cli.FormatAmount(symbol, st.TotalIncome))),
		m.card(s.Expense, m.theme.Expense.Render("-"+cli.FormatAmount(symbol, st.TotalExpense))),
	}
	if m.width < compactWidth {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) card(label, value string) string {
	return m.theme.Card.Render(m.theme.Subtitle.Render(label) + "\n" + value)
}

func (m Model) renderSpending(s cli.Strings) string {
	breakdown := m.view.Stats.Breakdown()
	if len(breakdown) == 0 {
		return ""
	}

	nameWidth := 0
	for _, c := range breakdown {
		nameWidth = max(nameWidth, lipgloss.Width(c.Category))
	}

	lines := []string{"", m.theme.Bold.Render(s.Spending)}
	for i, c := range breakdown {
		bar := m.bar
		bar.FullColor = string(m.theme.ChartColor(i))
		name := c.Category + strings.Repeat(" ", nameWidth-lipgloss.Width(c.Category))
		lines = append(lines, fmt.Sprintf("%s %s %5.1f%%  %s",
			name,
			bar.ViewAs(c.Share),
			c.Share*100,
			cli.FormatAmount(m.profile.Currency, c.Amount)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRecent(s cli.Strings) string {
	lines := []string{"", m.theme.Bold.Render(s.Recent)}

	txns := m.view.Transactions
	if len(txns) == 0 {
		return strings.Join(append(lines, m.theme.Muted.Render(s.NoData)), "\n")
	}
	if len(txns) > m.config.Recent {
		txns = txns[:m.config.Recent]
	}

	for _, t := range txns {
		style := m.theme.Expense
		if t.Type == model.TypeIncome {
			style = m.theme.Income
		}
		label := t.Category
		if t.Description != "" {
			label += m.theme.Muted.Render(" · " + t.Description)
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			m.theme.Muted.Render(t.Date.String()),
			style.Render(cli.FormatSigned(m.profile.Currency, t.Type, t.Amount)),
			label))
	}
	return strings.Join(lines, "\n")
}
