package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, src Source, opts ...Option) error {
	if src == nil {
		return fmt.Errorf("dashboard source is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := tea.NewProgram(newModel(ctx, src, cfg), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
