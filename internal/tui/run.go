package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"todoapp/internal/protocol"
)

// Subscriber streams task events until ctx ends.
type Subscriber func(ctx context.Context, fn func(protocol.Message)) error

// Run starts the program and blocks until the user quits or ctx ends. When
// events is set, every task event triggers a reload.
func Run(ctx context.Context, m Model, events Subscriber) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if events != nil {
		go func() {
			_ = events(ctx, func(protocol.Message) { p.Send(refreshMsg{}) })
		}()
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
