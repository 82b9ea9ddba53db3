package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	widgetservice "github.com/acadassist/widget/internal/service/widget"
)

// Run shows the terminal widget until the user quits or ctx ends.
func Run(ctx context.Context, w *widgetservice.Widget) error {
	program := tea.NewProgram(NewModel(ctx, w), tea.WithAltScreen(), tea.WithContext(ctx))

	detach := Attach(w, program.Send)
	defer detach()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
