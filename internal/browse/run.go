package browse

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run запускает TUI и блокируется до выхода пользователя или отмены ctx.
func Run(ctx context.Context, loader *Loader, store *FavoritesStore) error {
	model := NewModel(ctx, loader, store)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
