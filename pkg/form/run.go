package form

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives the form in its own terminal program until the user quits or
// the context is canceled, then returns the collected values. The form stays
// open for inspection; callers own Close.
func Run(ctx context.Context, f *Form) (map[string]any, error) {
	program := tea.NewProgram(f, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return nil, err
	}
	return f.Collect(), nil
}
