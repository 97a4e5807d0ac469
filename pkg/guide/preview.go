package guide

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Preview renders a generated guide for the terminal. Width 0 falls back to
// 80 columns.
func Preview(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("guide: build preview renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("guide: render preview: %w", err)
	}
	return out, nil
}
