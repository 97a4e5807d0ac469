package style

import (
	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
)

// Default color palette.
var (
	AccentColor  = lipgloss.Color("#7D56F4")
	TextColor    = lipgloss.Color("#FFFFFF")
	MutedColor   = lipgloss.Color("#626262")
	ErrorColor   = lipgloss.Color("#FF5555")
	SuccessColor = lipgloss.Color("#43BF6D")
)

// Styles is the lipgloss set shared by every widget.
type Styles struct {
	Title    lipgloss.Style
	Focused  lipgloss.Style
	Blurred  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Help     lipgloss.Style
}

// Default returns the built-in style set.
func Default() Styles {
	return fromPalette(AccentColor, TextColor, MutedColor, ErrorColor, SuccessColor)
}

// FromSelection derives a style set from a theme selection. The token names
// brand, text, muted, error and success override the default palette;
// variant tokens override manifest tokens. A nil selection yields Default.
func FromSelection(sel *theme.Selection) Styles {
	if sel == nil || sel.Manifest == nil {
		return Default()
	}

	tokens := make(map[string]string, len(sel.Manifest.Tokens))
	for name, value := range sel.Manifest.Tokens {
		tokens[name] = value
	}
	if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
		for name, value := range variant.Tokens {
			tokens[name] = value
		}
	}

	pick := func(name string, fallback lipgloss.Color) lipgloss.Color {
		if value, ok := tokens[name]; ok && value != "" {
			return lipgloss.Color(value)
		}
		return fallback
	}

	return fromPalette(
		pick("brand", AccentColor),
		pick("text", TextColor),
		pick("muted", MutedColor),
		pick("error", ErrorColor),
		pick("success", SuccessColor),
	)
}

func fromPalette(accent, text, muted, errc, success lipgloss.Color) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(text).Bold(true),
		Focused:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Blurred:  lipgloss.NewStyle().Foreground(muted),
		Text:     lipgloss.NewStyle().Foreground(text),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Error:    lipgloss.NewStyle().Foreground(errc),
		Success:  lipgloss.NewStyle().Foreground(success),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Disabled: lipgloss.NewStyle().Foreground(muted).Faint(true),
		Help:     lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
