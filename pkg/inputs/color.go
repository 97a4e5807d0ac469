package inputs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func colorDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("default", openapi3.NewStringSchema().WithPattern(hexColorPattern)).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeColor,
		Props:  schema.New(props),
		Output: hexColorOutput(),
		New:    newColor,
	}
}

// colorInput edits a hex color by hand. Enter validates and commits the
// canonical lowercase form; invalid text shows an error and keeps the last
// good value.
type colorInput struct {
	base
	model   textinput.Model
	value   string
	invalid string
}

func newColor(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	model := textinput.New()
	model.Placeholder = "#rrggbb"
	model.Prompt = "> "
	model.PromptStyle = ctx.Styles.Accent
	model.CharLimit = 7

	in := &colorInput{base: newBase(ctx, d), model: model}
	if def := d.String("default", ""); def != "" {
		if hex, err := canonicalHex(def); err == nil {
			in.value = hex
			in.model.SetValue(hex)
		}
	}
	return in, nil
}

func (in *colorInput) Value() any { return in.value }

func (in *colorInput) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeColor, v)
	}
	hex, err := canonicalHex(s)
	if err != nil {
		return err
	}
	in.value = hex
	in.model.SetValue(hex)
	in.invalid = ""
	return nil
}

func (in *colorInput) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		in.tryCommit()
		return nil
	}

	var cmd tea.Cmd
	in.model, cmd = in.model.Update(msg)
	return cmd
}

func (in *colorInput) View() string {
	line := in.model.View()
	if in.value != "" {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(in.value)).Render("  ")
		line = line + " " + swatch
	}
	lines := []string{in.header(), line}
	if in.invalid != "" {
		lines = append(lines, in.ctx.Styles.Error.Render(in.invalid))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (in *colorInput) Focus() tea.Cmd {
	in.focused = true
	return in.model.Focus()
}

func (in *colorInput) Blur() {
	in.focused = false
	in.model.Blur()
}

func (in *colorInput) tryCommit() {
	hex, err := canonicalHex(in.model.Value())
	if err != nil {
		in.invalid = err.Error()
		return
	}
	in.invalid = ""
	in.model.SetValue(hex)
	if hex == in.value {
		return
	}
	in.value = hex
	in.commit(hex)
}

// canonicalHex parses a color and returns the lowercase #rrggbb form.
func canonicalHex(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("inputs: %q is not a hex color", raw)
	}
	return c.Hex(), nil
}
