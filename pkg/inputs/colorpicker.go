package inputs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

const pickerColumns = 6

func colorPickerDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("palette", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema().WithPattern(hexColorPattern))).
		WithProperty("default", openapi3.NewStringSchema().WithPattern(hexColorPattern)).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeColorPicker,
		Props:  schema.New(props),
		Output: hexColorOutput(),
		New:    newColorPicker,
	}
}

// colorPicker chooses from a swatch grid. Arrow keys move, enter commits the
// swatch under the cursor as lowercase hex.
type colorPicker struct {
	base
	palette []string
	index   int
	value   string
}

func newColorPicker(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	palette, err := paletteFromProps(d)
	if err != nil {
		return nil, err
	}

	in := &colorPicker{base: newBase(ctx, d), palette: palette}
	if def := d.String("default", ""); def != "" {
		if hex, err := canonicalHex(def); err == nil {
			in.jumpTo(hex)
			in.value = hex
		}
	}
	return in, nil
}

func (in *colorPicker) Value() any { return in.value }

func (in *colorPicker) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeColorPicker, v)
	}
	hex, err := canonicalHex(s)
	if err != nil {
		return err
	}
	in.jumpTo(hex)
	in.value = hex
	return nil
}

func (in *colorPicker) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "left", "h":
		in.move(-1)
	case "right", "l":
		in.move(1)
	case "up", "k":
		in.move(-pickerColumns)
	case "down", "j":
		in.move(pickerColumns)
	case "enter", " ":
		in.choose()
	}
	return nil
}

func (in *colorPicker) View() string {
	var rows []string
	for start := 0; start < len(in.palette); start += pickerColumns {
		end := start + pickerColumns
		if end > len(in.palette) {
			end = len(in.palette)
		}
		var row strings.Builder
		for i := start; i < end; i++ {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(in.palette[i])).Render("  ")
			switch {
			case i == in.index && in.focused:
				row.WriteString(in.ctx.Styles.Selected.Render("[") + swatch + in.ctx.Styles.Selected.Render("]"))
			case in.palette[i] == in.value:
				row.WriteString(in.ctx.Styles.Accent.Render("<") + swatch + in.ctx.Styles.Accent.Render(">"))
			default:
				row.WriteString(" " + swatch + " ")
			}
		}
		rows = append(rows, row.String())
	}

	lines := append([]string{in.header()}, rows...)
	if in.value != "" {
		lines = append(lines, in.hint(in.value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (in *colorPicker) move(delta int) {
	next := in.index + delta
	if next < 0 || next >= len(in.palette) {
		return
	}
	in.index = next
}

func (in *colorPicker) choose() {
	if len(in.palette) == 0 {
		return
	}
	next := in.palette[in.index]
	if next == in.value {
		return
	}
	in.value = next
	in.commit(next)
}

func (in *colorPicker) jumpTo(hex string) {
	for i, c := range in.palette {
		if c == hex {
			in.index = i
			return
		}
	}
}

func paletteFromProps(d *widget.Descriptor) ([]string, error) {
	raw := d.Strings("palette")
	if len(raw) == 0 {
		return defaultPalette(), nil
	}
	out := make([]string, len(raw))
	for i, c := range raw {
		hex, err := canonicalHex(c)
		if err != nil {
			return nil, err
		}
		out[i] = hex
	}
	return out, nil
}

// defaultPalette sweeps the hue circle at two lightness levels and appends a
// grey ramp. Deterministic, so default swatch positions are stable.
func defaultPalette() []string {
	var out []string
	for _, v := range []float64{0.9, 0.6} {
		for hue := 0; hue < 360; hue += 30 {
			out = append(out, colorful.Hsv(float64(hue), 0.65, v).Hex())
		}
	}
	for _, v := range []float64{0.0, 0.25, 0.5, 0.75, 0.9, 1.0} {
		out = append(out, colorful.Hsv(0, 0, v).Hex())
	}
	return out
}
