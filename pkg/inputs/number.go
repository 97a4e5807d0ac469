package inputs

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func numberDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("min", openapi3.NewFloat64Schema()).
		WithProperty("max", openapi3.NewFloat64Schema()).
		WithProperty("step", openapi3.NewFloat64Schema()).
		WithProperty("default", openapi3.NewFloat64Schema()).
		WithProperty("placeholder", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeNumber,
		Props:  schema.New(props),
		Output: rangeOutput(),
		New:    newNumber,
	}
}

// number edits a float within optional bounds. Typed values clamp on enter,
// arrow keys step; out of range values are pulled to the nearest bound
// rather than rejected, and re-committing the same value stays silent.
type number struct {
	base
	model    textinput.Model
	min, max float64
	hasMin   bool
	hasMax   bool
	step     float64
	value    float64
	hasValue bool
}

func newNumber(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	model := textinput.New()
	model.Placeholder = d.String("placeholder", "")
	model.Prompt = "> "
	model.PromptStyle = ctx.Styles.Accent
	model.CharLimit = 32

	in := &number{
		base:  newBase(ctx, d),
		model: model,
		step:  d.Float("step", 1),
	}
	if _, ok := d.Prop("min"); ok {
		in.min, in.hasMin = d.Float("min", 0), true
	}
	if _, ok := d.Prop("max"); ok {
		in.max, in.hasMax = d.Float("max", 0), true
	}
	if in.step <= 0 {
		in.step = 1
	}
	if _, ok := d.Prop("default"); ok {
		in.apply(d.Float("default", 0))
	}
	return in, nil
}

func (in *number) Value() any {
	if !in.hasValue {
		return nil
	}
	return in.value
}

func (in *number) SetValue(v any) error {
	if v == nil {
		in.hasValue = false
		in.model.SetValue("")
		return nil
	}
	f, ok := schema.Normalize(v).(float64)
	if !ok {
		return fmt.Errorf("inputs: %s wants a number, got %T", TypeNumber, v)
	}
	in.apply(f)
	return nil
}

func (in *number) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			in.commitTyped()
			return nil
		case "up":
			in.stepBy(in.step)
			return nil
		case "down":
			in.stepBy(-in.step)
			return nil
		}
	}

	var cmd tea.Cmd
	in.model, cmd = in.model.Update(msg)
	return cmd
}

func (in *number) View() string {
	lines := []string{in.header(), in.model.View()}
	if in.hasMin || in.hasMax {
		lines = append(lines, in.hint(in.rangeHint()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (in *number) Focus() tea.Cmd {
	in.focused = true
	return in.model.Focus()
}

func (in *number) Blur() {
	in.focused = false
	in.model.Blur()
	in.commitTyped()
}

// commitTyped parses the edited text. Unparseable input restores the last
// value; parseable input clamps and commits if it changed anything.
func (in *number) commitTyped() {
	raw := in.model.Value()
	if raw == "" {
		in.syncText()
		return
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		in.syncText()
		return
	}
	in.commitValue(in.clamp(f))
}

func (in *number) stepBy(delta float64) {
	if !in.hasValue {
		in.commitValue(in.clamp(in.floor()))
		return
	}
	in.commitValue(in.clamp(in.value + delta))
}

// floor is the starting point for the first arrow key press.
func (in *number) floor() float64 {
	if in.hasMin {
		return in.min
	}
	return 0
}

func (in *number) commitValue(v float64) {
	changed := !in.hasValue || in.value != v
	in.apply(v)
	if changed {
		in.commit(v)
	}
}

// apply sets the value without touching the change callback.
func (in *number) apply(v float64) {
	in.value = in.clamp(v)
	in.hasValue = true
	in.syncText()
}

func (in *number) clamp(v float64) float64 {
	if in.hasMin {
		v = math.Max(v, in.min)
	}
	if in.hasMax {
		v = math.Min(v, in.max)
	}
	return v
}

func (in *number) syncText() {
	if !in.hasValue {
		in.model.SetValue("")
		return
	}
	in.model.SetValue(formatFloat(in.value))
	in.model.CursorEnd()
}

func (in *number) rangeHint() string {
	switch {
	case in.hasMin && in.hasMax:
		return fmt.Sprintf("%s to %s", formatFloat(in.min), formatFloat(in.max))
	case in.hasMin:
		return "min " + formatFloat(in.min)
	default:
		return "max " + formatFloat(in.max)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
