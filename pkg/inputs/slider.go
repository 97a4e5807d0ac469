package inputs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

const sliderTrackWidth = 24

func sliderDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("min", openapi3.NewFloat64Schema()).
		WithProperty("max", openapi3.NewFloat64Schema()).
		WithProperty("step", openapi3.NewFloat64Schema()).
		WithProperty("default", openapi3.NewFloat64Schema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeSlider,
		Props:  schema.New(props),
		Output: rangeOutput(),
		New:    newSlider,
	}
}

// slider picks a number from a bounded range with arrow keys. Every step
// commits; values land on the nearest step boundary.
type slider struct {
	base
	min, max float64
	step     float64
	value    float64
}

func newSlider(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	min := d.Float("min", 0)
	max := d.Float("max", 100)
	if max <= min {
		return nil, fmt.Errorf("inputs: %s needs max > min, got [%v, %v]", TypeSlider, min, max)
	}
	step := d.Float("step", 1)
	if step <= 0 {
		step = 1
	}

	in := &slider{base: newBase(ctx, d), min: min, max: max, step: step}
	in.value = in.clamp(d.Float("default", min))
	return in, nil
}

func (in *slider) Value() any { return in.value }

func (in *slider) SetValue(v any) error {
	f, ok := schema.Normalize(v).(float64)
	if !ok {
		return fmt.Errorf("inputs: %s wants a number, got %T", TypeSlider, v)
	}
	in.value = in.clamp(f)
	return nil
}

func (in *slider) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "left", "h":
		in.move(-in.step)
	case "right", "l":
		in.move(in.step)
	case "home":
		in.moveTo(in.min)
	case "end":
		in.moveTo(in.max)
	}
	return nil
}

func (in *slider) View() string {
	ratio := (in.value - in.min) / (in.max - in.min)
	knob := int(ratio*float64(sliderTrackWidth-1) + 0.5)

	var track strings.Builder
	for i := 0; i < sliderTrackWidth; i++ {
		if i == knob {
			track.WriteString(in.ctx.Styles.Accent.Render("●"))
			continue
		}
		track.WriteString(in.ctx.Styles.Muted.Render("─"))
	}

	line := fmt.Sprintf("%s %s", track.String(), in.ctx.Styles.Text.Render(formatFloat(in.value)))
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), line)
}

func (in *slider) move(delta float64) {
	in.moveTo(in.value + delta)
}

func (in *slider) moveTo(target float64) {
	next := in.clamp(target)
	if next == in.value {
		return
	}
	in.value = next
	in.commit(next)
}

func (in *slider) clamp(v float64) float64 {
	if v <= in.min {
		return in.min
	}
	if v >= in.max {
		return in.max
	}
	// Snap interior values onto the step grid.
	steps := (v - in.min) / in.step
	snapped := in.min + float64(int(steps+0.5))*in.step
	if snapped > in.max {
		snapped = in.max
	}
	return snapped
}
