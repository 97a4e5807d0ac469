package inputs

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func progressBarDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("default", openapi3.NewFloat64Schema().WithMin(0).WithMax(100)).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeProgressBar,
		Props:  schema.New(props),
		Output: percentOutput(),
		New:    newProgressBar,
	}
}

// progressBar displays a percentage the host drives through the collector.
// Writes clamp to 0..100.
type progressBar struct {
	base
	bar     progress.Model
	percent float64
}

func newProgressBar(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 32

	in := &progressBar{base: newBase(ctx, d), bar: bar}
	in.percent = clampPercent(d.Float("default", 0))
	return in, nil
}

func (in *progressBar) Value() any { return in.percent }

func (in *progressBar) SetValue(v any) error {
	f, ok := schema.Normalize(v).(float64)
	if !ok {
		return fmt.Errorf("inputs: %s wants a number, got %T", TypeProgressBar, v)
	}
	in.percent = clampPercent(f)
	return nil
}

func (in *progressBar) Update(tea.Msg) tea.Cmd { return nil }

func (in *progressBar) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), in.bar.ViewAs(in.percent/100))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
