package inputs

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func toggleDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("default", openapi3.NewBoolSchema()).
		WithProperty("onLabel", openapi3.NewStringSchema()).
		WithProperty("offLabel", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeToggle,
		Props:  schema.New(props),
		Output: boolOutput(),
		New:    newToggle,
	}
}

// toggle is an on/off switch. Space or enter flips it and commits.
type toggle struct {
	base
	on       bool
	onLabel  string
	offLabel string
}

func newToggle(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	return &toggle{
		base:     newBase(ctx, d),
		on:       d.Bool("default", false),
		onLabel:  d.String("onLabel", "on"),
		offLabel: d.String("offLabel", "off"),
	}, nil
}

func (in *toggle) Value() any { return in.on }

func (in *toggle) SetValue(v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("inputs: %s wants a bool, got %T", TypeToggle, v)
	}
	in.on = b
	return nil
}

func (in *toggle) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case " ", "enter":
		in.on = !in.on
		in.commit(in.on)
	}
	return nil
}

func (in *toggle) View() string {
	mark, label := "[ ]", in.offLabel
	style := in.ctx.Styles.Muted
	if in.on {
		mark, label = "[x]", in.onLabel
		style = in.ctx.Styles.Success
	}
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), style.Render(mark+" "+label))
}
