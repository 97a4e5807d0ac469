package inputs

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func buttonDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("label", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeButton,
		Props:  schema.New(props),
		Output: timestampOutput(),
		New:    newButton,
	}
}

// button reports click moments. Its value is the last click's Unix
// millisecond timestamp, nil before the first click. Timestamps are strictly
// increasing even when clicks land inside the same millisecond.
type button struct {
	base
	label   string
	clicked bool
	last    int64
}

func newButton(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	label := d.String("label", "")
	if label == "" {
		label = d.Title
	}
	if label == "" {
		label = d.ID
	}
	return &button{base: newBase(ctx, d), label: label}, nil
}

func (in *button) Value() any {
	if !in.clicked {
		return nil
	}
	return in.last
}

func (in *button) SetValue(v any) error {
	if v == nil {
		in.clicked = false
		in.last = 0
		return nil
	}
	ms, ok := schema.Normalize(v).(float64)
	if !ok {
		return fmt.Errorf("inputs: %s wants a millisecond timestamp, got %T", TypeButton, v)
	}
	in.clicked = true
	in.last = int64(ms)
	return nil
}

func (in *button) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "enter", " ":
		in.click()
	}
	return nil
}

func (in *button) View() string {
	style := in.ctx.Styles.Blurred
	if in.focused {
		style = in.ctx.Styles.Focused
	}
	lines := []string{style.Render("[ " + in.label + " ]")}
	if in.clicked {
		at := time.UnixMilli(in.last).Format("15:04:05")
		lines = append(lines, in.hint("clicked "+at))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (in *button) click() {
	now := time.Now().UnixMilli()
	if in.clicked && now <= in.last {
		now = in.last + 1
	}
	in.clicked = true
	in.last = now
	in.commit(now)
}
