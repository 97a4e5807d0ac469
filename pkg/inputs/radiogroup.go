package inputs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func radioGroupDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("options", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("default", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeRadioGroup,
		Props:  schema.New(props),
		Output: optionsOutput(),
		New:    newRadioGroup,
	}
}

// radioGroup picks one option rendered as radio buttons. Space or enter
// commits the option under the cursor.
type radioGroup struct {
	base
	cursor optionCursor
	value  string
}

func newRadioGroup(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	in := &radioGroup{
		base:   newBase(ctx, d),
		cursor: newOptionCursor(d.Strings("options")),
	}
	in.cursor.jumpTo(d.String("default", ""))
	in.value = in.cursor.current()
	return in, nil
}

func (in *radioGroup) Value() any { return in.value }

func (in *radioGroup) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeRadioGroup, v)
	}
	in.cursor.jumpTo(s)
	in.value = in.cursor.current()
	return nil
}

func (in *radioGroup) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		in.cursor.move(-1)
	case "down", "j":
		in.cursor.move(1)
	case "enter", " ":
		in.choose()
	}
	return nil
}

func (in *radioGroup) View() string {
	var b strings.Builder
	b.WriteString(in.header())
	if in.cursor.empty() {
		b.WriteString("\n" + in.ctx.Styles.Muted.Render("(no options)"))
		return b.String()
	}
	for i, opt := range in.cursor.options {
		mark := "( )"
		if opt == in.value {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s %s", mark, opt)
		b.WriteString("\n")
		switch {
		case i == in.cursor.index && in.focused:
			b.WriteString(in.ctx.Styles.Selected.Render(line))
		case opt == in.value:
			b.WriteString(in.ctx.Styles.Text.Render(line))
		default:
			b.WriteString(in.ctx.Styles.Muted.Render(line))
		}
	}
	return b.String()
}

func (in *radioGroup) choose() {
	next := in.cursor.current()
	if next == "" || next == in.value {
		return
	}
	in.value = next
	in.commit(next)
}
