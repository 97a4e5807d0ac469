package inputs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func selectListDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("options", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("default", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeSelectList,
		Props:  schema.New(props),
		Output: optionsOutput(),
		New:    newSelectList,
	}
}

// selectList picks one option from a vertical list. Enter commits the option
// under the cursor.
type selectList struct {
	base
	cursor optionCursor
	value  string
}

func newSelectList(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	in := &selectList{
		base:   newBase(ctx, d),
		cursor: newOptionCursor(d.Strings("options")),
	}
	in.cursor.jumpTo(d.String("default", ""))
	in.value = in.cursor.current()
	return in, nil
}

func (in *selectList) Value() any { return in.value }

func (in *selectList) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeSelectList, v)
	}
	in.cursor.jumpTo(s)
	in.value = in.cursor.current()
	return nil
}

func (in *selectList) Update(msg tea.Msg) tea.Cmd {
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

func (in *selectList) View() string {
	var b strings.Builder
	b.WriteString(in.header())
	if in.cursor.empty() {
		b.WriteString("\n" + in.ctx.Styles.Muted.Render("(no options)"))
		return b.String()
	}
	for i, opt := range in.cursor.options {
		b.WriteString("\n")
		line := "  " + opt
		if i == in.cursor.index {
			line = "> " + opt
		}
		switch {
		case opt == in.value:
			b.WriteString(in.ctx.Styles.Selected.Render(line))
		case i == in.cursor.index:
			b.WriteString(in.ctx.Styles.Text.Render(line))
		default:
			b.WriteString(in.ctx.Styles.Muted.Render(line))
		}
	}
	return b.String()
}

func (in *selectList) choose() {
	next := in.cursor.current()
	if next == "" || next == in.value {
		return
	}
	in.value = next
	in.commit(next)
}
