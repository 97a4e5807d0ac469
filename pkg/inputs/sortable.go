package inputs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func sortableListDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("items", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeSortableList,
		Props:  schema.New(props),
		Output: itemsListOutput(),
		New:    newSortableList,
	}
}

// sortableList reorders a fixed item set. Space grabs the item under the
// cursor, up and down carry it, space drops it and commits the new order.
// Esc cancels the grab and restores the order it started from.
type sortableList struct {
	base
	items   []string
	initial []string
	saved   []string
	index   int
	grabbed bool
	dirty   bool
}

func newSortableList(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	items := d.Strings("items")
	return &sortableList{
		base:    newBase(ctx, d),
		items:   append([]string(nil), items...),
		initial: items,
	}, nil
}

func (in *sortableList) Value() any {
	return append([]string(nil), in.items...)
}

func (in *sortableList) SetValue(v any) error {
	list, ok := stringList(v)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string list, got %T", TypeSortableList, v)
	}
	if len(list) == 0 {
		// An empty push falls back to the configured items so the list
		// never goes blank under a widget that was given options.
		list = in.initial
	}
	in.items = append([]string(nil), list...)
	in.grabbed = false
	in.dirty = false
	in.saved = nil
	if in.index >= len(in.items) {
		in.index = 0
	}
	return nil
}

func (in *sortableList) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		in.move(-1)
	case "down", "j":
		in.move(1)
	case " ", "enter":
		in.toggleGrab()
	case "esc":
		in.cancelGrab()
	}
	return nil
}

func (in *sortableList) View() string {
	var b strings.Builder
	b.WriteString(in.header())
	if len(in.items) == 0 {
		b.WriteString("\n" + in.ctx.Styles.Muted.Render("(empty)"))
		return b.String()
	}
	for i, item := range in.items {
		b.WriteString("\n")
		switch {
		case i == in.index && in.grabbed:
			b.WriteString(in.ctx.Styles.Selected.Render("≡ " + item))
		case i == in.index && in.focused:
			b.WriteString(in.ctx.Styles.Text.Render("> " + item))
		default:
			b.WriteString(in.ctx.Styles.Muted.Render("  " + item))
		}
	}
	b.WriteString("\n" + in.hint("space grab/drop, arrows move"))
	return b.String()
}

func (in *sortableList) move(delta int) {
	next := in.index + delta
	if next < 0 || next >= len(in.items) {
		return
	}
	if in.grabbed {
		in.items[in.index], in.items[next] = in.items[next], in.items[in.index]
		in.dirty = true
	}
	in.index = next
}

// toggleGrab picks the item up or drops it. The drop commits the full order
// when any move happened while grabbed.
func (in *sortableList) toggleGrab() {
	if len(in.items) == 0 {
		return
	}
	if !in.grabbed {
		in.grabbed = true
		in.dirty = false
		in.saved = append([]string(nil), in.items...)
		return
	}
	in.grabbed = false
	in.saved = nil
	if in.dirty {
		in.dirty = false
		in.commit(in.Value())
	}
}

// cancelGrab drops the item and restores the order the grab started from.
func (in *sortableList) cancelGrab() {
	if !in.grabbed {
		return
	}
	in.grabbed = false
	in.dirty = false
	if in.saved != nil {
		in.items = in.saved
		in.saved = nil
	}
}
