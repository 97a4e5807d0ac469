package inputs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func tagDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("default", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("placeholder", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeTag,
		Props:  schema.New(props),
		Output: stringListOutput(),
		New:    newTag,
	}
}

// tag collects a deduplicated string list. Enter adds the typed tag,
// backspace on an empty editor removes the last one; both commit the full
// list.
type tag struct {
	base
	model textinput.Model
	tags  []string
}

func newTag(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	model := textinput.New()
	model.Placeholder = d.String("placeholder", "add tag")
	model.Prompt = "+ "
	model.PromptStyle = ctx.Styles.Accent

	in := &tag{base: newBase(ctx, d), model: model}
	for _, t := range d.Strings("default") {
		in.add(t)
	}
	return in, nil
}

func (in *tag) Value() any {
	return append([]string(nil), in.tags...)
}

func (in *tag) SetValue(v any) error {
	list, ok := stringList(v)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string list, got %T", TypeTag, v)
	}
	in.tags = nil
	for _, t := range list {
		in.add(t)
	}
	return nil
}

func (in *tag) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if in.add(in.model.Value()) {
				in.model.SetValue("")
				in.commit(in.Value())
			}
			return nil
		case "backspace":
			if in.model.Value() == "" && len(in.tags) > 0 {
				in.tags = in.tags[:len(in.tags)-1]
				in.commit(in.Value())
				return nil
			}
		}
	}

	var cmd tea.Cmd
	in.model, cmd = in.model.Update(msg)
	return cmd
}

func (in *tag) View() string {
	var chips []string
	for _, t := range in.tags {
		chips = append(chips, in.ctx.Styles.Selected.Render(" "+t+" "))
	}
	line := in.ctx.Styles.Muted.Render("(none)")
	if len(chips) > 0 {
		line = strings.Join(chips, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), line, in.model.View())
}

func (in *tag) Focus() tea.Cmd {
	in.focused = true
	return in.model.Focus()
}

func (in *tag) Blur() {
	in.focused = false
	in.model.Blur()
}

// add appends a trimmed tag, rejecting empties and duplicates.
func (in *tag) add(raw string) bool {
	t := strings.TrimSpace(raw)
	if t == "" {
		return false
	}
	for _, existing := range in.tags {
		if existing == t {
			return false
		}
	}
	in.tags = append(in.tags, t)
	return true
}

// stringList coerces the list shapes decoders produce.
func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case nil:
		return nil, true
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
