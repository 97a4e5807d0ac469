package inputs

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func multiTextDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("fields", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()).WithMinItems(1)).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeMultiText,
		Props:  schema.New(props),
		Output: fieldsOutput(),
		New:    newMultiText,
	}
}

// multiText edits several named strings as one keyed value. Up and down move
// between fields, enter commits the whole map.
type multiText struct {
	base
	keys    []string
	editors map[string]*textinput.Model
	active  int
}

func newMultiText(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	keys := d.Strings("fields")
	if len(keys) == 0 {
		return nil, fmt.Errorf("inputs: %s needs a fields prop", TypeMultiText)
	}

	editors := make(map[string]*textinput.Model, len(keys))
	for _, key := range keys {
		model := textinput.New()
		model.Prompt = "> "
		model.PromptStyle = ctx.Styles.Accent
		editors[key] = &model
	}
	return &multiText{base: newBase(ctx, d), keys: keys, editors: editors}, nil
}

func (in *multiText) Value() any {
	out := make(map[string]any, len(in.keys))
	for _, key := range in.keys {
		out[key] = in.editors[key].Value()
	}
	return out
}

func (in *multiText) SetValue(v any) error {
	values, ok := keyedStrings(v)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string-valued map, got %T", TypeMultiText, v)
	}
	for key, val := range values {
		editor, known := in.editors[key]
		if !known {
			return fmt.Errorf("inputs: %s has no field %q", TypeMultiText, key)
		}
		editor.SetValue(val)
	}
	return nil
}

func (in *multiText) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			in.commit(in.Value())
			return nil
		case "up":
			return in.focusField(in.active - 1)
		case "down":
			return in.focusField(in.active + 1)
		}
	}

	editor := in.editors[in.keys[in.active]]
	var cmd tea.Cmd
	*editor, cmd = editor.Update(msg)
	return cmd
}

func (in *multiText) View() string {
	lines := []string{in.header()}
	for i, key := range in.keys {
		name := in.ctx.Styles.Muted.Render(key)
		if i == in.active && in.focused {
			name = in.ctx.Styles.Accent.Render(key)
		}
		lines = append(lines, name, in.editors[key].View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (in *multiText) Focus() tea.Cmd {
	in.focused = true
	return in.focusField(in.active)
}

func (in *multiText) Blur() {
	in.focused = false
	for _, editor := range in.editors {
		editor.Blur()
	}
}

func (in *multiText) focusField(index int) tea.Cmd {
	if index < 0 {
		index = 0
	}
	if index >= len(in.keys) {
		index = len(in.keys) - 1
	}
	in.active = index
	var cmd tea.Cmd
	for i, key := range in.keys {
		if i == index {
			cmd = in.editors[key].Focus()
			continue
		}
		in.editors[key].Blur()
	}
	return cmd
}

// keyedStrings coerces the map shapes decoders produce.
func keyedStrings(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		return m, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for key, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[key] = s
		}
		return out, true
	}
	return nil, false
}
