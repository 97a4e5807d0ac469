package inputs

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func textareaDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("placeholder", openapi3.NewStringSchema()).
		WithProperty("default", openapi3.NewStringSchema()).
		WithProperty("rows", openapi3.NewIntegerSchema().WithMin(1)).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeTextarea,
		Props:  schema.New(props),
		Output: stringOutput(),
		New:    newTextarea,
	}
}

// textareaInput is a multi line editor. Enter inserts newlines, so the change
// callback fires when focus leaves a dirty editor.
type textareaInput struct {
	base
	model     textarea.Model
	committed string
}

func newTextarea(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	model := textarea.New()
	model.Placeholder = d.String("placeholder", "")
	model.SetHeight(d.Int("rows", 4))

	in := &textareaInput{base: newBase(ctx, d), model: model}
	if def := d.String("default", ""); def != "" {
		in.model.SetValue(def)
		in.committed = def
	}
	return in, nil
}

func (in *textareaInput) Value() any { return in.model.Value() }

func (in *textareaInput) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeTextarea, v)
	}
	in.model.SetValue(s)
	in.committed = s
	return nil
}

func (in *textareaInput) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	var cmd tea.Cmd
	in.model, cmd = in.model.Update(msg)
	return cmd
}

func (in *textareaInput) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), in.model.View())
}

func (in *textareaInput) Focus() tea.Cmd {
	in.focused = true
	return in.model.Focus()
}

func (in *textareaInput) Blur() {
	in.focused = false
	in.model.Blur()
	if current := in.model.Value(); current != in.committed {
		in.committed = current
		in.commit(current)
	}
}
