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

func textDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("placeholder", openapi3.NewStringSchema()).
		WithProperty("default", openapi3.NewStringSchema()).
		WithProperty("maxLength", openapi3.NewIntegerSchema().WithMin(1)).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeText,
		Props:  schema.New(props),
		Output: textOutput(),
		New:    newText,
	}
}

// text is a single line editor. The live text is the authoritative value;
// the change callback fires on enter and when focus leaves a dirty field.
type text struct {
	base
	model     textinput.Model
	committed string
}

func newText(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	model := textinput.New()
	model.Placeholder = d.String("placeholder", "")
	model.Prompt = "> "
	model.PromptStyle = ctx.Styles.Accent
	if max := d.Int("maxLength", 0); max > 0 {
		model.CharLimit = max
	}

	in := &text{base: newBase(ctx, d), model: model}
	if def := d.String("default", ""); def != "" {
		in.model.SetValue(def)
		in.committed = def
	}
	return in, nil
}

func (in *text) Value() any { return in.model.Value() }

func (in *text) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeText, v)
	}
	in.model.SetValue(s)
	in.committed = s
	return nil
}

func (in *text) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		in.flush()
		return nil
	}

	var cmd tea.Cmd
	in.model, cmd = in.model.Update(msg)
	return cmd
}

func (in *text) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), in.model.View())
}

func (in *text) Focus() tea.Cmd {
	in.focused = true
	return in.model.Focus()
}

func (in *text) Blur() {
	in.focused = false
	in.model.Blur()
	in.flush()
}

func (in *text) flush() {
	current := in.model.Value()
	if current == in.committed {
		return
	}
	in.committed = current
	in.commit(current)
}
