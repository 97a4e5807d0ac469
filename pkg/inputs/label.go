package inputs

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/internal/highlight"
	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func labelDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("text", openapi3.NewStringSchema()).
		WithProperty("display", openapi3.NewStringSchema().WithEnum("plain", "code")).
		WithProperty("language", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeLabel,
		Props:  schema.New(props),
		Output: stringOutput(),
		New:    newLabel,
	}
}

// label displays text the host updates through the collector. The value
// mirrors whatever is shown. Code display runs the text through the shared
// highlighter; highlight failures fall back to plain text.
type label struct {
	base
	text        string
	language    string
	highlighter highlight.Service
}

func newLabel(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	in := &label{
		base:     newBase(ctx, d),
		text:     d.String("text", ""),
		language: d.String("language", ""),
	}
	if d.String("display", "plain") == "code" {
		in.highlighter = highlight.Acquire()
	}
	return in, nil
}

func (in *label) Value() any { return in.text }

func (in *label) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeLabel, v)
	}
	in.text = s
	return nil
}

func (in *label) Update(tea.Msg) tea.Cmd { return nil }

func (in *label) View() string {
	body := in.render()
	if in.desc.Title == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), body)
}

func (in *label) Close() error {
	if in.highlighter != nil {
		in.highlighter.Release()
		in.highlighter = nil
	}
	return nil
}

func (in *label) render() string {
	if in.highlighter == nil {
		return in.ctx.Styles.Text.Render(in.text)
	}
	out, err := in.highlighter.Highlight(in.text, in.language)
	if err != nil {
		in.ctx.Log().Warn("highlight failed", zap.String("widget", in.desc.ID), zap.Error(err))
		return in.ctx.Styles.Text.Render(in.text)
	}
	return out
}
