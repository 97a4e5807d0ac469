package inputs

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

const dividerWidth = 32

func dividerDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("label", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeDivider,
		Props:  schema.New(props),
		Output: nothingOutput(),
		New:    newDivider,
	}
}

// divider is a visual rule. It never carries a value and swallows writes so
// bulk seeding a form does not trip over it.
type divider struct {
	base
	label string
}

func newDivider(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	return &divider{base: newBase(ctx, d), label: d.String("label", "")}, nil
}

func (in *divider) Value() any { return nil }

func (in *divider) SetValue(any) error { return nil }

func (in *divider) Update(tea.Msg) tea.Cmd { return nil }

func (in *divider) View() string {
	if in.label == "" {
		return in.ctx.Styles.Muted.Render(strings.Repeat("─", dividerWidth))
	}
	n := (dividerWidth - len(in.label) - 2) / 2
	if n < 2 {
		n = 2
	}
	side := strings.Repeat("─", n)
	return in.ctx.Styles.Muted.Render(side+" ") +
		in.ctx.Styles.Title.Render(in.label) +
		in.ctx.Styles.Muted.Render(" "+side)
}
