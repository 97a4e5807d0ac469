package inputs

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// sharedHTMLPolicy returns the sanitizer used by RawHTML widgets that opt
// in. Policies are expensive to build and safe to share.
func sharedHTMLPolicy() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return htmlPolicy
}

func rawHTMLDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("html", openapi3.NewStringSchema()).
		WithProperty("sanitize", openapi3.NewBoolSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeRawHTML,
		Props:  schema.New(props),
		Output: stringOutput(),
		New:    newRawHTML,
	}
}

// RawHTML displays host-provided markup verbatim. The widget never escapes
// or rewrites content: whoever sets the value owns its safety. Hosts that
// display untrusted input can set the sanitize prop to strip scripts before
// display.
type RawHTML struct {
	base
	html        string
	sanitize    bool
	afterRender func(rendered string)
}

func newRawHTML(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	return &RawHTML{
		base:     newBase(ctx, d),
		html:     d.String("html", ""),
		sanitize: d.Bool("sanitize", false),
	}, nil
}

// Value returns the markup as set, before any sanitizing.
func (in *RawHTML) Value() any { return in.html }

func (in *RawHTML) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("inputs: %s wants a string, got %T", TypeRawHTML, v)
	}
	in.html = s
	return nil
}

func (in *RawHTML) Update(tea.Msg) tea.Cmd { return nil }

func (in *RawHTML) View() string {
	rendered := in.html
	if in.sanitize {
		rendered = sharedHTMLPolicy().Sanitize(rendered)
	}
	if in.afterRender != nil {
		in.afterRender(rendered)
	}
	if in.desc.Title == "" {
		return rendered
	}
	return lipgloss.JoinVertical(lipgloss.Left, in.header(), rendered)
}

// SetAfterRender installs a hook observing the exact content each render
// displays, after sanitizing. Hosts use it to post-process or mirror the
// markup elsewhere.
func (in *RawHTML) SetAfterRender(fn func(rendered string)) {
	in.afterRender = fn
}
