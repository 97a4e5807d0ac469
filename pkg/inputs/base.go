package inputs

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formwidgets/pkg/widget"
)

// base carries what every input shares: the descriptor it was built from,
// the wiring context, and focus state. Concrete inputs embed it and override
// the lifecycle methods they care about.
type base struct {
	desc    *widget.Descriptor
	ctx     widget.Context
	focused bool
}

func newBase(ctx widget.Context, d *widget.Descriptor) base {
	return base{desc: d, ctx: ctx}
}

func (b *base) Descriptor() *widget.Descriptor { return b.desc }

func (b *base) Init() tea.Cmd { return nil }

func (b *base) Focus() tea.Cmd {
	b.focused = true
	return nil
}

func (b *base) Blur() { b.focused = false }

func (b *base) Close() error { return nil }

// commit publishes a user-driven value through the change callback. This is
// the only path that fires it; programmatic SetValue stays silent.
func (b *base) commit(v any) {
	b.ctx.Emit(b.desc.ID, v)
}

// ignores reports whether the message is user interaction the widget must
// drop because it runs in output mode.
func (b *base) ignores(msg tea.Msg) bool {
	if _, key := msg.(tea.KeyMsg); !key {
		return false
	}
	return !b.desc.Interactive()
}

// header renders the widget title line, falling back to the id when no title
// was given.
func (b *base) header() string {
	title := b.desc.Title
	if title == "" {
		title = b.desc.ID
	}
	if b.focused {
		return b.ctx.Styles.Focused.Render(title)
	}
	return b.ctx.Styles.Title.Render(title)
}

// hint renders help text under the control.
func (b *base) hint(s string) string {
	return b.ctx.Styles.Help.Render(s)
}
