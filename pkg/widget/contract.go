package widget

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/pkg/collector"
	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/style"
)

// Resolver produces the output value schema for a widget instance. Dynamic
// resolvers inspect descriptor props; every resolver must tolerate a nil
// descriptor and fall back to a permissive schema.
type Resolver func(d *Descriptor) *schema.Schema

// StaticResolver wraps a fixed schema into a Resolver.
func StaticResolver(s *schema.Schema) Resolver {
	return func(*Descriptor) *schema.Schema { return s }
}

// OnChange receives the value a widget commits after user interaction.
// Programmatic SetValue never reaches it.
type OnChange func(id string, value any)

// Input is the runtime contract every rendered widget satisfies. Value and
// SetValue implement the collector protocol; the tea-flavored methods drive
// the event loop.
type Input interface {
	collector.Source
	Descriptor() *Descriptor
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus() tea.Cmd
	Blur()
	Close() error
}

// Factory constructs the interactive control for a descriptor.
type Factory func(ctx Context, d *Descriptor) (Input, error)

// Context carries the collaboration surface a factory wires into its input:
// the change callback, an optional slot the built input is published
// through, the style set, and a logger for recoverable runtime failures.
type Context struct {
	OnChange OnChange
	Slot     *collector.Slot
	Styles   style.Styles
	Logger   *zap.Logger

	// WorkDir roots the artifacts upload widgets create. Empty uses the
	// system temp directory.
	WorkDir string
}

// Mount invokes the descriptor's factory and publishes the built input
// through the context slot, if one is set. Hosts embedding a single widget
// use the slot to reach its value protocol without holding the Input.
func Mount(ctx Context, d *Descriptor) (Input, error) {
	factory := d.Factory()
	if factory == nil {
		return nil, fmt.Errorf("widget: %s %q has no factory", d.Type, d.ID)
	}
	in, err := factory(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("widget: build %s %q: %w", d.Type, d.ID, err)
	}
	if ctx.Slot != nil {
		ctx.Slot.Publish(in)
	}
	return in, nil
}

// Emit forwards a committed value to the change callback, if any.
func (c Context) Emit(id string, value any) {
	if c.OnChange == nil {
		return
	}
	c.OnChange(id, value)
}

// Log returns the configured logger or a no-op one.
func (c Context) Log() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
