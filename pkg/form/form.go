// Package form materializes a descriptor grid into live widgets and drives
// them as one bubbletea model: focus routing, change fan-out, collection and
// validation of the assembled values.
package form

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/pkg/collector"
	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/style"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

const columnGap = 3

type config struct {
	styles   style.Styles
	logger   *zap.Logger
	workDir  string
	onChange widget.OnChange
}

// Option adjusts form construction.
type Option func(*config)

// WithOnChange installs the host callback receiving every committed value.
func WithOnChange(fn widget.OnChange) Option {
	return func(c *config) { c.onChange = fn }
}

// WithStyles overrides the default style set.
func WithStyles(s style.Styles) Option {
	return func(c *config) { c.styles = s }
}

// WithTheme derives the style set from a resolved theme selection.
func WithTheme(sel *theme.Selection) Option {
	return func(c *config) { c.styles = style.FromSelection(sel) }
}

// WithLogger routes widget runtime warnings somewhere visible.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithWorkDir roots the artifacts upload widgets write. Empty means the
// system temp directory.
func WithWorkDir(dir string) Option {
	return func(c *config) { c.workDir = dir }
}

// Form holds the built widgets of one descriptor grid. It implements
// tea.Model; hosts embed it in their own model or hand it to Run.
type Form struct {
	grid   widget.Grid
	inputs map[string]widget.Input
	order  []string
	focus  int
	cfg    config
}

// New builds every widget in the grid. Construction is fail-fast: the first
// factory error aborts and already-built widgets are closed.
func New(grid widget.Grid, opts ...Option) (*Form, error) {
	cfg := config{styles: style.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	f := &Form{
		grid:   grid,
		inputs: make(map[string]widget.Input, grid.Len()),
		focus:  -1,
		cfg:    cfg,
	}

	ctx := widget.Context{
		OnChange: f.dispatch,
		Styles:   cfg.styles,
		Logger:   cfg.logger,
		WorkDir:  cfg.workDir,
	}
	err := grid.Walk(func(d *widget.Descriptor) error {
		in, err := widget.Mount(ctx, d)
		if err != nil {
			return err
		}
		f.inputs[d.ID] = in
		if d.Interactive() {
			f.order = append(f.order, d.ID)
		}
		return nil
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(f.order) > 0 {
		f.focus = 0
	}
	return f, nil
}

// FromYAML decodes a row document and builds its form in one step.
func FromYAML(reg *widget.Registry, src []byte, opts ...Option) (*Form, error) {
	rows, err := widget.RowsFromYAML(src)
	if err != nil {
		return nil, err
	}
	grid, err := widget.Build(reg, rows)
	if err != nil {
		return nil, err
	}
	return New(grid, opts...)
}

// FromJSON decodes a row document and builds its form in one step.
func FromJSON(reg *widget.Registry, src []byte, opts ...Option) (*Form, error) {
	rows, err := widget.RowsFromJSON(src)
	if err != nil {
		return nil, err
	}
	grid, err := widget.Build(reg, rows)
	if err != nil {
		return nil, err
	}
	return New(grid, opts...)
}

// dispatch is the single funnel for committed values.
func (f *Form) dispatch(id string, value any) {
	f.cfg.logger.Debug("widget committed", zap.String("widget", id))
	if f.cfg.onChange != nil {
		f.cfg.onChange(id, value)
	}
}

// Grid returns the descriptor layout the form was built from.
func (f *Form) Grid() widget.Grid { return f.grid }

// Input returns the live widget for an id.
func (f *Form) Input(id string) (widget.Input, bool) {
	in, ok := f.inputs[id]
	return in, ok
}

// Source returns the collector surface for an id, for typed handles.
func (f *Form) Source(id string) (collector.Source, bool) {
	in, ok := f.inputs[id]
	if !ok {
		return nil, false
	}
	return in, true
}

// Focused returns the id of the widget holding focus, or "".
func (f *Form) Focused() string {
	if f.focus < 0 || f.focus >= len(f.order) {
		return ""
	}
	return f.order[f.focus]
}

// Collect snapshots every widget value keyed by id, normalized to
// JSON-friendly shapes.
func (f *Form) Collect() map[string]any {
	out := make(map[string]any, len(f.inputs))
	for id, in := range f.inputs {
		out[id] = schema.Normalize(in.Value())
	}
	return out
}

// Seed writes values into their widgets without firing the change callback.
// Unknown ids fail before anything is written.
func (f *Form) Seed(values map[string]any) error {
	for id := range values {
		if _, ok := f.inputs[id]; !ok {
			return fmt.Errorf("form: no widget with id %q", id)
		}
	}
	for id, v := range values {
		if err := f.inputs[id].SetValue(v); err != nil {
			return fmt.Errorf("form: seed %q: %w", id, err)
		}
	}
	return nil
}

// Validate checks every widget value against its resolved output schema and
// reports all violations together.
func (f *Form) Validate() error {
	var errs []error
	f.grid.Walk(func(d *widget.Descriptor) error {
		in, ok := f.inputs[d.ID]
		if !ok {
			return nil
		}
		if err := widget.ValidateValue(d, schema.Normalize(in.Value())); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	return errors.Join(errs...)
}

// Close shuts every widget down, releasing watchers and leased artifacts.
func (f *Form) Close() error {
	var errs []error
	for id, in := range f.inputs {
		if err := in.Close(); err != nil {
			errs = append(errs, fmt.Errorf("form: close %q: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (f *Form) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, in := range f.inputs {
		if cmd := in.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if in := f.focusedInput(); in != nil {
		if cmd := in.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update routes key messages to the focused widget and broadcasts everything
// else, so widgets with background work receive their own messages.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+c":
			return f, tea.Quit
		case "tab":
			return f, f.moveFocus(1)
		case "shift+tab":
			return f, f.moveFocus(-1)
		}
		if in := f.focusedInput(); in != nil {
			return f, in.Update(msg)
		}
		return f, nil
	}

	var cmds []tea.Cmd
	for _, in := range f.inputs {
		if cmd := in.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return f, tea.Batch(cmds...)
}

func (f *Form) View() string {
	gap := lipgloss.NewStyle().Width(columnGap).Render("")
	var rows []string
	for _, row := range f.grid {
		var cells []string
		for i, d := range row {
			in, ok := f.inputs[d.ID]
			if !ok {
				continue
			}
			if i > 0 {
				cells = append(cells, gap)
			}
			cells = append(cells, in.View())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	help := f.cfg.styles.Help.Render("tab next, shift+tab previous, ctrl+c quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, "", help)
}

func (f *Form) focusedInput() widget.Input {
	id := f.Focused()
	if id == "" {
		return nil
	}
	return f.inputs[id]
}

func (f *Form) moveFocus(delta int) tea.Cmd {
	if len(f.order) == 0 {
		return nil
	}
	if in := f.focusedInput(); in != nil {
		in.Blur()
	}
	f.focus = (f.focus + delta + len(f.order)) % len(f.order)
	if in := f.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}
