package widget

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formwidgets/pkg/schema"
)

// AssemblyError reports a configuration failure with its location in the row
// grid. Row and Column are 1-based.
type AssemblyError struct {
	Row    int
	Column int
	Type   string
	Title  string
	Err    error
}

func (e *AssemblyError) Error() string {
	label := e.Type
	if label == "" {
		label = "widget"
	}
	if e.Title != "" {
		return fmt.Sprintf("widget: row %d column %d (%s %q): %v", e.Row, e.Column, label, e.Title, e.Err)
	}
	return fmt.Sprintf("widget: row %d column %d (%s): %v", e.Row, e.Column, label, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// ErrUnknownType marks assembly failures caused by unregistered type names.
var ErrUnknownType = errors.New("unknown widget type")

// Grid is the validated descriptor layout produced by Build, preserving the
// row structure of the source cells.
type Grid [][]*Descriptor

// Find returns the descriptor with the given id, or nil.
func (g Grid) Find(id string) *Descriptor {
	for _, row := range g {
		for _, d := range row {
			if d.ID == id {
				return d
			}
		}
	}
	return nil
}

// Walk visits every descriptor in reading order until fn returns an error.
func (g Grid) Walk(fn func(d *Descriptor) error) error {
	for _, row := range g {
		for _, d := range row {
			if err := fn(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Len returns the number of descriptors in the grid.
func (g Grid) Len() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// Build validates rows against the registry and returns the descriptor grid.
// Assembly is fail-fast: the first invalid cell aborts with an
// AssemblyError carrying its row, column, type and title. Nothing is
// silently defaulted.
func Build(reg *Registry, rows [][]Cell) (Grid, error) {
	if reg == nil {
		return nil, fmt.Errorf("widget: registry is required")
	}

	grid := make(Grid, 0, len(rows))
	seen := make(map[string]struct{})
	for ri, row := range rows {
		out := make([]*Descriptor, 0, len(row))
		for ci, cell := range row {
			d, err := buildCell(reg, cell)
			if err != nil {
				return nil, &AssemblyError{
					Row:    ri + 1,
					Column: ci + 1,
					Type:   cell.Type,
					Title:  cell.Title,
					Err:    err,
				}
			}
			if _, dup := seen[d.ID]; dup {
				return nil, &AssemblyError{
					Row:    ri + 1,
					Column: ci + 1,
					Type:   cell.Type,
					Title:  cell.Title,
					Err:    fmt.Errorf("duplicate widget id %q", d.ID),
				}
			}
			seen[d.ID] = struct{}{}
			out = append(out, d)
		}
		grid = append(grid, out)
	}
	return grid, nil
}

func buildCell(reg *Registry, cell Cell) (*Descriptor, error) {
	if cell.ID == "" {
		return nil, fmt.Errorf("widget id is required")
	}
	if cell.Type == "" {
		return nil, fmt.Errorf("widget type is required")
	}

	def, err := reg.Get(cell.Type)
	if err != nil {
		if hint := reg.Suggest(cell.Type); hint != "" {
			return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownType, cell.Type, hint)
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownType, cell.Type)
	}

	mode, err := ParseMode(cell.Mode)
	if err != nil {
		return nil, err
	}

	props := cell.Props
	if props == nil {
		props = map[string]any{}
	}
	if err := def.Props.Validate(props); err != nil {
		return nil, fmt.Errorf("invalid props: %w", err)
	}

	return &Descriptor{
		ID:      cell.ID,
		Title:   cell.Title,
		Type:    cell.Type,
		Mode:    mode,
		Props:   props,
		factory: def.New,
		output:  def.Output,
	}, nil
}

// Describe builds a descriptor outside any grid, mainly for guides and
// tests. It runs the same props validation as Build.
func Describe(reg *Registry, cell Cell) (*Descriptor, error) {
	d, err := buildCell(reg, cell)
	if err != nil {
		return nil, fmt.Errorf("widget: %s %q: %w", cell.Type, cell.Title, err)
	}
	return d, nil
}

// ValidateValue checks value against the descriptor's resolved output
// schema. It is the boundary check guides and tests run; interactive paths
// rely on widget behavior instead.
func ValidateValue(d *Descriptor, value any) error {
	if d == nil {
		return fmt.Errorf("widget: descriptor is required")
	}
	out := d.OutputSchema()
	if out == nil {
		return nil
	}
	if err := out.Validate(value); err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("widget: %s %q value rejected: %w", d.Type, d.ID, err)
		}
		return err
	}
	return nil
}
