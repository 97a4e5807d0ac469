// Package formwidgets assembles terminal form widgets from row documents
// and drives them as bubbletea programs or line-mode prompt sessions.
//
// The root package re-exports the common entry points; the pkg tree holds
// the full API: pkg/widget for cells, grids and the registry, pkg/inputs
// for the built-in widget types, pkg/form for the interactive model,
// pkg/prompt for line-mode filling and pkg/guide for published docs.
package formwidgets

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwidgets/pkg/form"
	"github.com/goliatone/go-formwidgets/pkg/guide"
	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/prompt"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

// Cell is the YAML/JSON unit describing one widget in a row document.
type Cell = widget.Cell

// Grid is an assembled widget grid in row-major order.
type Grid = widget.Grid

// Descriptor is a validated cell bound to its registry definition.
type Descriptor = widget.Descriptor

// Registry stores widget definitions by type name.
type Registry = widget.Registry

// Form drives an assembled grid as a bubbletea model.
type Form = form.Form

// Option configures a form.
type Option = form.Option

// DefaultRegistry returns the registry holding every built-in widget type.
func DefaultRegistry() *Registry {
	return inputs.DefaultRegistry()
}

// Build assembles rows of cells against the built-in registry, failing fast
// on the first invalid cell.
func Build(rows [][]Cell) (Grid, error) {
	return widget.Build(inputs.DefaultRegistry(), rows)
}

// NewForm builds a form over an already assembled grid.
func NewForm(grid Grid, opts ...Option) (*Form, error) {
	return form.New(grid, opts...)
}

// FormFromYAML decodes a row document and builds its form against the
// built-in registry. It is the simplest entry point for callers that just
// want a runnable form.
func FormFromYAML(src []byte, opts ...Option) (*Form, error) {
	return form.FromYAML(inputs.DefaultRegistry(), src, opts...)
}

// FormFromJSON decodes a JSON row document and builds its form against the
// built-in registry.
func FormFromJSON(src []byte, opts ...Option) (*Form, error) {
	return form.FromJSON(inputs.DefaultRegistry(), src, opts...)
}

// Run drives the form in its own terminal program until the user quits or
// the context is canceled, then returns the collected values.
func Run(ctx context.Context, f *Form) (map[string]any, error) {
	return form.Run(ctx, f)
}

// Fill walks the form as a sequential line-mode session instead of a
// full-screen program.
func Fill(ctx context.Context, f *Form, opts ...prompt.Option) error {
	return prompt.New(opts...).Fill(ctx, f)
}

// GenerateGuide renders the widget guide for every registered type.
func GenerateGuide(flavor guide.Flavor, opts ...guide.Option) (string, error) {
	gen, err := guide.New(opts...)
	if err != nil {
		return "", err
	}
	return gen.Generate(flavor)
}

// WithOnChange registers the callback fired after each committed value.
func WithOnChange(fn widget.OnChange) Option {
	return form.WithOnChange(fn)
}

// WithTheme styles the form from a go-theme selection so widget chrome
// follows the host application's palette.
func WithTheme(sel *theme.Selection) Option {
	return form.WithTheme(sel)
}

// WithWorkDir sets the directory upload widgets lease artifacts under.
func WithWorkDir(dir string) Option {
	return form.WithWorkDir(dir)
}
