package widget

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formwidgets/pkg/schema"
)

// Mode selects whether a widget collects user input or displays a value.
type Mode string

const (
	ModeInput  Mode = "input"
	ModeOutput Mode = "output"
)

// ParseMode maps raw cell metadata onto a Mode. Empty input defaults to
// ModeInput.
func ParseMode(raw string) (Mode, error) {
	switch raw {
	case "", string(ModeInput):
		return ModeInput, nil
	case string(ModeOutput):
		return ModeOutput, nil
	}
	return "", fmt.Errorf("widget: unknown mode %q", raw)
}

// Cell is the raw metadata configuring one widget in a row grid.
type Cell struct {
	ID    string         `yaml:"id" json:"id"`
	Title string         `yaml:"title" json:"title"`
	Type  string         `yaml:"type" json:"type"`
	Mode  string         `yaml:"mode,omitempty" json:"mode,omitempty"`
	Props map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
}

// Descriptor is the validated, immutable description of one widget instance.
// Build produces descriptors from cells; factories and schema resolution
// work from them.
type Descriptor struct {
	ID    string
	Title string
	Type  string
	Mode  Mode
	Props map[string]any

	factory Factory
	output  Resolver
}

// Factory returns the constructor bound to the descriptor's type.
func (d *Descriptor) Factory() Factory {
	if d == nil {
		return nil
	}
	return d.factory
}

// OutputSchema resolves the value schema for this widget instance.
func (d *Descriptor) OutputSchema() *schema.Schema {
	if d == nil || d.output == nil {
		return nil
	}
	return d.output(d)
}

// Interactive reports whether the widget accepts user interaction.
func (d *Descriptor) Interactive() bool {
	return d != nil && d.Mode == ModeInput
}

// Prop returns the raw prop value.
func (d *Descriptor) Prop(name string) (any, bool) {
	if d == nil || d.Props == nil {
		return nil, false
	}
	v, ok := d.Props[name]
	return v, ok
}

// String returns a string prop or fallback.
func (d *Descriptor) String(name, fallback string) string {
	v, ok := d.Prop(name)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

// Float returns a numeric prop or fallback. Integer and json.Number values
// are widened to float64.
func (d *Descriptor) Float(name string, fallback float64) float64 {
	v, ok := d.Prop(name)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return fallback
}

// Int returns an integer prop or fallback.
func (d *Descriptor) Int(name string, fallback int) int {
	v, ok := d.Prop(name)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return fallback
}

// Bool returns a boolean prop or fallback.
func (d *Descriptor) Bool(name string, fallback bool) bool {
	v, ok := d.Prop(name)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// Strings returns a string-list prop. Mixed or missing values yield nil.
func (d *Descriptor) Strings(name string) []string {
	v, ok := d.Prop(name)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	return nil
}

// Maps returns a list-of-objects prop. Non-object entries yield nil.
func (d *Descriptor) Maps(name string) []map[string]any {
	v, ok := d.Prop(name)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		out = append(out, m)
	}
	return out
}
