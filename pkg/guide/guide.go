// Package guide renders markdown documentation for registered widget types:
// one working row configuration per type plus the value shape it commits.
// Example values are checked against each type's output schema before
// rendering, so a published guide can never show a value the widget would
// reject.
package guide

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

// Flavor selects the guide output dialect.
type Flavor string

const (
	// Markdown is the plain flavor, one section per type.
	Markdown Flavor = "markdown"
	// MDX is the docs-site flavor with config/value tabs.
	MDX Flavor = "mdx"
)

func (f Flavor) templateName() (string, error) {
	switch f {
	case Markdown, "":
		return "templates/guide.md.tpl", nil
	case MDX:
		return "templates/guide.mdx.tpl", nil
	}
	return "", fmt.Errorf("guide: unknown flavor %q", f)
}

// Example couples a widget type with a working configuration and a value its
// output schema accepts.
type Example struct {
	Type  string
	Doc   string
	Cell  widget.Cell
	Value any
}

// Entry is one rendered guide section.
type Entry struct {
	Type    string
	Doc     string
	Config  string // YAML of the example cell
	Output  string // human summary of the value shape
	Example string // JSON of the example value
}

// Generator builds guide documents for the types a registry knows.
type Generator struct {
	registry *widget.Registry
	engine   TemplateRenderer
	title    string
	intro    string
	extras   []Example
}

// Option configures a Generator.
type Option func(*Generator)

// WithRegistry documents a custom registry instead of the builtin one.
func WithRegistry(r *widget.Registry) Option {
	return func(g *Generator) {
		if r != nil {
			g.registry = r
		}
	}
}

// WithEngine swaps the template engine.
func WithEngine(engine TemplateRenderer) Option {
	return func(g *Generator) {
		if engine != nil {
			g.engine = engine
		}
	}
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(title) != "" {
			g.title = title
		}
	}
}

// WithIntro overrides the paragraph under the title.
func WithIntro(intro string) Option {
	return func(g *Generator) { g.intro = intro }
}

// WithExamples adds or replaces examples. An example whose Type matches a
// builtin replaces the builtin section; new types are appended.
func WithExamples(extras ...Example) Option {
	return func(g *Generator) { g.extras = append(g.extras, extras...) }
}

// New constructs a Generator rendering through the embedded templates unless
// an engine is supplied.
func New(options ...Option) (*Generator, error) {
	g := &Generator{
		registry: inputs.DefaultRegistry(),
		title:    "Widget guide",
		intro:    "Each widget type below shows one working row configuration and the value shape it commits.",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.engine == nil {
		engine, err := NewEngine(WithTemplatesFS(TemplatesFS()))
		if err != nil {
			return nil, err
		}
		g.engine = engine
	}
	return g, nil
}

// Generate renders the guide for every documented type the registry knows.
func (g *Generator) Generate(flavor Flavor) (string, error) {
	name, err := flavor.templateName()
	if err != nil {
		return "", err
	}
	entries, err := g.Entries()
	if err != nil {
		return "", err
	}
	return g.engine.RenderTemplate(name, map[string]any{
		"title":   g.title,
		"intro":   g.intro,
		"entries": entries,
	})
}

// Entries validates every example and returns the guide sections in
// registration order. Types the registry does not know are skipped; an
// example value the output schema rejects is an error.
func (g *Generator) Entries() ([]Entry, error) {
	examples := builtinExamples()
	for _, extra := range g.extras {
		replaced := false
		for i := range examples {
			if examples[i].Type == extra.Type {
				examples[i] = extra
				replaced = true
				break
			}
		}
		if !replaced {
			examples = append(examples, extra)
		}
	}

	entries := make([]Entry, 0, len(examples))
	for _, ex := range examples {
		if !g.registry.Has(ex.Type) {
			continue
		}
		entry, err := g.entry(ex)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (g *Generator) entry(ex Example) (Entry, error) {
	d, err := widget.Describe(g.registry, ex.Cell)
	if err != nil {
		return Entry{}, fmt.Errorf("guide: %s example: %w", ex.Type, err)
	}
	if err := widget.ValidateValue(d, ex.Value); err != nil {
		return Entry{}, fmt.Errorf("guide: %s example: %w", ex.Type, err)
	}

	config, err := yaml.Marshal(ex.Cell)
	if err != nil {
		return Entry{}, fmt.Errorf("guide: %s example config: %w", ex.Type, err)
	}
	example, err := json.Marshal(schema.Normalize(ex.Value))
	if err != nil {
		return Entry{}, fmt.Errorf("guide: %s example value: %w", ex.Type, err)
	}

	return Entry{
		Type:    ex.Type,
		Doc:     ex.Doc,
		Config:  strings.TrimRight(string(config), "\n"),
		Output:  describeSchema(d.OutputSchema()),
		Example: string(example),
	}, nil
}

// describeSchema summarizes a value schema in one phrase.
func describeSchema(s *schema.Schema) string {
	raw := s.Raw()
	if raw == nil {
		return "any"
	}
	desc := describeRaw(raw)
	if raw.Nullable && desc != "null" {
		desc += " or null"
	}
	return desc
}

func describeRaw(raw *openapi3.Schema) string {
	if len(raw.Enum) > 0 {
		parts := make([]string, 0, len(raw.Enum))
		for _, v := range raw.Enum {
			parts = append(parts, fmt.Sprintf("%v", v))
		}
		return "one of " + strings.Join(parts, ", ")
	}

	types := raw.Type
	switch {
	case types == nil || len(*types) == 0:
		if raw.Nullable {
			return "null"
		}
		return "any"
	case types.Is("string"):
		if raw.Pattern != "" {
			return fmt.Sprintf("string matching %s", raw.Pattern)
		}
		if raw.MaxLength != nil {
			return fmt.Sprintf("string of at most %d characters", *raw.MaxLength)
		}
		return "string"
	case types.Is("integer"):
		return describeNumeric(raw, "integer")
	case types.Is("number"):
		return describeNumeric(raw, "number")
	case types.Is("boolean"):
		return "boolean"
	case types.Is("array"):
		if raw.Items != nil && raw.Items.Value != nil {
			return "list of " + describeRaw(raw.Items.Value)
		}
		return "list"
	case types.Is("object"):
		if len(raw.Properties) > 0 {
			keys := make([]string, 0, len(raw.Properties))
			for name := range raw.Properties {
				keys = append(keys, name)
			}
			sort.Strings(keys)
			return "object with keys " + strings.Join(keys, ", ")
		}
		return "object"
	}
	return "any"
}

func describeNumeric(raw *openapi3.Schema, kind string) string {
	switch {
	case raw.Min != nil && raw.Max != nil:
		return fmt.Sprintf("%s between %s and %s", kind, formatBound(*raw.Min), formatBound(*raw.Max))
	case raw.Min != nil:
		return fmt.Sprintf("%s of at least %s", kind, formatBound(*raw.Min))
	case raw.Max != nil:
		return fmt.Sprintf("%s of at most %s", kind, formatBound(*raw.Max))
	}
	return kind
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// builtinExamples documents every builtin type, in registration order.
func builtinExamples() []Example {
	file := map[string]any{
		"id":   "4f8a2c1d-9e7b-4c3a-8d21-5f6e7a8b9c0d",
		"name": "cover.png",
		"path": "uploads/cover.png",
		"size": 2048,
		"mime": "image/png",
	}
	wav := map[string]any{
		"id":   "7c31b9e4-2d5f-4a68-9b07-e1f2a3b4c5d6",
		"name": "take.wav",
		"path": "uploads/take.wav",
		"size": 96044,
		"mime": "audio/wav",
	}

	return []Example{
		{
			Type: inputs.TypeText,
			Doc:  "Single line of text.",
			Cell: widget.Cell{ID: "name", Title: "Service name", Type: inputs.TypeText, Props: map[string]any{
				"placeholder": "orders-api",
			}},
			Value: "orders-api",
		},
		{
			Type: inputs.TypeTextarea,
			Doc:  "Multi-line text; enter inserts newlines.",
			Cell: widget.Cell{ID: "notes", Title: "Release notes", Type: inputs.TypeTextarea, Props: map[string]any{
				"rows": 3,
			}},
			Value: "Rolled back the cache change.\nRe-run the smoke suite.",
		},
		{
			Type: inputs.TypeNumber,
			Doc:  "Numeric entry. Typed values clamp into the configured range, arrows step.",
			Cell: widget.Cell{ID: "replicas", Title: "Replicas", Type: inputs.TypeNumber, Props: map[string]any{
				"min": 1, "max": 10, "step": 1, "default": 3,
			}},
			Value: 3,
		},
		{
			Type: inputs.TypeSlider,
			Doc:  "Horizontal slider snapping to the step grid.",
			Cell: widget.Cell{ID: "volume", Title: "Volume", Type: inputs.TypeSlider, Props: map[string]any{
				"min": 0, "max": 100, "step": 5, "default": 40,
			}},
			Value: 40,
		},
		{
			Type: inputs.TypeToggle,
			Doc:  "Boolean switch; space or enter flips it.",
			Cell: widget.Cell{ID: "enabled", Title: "Enabled", Type: inputs.TypeToggle, Props: map[string]any{
				"default": true,
			}},
			Value: true,
		},
		{
			Type: inputs.TypeSelectList,
			Doc:  "One choice from a vertical list.",
			Cell: widget.Cell{ID: "env", Title: "Environment", Type: inputs.TypeSelectList, Props: map[string]any{
				"options": []any{"dev", "staging", "prod"}, "default": "dev",
			}},
			Value: "staging",
		},
		{
			Type: inputs.TypeRadioGroup,
			Doc:  "One choice rendered as radio marks.",
			Cell: widget.Cell{ID: "proto", Title: "Protocol", Type: inputs.TypeRadioGroup, Props: map[string]any{
				"options": []any{"tcp", "udp"},
			}},
			Value: "tcp",
		},
		{
			Type: inputs.TypeColor,
			Doc:  "Hex color entry with a live swatch.",
			Cell: widget.Cell{ID: "brand", Title: "Brand color", Type: inputs.TypeColor, Props: map[string]any{
				"default": "#336699",
			}},
			Value: "#a1b2c3",
		},
		{
			Type: inputs.TypeColorPicker,
			Doc:  "Swatch grid picker; configure a palette or use the generated one.",
			Cell: widget.Cell{ID: "accent", Title: "Accent", Type: inputs.TypeColorPicker, Props: map[string]any{
				"palette": []any{"#ff0000", "#00ff00", "#0000ff"},
			}},
			Value: "#00ff00",
		},
		{
			Type: inputs.TypeTag,
			Doc:  "Deduplicated string list; enter adds, backspace removes the last.",
			Cell: widget.Cell{ID: "tags", Title: "Tags", Type: inputs.TypeTag, Props: map[string]any{
				"default": []any{"go"},
			}},
			Value: []string{"go", "wasm"},
		},
		{
			Type: inputs.TypeButton,
			Doc:  "Emits the click timestamp in Unix milliseconds; null until pressed.",
			Cell: widget.Cell{ID: "deploy", Title: "Deploy", Type: inputs.TypeButton, Props: map[string]any{
				"label": "Deploy now",
			}},
			Value: int64(1700000000000),
		},
		{
			Type: inputs.TypeLabel,
			Doc:  "Static text, optionally syntax highlighted with display: code.",
			Cell: widget.Cell{ID: "help", Title: "Help", Type: inputs.TypeLabel, Props: map[string]any{
				"text": "Read the deploy runbook before rolling out.",
			}},
			Value: "Read the deploy runbook before rolling out.",
		},
		{
			Type: inputs.TypeRawHTML,
			Doc:  "Raw markup block, sanitized when sanitize is set.",
			Cell: widget.Cell{ID: "banner", Title: "Banner", Type: inputs.TypeRawHTML, Props: map[string]any{
				"html": "<p>Service dashboard</p>", "sanitize": true,
			}},
			Value: "<p>Service dashboard</p>",
		},
		{
			Type:  inputs.TypeDivider,
			Doc:   "Horizontal rule; never carries a value.",
			Cell:  widget.Cell{ID: "sep", Type: inputs.TypeDivider},
			Value: nil,
		},
		{
			Type: inputs.TypeProgressBar,
			Doc:  "Read-only percent gauge.",
			Cell: widget.Cell{ID: "rollout", Title: "Rollout", Type: inputs.TypeProgressBar, Props: map[string]any{
				"default": 30,
			}},
			Value: 65,
		},
		{
			Type: inputs.TypeMultiText,
			Doc:  "One editor per configured field; commits the whole map.",
			Cell: widget.Cell{ID: "addr", Title: "Address", Type: inputs.TypeMultiText, Props: map[string]any{
				"fields": []any{"host", "port"},
			}},
			Value: map[string]any{"host": "localhost", "port": "8080"},
		},
		{
			Type: inputs.TypeSortableList,
			Doc:  "Reorderable list; grab with space, move with arrows.",
			Cell: widget.Cell{ID: "steps", Title: "Steps", Type: inputs.TypeSortableList, Props: map[string]any{
				"items": []any{"build", "test", "deploy"},
			}},
			Value: []string{"test", "build", "deploy"},
		},
		{
			Type:  inputs.TypeFileUpload,
			Doc:   "Single file via picker, clipboard paste or drop directory.",
			Cell:  widget.Cell{ID: "cover", Title: "Cover image", Type: inputs.TypeFileUpload},
			Value: file,
		},
		{
			Type: inputs.TypeFilesUpload,
			Doc:  "File collection with the same sources, deduplicated by path.",
			Cell: widget.Cell{ID: "attachments", Title: "Attachments", Type: inputs.TypeFilesUpload, Props: map[string]any{
				"maxFiles": 3,
			}},
			Value: []any{file},
		},
		{
			Type:  inputs.TypeWaveformPlaylist,
			Doc:   "WAV editor: split, merge, rename, delete clips and export through leases.",
			Cell:  widget.Cell{ID: "take", Title: "Take", Type: inputs.TypeWaveformPlaylist},
			Value: wav,
		},
	}
}
