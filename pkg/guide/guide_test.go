package guide

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func newGenerator(t *testing.T, options ...Option) *Generator {
	t.Helper()
	g, err := New(options...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func TestEntriesCoverEveryBuiltin(t *testing.T) {
	entries, err := newGenerator(t).Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	defs := inputs.Definitions()
	if len(entries) != len(defs) {
		t.Fatalf("got %d entries, want %d", len(entries), len(defs))
	}

	byType := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		byType[entry.Type] = entry
	}
	for _, def := range defs {
		entry, ok := byType[def.Type]
		if !ok {
			t.Fatalf("no entry for %s", def.Type)
		}
		if entry.Doc == "" || entry.Config == "" || entry.Output == "" || entry.Example == "" {
			t.Fatalf("incomplete entry for %s: %+v", def.Type, entry)
		}
	}
}

func TestEntriesRejectInvalidExampleValue(t *testing.T) {
	g := newGenerator(t, WithExamples(Example{
		Type:  inputs.TypeToggle,
		Doc:   "broken",
		Cell:  widget.Cell{ID: "flag", Type: inputs.TypeToggle},
		Value: "yes",
	}))
	if _, err := g.Entries(); err == nil {
		t.Fatal("expected a rejected example value")
	}
}

func TestCustomExampleReplacesBuiltin(t *testing.T) {
	g := newGenerator(t, WithExamples(Example{
		Type:  inputs.TypeText,
		Doc:   "Hostname entry.",
		Cell:  widget.Cell{ID: "host", Title: "Host", Type: inputs.TypeText},
		Value: "db-1",
	}))
	entries, err := g.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	for _, entry := range entries {
		if entry.Type != inputs.TypeText {
			continue
		}
		if entry.Doc != "Hostname entry." {
			t.Fatalf("builtin text example not replaced: %+v", entry)
		}
		return
	}
	t.Fatal("no text entry found")
}

func TestSkipsTypesMissingFromRegistry(t *testing.T) {
	reg := widget.NewRegistry()
	for _, def := range inputs.Definitions() {
		if def.Type == inputs.TypeToggle {
			reg.MustRegister(def)
		}
	}

	entries, err := newGenerator(t, WithRegistry(reg)).Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != inputs.TypeToggle {
		t.Fatalf("entries = %+v, want the toggle section only", entries)
	}
}

func TestGenerateMarkdown(t *testing.T) {
	out, err := newGenerator(t).Generate(Markdown)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(out, "# Widget guide") {
		t.Fatalf("missing title:\n%s", out)
	}
	for _, def := range inputs.Definitions() {
		if !strings.Contains(out, "## "+def.Type) {
			t.Fatalf("missing section for %s", def.Type)
		}
	}
	if !strings.Contains(out, "```yaml") || !strings.Contains(out, "```json") {
		t.Fatal("missing fenced config or value blocks")
	}
	if strings.Contains(out, "{{") || strings.Contains(out, "{%") {
		t.Fatalf("unexecuted template markers in output:\n%s", out)
	}
	if strings.Contains(out, "&quot;") || strings.Contains(out, "&lt;") {
		t.Fatalf("escaped markup leaked into markdown:\n%s", out)
	}
}

func TestGenerateMDXHasTabs(t *testing.T) {
	out, err := newGenerator(t).Generate(MDX)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"import Tabs", "<Tabs>", `<TabItem value="config"`, `<TabItem value="value"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in mdx output", want)
		}
	}
}

func TestGenerateUnknownFlavor(t *testing.T) {
	if _, err := newGenerator(t).Generate(Flavor("pdf")); err == nil {
		t.Fatal("expected unknown flavor error")
	}
}

func TestEngineRenderString(t *testing.T) {
	engine, err := NewEngine(WithTemplatesFS(TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderString("widget {{ name }}", map[string]any{"name": "slider"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "widget slider" {
		t.Fatalf("out = %q", out)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine, err := NewEngine(WithTemplatesFS(TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	err = engine.RegisterFilter("guidetestshout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	out, err := engine.RenderString("{{ name|guidetestshout }}", map[string]any{"name": "tag"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "TAG" {
		t.Fatalf("out = %q", out)
	}
	if err := engine.RegisterFilter("guidetestshout", func(input any, _ any) (any, error) {
		return input, nil
	}); err == nil {
		t.Fatal("re-registering a filter name must fail")
	}
}

func TestPreviewRendersMarkdown(t *testing.T) {
	out, err := Preview("# Rollout guide\n\nsome text", 40)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "Rollout guide") {
		t.Fatalf("preview lost the heading: %q", out)
	}
}
