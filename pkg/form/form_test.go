package form

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

type changeRecord struct {
	ID    string
	Value any
}

type recorder struct {
	events []changeRecord
}

func (r *recorder) onChange(id string, value any) {
	r.events = append(r.events, changeRecord{ID: id, Value: value})
}

func buildForm(t *testing.T, rows [][]widget.Cell, opts ...Option) *Form {
	t.Helper()
	grid, err := widget.Build(inputs.DefaultRegistry(), rows)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	f, err := New(grid, opts...)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	f.Init()
	return f
}

func sendKey(f *Form, msg tea.KeyMsg) {
	f.Update(msg)
}

func typeInto(f *Form, s string) {
	for _, r := range s {
		sendKey(f, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewSkipsOutputModeInFocusOrder(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{
		{
			{ID: "name", Title: "Name", Type: inputs.TypeText},
			{ID: "status", Title: "Status", Type: inputs.TypeLabel, Mode: "output"},
		},
		{
			{ID: "age", Title: "Age", Type: inputs.TypeNumber},
		},
	})

	if got := f.Focused(); got != "name" {
		t.Fatalf("initial focus = %q, want name", got)
	}

	sendKey(f, tea.KeyMsg{Type: tea.KeyTab})
	if got := f.Focused(); got != "age" {
		t.Fatalf("focus after tab = %q, want age (label skipped)", got)
	}
	sendKey(f, tea.KeyMsg{Type: tea.KeyTab})
	if got := f.Focused(); got != "name" {
		t.Fatalf("focus after wrap = %q, want name", got)
	}
	sendKey(f, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := f.Focused(); got != "age" {
		t.Fatalf("focus after shift+tab = %q, want age", got)
	}
}

func TestTypedCommitReachesCallback(t *testing.T) {
	rec := &recorder{}
	f := buildForm(t, [][]widget.Cell{
		{{ID: "name", Title: "Name", Type: inputs.TypeText}},
	}, WithOnChange(rec.onChange))

	typeInto(f, "ada")
	sendKey(f, tea.KeyMsg{Type: tea.KeyEnter})

	want := []changeRecord{{ID: "name", Value: "ada"}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectNormalizesValues(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{
		{
			{ID: "n", Title: "N", Type: inputs.TypeNumber},
			{ID: "tags", Title: "Tags", Type: inputs.TypeTag},
		},
		{
			{ID: "sep", Type: inputs.TypeDivider},
		},
	})

	if err := f.Seed(map[string]any{
		"n":    7,
		"tags": []any{"a", "b"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	want := map[string]any{
		"n":    7.0,
		"tags": []any{"a", "b"},
		"sep":  nil,
	}
	if diff := cmp.Diff(want, f.Collect()); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedIsSilentAndChecksIDs(t *testing.T) {
	rec := &recorder{}
	f := buildForm(t, [][]widget.Cell{
		{{ID: "on", Title: "On", Type: inputs.TypeToggle}},
	}, WithOnChange(rec.onChange))

	if err := f.Seed(map[string]any{"on": true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("seeding fired %d events", len(rec.events))
	}

	err := f.Seed(map[string]any{"missing": 1})
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("seed unknown id error = %v", err)
	}
}

func TestValidatePassesBuiltWidgets(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{
		{
			{ID: "env", Title: "Env", Type: inputs.TypeSelectList, Props: map[string]any{
				"options": []any{"dev", "prod"},
			}},
			{ID: "n", Title: "N", Type: inputs.TypeNumber, Props: map[string]any{
				"min": 0.0, "max": 10.0, "default": 5.0,
			}},
		},
	})

	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// stubInput stores whatever it is given, so schema violations can reach
// Validate.
type stubInput struct {
	desc   *widget.Descriptor
	value  any
	closed bool
}

func (s *stubInput) Value() any { return s.value }

func (s *stubInput) SetValue(v any) error { s.value = v; return nil }

func (s *stubInput) Descriptor() *widget.Descriptor { return s.desc }

func (s *stubInput) Init() tea.Cmd { return nil }

func (s *stubInput) Update(tea.Msg) tea.Cmd { return nil }

func (s *stubInput) View() string { return "" }

func (s *stubInput) Focus() tea.Cmd { return nil }

func (s *stubInput) Blur() {}

func (s *stubInput) Close() error { s.closed = true; return nil }

func stubRegistry(t *testing.T) *widget.Registry {
	t.Helper()
	reg := widget.NewRegistry()
	reg.MustRegister(widget.Definition{
		Type:   "IntStub",
		Props:  schema.New(openapi3.NewObjectSchema().WithAnyAdditionalProperties()),
		Output: widget.StaticResolver(schema.New(openapi3.NewIntegerSchema())),
		New: func(_ widget.Context, d *widget.Descriptor) (widget.Input, error) {
			return &stubInput{desc: d}, nil
		},
	})
	return reg
}

func TestValidateReportsEveryViolation(t *testing.T) {
	grid, err := widget.Build(stubRegistry(t), [][]widget.Cell{
		{
			{ID: "a1", Title: "A1", Type: "IntStub"},
			{ID: "a2", Title: "A2", Type: "IntStub"},
		},
	})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	f, err := New(grid)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	defer f.Close()

	if err := f.Seed(map[string]any{"a1": "nope", "a2": "also nope"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	verr := f.Validate()
	if verr == nil {
		t.Fatal("Validate accepted string values for integer widgets")
	}
	for _, id := range []string{"a1", "a2"} {
		if !strings.Contains(verr.Error(), id) {
			t.Errorf("validation error does not name %s: %v", id, verr)
		}
	}
}

func TestCloseReachesEveryWidget(t *testing.T) {
	grid, err := widget.Build(stubRegistry(t), [][]widget.Cell{
		{{ID: "a1", Title: "A1", Type: "IntStub"}},
		{{ID: "a2", Title: "A2", Type: "IntStub"}},
	})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	f, err := New(grid)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for _, id := range []string{"a1", "a2"} {
		in, ok := f.Input(id)
		if !ok {
			t.Fatalf("input %s missing", id)
		}
		if !in.(*stubInput).closed {
			t.Errorf("widget %s not closed", id)
		}
	}
}

func TestFromYAMLBuildsForm(t *testing.T) {
	src := []byte(`
rows:
  - - id: name
      title: Name
      type: TextInput
    - id: done
      title: Done
      type: ToggleInput
      props:
        default: true
`)
	f, err := FromYAML(inputs.DefaultRegistry(), src)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	defer f.Close()

	if got := f.Grid().Len(); got != 2 {
		t.Fatalf("grid len = %d, want 2", got)
	}
	if got := f.Collect()["done"]; got != true {
		t.Fatalf("done = %v, want true", got)
	}
}

func TestFromYAMLSurfacesAssemblyErrors(t *testing.T) {
	src := []byte(`
rows:
  - - id: x
      title: X
      type: TextInputt
`)
	_, err := FromYAML(inputs.DefaultRegistry(), src)
	if err == nil {
		t.Fatal("typo type accepted")
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("error lacks a suggestion: %v", err)
	}
}
