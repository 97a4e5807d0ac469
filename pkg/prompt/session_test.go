package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/form"
	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

type stubDriver struct {
	err       error
	inputs    []string
	confirms  []bool
	selects   []int
	textAreas []string
	infos     []string

	inputPos   int
	confirmPos int
	selectPos  int
	textPos    int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.selectPos >= len(s.selects) {
		return 0, errors.New("no select scripted")
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

type changeRecord struct {
	ID    string
	Value any
}

func buildForm(t *testing.T, rows [][]widget.Cell, events *[]changeRecord) *form.Form {
	t.Helper()
	grid, err := widget.Build(inputs.DefaultRegistry(), rows)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	opts := []form.Option{form.WithWorkDir(t.TempDir())}
	if events != nil {
		opts = append(opts, form.WithOnChange(func(id string, value any) {
			*events = append(*events, changeRecord{ID: id, Value: value})
		}))
	}
	f, err := form.New(grid, opts...)
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFillWalksGridAndStaysSilent(t *testing.T) {
	var events []changeRecord
	f := buildForm(t, [][]widget.Cell{
		{
			{ID: "name", Title: "Name", Type: inputs.TypeText},
			{ID: "ready", Title: "Ready", Type: inputs.TypeToggle},
		},
		{
			{ID: "env", Title: "Environment", Type: inputs.TypeSelectList, Props: map[string]any{
				"options": []any{"dev", "staging", "prod"},
			}},
			{ID: "note", Type: inputs.TypeLabel, Props: map[string]any{"text": "read the runbook"}},
		},
		{
			{ID: "bio", Title: "Bio", Type: inputs.TypeTextarea},
		},
		{
			{ID: "score", Type: inputs.TypeNumber, Mode: "output"},
		},
	}, &events)

	driver := &stubDriver{
		inputs:    []string{"svc"},
		confirms:  []bool{true},
		selects:   []int{2},
		textAreas: []string{"hello\nworld"},
	}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"name":  "svc",
		"ready": true,
		"env":   "prod",
		"note":  "read the runbook",
		"bio":   "hello\nworld",
		"score": nil,
	}
	if diff := cmp.Diff(want, f.Collect()); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}
	if len(events) != 0 {
		t.Fatalf("fill must not fire change events, got %v", events)
	}
	if len(driver.infos) != 1 || driver.infos[0] != "read the runbook" {
		t.Fatalf("label text not shown, infos = %v", driver.infos)
	}
	if driver.inputPos != 1 || driver.confirmPos != 1 || driver.selectPos != 1 || driver.textPos != 1 {
		t.Fatalf("prompts not consumed as expected")
	}
}

func TestFillNumberScenarios(t *testing.T) {
	tests := []struct {
		name      string
		script    []string
		want      any
		wantInfos int
	}{
		{name: "empty keeps default", script: []string{""}, want: 10.0},
		{name: "garbage reprompts", script: []string{"abc", "7"}, want: 7.0, wantInfos: 1},
		{name: "over max clamps", script: []string{"200"}, want: 100.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := buildForm(t, [][]widget.Cell{{
				{ID: "n", Title: "Count", Type: inputs.TypeNumber, Props: map[string]any{
					"default": 10, "min": 5, "max": 100,
				}},
			}}, nil)
			driver := &stubDriver{inputs: tc.script}
			if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
				t.Fatalf("fill: %v", err)
			}
			if diff := cmp.Diff(tc.want, f.Collect()["n"]); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
			if len(driver.infos) != tc.wantInfos {
				t.Fatalf("infos = %v, want %d", driver.infos, tc.wantInfos)
			}
		})
	}
}

func TestFillHexRetriesUntilValid(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{{
		{ID: "c", Title: "Color", Type: inputs.TypeColor, Props: map[string]any{"default": "#336699"}},
	}}, nil)
	driver := &stubDriver{inputs: []string{"nope", "A1B2C3"}}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := f.Collect()["c"]; got != "#a1b2c3" {
		t.Fatalf("value = %v, want #a1b2c3", got)
	}
	if len(driver.infos) != 1 {
		t.Fatalf("expected one retry message, got %v", driver.infos)
	}
}

func TestFillPaletteSelects(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{{
		{ID: "c", Title: "Accent", Type: inputs.TypeColorPicker, Props: map[string]any{
			"palette": []any{"#ff0000", "#00ff00"},
		}},
	}}, nil)
	driver := &stubDriver{selects: []int{1}}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := f.Collect()["c"]; got != "#00ff00" {
		t.Fatalf("value = %v, want #00ff00", got)
	}
}

func TestFillReorderRebuildsOrder(t *testing.T) {
	var events []changeRecord
	f := buildForm(t, [][]widget.Cell{{
		{ID: "steps", Title: "Steps", Type: inputs.TypeSortableList, Props: map[string]any{
			"items": []any{"alpha", "beta", "gamma"},
		}},
	}}, &events)
	driver := &stubDriver{confirms: []bool{true}, selects: []int{1, 1}}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := []any{"beta", "gamma", "alpha"}
	if diff := cmp.Diff(want, f.Collect()["steps"]); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if len(events) != 0 {
		t.Fatalf("reorder must stay silent, got %v", events)
	}
}

func TestFillReorderDeclinedKeepsOrder(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{{
		{ID: "steps", Type: inputs.TypeSortableList, Props: map[string]any{
			"items": []any{"alpha", "beta"},
		}},
	}}, nil)
	driver := &stubDriver{confirms: []bool{false}}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := []any{"alpha", "beta"}
	if diff := cmp.Diff(want, f.Collect()["steps"]); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if driver.selectPos != 0 {
		t.Fatalf("declined reorder must not prompt for items")
	}
}

func TestFillTagsAppendsUntilEmptyLine(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{{
		{ID: "tags", Title: "Tags", Type: inputs.TypeTag, Props: map[string]any{
			"default": []any{"go"},
		}},
	}}, nil)
	driver := &stubDriver{inputs: []string{"wasm", ""}}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := []any{"go", "wasm"}
	if diff := cmp.Diff(want, f.Collect()["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestFillMultiTextPromptsPerField(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{{
		{ID: "addr", Title: "Address", Type: inputs.TypeMultiText, Props: map[string]any{
			"fields": []any{"host", "port"},
		}},
	}}, nil)
	driver := &stubDriver{inputs: []string{"localhost", "8080"}}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := map[string]any{"host": "localhost", "port": "8080"}
	if diff := cmp.Diff(want, f.Collect()["addr"]); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFillFileLoadsFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("alpha"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f := buildForm(t, [][]widget.Cell{{
		{ID: "doc", Title: "Document", Type: inputs.TypeFileUpload},
	}}, nil)
	driver := &stubDriver{inputs: []string{filepath.Join(dir, "missing.txt"), path}}
	if err := New(WithDriver(driver)).Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(driver.infos) != 1 {
		t.Fatalf("expected one retry message for the missing path, got %v", driver.infos)
	}

	got, ok := f.Collect()["doc"].(map[string]any)
	if !ok {
		t.Fatalf("collected value is %T, want map", f.Collect()["doc"])
	}
	if got["name"] != "a.txt" {
		t.Fatalf("file name = %v, want a.txt", got["name"])
	}
}

func TestFillAbortPropagates(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{{
		{ID: "name", Type: inputs.TypeText},
	}}, nil)
	driver := &stubDriver{err: ErrAborted}
	err := New(WithDriver(driver)).Fill(context.Background(), f)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
}

func TestFillHonorsCanceledContext(t *testing.T) {
	f := buildForm(t, [][]widget.Cell{{
		{ID: "name", Type: inputs.TypeText},
	}}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := &stubDriver{inputs: []string{"svc"}}
	err := New(WithDriver(driver)).Fill(ctx, f)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if driver.inputPos != 0 {
		t.Fatalf("no prompt should run after cancellation")
	}
}
