package inputs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagAddsAndDedupes(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, tagDefinition(), desc("tags", TypeTag, nil), rec)

	typeText(in, "go")
	press(in, "enter")
	typeText(in, "go")
	press(in, "enter")
	typeText(in, "wasm")
	press(in, "enter")

	if diff := cmp.Diff([]string{"go", "wasm"}, in.Value()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	// The duplicate neither commits nor clears the editor.
	want := []changeRecord{
		{ID: "tags", Value: []string{"go"}},
		{ID: "tags", Value: []string{"go", "wasm"}},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTagBackspaceRemovesLast(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, tagDefinition(), desc("tags", TypeTag, map[string]any{
		"default": []any{"a", "b"},
	}), rec)

	press(in, "backspace")
	if diff := cmp.Diff([]string{"a"}, in.Value()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if len(rec.events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.events))
	}
}

func TestTagTrimsAndRejectsEmpty(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, tagDefinition(), desc("tags", TypeTag, nil), rec)

	typeText(in, "  spaced  ")
	press(in, "enter")
	press(in, "enter")

	if diff := cmp.Diff([]string{"spaced"}, in.Value()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if len(rec.events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.events))
	}
}

func TestTagSetValueReplacesSilently(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, tagDefinition(), desc("tags", TypeTag, nil), rec)

	if err := in.SetValue([]any{"x", "y", "x"}); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, in.Value()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if len(rec.events) != 0 {
		t.Fatalf("SetValue fired %d events", len(rec.events))
	}
	if err := in.SetValue([]any{"ok", 3}); err == nil {
		t.Fatal("mixed list accepted")
	}
}

func TestSortableGrabMoveDrop(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, sortableListDefinition(), desc("order", TypeSortableList, map[string]any{
		"items": []any{"first", "second", "third"},
	}), rec)

	// Grab the first item, carry it two places down, drop it.
	press(in, " ", "down", "down", " ")

	if diff := cmp.Diff([]string{"second", "third", "first"}, in.Value()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	want := []changeRecord{{ID: "order", Value: []string{"second", "third", "first"}}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSortableDropWithoutMoveIsSilent(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, sortableListDefinition(), desc("order", TypeSortableList, map[string]any{
		"items": []any{"a", "b"},
	}), rec)

	press(in, " ", " ")
	if len(rec.events) != 0 {
		t.Fatalf("no-op drop fired %d events", len(rec.events))
	}

	// Cursor moves without a grab never commit.
	press(in, "down", "up")
	if len(rec.events) != 0 {
		t.Fatalf("cursor moves fired %d events", len(rec.events))
	}
}

func TestSortableSetValueReplacesOrder(t *testing.T) {
	in := buildInput(t, sortableListDefinition(), desc("order", TypeSortableList, map[string]any{
		"items": []any{"a", "b"},
	}), nil)

	if err := in.SetValue([]string{"b", "a"}); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, in.Value()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortableEmptyPushFallsBackToItems(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, sortableListDefinition(), desc("order", TypeSortableList, map[string]any{
		"items": []any{"plan", "draft", "review"},
	}), rec)

	if err := in.SetValue([]string{}); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if diff := cmp.Diff([]string{"plan", "draft", "review"}, in.Value()); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}

	// Reordering still works on the restored list: carry "plan" to the end.
	press(in, " ", "down", "down", " ")
	want := []changeRecord{{ID: "order", Value: []string{"draft", "review", "plan"}}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiTextCommitsKeyedMap(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, multiTextDefinition(), desc("conn", TypeMultiText, map[string]any{
		"fields": []any{"host", "port"},
	}), rec)

	typeText(in, "localhost")
	press(in, "down")
	typeText(in, "5432")
	press(in, "enter")

	want := []changeRecord{{ID: "conn", Value: map[string]any{
		"host": "localhost",
		"port": "5432",
	}}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiTextSetValueFillsKnownFields(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, multiTextDefinition(), desc("conn", TypeMultiText, map[string]any{
		"fields": []any{"host", "port"},
	}), rec)

	if err := in.SetValue(map[string]any{"host": "db.internal"}); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	want := map[string]any{"host": "db.internal", "port": ""}
	if diff := cmp.Diff(want, in.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if len(rec.events) != 0 {
		t.Fatalf("SetValue fired %d events", len(rec.events))
	}

	if err := in.SetValue(map[string]any{"user": "x"}); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestMultiTextRequiresFields(t *testing.T) {
	_, err := multiTextDefinition().New(testContext(t, nil), desc("conn", TypeMultiText, nil))
	if err == nil {
		t.Fatal("missing fields prop accepted")
	}
}
