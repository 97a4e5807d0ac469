package inputs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColorCommitsCanonicalHex(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, colorDefinition(), desc("tint", TypeColor, nil), rec)

	typeText(in, "#FF8800")
	press(in, "enter")

	want := []changeRecord{{ID: "tint", Value: "#ff8800"}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if got := in.Value(); got != "#ff8800" {
		t.Fatalf("Value = %v, want #ff8800", got)
	}
}

func TestColorKeepsDefaultOnBadWrite(t *testing.T) {
	in := buildInput(t, colorDefinition(), desc("tint", TypeColor, map[string]any{
		"default": "#336699",
	}), nil)

	if err := in.SetValue(""); err == nil {
		t.Fatal("SetValue accepted an empty string")
	}
	if got := in.Value(); got != "#336699" {
		t.Fatalf("Value = %v, want default kept", got)
	}
}

func TestColorRejectsInvalidTyping(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, colorDefinition(), desc("tint", TypeColor, nil), rec)

	typeText(in, "xyz")
	press(in, "enter")

	if len(rec.events) != 0 {
		t.Fatalf("invalid input fired %d events", len(rec.events))
	}
	if got := in.Value(); got != "" {
		t.Fatalf("Value = %v, want unset", got)
	}
	if !strings.Contains(in.View(), "not a hex color") {
		t.Fatal("view does not surface the validation error")
	}
}

func TestColorSetValueNormalizes(t *testing.T) {
	in := buildInput(t, colorDefinition(), desc("tint", TypeColor, nil), nil)

	if err := in.SetValue("AABBCC"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if got := in.Value(); got != "#aabbcc" {
		t.Fatalf("Value = %v, want #aabbcc", got)
	}
}

func TestColorPickerNavigatesAndCommits(t *testing.T) {
	rec := &recorder{}
	in := buildInput(t, colorPickerDefinition(), desc("accent", TypeColorPicker, map[string]any{
		"palette": []any{"#ff0000", "#00ff00", "#0000ff"},
	}), rec)

	press(in, "right", "enter")
	want := []changeRecord{{ID: "accent", Value: "#00ff00"}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	// Moving past the palette edge stays put.
	press(in, "right", "right", "right", "enter")
	if got := in.Value(); got != "#0000ff" {
		t.Fatalf("Value = %v, want #0000ff", got)
	}
}

func TestColorPickerDefaultPalette(t *testing.T) {
	in := buildInput(t, colorPickerDefinition(), desc("accent", TypeColorPicker, nil), nil)

	picker := in.(*colorPicker)
	if len(picker.palette) == 0 {
		t.Fatal("default palette is empty")
	}
	seen := make(map[string]bool)
	for _, hex := range picker.palette {
		if len(hex) != 7 || hex[0] != '#' {
			t.Fatalf("palette entry %q is not #rrggbb", hex)
		}
		seen[hex] = true
	}
	if len(seen) < 12 {
		t.Fatalf("default palette has %d distinct colors, want at least 12", len(seen))
	}
}

func TestColorPickerRejectsBadPalette(t *testing.T) {
	_, err := colorPickerDefinition().New(testContext(t, nil), desc("accent", TypeColorPicker, map[string]any{
		"palette": []any{"#ff0000", "nope"},
	}))
	if err == nil {
		t.Fatal("invalid palette entry accepted")
	}
}
