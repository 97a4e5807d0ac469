package inputs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/goliatone/go-formwidgets/pkg/upload"
)

func writeWavUpload(t *testing.T, frames int) upload.File {
	t.Helper()

	data := make([]int, frames)
	for i := range data {
		data[i] = 4000
	}

	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}

	up, err := upload.FromPath(path)
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}
	return up
}

func buildWaveform(t *testing.T, rec *recorder) *Waveform {
	t.Helper()
	in := buildInput(t, waveformPlaylistDefinition(), desc("track", TypeWaveformPlaylist, nil), rec)
	return in.(*Waveform)
}

func TestWaveformLoadsSource(t *testing.T) {
	in := buildWaveform(t, nil)
	src := writeWavUpload(t, 800)

	if err := in.SetValue(&src); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	got, ok := in.Value().(*upload.File)
	if !ok || got.Name != "take.wav" {
		t.Fatalf("Value = %#v, want the source file", in.Value())
	}
	if in.Playlist() == nil {
		t.Fatal("playlist not decoded")
	}
	if clips := in.Playlist().Clips(); len(clips) != 1 || clips[0].Frames() != 800 {
		t.Fatalf("clips = %+v, want one spanning 800 frames", clips)
	}
}

func TestWaveformSplitAndMergeKeys(t *testing.T) {
	rec := &recorder{}
	in := buildWaveform(t, rec)
	src := writeWavUpload(t, 800)
	if err := in.SetValue(src); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	press(in, "s")
	if got := len(in.Playlist().Clips()); got != 2 {
		t.Fatalf("clips after split = %d, want 2", got)
	}

	press(in, "m")
	if got := len(in.Playlist().Clips()); got != 1 {
		t.Fatalf("clips after merge = %d, want 1", got)
	}

	// Clip edits never touch the collected value.
	if len(rec.events) != 0 {
		t.Fatalf("clip edits fired %d change events", len(rec.events))
	}
}

func TestWaveformRenameKeys(t *testing.T) {
	in := buildWaveform(t, nil)
	src := writeWavUpload(t, 400)
	if err := in.SetValue(src); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	press(in, "r")
	// Clear the prefilled name, then type the new one.
	for range "take.wav" {
		press(in, "backspace")
	}
	typeText(in, "intro")
	press(in, "enter")

	if got := in.Playlist().Clips()[0].Name; got != "intro" {
		t.Fatalf("clip name = %q, want intro", got)
	}
}

func TestWaveformExportsThroughLeases(t *testing.T) {
	in := buildWaveform(t, nil)
	src := writeWavUpload(t, 800)
	if err := in.SetValue(src); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	press(in, "s", "e", "t")

	exports := in.Exports()
	if len(exports) != 2 {
		t.Fatalf("exports = %d, want clip and timeline", len(exports))
	}
	for _, path := range exports {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("export %s missing: %v", path, err)
		}
	}

	if err := in.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, path := range exports {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("export %s survived close: %v", path, err)
		}
	}
}

func TestWaveformDecodeFailureStaysInPlace(t *testing.T) {
	in := buildWaveform(t, nil)

	bad := writeUploadFixture(t, "noise.txt", "not audio at all")
	if err := in.SetValue(bad); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	if in.Playlist() != nil {
		t.Fatal("playlist decoded from a text file")
	}
	got, ok := in.Value().(*upload.File)
	if !ok || got.Name != "noise.txt" {
		t.Fatalf("Value = %#v, want the source kept", in.Value())
	}
	view := in.View()
	if !strings.Contains(view, "noise.txt") {
		t.Fatalf("view does not name the failing source: %q", view)
	}

	// A good source afterwards recovers the widget.
	good := writeWavUpload(t, 400)
	if err := in.SetValue(good); err != nil {
		t.Fatalf("SetValue good: %v", err)
	}
	if in.Playlist() == nil {
		t.Fatal("widget did not recover after a decodable source")
	}
}

func TestWaveformDeleteClip(t *testing.T) {
	in := buildWaveform(t, nil)
	src := writeWavUpload(t, 800)
	if err := in.SetValue(src); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	press(in, "s", "x")
	clips := in.Playlist().Clips()
	if len(clips) != 1 {
		t.Fatalf("clips after delete = %d, want 1", len(clips))
	}
	if got := in.Playlist().TimelineFrames(); got != 400 {
		t.Fatalf("timeline frames = %d, want 400", got)
	}
}
