package waveform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// writeTestWAV writes a mono 16-bit track whose first half is silence and
// whose second half sits at half scale, so peak buckets are predictable.
func writeTestWAV(t *testing.T, name string, frames int) string {
	t.Helper()

	data := make([]int, frames)
	for i := frames / 2; i < frames; i++ {
		data[i] = 16384
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture file: %v", err)
	}
	return path
}

func decodeFrames(t *testing.T, path string) int {
	t.Helper()
	p, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return p.Frames()
}

func TestDecodeFile(t *testing.T) {
	path := writeTestWAV(t, "take1.wav", 400)

	p, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if got := p.Frames(); got != 400 {
		t.Fatalf("Frames = %d, want 400", got)
	}
	if got := p.Channels(); got != 1 {
		t.Fatalf("Channels = %d, want 1", got)
	}
	if got := p.SampleRate(); got != 8000 {
		t.Fatalf("SampleRate = %d, want 8000", got)
	}

	clips := p.Clips()
	if len(clips) != 1 {
		t.Fatalf("Clips = %d entries, want 1", len(clips))
	}
	want := Clip{Name: "take1.wav", Start: 0, End: 400}
	if diff := cmp.Diff(want, clips[0], cmpopts.IgnoreFields(Clip{}, "ID")); diff != "" {
		t.Fatalf("initial clip mismatch (-want +got):\n%s", diff)
	}
	if clips[0].ID == "" {
		t.Fatal("initial clip has empty id")
	}
}

func TestDecodeFileRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := DecodeFile(path); err == nil {
		t.Fatal("DecodeFile accepted a text file")
	}
}

func TestSplitAt(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	orig := p.Clips()[0]

	left, right, err := p.SplitAt(orig.ID, 150)
	if err != nil {
		t.Fatalf("SplitAt: %v", err)
	}
	if left.ID != orig.ID {
		t.Fatalf("left id = %q, want original %q", left.ID, orig.ID)
	}
	if right.ID == orig.ID || right.ID == "" {
		t.Fatalf("right id = %q, want fresh id", right.ID)
	}
	if left.Name != "take.wav" || right.Name != "take.wav" {
		t.Fatalf("split names = %q, %q, want both take.wav", left.Name, right.Name)
	}

	clips := p.Clips()
	if len(clips) != 2 {
		t.Fatalf("Clips = %d entries, want 2", len(clips))
	}
	if clips[0].Start != 0 || clips[0].End != 150 || clips[1].Start != 150 || clips[1].End != 400 {
		t.Fatalf("split bounds = %+v", clips)
	}
	if got := p.TimelineFrames(); got != 400 {
		t.Fatalf("TimelineFrames = %d, want 400", got)
	}
}

func TestSplitAtRejectsBadOffsets(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := p.Clips()[0].ID

	for _, offset := range []int{0, -1, 400, 500} {
		if _, _, err := p.SplitAt(id, offset); err == nil {
			t.Fatalf("SplitAt(%d) succeeded, want error", offset)
		}
	}
	if _, _, err := p.SplitAt("missing", 10); err == nil {
		t.Fatal("SplitAt on unknown clip succeeded")
	}
}

func TestMergeWithNext(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	orig := p.Clips()[0]
	if _, _, err := p.SplitAt(orig.ID, 150); err != nil {
		t.Fatalf("SplitAt: %v", err)
	}

	merged, err := p.MergeWithNext(orig.ID)
	if err != nil {
		t.Fatalf("MergeWithNext: %v", err)
	}
	if merged.Start != 0 || merged.End != 400 {
		t.Fatalf("merged bounds = [%d,%d), want [0,400)", merged.Start, merged.End)
	}
	if merged.ID != orig.ID {
		t.Fatalf("merged id = %q, want %q", merged.ID, orig.ID)
	}
	if got := len(p.Clips()); got != 1 {
		t.Fatalf("Clips = %d entries after merge, want 1", got)
	}
}

func TestMergeWithNextRejectsGaps(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	first := p.Clips()[0]
	if _, _, err := p.SplitAt(first.ID, 100); err != nil {
		t.Fatalf("first split: %v", err)
	}
	middle := p.Clips()[1]
	if _, _, err := p.SplitAt(middle.ID, 100); err != nil {
		t.Fatalf("second split: %v", err)
	}
	if err := p.Delete(middle.ID); err != nil {
		t.Fatalf("delete middle: %v", err)
	}

	if _, err := p.MergeWithNext(first.ID); err == nil {
		t.Fatal("MergeWithNext across a deleted region succeeded")
	}

	last := p.Clips()[len(p.Clips())-1]
	if _, err := p.MergeWithNext(last.ID); err == nil {
		t.Fatal("MergeWithNext on the last clip succeeded")
	}
}

func TestRename(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := p.Clips()[0].ID

	if err := p.Rename(id, "intro"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := p.Clips()[0].Name; got != "intro" {
		t.Fatalf("name = %q, want intro", got)
	}
	if err := p.Rename(id, ""); err == nil {
		t.Fatal("Rename to empty string succeeded")
	}
	if err := p.Rename("missing", "x"); err == nil {
		t.Fatal("Rename on unknown clip succeeded")
	}
}

func TestDeleteShortensTimeline(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	orig := p.Clips()[0]
	if _, _, err := p.SplitAt(orig.ID, 150); err != nil {
		t.Fatalf("SplitAt: %v", err)
	}

	if err := p.Delete(orig.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := p.TimelineFrames(); got != 250 {
		t.Fatalf("TimelineFrames = %d, want 250", got)
	}
	if got := p.Frames(); got != 400 {
		t.Fatalf("Frames = %d after delete, want 400 (track data untouched)", got)
	}
}

func TestExportClipFile(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	orig := p.Clips()[0]
	left, _, err := p.SplitAt(orig.ID, 150)
	if err != nil {
		t.Fatalf("SplitAt: %v", err)
	}

	out := filepath.Join(t.TempDir(), "clip.wav")
	if err := p.ExportClipFile(left.ID, out); err != nil {
		t.Fatalf("ExportClipFile: %v", err)
	}
	if got := decodeFrames(t, out); got != 150 {
		t.Fatalf("exported clip frames = %d, want 150", got)
	}
}

func TestExportTimelineFile(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	orig := p.Clips()[0]
	left, _, err := p.SplitAt(orig.ID, 150)
	if err != nil {
		t.Fatalf("SplitAt: %v", err)
	}
	if err := p.Delete(left.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	out := filepath.Join(t.TempDir(), "timeline.wav")
	if err := p.ExportTimelineFile(out); err != nil {
		t.Fatalf("ExportTimelineFile: %v", err)
	}
	if got := decodeFrames(t, out); got != 250 {
		t.Fatalf("exported timeline frames = %d, want 250", got)
	}
}

func TestExportTimelineEmpty(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := p.Delete(p.Clips()[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	out := filepath.Join(t.TempDir(), "empty.wav")
	if err := p.ExportTimelineFile(out); err == nil {
		t.Fatal("ExportTimelineFile on empty timeline succeeded")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("empty export left a file behind: %v", err)
	}
}

func TestPeaks(t *testing.T) {
	p, err := DecodeFile(writeTestWAV(t, "take.wav", 400))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	peaks := p.Peaks(4)
	if len(peaks) != 4 {
		t.Fatalf("Peaks = %d buckets, want 4", len(peaks))
	}
	if peaks[0] != 0 || peaks[1] != 0 {
		t.Fatalf("silent half peaks = %v, want zeros", peaks[:2])
	}
	if peaks[2] != 0.5 || peaks[3] != 0.5 {
		t.Fatalf("half-scale peaks = %v, want 0.5", peaks[2:])
	}
	if got := p.Peaks(0); got != nil {
		t.Fatalf("Peaks(0) = %v, want nil", got)
	}
}
