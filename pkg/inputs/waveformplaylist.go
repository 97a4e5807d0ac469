package inputs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/upload"
	"github.com/goliatone/go-formwidgets/pkg/waveform"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

const waveformColumns = 48

var peakGlyphs = []rune("▁▂▃▄▅▆▇█")

func waveformPlaylistDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeWaveformPlaylist,
		Props:  schema.New(props),
		Output: fileOutput(),
		New:    newWaveformPlaylist,
	}
}

// Waveform edits clips over one uploaded WAV track. The collected value is
// the source file itself; clip edits and exports never change it. Exports
// are written as leased artifacts that vanish when the widget closes.
//
// A source that fails to decode keeps the widget alive: the value stays set,
// the failure is shown in place, and a later value can replace it.
type Waveform struct {
	base
	file      *upload.File
	playlist  *waveform.Playlist
	decodeErr string

	selected int
	cursor   int
	renaming bool
	editor   textinput.Model

	leases  *upload.Leases
	exports []string
	status  string
}

func newWaveformPlaylist(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	editor := textinput.New()
	editor.Prompt = "name: "
	editor.PromptStyle = ctx.Styles.Accent
	editor.CharLimit = 64

	return &Waveform{
		base:   newBase(ctx, d),
		editor: editor,
		leases: upload.NewLeases(ctx.WorkDir),
	}, nil
}

func (in *Waveform) Value() any {
	if in.file == nil {
		return nil
	}
	return in.file
}

func (in *Waveform) SetValue(v any) error {
	switch f := v.(type) {
	case nil:
		in.reset(nil)
		return nil
	case upload.File:
		in.load(f)
		return nil
	case *upload.File:
		if f == nil {
			in.reset(nil)
			return nil
		}
		in.load(*f)
		return nil
	}
	return fmt.Errorf("inputs: %s wants a file, got %T", TypeWaveformPlaylist, v)
}

// Playlist exposes the decoded clip sequence, nil while no source decodes.
func (in *Waveform) Playlist() *waveform.Playlist { return in.playlist }

// Exports lists the artifact paths written so far, oldest first.
func (in *Waveform) Exports() []string {
	return append([]string(nil), in.exports...)
}

func (in *Waveform) Update(msg tea.Msg) tea.Cmd {
	if in.ignores(msg) {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok || in.playlist == nil {
		return nil
	}
	if in.renaming {
		return in.updateRename(key)
	}

	switch key.String() {
	case "up", "k":
		in.selectClip(in.selected - 1)
	case "down", "j":
		in.selectClip(in.selected + 1)
	case "left", "h":
		in.moveCursor(-in.cursorStep())
	case "right", "l":
		in.moveCursor(in.cursorStep())
	case "s":
		in.split()
	case "m":
		in.merge()
	case "r":
		in.beginRename()
		return in.editor.Focus()
	case "x":
		in.deleteClip()
	case "e":
		in.exportClip()
	case "t":
		in.exportTimeline()
	}
	return nil
}

func (in *Waveform) View() string {
	lines := []string{in.header()}
	switch {
	case in.file == nil:
		lines = append(lines, in.ctx.Styles.Muted.Render("(no audio)"))
	case in.decodeErr != "":
		lines = append(lines,
			in.ctx.Styles.Text.Render(in.file.Name),
			in.ctx.Styles.Error.Render(in.decodeErr))
	default:
		lines = append(lines, in.renderTrack()...)
	}
	if in.status != "" {
		lines = append(lines, in.hint(in.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (in *Waveform) Close() error {
	return in.leases.Close()
}

func (in *Waveform) load(f upload.File) {
	in.reset(&f)

	var (
		playlist *waveform.Playlist
		err      error
	)
	if f.Path != "" {
		playlist, err = waveform.DecodeFile(f.Path)
	} else {
		playlist, err = waveform.Decode(bytes.NewReader(f.Data), f.Name)
	}
	if err != nil {
		in.decodeErr = err.Error()
		return
	}
	in.playlist = playlist
	in.resetCursor()
}

func (in *Waveform) reset(f *upload.File) {
	in.file = f
	in.playlist = nil
	in.decodeErr = ""
	in.selected = 0
	in.cursor = 0
	in.renaming = false
	in.status = ""
}

func (in *Waveform) updateRename(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		in.renaming = false
		clip, ok := in.selectedClip()
		if !ok {
			return nil
		}
		if err := in.playlist.Rename(clip.ID, in.editor.Value()); err != nil {
			in.status = err.Error()
			return nil
		}
		in.status = "renamed to " + in.editor.Value()
		return nil
	case "esc":
		in.renaming = false
		return nil
	}

	var cmd tea.Cmd
	in.editor, cmd = in.editor.Update(key)
	return cmd
}

func (in *Waveform) renderTrack() []string {
	peaks := in.playlist.Peaks(waveformColumns)
	var wave strings.Builder
	for _, p := range peaks {
		idx := int(p * float64(len(peakGlyphs)))
		if idx >= len(peakGlyphs) {
			idx = len(peakGlyphs) - 1
		}
		wave.WriteRune(peakGlyphs[idx])
	}

	lines := []string{in.ctx.Styles.Accent.Render(wave.String())}
	clips := in.playlist.Clips()
	for i, clip := range clips {
		entry := fmt.Sprintf("%s %s", clip.Name, in.spanLabel(clip))
		switch {
		case i == in.selected && in.focused:
			entry = "> " + entry
			if in.cursor > 0 {
				entry += fmt.Sprintf(" | split at %s", in.timeLabel(in.cursor))
			}
			lines = append(lines, in.ctx.Styles.Selected.Render(entry))
		default:
			lines = append(lines, in.ctx.Styles.Text.Render("  "+entry))
		}
	}
	if in.renaming {
		lines = append(lines, in.editor.View())
	} else {
		lines = append(lines, in.hint("s split, m merge, r rename, x delete, e/t export"))
	}
	return lines
}

func (in *Waveform) spanLabel(clip waveform.Clip) string {
	return fmt.Sprintf("[%s - %s]", in.timeLabel(clip.Start), in.timeLabel(clip.End))
}

func (in *Waveform) timeLabel(frame int) string {
	rate := in.playlist.SampleRate()
	if rate == 0 {
		return "0.0s"
	}
	return fmt.Sprintf("%.1fs", float64(frame)/float64(rate))
}

func (in *Waveform) selectedClip() (waveform.Clip, bool) {
	clips := in.playlist.Clips()
	if in.selected < 0 || in.selected >= len(clips) {
		return waveform.Clip{}, false
	}
	return clips[in.selected], true
}

func (in *Waveform) selectClip(index int) {
	count := len(in.playlist.Clips())
	if index < 0 || index >= count {
		return
	}
	in.selected = index
	in.resetCursor()
}

// resetCursor parks the split point mid clip.
func (in *Waveform) resetCursor() {
	clip, ok := in.selectedClip()
	if !ok {
		in.cursor = 0
		return
	}
	in.cursor = clip.Frames() / 2
}

func (in *Waveform) cursorStep() int {
	step := in.playlist.SampleRate() / 10
	if step < 1 {
		step = 1
	}
	return step
}

func (in *Waveform) moveCursor(delta int) {
	clip, ok := in.selectedClip()
	if !ok {
		return
	}
	next := in.cursor + delta
	if next < 1 {
		next = 1
	}
	if next > clip.Frames()-1 {
		next = clip.Frames() - 1
	}
	in.cursor = next
}

func (in *Waveform) split() {
	clip, ok := in.selectedClip()
	if !ok {
		return
	}
	if _, _, err := in.playlist.SplitAt(clip.ID, in.cursor); err != nil {
		in.status = err.Error()
		return
	}
	in.resetCursor()
	in.status = "split " + clip.Name
}

func (in *Waveform) merge() {
	clip, ok := in.selectedClip()
	if !ok {
		return
	}
	merged, err := in.playlist.MergeWithNext(clip.ID)
	if err != nil {
		in.status = err.Error()
		return
	}
	in.resetCursor()
	in.status = "merged into " + merged.Name
}

func (in *Waveform) beginRename() {
	clip, ok := in.selectedClip()
	if !ok {
		return
	}
	in.renaming = true
	in.editor.SetValue(clip.Name)
	in.editor.CursorEnd()
}

func (in *Waveform) deleteClip() {
	clip, ok := in.selectedClip()
	if !ok {
		return
	}
	if err := in.playlist.Delete(clip.ID); err != nil {
		in.status = err.Error()
		return
	}
	if count := len(in.playlist.Clips()); in.selected >= count && in.selected > 0 {
		in.selected--
	}
	in.resetCursor()
	in.status = "deleted " + clip.Name
}

func (in *Waveform) exportClip() {
	clip, ok := in.selectedClip()
	if !ok {
		return
	}
	path, err := in.writeExport("clip-*.wav", func(p string) error {
		return in.playlist.ExportClipFile(clip.ID, p)
	})
	if err != nil {
		in.status = err.Error()
		return
	}
	if _, err := in.leases.Adopt(clip.ID, path); err != nil {
		in.status = err.Error()
		return
	}
	in.exports = append(in.exports, path)
	in.status = "exported " + filepath.Base(path)
}

func (in *Waveform) exportTimeline() {
	path, err := in.writeExport("timeline-*.wav", in.playlist.ExportTimelineFile)
	if err != nil {
		in.status = err.Error()
		return
	}
	if _, err := in.leases.Adopt("timeline", path); err != nil {
		in.status = err.Error()
		return
	}
	in.exports = append(in.exports, path)
	in.status = "exported " + filepath.Base(path)
}

func (in *Waveform) writeExport(pattern string, write func(path string) error) (string, error) {
	tmp, err := os.CreateTemp(in.ctx.WorkDir, pattern)
	if err != nil {
		return "", fmt.Errorf("inputs: export: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	if err := write(path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
