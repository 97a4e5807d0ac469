package inputs

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/upload"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

func filesUploadDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("browseDir", openapi3.NewStringSchema()).
		WithProperty("dropDir", openapi3.NewStringSchema()).
		WithProperty("maxFiles", openapi3.NewIntegerSchema().WithMin(1)).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeFilesUpload,
		Props:  schema.New(props),
		Output: filesOutput(),
		New:    newFilesUpload,
	}
}

// filesUpload collects a file list through the same channels as the single
// upload: browsing, pasting, and a watched drop directory. Files dedupe by
// path; every addition or removal commits the full list.
type filesUpload struct {
	base
	files    []*upload.File
	maxFiles int
	leases   *upload.Leases
	watcher  *upload.DropWatcher
	picker   filepicker.Model
	picking  bool
	cursor   int
	status   string
}

func newFilesUpload(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	in := &filesUpload{
		base:     newBase(ctx, d),
		maxFiles: d.Int("maxFiles", 0),
		leases:   upload.NewLeases(ctx.WorkDir),
	}
	if dir := d.String("dropDir", ""); dir != "" {
		watcher, err := upload.WatchDir(dir)
		if err != nil {
			return nil, fmt.Errorf("inputs: %s %q: %w", TypeFilesUpload, d.ID, err)
		}
		in.watcher = watcher
	}

	picker := filepicker.New()
	picker.CurrentDirectory = d.String("browseDir", ".")
	picker.Height = 8
	in.picker = picker
	return in, nil
}

func (in *filesUpload) Value() any {
	return append([]*upload.File(nil), in.files...)
}

func (in *filesUpload) SetValue(v any) error {
	files, err := fileList(v)
	if err != nil {
		return fmt.Errorf("inputs: %s: %w", TypeFilesUpload, err)
	}
	in.clearAll()
	for _, f := range files {
		in.add(f)
	}
	return nil
}

func (in *filesUpload) Init() tea.Cmd {
	return in.watchCmd()
}

func (in *filesUpload) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case fileDroppedMsg:
		if m.id != in.desc.ID {
			return nil
		}
		if in.add(m.file) {
			in.commit(in.Value())
		}
		return in.watchCmd()
	case dropFailedMsg:
		if m.id != in.desc.ID {
			return nil
		}
		in.status = m.err.Error()
		in.ctx.Log().Warn("drop watch error", zap.String("widget", in.desc.ID), zap.Error(m.err))
		return in.watchCmd()
	}

	if in.ignores(msg) {
		return nil
	}
	if in.picking {
		return in.updatePicker(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "b", "enter":
		in.picking = true
		return in.picker.Init()
	case "ctrl+v":
		in.pasteClipboard()
	case "up", "k":
		if in.cursor > 0 {
			in.cursor--
		}
	case "down", "j":
		if in.cursor < len(in.files)-1 {
			in.cursor++
		}
	case "backspace", "x":
		in.removeAtCursor()
	}
	return nil
}

func (in *filesUpload) View() string {
	lines := []string{in.header()}
	if len(in.files) == 0 {
		lines = append(lines, in.ctx.Styles.Muted.Render("(no files)"))
	}
	for i, f := range in.files {
		entry := fmt.Sprintf("%s (%d bytes)", f.Name, f.Size)
		if i == in.cursor && in.focused && !in.picking {
			lines = append(lines, in.ctx.Styles.Selected.Render("> "+entry))
			continue
		}
		lines = append(lines, in.ctx.Styles.Text.Render("  "+entry))
	}
	if in.status != "" {
		lines = append(lines, in.ctx.Styles.Error.Render(in.status))
	}
	if in.picking {
		lines = append(lines, in.picker.View())
	} else {
		lines = append(lines, in.hint(in.help()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (in *filesUpload) Close() error {
	if in.watcher != nil {
		in.watcher.Close()
	}
	return in.leases.Close()
}

func (in *filesUpload) updatePicker(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		in.picking = false
		return nil
	}

	var cmd tea.Cmd
	in.picker, cmd = in.picker.Update(msg)
	if ok, path := in.picker.DidSelectFile(msg); ok {
		in.picking = false
		f, err := upload.FromPath(path)
		if err != nil {
			in.status = err.Error()
			return nil
		}
		if in.add(f) {
			in.commit(in.Value())
		}
		return nil
	}
	return cmd
}

func (in *filesUpload) pasteClipboard() {
	f, err := upload.Paste(time.Now())
	if err != nil {
		in.status = err.Error()
		in.ctx.Log().Warn("clipboard paste failed", zap.String("widget", in.desc.ID), zap.Error(err))
		return
	}
	if in.add(f) {
		in.commit(in.Value())
	}
}

// add appends a file unless its path is already collected or the list is
// full.
func (in *filesUpload) add(f upload.File) bool {
	for _, existing := range in.files {
		if existing.Path != "" && existing.Path == f.Path {
			return false
		}
	}
	if in.maxFiles > 0 && len(in.files) >= in.maxFiles {
		in.status = fmt.Sprintf("limit of %d files reached", in.maxFiles)
		return false
	}
	if _, err := in.leases.Acquire(f); err != nil {
		in.ctx.Log().Warn("preview not written", zap.String("widget", in.desc.ID), zap.Error(err))
	}
	in.files = append(in.files, &f)
	in.status = ""
	return true
}

func (in *filesUpload) removeAtCursor() {
	if len(in.files) == 0 || in.cursor >= len(in.files) {
		return
	}
	removed := in.files[in.cursor]
	in.leases.Release(removed.ID)
	in.files = append(in.files[:in.cursor], in.files[in.cursor+1:]...)
	if in.cursor >= len(in.files) && in.cursor > 0 {
		in.cursor--
	}
	in.commit(in.Value())
}

func (in *filesUpload) clearAll() {
	for _, f := range in.files {
		in.leases.Release(f.ID)
	}
	in.files = nil
	in.cursor = 0
}

func (in *filesUpload) help() string {
	h := "enter browse, ctrl+v paste"
	if in.watcher != nil {
		h += ", drop into " + in.watcher.Dir()
	}
	if len(in.files) > 0 {
		h += ", x remove"
	}
	return h
}

func (in *filesUpload) watchCmd() tea.Cmd {
	if in.watcher == nil {
		return nil
	}
	watcher, id := in.watcher, in.desc.ID
	return func() tea.Msg {
		select {
		case f, ok := <-watcher.Files():
			if !ok {
				return nil
			}
			return fileDroppedMsg{id: id, file: f}
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			return dropFailedMsg{id: id, err: err}
		}
	}
}

// fileList coerces the collection shapes a host may hand back.
func fileList(v any) ([]upload.File, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []upload.File:
		return list, nil
	case []*upload.File:
		out := make([]upload.File, 0, len(list))
		for _, f := range list {
			if f == nil {
				continue
			}
			out = append(out, *f)
		}
		return out, nil
	}
	return nil, fmt.Errorf("wants a file list, got %T", v)
}
