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

// fileDroppedMsg delivers a file the drop watcher saw. The id routes it back
// to the widget that owns the watcher.
type fileDroppedMsg struct {
	id   string
	file upload.File
}

type dropFailedMsg struct {
	id  string
	err error
}

func fileUploadDefinition() widget.Definition {
	props := openapi3.NewObjectSchema().
		WithProperty("browseDir", openapi3.NewStringSchema()).
		WithProperty("dropDir", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()

	return widget.Definition{
		Type:   TypeFileUpload,
		Props:  schema.New(props),
		Output: fileOutput(),
		New:    newFileUpload,
	}
}

// fileUpload collects a single file. Three channels feed it: browsing with
// the file picker, pasting clipboard text, and dropping files into a watched
// directory. Each collected file gets a preview lease that is released when
// the file is replaced or the widget closes.
type fileUpload struct {
	base
	file    *upload.File
	leases  *upload.Leases
	watcher *upload.DropWatcher
	picker  filepicker.Model
	picking bool
	status  string
}

func newFileUpload(ctx widget.Context, d *widget.Descriptor) (widget.Input, error) {
	in := &fileUpload{
		base:   newBase(ctx, d),
		leases: upload.NewLeases(ctx.WorkDir),
	}
	if dir := d.String("dropDir", ""); dir != "" {
		watcher, err := upload.WatchDir(dir)
		if err != nil {
			return nil, fmt.Errorf("inputs: %s %q: %w", TypeFileUpload, d.ID, err)
		}
		in.watcher = watcher
	}

	picker := filepicker.New()
	picker.CurrentDirectory = d.String("browseDir", ".")
	picker.Height = 8
	in.picker = picker
	return in, nil
}

func (in *fileUpload) Value() any {
	if in.file == nil {
		return nil
	}
	return in.file
}

func (in *fileUpload) SetValue(v any) error {
	switch f := v.(type) {
	case nil:
		in.clear()
		return nil
	case upload.File:
		in.accept(f)
		return nil
	case *upload.File:
		if f == nil {
			in.clear()
			return nil
		}
		in.accept(*f)
		return nil
	}
	return fmt.Errorf("inputs: %s wants a file, got %T", TypeFileUpload, v)
}

func (in *fileUpload) Init() tea.Cmd {
	return in.watchCmd()
}

func (in *fileUpload) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case fileDroppedMsg:
		if m.id != in.desc.ID {
			return nil
		}
		in.accept(m.file)
		in.commit(in.Value())
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
	case "backspace", "x":
		if in.file != nil {
			in.clear()
			in.commit(nil)
		}
	}
	return nil
}

func (in *fileUpload) View() string {
	lines := []string{in.header(), in.summary()}
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

func (in *fileUpload) Close() error {
	if in.watcher != nil {
		in.watcher.Close()
	}
	return in.leases.Close()
}

func (in *fileUpload) updatePicker(msg tea.Msg) tea.Cmd {
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
		in.accept(f)
		in.commit(in.Value())
		return nil
	}
	return cmd
}

func (in *fileUpload) pasteClipboard() {
	f, err := upload.Paste(time.Now())
	if err != nil {
		in.status = err.Error()
		in.ctx.Log().Warn("clipboard paste failed", zap.String("widget", in.desc.ID), zap.Error(err))
		return
	}
	in.accept(f)
	in.commit(in.Value())
}

// accept swaps the collected file, moving the preview lease with it.
func (in *fileUpload) accept(f upload.File) {
	if in.file != nil {
		if err := in.leases.Release(in.file.ID); err != nil {
			in.ctx.Log().Warn("stale preview not released", zap.String("widget", in.desc.ID), zap.Error(err))
		}
	}
	if _, err := in.leases.Acquire(f); err != nil {
		in.ctx.Log().Warn("preview not written", zap.String("widget", in.desc.ID), zap.Error(err))
	}
	in.file = &f
	in.status = ""
}

func (in *fileUpload) clear() {
	if in.file != nil {
		in.leases.Release(in.file.ID)
	}
	in.file = nil
}

func (in *fileUpload) summary() string {
	if in.file == nil {
		return in.ctx.Styles.Muted.Render("(no file)")
	}
	return in.ctx.Styles.Text.Render(fmt.Sprintf("%s (%d bytes)", in.file.Name, in.file.Size))
}

func (in *fileUpload) help() string {
	h := "enter browse, ctrl+v paste"
	if in.watcher != nil {
		h += ", drop into " + in.watcher.Dir()
	}
	if in.file != nil {
		h += ", x remove"
	}
	return h
}

func (in *fileUpload) watchCmd() tea.Cmd {
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
