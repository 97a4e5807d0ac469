// Package prompt fills a built form over a sequential line-mode session
// instead of the full-screen bubbletea loop. Every answer lands through
// SetValue, so no change events fire and the host reads results with
// Collect. Useful for scripted runs and hosts without an alternate screen.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwidgets/pkg/form"
	"github.com/goliatone/go-formwidgets/pkg/inputs"
	"github.com/goliatone/go-formwidgets/pkg/upload"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

// Session walks a form's grid in reading order and prompts once per
// interactive widget. The zero driver is survey-backed; swap it with
// WithDriver for tests or alternate frontends.
type Session struct {
	driver Driver
	logger *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the prompt driver.
func WithDriver(d Driver) Option {
	return func(s *Session) {
		if d != nil {
			s.driver = d
		}
	}
}

// WithLogger routes session diagnostics somewhere visible.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a line-mode fill session.
func New(options ...Option) *Session {
	s := &Session{
		driver: &surveyDriver{},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Fill prompts for every interactive widget in f, in reading order. Output
// mode descriptors and display-only widgets are skipped. Answers are written
// silently; collect them from the form afterwards.
func (s *Session) Fill(ctx context.Context, f *form.Form) error {
	if f == nil {
		return errors.New("prompt: form is required")
	}
	return f.Grid().Walk(func(d *widget.Descriptor) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Interactive() {
			return nil
		}
		in, ok := f.Input(d.ID)
		if !ok {
			return fmt.Errorf("prompt: form has no input %q", d.ID)
		}
		return s.fill(ctx, in, d)
	})
}

func (s *Session) fill(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	switch d.Type {
	case inputs.TypeText:
		return s.fillText(ctx, in, d)
	case inputs.TypeTextarea:
		return s.fillTextArea(ctx, in, d)
	case inputs.TypeNumber, inputs.TypeSlider:
		return s.fillNumber(ctx, in, d)
	case inputs.TypeToggle:
		return s.fillToggle(ctx, in, d)
	case inputs.TypeSelectList, inputs.TypeRadioGroup:
		return s.fillChoice(ctx, in, d)
	case inputs.TypeColor:
		return s.fillHex(ctx, in, d)
	case inputs.TypeColorPicker:
		return s.fillPalette(ctx, in, d)
	case inputs.TypeTag:
		return s.fillTags(ctx, in, d)
	case inputs.TypeMultiText:
		return s.fillFields(ctx, in, d)
	case inputs.TypeSortableList:
		return s.fillOrder(ctx, in, d)
	case inputs.TypeFileUpload, inputs.TypeWaveformPlaylist:
		return s.fillFile(ctx, in, d)
	case inputs.TypeFilesUpload:
		return s.fillFiles(ctx, in, d)
	case inputs.TypeLabel:
		return s.showLabel(ctx, in)
	case inputs.TypeButton, inputs.TypeRawHTML, inputs.TypeDivider, inputs.TypeProgressBar:
		// No line-mode answer to collect.
		return nil
	}
	s.logger.Debug("no line-mode prompt for widget type",
		zap.String("id", d.ID),
		zap.String("type", d.Type))
	return nil
}

func (s *Session) fillText(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	cur, _ := in.Value().(string)
	out, err := s.driver.Input(ctx, InputConfig{Message: displayLabel(d), Default: cur})
	if err != nil {
		return err
	}
	return in.SetValue(out)
}

func (s *Session) fillTextArea(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	cur, _ := in.Value().(string)
	out, err := s.driver.TextArea(ctx, TextAreaConfig{Message: displayLabel(d), Default: cur})
	if err != nil {
		return err
	}
	return in.SetValue(out)
}

// fillNumber covers number and slider widgets. Empty input keeps the current
// value; out-of-range answers are clamped by the widget itself.
func (s *Session) fillNumber(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	cur := ""
	if v, ok := in.Value().(float64); ok {
		cur = strconv.FormatFloat(v, 'f', -1, 64)
	}
	for {
		out, err := s.driver.Input(ctx, InputConfig{
			Message: displayLabel(d),
			Default: cur,
			Help:    rangeHelp(d),
		})
		if err != nil {
			return err
		}
		raw := strings.TrimSpace(out)
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %q is not a number", displayLabel(d), raw)); err != nil {
				return err
			}
			continue
		}
		return in.SetValue(n)
	}
}

func (s *Session) fillToggle(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	cur, _ := in.Value().(bool)
	out, err := s.driver.Confirm(ctx, ConfirmConfig{Message: displayLabel(d), Default: cur})
	if err != nil {
		return err
	}
	return in.SetValue(out)
}

func (s *Session) fillChoice(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	options := d.Strings("options")
	if len(options) == 0 {
		return nil
	}
	cur, _ := in.Value().(string)
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(d),
		Options:      options,
		DefaultIndex: indexOf(options, cur),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("prompt: %s: selection %d out of range", d.ID, idx)
	}
	return in.SetValue(options[idx])
}

// fillHex loops until the answer parses as a hex color or stays empty.
func (s *Session) fillHex(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	cur, _ := in.Value().(string)
	for {
		out, err := s.driver.Input(ctx, InputConfig{
			Message: displayLabel(d),
			Default: cur,
			Help:    "hex color like #336699",
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(out) == "" {
			return nil
		}
		if err := in.SetValue(out); err != nil {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %v", displayLabel(d), err)); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

// fillPalette selects from a configured palette, falling back to free hex
// entry when the widget uses the generated one.
func (s *Session) fillPalette(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	palette := d.Strings("palette")
	if len(palette) == 0 {
		return s.fillHex(ctx, in, d)
	}
	cur, _ := in.Value().(string)
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(d),
		Options:      palette,
		DefaultIndex: indexOf(palette, cur),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(palette) {
		return fmt.Errorf("prompt: %s: selection %d out of range", d.ID, idx)
	}
	return in.SetValue(palette[idx])
}

// fillTags appends answers to the current list until an empty line.
func (s *Session) fillTags(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	tags, _ := in.Value().([]string)
	for {
		out, err := s.driver.Input(ctx, InputConfig{
			Message: displayLabel(d),
			Help:    "add a tag, empty line finishes",
		})
		if err != nil {
			return err
		}
		t := strings.TrimSpace(out)
		if t == "" {
			break
		}
		tags = append(tags, t)
	}
	return in.SetValue(tags)
}

func (s *Session) fillFields(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	keys := d.Strings("fields")
	cur, _ := in.Value().(map[string]any)
	values := make(map[string]any, len(keys))
	for _, key := range keys {
		def, _ := cur[key].(string)
		out, err := s.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s.%s", displayLabel(d), key),
			Default: def,
		})
		if err != nil {
			return err
		}
		values[key] = out
	}
	return in.SetValue(values)
}

// fillOrder rebuilds the list order by picking the next item repeatedly.
func (s *Session) fillOrder(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	items, _ := in.Value().([]string)
	if len(items) < 2 {
		return nil
	}
	reorder, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Reorder %s?", displayLabel(d)),
		Default: false,
	})
	if err != nil {
		return err
	}
	if !reorder {
		return nil
	}

	remaining := append([]string(nil), items...)
	order := make([]string, 0, len(items))
	for len(remaining) > 1 {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("%s: next item", displayLabel(d)),
			Options: remaining,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(remaining) {
			return fmt.Errorf("prompt: %s: selection %d out of range", d.ID, idx)
		}
		order = append(order, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	order = append(order, remaining[0])
	return in.SetValue(order)
}

// fillFile loads a single file by path. Empty input keeps the current value;
// unreadable paths report and re-prompt.
func (s *Session) fillFile(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	for {
		out, err := s.driver.Input(ctx, InputConfig{
			Message: displayLabel(d),
			Help:    "file path, empty keeps the current value",
		})
		if err != nil {
			return err
		}
		path := strings.TrimSpace(out)
		if path == "" {
			return nil
		}
		file, err := upload.FromPath(path)
		if err != nil {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %v", displayLabel(d), err)); err != nil {
				return err
			}
			continue
		}
		if err := in.SetValue(file); err != nil {
			return err
		}
		if w, ok := in.(*inputs.Waveform); ok && w.Playlist() == nil {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: could not decode %s, try another file", displayLabel(d), file.Name)); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

// fillFiles appends files to the current set until an empty line. The set is
// only rewritten when at least one path was entered.
func (s *Session) fillFiles(ctx context.Context, in widget.Input, d *widget.Descriptor) error {
	var files []upload.File
	if cur, ok := in.Value().([]*upload.File); ok {
		for _, f := range cur {
			if f != nil {
				files = append(files, *f)
			}
		}
	}
	added := false
	for {
		out, err := s.driver.Input(ctx, InputConfig{
			Message: displayLabel(d),
			Help:    "add a file path, empty line finishes",
		})
		if err != nil {
			return err
		}
		path := strings.TrimSpace(out)
		if path == "" {
			break
		}
		file, err := upload.FromPath(path)
		if err != nil {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %v", displayLabel(d), err)); err != nil {
				return err
			}
			continue
		}
		files = append(files, file)
		added = true
	}
	if !added {
		return nil
	}
	return in.SetValue(files)
}

func (s *Session) showLabel(ctx context.Context, in widget.Input) error {
	text, ok := in.Value().(string)
	if !ok || text == "" {
		return nil
	}
	return s.driver.Info(ctx, text)
}

func displayLabel(d *widget.Descriptor) string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

func rangeHelp(d *widget.Descriptor) string {
	minVal, okMin := d.Prop("min")
	maxVal, okMax := d.Prop("max")
	if !okMin || !okMax {
		return ""
	}
	return fmt.Sprintf("between %v and %v", minVal, maxVal)
}
