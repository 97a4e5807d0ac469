// Package inputs provides the builtin widget set: interactive controls for
// collecting values in a terminal, plus display-only widgets for presenting
// them. Each widget type couples a props schema, an output value schema
// resolver, and a factory; DefaultRegistry exposes them all ready for
// assembly.
package inputs

import (
	"sync"

	"github.com/goliatone/go-formwidgets/pkg/widget"
)

// Builtin widget type names as they appear in row metadata.
const (
	TypeText             = "TextInput"
	TypeTextarea         = "TextareaInput"
	TypeNumber           = "NumberInput"
	TypeSlider           = "SliderInput"
	TypeToggle           = "ToggleInput"
	TypeSelectList       = "SelectListInput"
	TypeRadioGroup       = "RadioGroupInput"
	TypeColor            = "ColorInput"
	TypeColorPicker      = "ColorPickerInput"
	TypeTag              = "TagInput"
	TypeButton           = "ButtonInput"
	TypeLabel            = "LabelInput"
	TypeRawHTML          = "RawHtmlInput"
	TypeDivider          = "DividerInput"
	TypeProgressBar      = "ProgressBarInput"
	TypeMultiText        = "MultiTextInput"
	TypeSortableList     = "SortableListInput"
	TypeFileUpload       = "FileUploadInput"
	TypeFilesUpload      = "FilesUploadInput"
	TypeWaveformPlaylist = "WaveformPlaylistInput"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *widget.Registry
)

// DefaultRegistry returns the shared registry holding every builtin widget
// type. The registry is built once and safe for concurrent use.
func DefaultRegistry() *widget.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = widget.NewRegistry()
		Register(defaultRegistry)
	})
	return defaultRegistry
}

// Register adds every builtin definition to r. It panics on collision, so
// call it before registering custom types under builtin names.
func Register(r *widget.Registry) {
	for _, def := range Definitions() {
		r.MustRegister(def)
	}
}

// Definitions returns a fresh slice of the builtin widget definitions.
func Definitions() []widget.Definition {
	return []widget.Definition{
		textDefinition(),
		textareaDefinition(),
		numberDefinition(),
		sliderDefinition(),
		toggleDefinition(),
		selectListDefinition(),
		radioGroupDefinition(),
		colorDefinition(),
		colorPickerDefinition(),
		tagDefinition(),
		buttonDefinition(),
		labelDefinition(),
		rawHTMLDefinition(),
		dividerDefinition(),
		progressBarDefinition(),
		multiTextDefinition(),
		sortableListDefinition(),
		fileUploadDefinition(),
		filesUploadDefinition(),
		waveformPlaylistDefinition(),
	}
}
