package upload

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// ErrClipboardEmpty reports that the clipboard held no usable text.
var ErrClipboardEmpty = errors.New("upload: clipboard has no text")

// Paste reads the system clipboard and wraps its text in a timestamp-tagged
// in-memory file.
func Paste(at time.Time) (File, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return File{}, fmt.Errorf("upload: read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return File{}, ErrClipboardEmpty
	}
	return FromText(text, at), nil
}
