package guide

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded guide templates so hosts can rebuild the
// engine with their own overrides layered on top.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
