package taguchi

import (
	"io/fs"

	"github.com/goliatone/go-taguchi/pkg/renderers/htmlsheet"
)

// EmbeddedTemplates exposes the built-in run sheet templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlsheet.Templates()
}
