// internal/app/features/errors/templates.go
package errors

import (
	"embed"

	"github.com/dalemusser/rfs/internal/app/system/render"
)

//go:embed templates/errors/*.html
var FS embed.FS

// Templates is the error page set, named "errors/<status>.html".
var Templates = render.Set{
	Name:     "errors",
	FS:       FS,
	Root:     "templates",
	Patterns: []string{"templates/errors/*.html"},
}
