// internal/app/features/products/templates.go
package products

import (
	"embed"

	"github.com/dalemusser/rfs/internal/app/system/render"
)

//go:embed templates/products/*.html
var FS embed.FS

// Templates is the catalog page set, named "products/<page>.html".
var Templates = render.Set{
	Name:     "products",
	FS:       FS,
	Root:     "templates",
	Patterns: []string{"templates/products/*.html"},
}

const (
	listPage = "products/list.html"
	viewPage = "products/view.html"
	formPage = "products/form.html"
)
