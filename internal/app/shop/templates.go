// internal/app/shop/templates.go
package shop

import (
	"context"
	"embed"
	"html/template"

	"github.com/dalemusser/rfs/internal/app/system/render"
)

// DefaultNowFormat is the layout the now helper uses without an argument.
const DefaultNowFormat = "2006-01-02 15:04:05"

//go:embed templates/*.html
var layoutFS embed.FS

// LayoutSet is the shared page layout every page is rendered in.
var LayoutSet = render.Set{
	Name:     "layout",
	FS:       layoutFS,
	Root:     "templates",
	Patterns: []string{"templates/*.html"},
}

// TemplateFuncs returns the helpers available to every template:
//
//	now            current time in DefaultNowFormat
//	now "15:04"    current time in the given layout
//	assets "name"  URLs to load for an asset bundle
//	static "path"  URL of a file under the static folder
//	project        the app name
func (a *App) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"now": a.Now,
		"assets": func(name string) ([]string, error) {
			return a.Assets.URLs(name)
		},
		"static":  a.Assets.URL,
		"project": func() string { return a.Name },
	}
}

// configureTemplateProcessors registers the helpers and parses the layout.
func configureTemplateProcessors(_ context.Context, a *App) error {
	a.Templates = render.New(a.Logger)
	if err := a.Templates.Funcs(a.TemplateFuncs()); err != nil {
		return err
	}
	return a.Templates.Layout(LayoutSet)
}
