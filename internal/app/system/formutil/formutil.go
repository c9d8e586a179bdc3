// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
//
// Embed Base in form data structs to carry the common fields.
//
// Example usage:
//
//	type productFormData struct {
//		formutil.Base
//		Name string
//	}
//
//	data := productFormData{Name: name}
//	formutil.SetBase(&data.Base, r, "New product", "/")
//	data.SetError("Name is required.")
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/rfs/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the error message on a Base struct, escaping msg.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}
