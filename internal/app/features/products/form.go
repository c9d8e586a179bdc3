// internal/app/features/products/form.go
package products

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	productstore "github.com/dalemusser/rfs/internal/app/store/products"
	"github.com/dalemusser/rfs/internal/app/system/formutil"
	"github.com/dalemusser/rfs/internal/app/system/htmlsanitize"
	"github.com/dalemusser/rfs/internal/domain/models"
)

// readForm parses the product form into data (echoed back on error) and a
// product. A non-empty message means the input was rejected.
func readForm(r *http.Request, data *formData) (models.Product, string) {
	if err := r.ParseForm(); err != nil {
		return models.Product{}, "Invalid form data."
	}

	data.SKU = strings.TrimSpace(r.PostFormValue("sku"))
	data.Name = strings.TrimSpace(r.PostFormValue("name"))
	data.Description = strings.TrimSpace(r.PostFormValue("description"))
	data.Price = strings.TrimSpace(r.PostFormValue("price"))
	data.Stock = strings.TrimSpace(r.PostFormValue("stock"))

	if data.Name == "" {
		return models.Product{}, "Name is required."
	}
	if len(data.Name) > 200 {
		return models.Product{}, "Name must be at most 200 characters."
	}
	cents, err := ParsePrice(data.Price)
	if err != nil {
		return models.Product{}, "Price must be an amount like 12.99."
	}
	stock := 0
	if data.Stock != "" {
		stock, err = strconv.Atoi(data.Stock)
		if err != nil || stock < 0 {
			return models.Product{}, "Stock must be a whole number, zero or more."
		}
	}

	return models.Product{
		SKU:         data.SKU,
		Name:        data.Name,
		Description: htmlsanitize.Sanitize(data.Description),
		PriceCents:  cents,
		Stock:       stock,
	}, ""
}

// storeMessage maps a store validation error to a form message.
// It returns "" for errors the form cannot explain.
func storeMessage(err error) string {
	switch {
	case errors.Is(err, productstore.ErrDuplicateSKU):
		return "A product with this SKU already exists."
	case errors.Is(err, productstore.ErrNameRequired):
		return "Name is required."
	case errors.Is(err, productstore.ErrNegative):
		return "Price and stock must not be negative."
	}
	return ""
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData, msg string) {
	if msg != "" {
		data.SetError(msg)
	}
	h.render(w, r, status, formPage, data)
}

func newFormData(r *http.Request, title, back string) formData {
	var data formData
	formutil.SetBase(&data.Base, r, title, back)
	return data
}
