// internal/app/features/products/new.go
package products

import (
	"context"
	"net/http"

	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"github.com/dalemusser/rfs/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeNew renders the empty product form.
// GET /products/new
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := newFormData(r, "New product", "/")
	data.Action = "/products"
	data.Stock = "0"
	h.renderForm(w, r, http.StatusOK, data, "")
}

// HandleCreate stores a new product and redirects to it.
// POST /products
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	data := newFormData(r, "New product", "/")
	data.Action = "/products"

	p, msg := readForm(r, &data)
	if msg != "" {
		h.renderForm(w, r, http.StatusBadRequest, data, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Store.Create(ctx, p)
	if err != nil {
		if m := storeMessage(err); m != "" {
			h.renderForm(w, r, http.StatusBadRequest, data, m)
			return
		}
		h.Log.Error("create product failed", zap.String("name", p.Name), zap.Error(err))
		httperr.Abort(w, r, http.StatusInternalServerError)
		return
	}

	h.Log.Info("product created", zap.String("id", created.ID.Hex()), zap.String("sku", created.SKU))
	h.addFlash(w, r, "Product \""+created.Name+"\" created.")
	http.Redirect(w, r, "/products/"+created.ID.Hex(), http.StatusSeeOther)
}
