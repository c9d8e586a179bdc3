// internal/app/features/products/edit.go
package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	productstore "github.com/dalemusser/rfs/internal/app/store/products"
	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"github.com/dalemusser/rfs/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeEdit renders the form filled with the stored product.
// GET /products/{id}/edit
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	id := p.ID.Hex()
	data := newFormData(r, "Edit "+p.Name, "/products/"+id)
	data.ID = id
	data.Action = "/products/" + id + "/edit"
	data.SKU = p.SKU
	data.Name = p.Name
	data.Description = p.Description
	data.Price = FormatPrice(p.PriceCents)
	data.Stock = strconv.Itoa(p.Stock)
	h.renderForm(w, r, http.StatusOK, data, "")
}

// HandleEdit updates the product and redirects to it.
// POST /products/{id}/edit
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	oid, ok := productID(w, r)
	if !ok {
		return
	}

	id := oid.Hex()
	data := newFormData(r, "Edit product", "/products/"+id)
	data.ID = id
	data.Action = "/products/" + id + "/edit"

	p, msg := readForm(r, &data)
	if msg != "" {
		h.renderForm(w, r, http.StatusBadRequest, data, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Store.Update(ctx, oid, p)
	switch {
	case errors.Is(err, productstore.ErrNotFound):
		httperr.Abort(w, r, http.StatusNotFound)
		return
	case err != nil:
		if m := storeMessage(err); m != "" {
			h.renderForm(w, r, http.StatusBadRequest, data, m)
			return
		}
		h.Log.Error("update product failed", zap.String("id", id), zap.Error(err))
		httperr.Abort(w, r, http.StatusInternalServerError)
		return
	}

	h.addFlash(w, r, "Product updated.")
	http.Redirect(w, r, "/products/"+id, http.StatusSeeOther)
}
