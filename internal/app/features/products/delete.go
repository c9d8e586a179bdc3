// internal/app/features/products/delete.go
package products

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/dalemusser/rfs/internal/app/store/products"
	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"github.com/dalemusser/rfs/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes the product and returns to the list.
// POST /products/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := productID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Store.Delete(ctx, oid)
	switch {
	case errors.Is(err, productstore.ErrNotFound):
		httperr.Abort(w, r, http.StatusNotFound)
		return
	case err != nil:
		h.Log.Error("delete product failed", zap.String("id", oid.Hex()), zap.Error(err))
		httperr.Abort(w, r, http.StatusInternalServerError)
		return
	}

	h.Log.Info("product deleted", zap.String("id", oid.Hex()))
	h.addFlash(w, r, "Product deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
