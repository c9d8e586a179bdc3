// internal/app/features/products/view.go
package products

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/dalemusser/rfs/internal/app/store/products"
	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"github.com/dalemusser/rfs/internal/app/system/timeouts"
	"github.com/dalemusser/rfs/internal/app/system/viewdata"
	"github.com/dalemusser/rfs/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeView renders a single product.
// GET /products/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	data := viewData{
		BaseVM:  viewdata.NewBaseVM(r, p.Name, "/").WithFlashes(h.popFlashes(w, r)),
		Product: toRow(p),
	}
	h.render(w, r, http.StatusOK, viewPage, data)
}

// productID parses the {id} URL parameter, aborting with 404 when it is not
// an ObjectID.
func productID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httperr.Abort(w, r, http.StatusNotFound)
		return primitive.NilObjectID, false
	}
	return oid, true
}

// loadProduct fetches the product named by {id}. Unknown ids abort with 404,
// store failures with 500.
func (h *Handler) loadProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	oid, ok := productID(w, r)
	if !ok {
		return models.Product{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.GetByID(ctx, oid)
	switch {
	case errors.Is(err, productstore.ErrNotFound):
		httperr.Abort(w, r, http.StatusNotFound)
		return models.Product{}, false
	case err != nil:
		h.Log.Error("get product failed", zap.String("id", oid.Hex()), zap.Error(err))
		httperr.Abort(w, r, http.StatusInternalServerError)
		return models.Product{}, false
	}
	return p, true
}
