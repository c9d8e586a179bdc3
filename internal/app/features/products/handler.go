// internal/app/features/products/handler.go
package products

import (
	"context"
	"net/http"

	"github.com/dalemusser/rfs/internal/app/system/flash"
	"github.com/dalemusser/rfs/internal/app/system/paging"
	"github.com/dalemusser/rfs/internal/app/system/ratelimit"
	"github.com/dalemusser/rfs/internal/app/system/render"
	"github.com/dalemusser/rfs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the product persistence the handlers need.
// *productstore.Store satisfies it.
type Store interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	List(ctx context.Context, q string, skip, limit int64) ([]models.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, mut models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler serves the product catalog pages.
type Handler struct {
	Store   Store
	Render  *render.Renderer
	Flash   *flash.Store // optional
	PerPage int
	Log     *zap.Logger

	// WriteLimit throttles create, edit and delete per client IP.
	// Nil means unlimited.
	WriteLimit *ratelimit.Limiter
}

// NewHandler constructs a products Handler.
func NewHandler(store Store, rnd *render.Renderer, fl *flash.Store, perPage int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if perPage < 1 {
		perPage = paging.PageSize
	}
	return &Handler{Store: store, Render: rnd, Flash: fl, PerPage: perPage, Log: logger}
}

func (h *Handler) addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Flash == nil {
		return
	}
	if err := h.Flash.Add(w, r, msg); err != nil {
		h.Log.Warn("flash add failed", zap.Error(err))
	}
}

func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	if h.Flash == nil {
		return nil
	}
	return h.Flash.Pop(w, r)
}
