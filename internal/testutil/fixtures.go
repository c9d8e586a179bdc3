package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/rfs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts test documents directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// CreateProduct inserts a product with the given SKU, name and price.
func (f *Fixtures) CreateProduct(ctx context.Context, sku, name string, priceCents int64) models.Product {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Product{
		ID:         primitive.NewObjectID(),
		SKU:        sku,
		Name:       name,
		NameCI:     text.Fold(name),
		PriceCents: priceCents,
		Stock:      1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("products").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test product: %v", err)
	}
	return p
}
