// internal/app/features/products/unavailable.go
package products

import (
	"context"
	"errors"

	"github.com/dalemusser/rfs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errNoDatabase = errors.New("products: no database configured")

// unavailableStore fails every call; it stands in when no database is bound.
type unavailableStore struct{}

func (unavailableStore) Create(context.Context, models.Product) (models.Product, error) {
	return models.Product{}, errNoDatabase
}

func (unavailableStore) GetByID(context.Context, primitive.ObjectID) (models.Product, error) {
	return models.Product{}, errNoDatabase
}

func (unavailableStore) List(context.Context, string, int64, int64) ([]models.Product, int64, error) {
	return nil, 0, errNoDatabase
}

func (unavailableStore) Update(context.Context, primitive.ObjectID, models.Product) error {
	return errNoDatabase
}

func (unavailableStore) Delete(context.Context, primitive.ObjectID) error {
	return errNoDatabase
}
