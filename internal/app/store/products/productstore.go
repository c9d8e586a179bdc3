// internal/app/store/products/productstore.go
package productstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/rfs/internal/app/system/indexes"
	"github.com/dalemusser/rfs/internal/app/system/search"
	"github.com/dalemusser/rfs/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection is the MongoDB collection products live in.
const Collection = "products"

var (
	ErrNotFound     = errors.New("product not found")
	ErrDuplicateSKU = errors.New("a product with this SKU already exists")
	ErrNameRequired = errors.New("name is required")
	ErrNegative     = errors.New("price and stock must not be negative")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// IndexSet returns the unique SKU index and the name sort index.
func IndexSet() indexes.Set {
	return indexes.Set{
		Collection: Collection,
		Models: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "sku", Value: 1}},
				Options: options.Index().SetName("uniq_sku").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_name_ci"),
			},
		},
	}
}

// EnsureIndexes reconciles the collection with IndexSet.
func (s *Store) EnsureIndexes(ctx context.Context, logger *zap.Logger) error {
	return indexes.EnsureSet(ctx, s.c, IndexSet().Models, logger)
}

func validate(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.PriceCents < 0 || p.Stock < 0 {
		return ErrNegative
	}
	return nil
}

// Create inserts p, assigning an ID, NameCI, timestamps and, when SKU is
// empty, a generated SKU.
func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	if err := validate(p); err != nil {
		return models.Product{}, err
	}

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	if p.SKU == "" {
		p.SKU = strings.ToUpper(uuid.NewString()[:8])
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Product{}, ErrDuplicateSKU
		}
		return models.Product{}, err
	}
	return p, nil
}

// GetByID returns ErrNotFound when no product has id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// List returns one page of products ordered by name, plus the total count.
func (s *Store) List(ctx context.Context, q string, skip, limit int64) ([]models.Product, int64, error) {
	filter := search.ProductFilter(q)
	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update replaces the editable fields of product id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Product) error {
	mut.Name = strings.TrimSpace(mut.Name)
	mut.SKU = strings.TrimSpace(mut.SKU)
	if err := validate(mut); err != nil {
		return err
	}

	set := bson.M{
		"name":        mut.Name,
		"name_ci":     text.Fold(mut.Name),
		"description": mut.Description,
		"price_cents": mut.PriceCents,
		"stock":       mut.Stock,
		"updated_at":  time.Now().UTC(),
	}
	if mut.SKU != "" {
		set["sku"] = mut.SKU
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSKU
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes product id. Deleting a missing product returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
