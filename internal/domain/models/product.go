package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU    string             `bson:"sku" json:"sku"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped

	Description string `bson:"description,omitempty" json:"description,omitempty"` // sanitized HTML

	PriceCents int64 `bson:"price_cents" json:"price_cents"`
	Stock      int   `bson:"stock" json:"stock"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
