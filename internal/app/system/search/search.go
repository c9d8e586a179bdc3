// internal/app/system/search/search.go

// Package search turns the catalog search box into a Mongo filter.
package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxQueryLen caps the query in runes; longer input is cut.
const MaxQueryLen = 100

// Normalize trims q, collapses inner whitespace and caps its length.
func Normalize(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	if utf8.RuneCountInString(q) > MaxQueryLen {
		q = string([]rune(q)[:MaxQueryLen])
	}
	return q
}

// ProductFilter matches products whose folded name starts with q, or whose
// SKU starts with q ignoring case. An empty q matches everything.
//
// The name clause is a prefix on name_ci, so it can use the name index.
func ProductFilter(q string) bson.M {
	q = Normalize(q)
	if q == "" {
		return bson.M{}
	}
	return bson.M{"$or": []bson.M{
		{"name_ci": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(text.Fold(q))}},
		{"sku": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(q), Options: "i"}},
	}}
}

// MatchesProduct reports whether a product with the given name and SKU
// would be selected by ProductFilter(q). It is used by in-memory stores.
func MatchesProduct(q, name, sku string) bool {
	q = Normalize(q)
	if q == "" {
		return true
	}
	return strings.HasPrefix(text.Fold(name), text.Fold(q)) ||
		strings.HasPrefix(strings.ToLower(sku), strings.ToLower(q))
}
