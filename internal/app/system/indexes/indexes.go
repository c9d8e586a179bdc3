// internal/app/system/indexes/indexes.go

// Package indexes reconciles the indexes a collection should have with the
// ones it has. Reconciling is idempotent and safe to run on every startup.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Set is the desired indexes of one collection.
type Set struct {
	Collection string
	Models     []mongo.IndexModel
}

/*
EnsureAll reconciles every set. Errors are aggregated so all problems are
visible at once and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger, sets ...Set) error {
	var problems []string
	for _, s := range sets {
		if err := EnsureSet(ctx, db.Collection(s.Collection), s.Models, logger); err != nil {
			problems = append(problems, s.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	existing := map[string]existingIndex{} // sig -> index
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			return nil, err
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing, cur.Err()
}

// EnsureSet makes coll carry every index in models.
//
// An index with the same keys, uniqueness and name is reused. One with the
// same keys but a different name or uniqueness is dropped and recreated.
// Indexes not named in models are left alone.
func EnsureSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("collection", coll.Name()))

	existing, err := listExisting(ctx, coll)
	if err != nil {
		// The collection may not exist yet; create everything.
		logger.Debug("listing indexes failed", zap.Error(err))
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		keys, ok := m.Keys.(bson.D)
		if !ok {
			errs = append(errs, fmt.Sprintf("index keys must be bson.D, got %T", m.Keys))
			continue
		}
		var name string
		var unique bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = boolValue(m.Options.Unique)
		}
		sig := keySig(keys)
		start := time.Now()
		fields := []zap.Field{zap.String("name", name), zap.String("keys", sig), zap.Bool("unique", unique)}

		if ex, ok := existing[sig]; ok {
			if boolValue(ex.Unique) == unique && (name == "" || ex.Name == name) {
				logger.Debug("reusing existing index", fields...)
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				logger.Warn("drop existing index failed", append(fields, zap.String("existing", ex.Name), zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
			logger.Info("dropped index to realign it", append(fields, zap.String("existing", ex.Name))...)
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if unique && isDuplicateKeyErr(err) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index (duplicates present)", name))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			logger.Warn("create index failed", append(fields, zap.Error(err))...)
			continue
		}
		logger.Info("index created", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
