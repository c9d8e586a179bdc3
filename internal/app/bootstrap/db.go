// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	productstore "github.com/dalemusser/rfs/internal/app/store/products"
	"github.com/dalemusser/rfs/internal/app/system/database"
	"github.com/dalemusser/rfs/internal/app/system/indexes"
	"github.com/dalemusser/rfs/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and checks the primary is reachable.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	db, err := database.Connect(ctx, database.Options{
		URI:         appCfg.MongoURI,
		Database:    appCfg.MongoDatabase,
		MaxPoolSize: appCfg.MongoMaxPoolSize,
		MinPoolSize: appCfg.MongoMinPoolSize,
	}, logger)
	if err != nil {
		return DBDeps{}, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, appCfg.TimeoutMedium)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		_ = db.Close(ctx)
		logger.Error("MongoDB ping failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{DB: db, Runtime: &Runtime{}}, nil
}

// EnsureSchema creates the collections' indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	if err := indexes.EnsureAll(ctx, deps.DB.Database, logger, productstore.IndexSet()); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("indexes ensured")
	return nil
}
