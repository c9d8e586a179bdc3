// internal/app/shop/database.go
package shop

import (
	"context"

	"github.com/dalemusser/rfs/internal/app/system/database"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// configureDatabase binds the caller's database extension or connects one
// from the MONGO_* settings. The driver dials lazily, so no server is needed
// until the first query.
func configureDatabase(ctx context.Context, a *App) error {
	if a.opts.DB != nil {
		a.DB = a.opts.DB
		a.Logger.Debug("database bound", zap.String("database", a.DB.Database.Name()))
		return nil
	}

	db, err := database.Connect(ctx, database.Options{
		URI:         a.Config.String("MONGO_URI"),
		Database:    a.Config.String("MONGO_DATABASE"),
		MaxPoolSize: cast.ToUint64(a.Config.Int("MONGO_MAX_POOL_SIZE")),
		MinPoolSize: cast.ToUint64(a.Config.Int("MONGO_MIN_POOL_SIZE")),
	}, a.Logger)
	if err != nil {
		return err
	}
	a.DB = db
	a.ownsDB = true
	return nil
}
