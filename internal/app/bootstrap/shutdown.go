// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown closes the application and disconnects MongoDB.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Runtime != nil && deps.Runtime.App != nil {
		if err := deps.Runtime.App.Close(ctx); err != nil {
			logger.Warn("application close failed", zap.Error(err))
		}
	}
	if deps.DB != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.DB.Close(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
