// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	healthfeature "github.com/dalemusser/rfs/internal/app/features/health"
	"github.com/dalemusser/rfs/internal/app/shop"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The shop factory builds the application
// from the app config; this router adds /health in front of it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	shopApp, err := shop.Create(context.Background(), shop.Options{
		Override: appCfg.Settings(coreCfg),
		DB:       deps.DB,
	})
	if err != nil {
		logger.Error("application create failed", zap.Error(err))
		return nil, err
	}
	if deps.Runtime != nil {
		deps.Runtime.App = shopApp
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	var healthHandler *healthfeature.Handler
	if deps.DB != nil {
		healthHandler = healthfeature.NewHandler(deps.DB, logger)
	} else {
		healthHandler = healthfeature.NewHandler(nil, logger)
	}
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Everything else, including static files, is the shop application.
	r.Mount("/", shopApp)

	return r, nil
}
