// internal/app/shop/errorhandlers.go
package shop

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/rfs/internal/app/features/errors"
	"github.com/dalemusser/rfs/internal/app/system/httperr"
)

// configureErrorHandlers registers the error pages: 401, 403 and 429 share
// the forbidden page, 404 and 500 have their own, and each keeps its status.
// Unmatched routes serve 404 and handler panics serve 500.
func configureErrorHandlers(_ context.Context, a *App) error {
	if err := a.Templates.Register(errorsfeature.Templates); err != nil {
		return err
	}

	a.Errors = httperr.NewRegistry(a.Logger)
	errorsfeature.NewHandler(a.Templates, a.Logger).Register(a.Errors)

	a.Router.Use(a.Errors.Middleware)
	a.Router.NotFound(a.Errors.StatusHandler(http.StatusNotFound))
	a.Router.MethodNotAllowed(a.Errors.StatusHandler(http.StatusMethodNotAllowed))
	return nil
}
