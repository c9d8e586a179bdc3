// internal/app/features/products/routes.go
package products

import (
	productstore "github.com/dalemusser/rfs/internal/app/store/products"
	"github.com/dalemusser/rfs/internal/app/system/blueprint"
	"github.com/dalemusser/rfs/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Name is the blueprint name the catalog is mounted under.
const Name = "products"

// Routes mounts the catalog routes under whatever base path the caller
// chooses (the products blueprint uses "/").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST
	r.Get("/", h.ServeList)

	// VIEW + FORMS
	r.Get("/products/new", h.ServeNew)
	r.Get("/products/{id}", h.ServeView)
	r.Get("/products/{id}/edit", h.ServeEdit)

	// WRITES
	r.Group(func(r chi.Router) {
		r.Use(h.WriteLimit.Middleware(h.Log))

		r.Post("/products", h.HandleCreate)
		r.Post("/products/{id}/edit", h.HandleEdit)
		r.Post("/products/{id}/delete", h.HandleDelete)
	})

	return r
}

// Blueprint returns the product catalog blueprint.
func Blueprint() blueprint.Blueprint {
	return blueprint.Blueprint{
		Name:      Name,
		Prefix:    "/",
		Templates: &Templates,
		Routes: func(env blueprint.Env) chi.Router {
			h := NewHandler(unavailableStore{}, env.Renderer, env.Flash, env.Config.Int("PRODUCTS_PER_PAGE"), env.Logger)
			h.WriteLimit = ratelimit.PerMinute(env.Config.Int("PRODUCTS_WRITES_PER_MINUTE"))
			if h.WriteLimit != nil {
				proxies, err := ratelimit.ParseProxies(env.Config.String("TRUSTED_PROXIES"))
				if err != nil {
					h.Log.Warn("ignoring TRUSTED_PROXIES; write limit keyed on peer address", zap.Error(err))
				}
				h.WriteLimit.Proxies = proxies
			}
			if env.DB != nil {
				h.Store = productstore.New(env.DB.Database)
			} else {
				h.Log.Warn("products blueprint mounted without a database; catalog pages will fail")
			}
			return Routes(h)
		},
	}
}
