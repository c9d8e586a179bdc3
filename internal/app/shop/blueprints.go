// internal/app/shop/blueprints.go
package shop

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/dalemusser/rfs/internal/app/system/blueprint"
	"github.com/dalemusser/rfs/internal/app/system/flash"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// configureBlueprints serves the static folder and mounts every blueprint
// once, in order. Duplicate names or mount paths are errors.
func configureBlueprints(_ context.Context, a *App) error {
	a.Flash = flash.New(
		a.Config.String("SESSION_NAME"),
		[]byte(a.Config.String("SECRET_KEY")),
		!a.Debug && !a.Testing,
		a.Logger,
	)

	paths := map[string]string{}

	if prefix := staticPrefix(a.Config.String("STATIC_URL_PATH")); prefix != "" {
		a.Router.Handle(prefix+"/*", fileserver.Handler(prefix, a.Config.String("STATIC_FOLDER")))
		paths[prefix] = "static files"
	}

	bps := a.opts.Blueprints
	if bps == nil {
		bps = DefaultBlueprints()
	}

	env := blueprint.Env{
		Config:   a.Config,
		Logger:   a.Logger,
		Renderer: a.Templates,
		DB:       a.DB,
		Flash:    a.Flash,
		Assets:   a.Assets,
	}

	names := map[string]bool{}
	for _, bp := range bps {
		if bp.Name == "" {
			return errors.New("blueprint without a name")
		}
		if bp.Routes == nil {
			return fmt.Errorf("blueprint %q has no routes", bp.Name)
		}
		if names[bp.Name] {
			return fmt.Errorf("blueprint %q registered twice", bp.Name)
		}
		mount, err := bp.MountPath()
		if err != nil {
			return err
		}
		if owner, taken := paths[mount]; taken {
			return fmt.Errorf("blueprint %q: mount path %q already used by %s", bp.Name, mount, owner)
		}

		if bp.Templates != nil {
			if err := a.Templates.Register(*bp.Templates); err != nil {
				return fmt.Errorf("blueprint %q: %w", bp.Name, err)
			}
		}

		if err := mountRoutes(a.Router, mount, bp.Routes(env.With(bp.Name))); err != nil {
			return fmt.Errorf("blueprint %q: %w", bp.Name, err)
		}

		names[bp.Name] = true
		paths[mount] = "blueprint " + bp.Name
		a.mounted = append(a.mounted, bp.Name)
		a.Logger.Debug("blueprint mounted", zap.String("name", bp.Name), zap.String("path", mount))
	}
	return nil
}

// mountRoutes mounts h at pattern, turning a chi mount panic into an error.
func mountRoutes(r chi.Router, pattern string, h http.Handler) (err error) {
	if h == nil {
		return errors.New("routes returned no handler")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("mount %q: %v", pattern, rec)
		}
	}()
	r.Mount(pattern, h)
	return nil
}

// staticPrefix cleans STATIC_URL_PATH to "/x" form; "" or "/" disables it.
func staticPrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = path.Clean("/" + p)
	if p == "/" {
		return ""
	}
	return p
}
