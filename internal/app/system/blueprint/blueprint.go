// internal/app/system/blueprint/blueprint.go

// Package blueprint defines a mountable bundle of routes and templates.
package blueprint

import (
	"fmt"
	"path"
	"strings"

	"github.com/dalemusser/rfs/internal/app/settings"
	"github.com/dalemusser/rfs/internal/app/system/assets"
	"github.com/dalemusser/rfs/internal/app/system/database"
	"github.com/dalemusser/rfs/internal/app/system/flash"
	"github.com/dalemusser/rfs/internal/app/system/render"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Env is what a blueprint receives when it is mounted.
type Env struct {
	Config   settings.Config
	Logger   *zap.Logger
	Renderer *render.Renderer
	DB       *database.DB
	Flash    *flash.Store
	Assets   *assets.Environment
}

// Blueprint is a named feature that can be mounted on the application.
type Blueprint struct {
	Name   string
	Prefix string // mount path; "" means "/"

	// Templates are registered on the renderer before Routes is called.
	Templates *render.Set

	Routes func(env Env) chi.Router
}

// MountPath returns the cleaned path the blueprint is mounted at, so "/a"
// and "/a/" name the same mount. An empty prefix means "/". Prefixes must
// begin with "/" and may not contain a "*" wildcard.
func (b Blueprint) MountPath() (string, error) {
	p := strings.TrimSpace(b.Prefix)
	if p == "" {
		return "/", nil
	}
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("blueprint %q: prefix %q must begin with '/'", b.Name, b.Prefix)
	}
	if strings.Contains(p, "*") {
		return "", fmt.Errorf("blueprint %q: prefix %q may not contain '*'", b.Name, b.Prefix)
	}
	return path.Clean(p), nil
}

// With returns a copy of e whose logger is named after the blueprint.
func (e Env) With(name string) Env {
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	e.Logger = e.Logger.Named(name)
	return e
}
