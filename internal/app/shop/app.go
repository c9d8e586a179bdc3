// internal/app/shop/app.go

// Package shop is the application factory. Create builds an App and runs
// its configure steps once, in a fixed order:
//
//  1. app configuration (defaults, then the override)
//  2. logging
//  3. database
//  4. asset bundles
//  5. template helpers and the shared layout
//  6. error pages
//  7. blueprints
//
// Error pages come before blueprints so mounted routers inherit the
// not-found handler.
package shop

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/rfs/internal/app/features/products"
	"github.com/dalemusser/rfs/internal/app/settings"
	"github.com/dalemusser/rfs/internal/app/system/assets"
	"github.com/dalemusser/rfs/internal/app/system/blueprint"
	"github.com/dalemusser/rfs/internal/app/system/database"
	"github.com/dalemusser/rfs/internal/app/system/flash"
	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"github.com/dalemusser/rfs/internal/app/system/render"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options are the inputs to Create. The zero value builds the default app.
type Options struct {
	// Name of the app; empty means the PROJECT setting.
	Name string

	// Override is a settings object applied on top of settings.Default:
	// a struct with mapstructure tags, a pointer to one, or a map[string]any.
	Override any

	// Blueprints to mount, in order. nil means DefaultBlueprints(); an empty
	// non-nil slice mounts nothing.
	Blueprints []blueprint.Blueprint

	// DB is a database extension built by the caller. When nil, Create
	// connects one from the MONGO_* settings and Close disconnects it.
	DB *database.DB

	// LogOutput receives console log lines. Defaults to stderr.
	LogOutput zapcore.WriteSyncer

	// Clock backs the now template helper. Defaults to time.Now.
	Clock func() time.Time
}

// App is a configured application.
type App struct {
	Name    string
	Debug   bool
	Testing bool

	Config    settings.Config
	Router    *chi.Mux
	Logger    *zap.Logger
	Templates *render.Renderer
	Assets    *assets.Environment
	DB        *database.DB
	Flash     *flash.Store
	Errors    *httperr.Registry

	opts     Options
	clock    func() time.Time
	level    zap.AtomicLevel
	logFiles []string
	rotators []*lumberjack.Logger
	ownsDB   bool
	mounted  []string
}

type step struct {
	name string
	fn   func(ctx context.Context, a *App) error
}

// steps is the configure order.
var steps = []step{
	{"app", configureApp},
	{"logging", configureLogging},
	{"database", configureDatabase},
	{"assets", configureAssets},
	{"templates", configureTemplateProcessors},
	{"errors", configureErrorHandlers},
	{"blueprints", configureBlueprints},
}

// Create constructs and fully configures an App. On failure everything
// already opened is released.
func Create(ctx context.Context, opts Options) (*App, error) {
	a := &App{
		opts:   opts,
		clock:  opts.Clock,
		Router: chi.NewRouter(),
		Logger: zap.NewNop(),
	}
	if a.clock == nil {
		a.clock = time.Now
	}

	for _, s := range steps {
		if err := s.fn(ctx, a); err != nil {
			a.Logger.Error("configure step failed", zap.String("step", s.name), zap.Error(err))
			_ = a.Close(ctx)
			return nil, fmt.Errorf("shop: configure %s: %w", s.name, err)
		}
	}

	a.Logger.Info("application created",
		zap.String("name", a.Name),
		zap.Bool("debug", a.Debug),
		zap.Bool("testing", a.Testing),
		zap.Strings("blueprints", a.mounted))
	return a, nil
}

// DefaultBlueprints is the blueprint sequence mounted when Options.Blueprints is nil.
func DefaultBlueprints() []blueprint.Blueprint {
	return []blueprint.Blueprint{products.Blueprint()}
}

// configureApp loads settings.Default and then the override on top.
func configureApp(_ context.Context, a *App) error {
	a.Config = settings.New()
	if err := a.Config.FromObject(settings.Default); err != nil {
		return err
	}
	if err := a.Config.FromObject(a.opts.Override); err != nil {
		return err
	}

	a.Name = a.opts.Name
	if a.Name == "" {
		a.Name = a.Config.String("PROJECT")
	}
	a.Debug = a.Config.Bool("DEBUG")
	a.Testing = a.Config.Bool("TESTING")
	return nil
}

// ServeHTTP dispatches to the app router.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Router.ServeHTTP(w, r)
}

// Blueprints returns the names of the mounted blueprints in mount order.
func (a *App) Blueprints() []string {
	return append([]string(nil), a.mounted...)
}

// Now formats the app clock's current time with layout, or DefaultNowFormat.
func (a *App) Now(layout ...string) string {
	l := DefaultNowFormat
	if len(layout) > 0 && layout[0] != "" {
		l = layout[0]
	}
	return a.clock().Format(l)
}

// Close flushes logs, closes log files and disconnects a database the app
// connected itself. It is safe to call more than once.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	for _, lj := range a.rotators {
		if err := lj.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.ownsDB && a.DB != nil {
		if err := a.DB.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		a.ownsDB = false
	}
	return firstErr
}
