// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/rfs/internal/app/settings"
	"github.com/dalemusser/rfs/internal/app/system/ratelimit"
	"github.com/dalemusser/rfs/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for rfs.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: RFS_MONGO_URI, RFS_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: settings.Default.MongoURI, Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: settings.Default.MongoDatabase, Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: settings.Default.MongoMaxPoolSize, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: settings.Default.MongoMinPoolSize, Desc: "MongoDB min connection pool size"},

	{Name: "secret_key", Default: "", Desc: "Flash cookie signing key (required in production)"},
	{Name: "session_name", Default: settings.Default.SessionName, Desc: "Flash cookie name"},

	{Name: "log_folder", Default: settings.Default.LogFolder, Desc: "Folder for the rotating log file"},

	{Name: "static_folder", Default: settings.Default.StaticFolder, Desc: "Folder holding static files and asset sources"},
	{Name: "static_url_path", Default: settings.Default.StaticURLPath, Desc: "URL path static files are served under"},
	{Name: "assets_debug", Default: false, Desc: "Serve asset bundle sources instead of built bundles"},
	{Name: "assets_auto_build", Default: false, Desc: "Build asset bundles at startup"},

	{Name: "products_per_page", Default: settings.Default.ProductsPerPage, Desc: "Products shown per catalog page"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy addresses or CIDRs whose X-Forwarded-For is trusted"},
	{Name: "products_writes_per_minute", Default: settings.Default.ProductsWritesPerMinute, Desc: "Product writes allowed per client IP per minute (0 disables)"},

	{Name: "timeout_ping", Default: timeouts.DefaultPing.String(), Desc: "Deadline for database health checks"},
	{Name: "timeout_short", Default: timeouts.DefaultShort.String(), Desc: "Deadline for single-document database calls"},
	{Name: "timeout_medium", Default: timeouts.DefaultMedium.String(), Desc: "Deadline for list queries"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, RFS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RFS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SecretKey:   appValues.String("secret_key"),
		SessionName: appValues.String("session_name"),

		LogFolder: appValues.String("log_folder"),

		StaticFolder:    appValues.String("static_folder"),
		StaticURLPath:   appValues.String("static_url_path"),
		AssetsDebug:     appValues.Bool("assets_debug"),
		AssetsAutoBuild: appValues.Bool("assets_auto_build"),

		ProductsPerPage:         appValues.Int("products_per_page"),
		ProductsWritesPerMinute: appValues.Int("products_writes_per_minute"),
		TrustedProxies:          appValues.String("trusted_proxies"),

		TimeoutPing:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It checks the MongoDB URI format before any connection is attempted and
// requires a signing key outside development.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database is required")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize && appCfg.MongoMaxPoolSize > 0 {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SecretKey) < 32 {
		return errors.New("secret_key must be at least 32 characters in production")
	}
	if appCfg.ProductsPerPage < 1 {
		return errors.New("products_per_page must be at least 1")
	}
	if appCfg.ProductsWritesPerMinute < 0 {
		return errors.New("products_writes_per_minute must not be negative")
	}
	if _, err := ratelimit.ParseProxies(appCfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted_proxies: %w", err)
	}
	for name, d := range map[string]time.Duration{
		"timeout_ping":   appCfg.TimeoutPing,
		"timeout_short":  appCfg.TimeoutShort,
		"timeout_medium": appCfg.TimeoutMedium,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
