// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/rfs/internal/app/settings"
	"github.com/dalemusser/waffle/config"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings: ports, TLS, log level and format, CORS.
//
// Settings converts it into the override object the shop factory
// layers on top of settings.Default.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Flash-message cookie
	SecretKey   string // signs the cookie; blank means a random key per process
	SessionName string // cookie name

	// Rotating log file folder (production only)
	LogFolder string

	// Static files and asset bundles
	StaticFolder    string
	StaticURLPath   string
	AssetsDebug     bool // serve bundle sources instead of built outputs
	AssetsAutoBuild bool // build every bundle at startup

	ProductsPerPage         int
	ProductsWritesPerMinute int    // 0 disables the write limit
	TrustedProxies          string // proxies allowed to set X-Forwarded-For

	// Database call deadlines
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}

// Settings returns the override settings object for shop.Create. The app
// runs in debug mode when WAFFLE's env is "dev".
func (c AppConfig) Settings(coreCfg *config.CoreConfig) settings.Defaults {
	return settings.Defaults{
		Project: settings.Default.Project,
		Debug:   coreCfg != nil && coreCfg.Env == "dev",

		SecretKey:   c.SecretKey,
		SessionName: c.SessionName,

		LogFolder: c.LogFolder,

		MongoURI:         c.MongoURI,
		MongoDatabase:    c.MongoDatabase,
		MongoMaxPoolSize: int(c.MongoMaxPoolSize),
		MongoMinPoolSize: int(c.MongoMinPoolSize),

		StaticFolder:    c.StaticFolder,
		StaticURLPath:   c.StaticURLPath,
		AssetsDebug:     c.AssetsDebug,
		AssetsAutoBuild: c.AssetsAutoBuild,

		ProductsPerPage:         c.ProductsPerPage,
		ProductsWritesPerMinute: c.ProductsWritesPerMinute,
		TrustedProxies:          c.TrustedProxies,
	}
}

// timeoutSettings exposes the timeout values under their setting names.
func (c AppConfig) timeoutSettings() settings.Config {
	return settings.Config{
		"TIMEOUT_PING":   c.TimeoutPing,
		"TIMEOUT_SHORT":  c.TimeoutShort,
		"TIMEOUT_MEDIUM": c.TimeoutMedium,
	}
}
