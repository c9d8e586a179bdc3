// internal/app/settings/defaults.go
package settings

// Defaults is the shape of the default settings object. Override objects do
// not need to embed it: any struct whose tags name the same keys works.
type Defaults struct {
	Project string `mapstructure:"PROJECT"`
	Debug   bool   `mapstructure:"DEBUG"`
	Testing bool   `mapstructure:"TESTING"`

	// Signs the flash-message cookie. Empty means a random key per process.
	SecretKey   string `mapstructure:"SECRET_KEY"`
	SessionName string `mapstructure:"SESSION_NAME"`

	LogFolder string `mapstructure:"LOG_FOLDER"`

	MongoURI         string `mapstructure:"MONGO_URI"`
	MongoDatabase    string `mapstructure:"MONGO_DATABASE"`
	MongoMaxPoolSize int    `mapstructure:"MONGO_MAX_POOL_SIZE"`
	MongoMinPoolSize int    `mapstructure:"MONGO_MIN_POOL_SIZE"`

	StaticFolder    string `mapstructure:"STATIC_FOLDER"`
	StaticURLPath   string `mapstructure:"STATIC_URL_PATH"`
	AssetsDebug     bool   `mapstructure:"ASSETS_DEBUG"`
	AssetsAutoBuild bool   `mapstructure:"ASSETS_AUTO_BUILD"`

	ProductsPerPage int `mapstructure:"PRODUCTS_PER_PAGE"`

	// Create, edit and delete requests allowed per client IP each minute.
	// Zero turns the limit off.
	ProductsWritesPerMinute int `mapstructure:"PRODUCTS_WRITES_PER_MINUTE"`

	// Comma-separated proxy addresses or CIDR ranges whose X-Forwarded-For
	// and X-Real-IP headers name the client. Empty trusts no proxy.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`
}

// Default is the default settings object.
var Default = Defaults{
	Project: "rfs",

	SessionName: "rfs-session",

	LogFolder: "logs",

	MongoURI:         "mongodb://localhost:27017",
	MongoDatabase:    "rfs",
	MongoMaxPoolSize: 100,
	MongoMinPoolSize: 0,

	StaticFolder:  "public",
	StaticURLPath: "/static",

	ProductsPerPage:         20,
	ProductsWritesPerMinute: 30,
}
