// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/rfs/internal/app/shop"
	"github.com/dalemusser/rfs/internal/app/system/database"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	DB *database.DB

	// Runtime is filled by BuildHandler so Shutdown can close the app.
	Runtime *Runtime
}

// Runtime carries objects created after ConnectDB.
type Runtime struct {
	App *shop.App
}
