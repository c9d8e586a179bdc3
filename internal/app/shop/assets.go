// internal/app/shop/assets.go
package shop

import (
	"context"

	"github.com/dalemusser/rfs/internal/app/system/assets"
)

// Bundle names declared by DeclareBundles.
const (
	BundleJS  = "js_all"
	BundleJSX = "jsx_all"
	BundleCSS = "css_all"
)

// DeclareBundles registers the application's asset bundles on env.
// The asset CLI calls it too, so both work on the same bundles.
func DeclareBundles(env *assets.Environment) error {
	bundles := []struct {
		name string
		b    *assets.Bundle
	}{
		{BundleJS, assets.NewBundle("libs/bundle.js", []string{assets.FilterJSMin},
			"libs/react/react.js",
			"libs/jquery/dist/jquery.js",
			"libs/bootstrap/dist/js/bootstrap.min.js",
		)},
		{BundleJSX, assets.NewBundle("js/app.js", []string{assets.FilterJSX},
			"jsx/app.js",
		)},
		{BundleCSS, assets.NewBundle("libs/bundle.css", []string{assets.FilterCSSMin},
			"libs/bootstrap/dist/css/bootstrap.css",
			"css/app.css",
		)},
	}
	for _, e := range bundles {
		if err := env.Register(e.name, e.b); err != nil {
			return err
		}
	}
	return nil
}

// configureAssets creates the asset environment and declares the bundles.
// With ASSETS_AUTO_BUILD every bundle is built now and a failure stops Create.
func configureAssets(_ context.Context, a *App) error {
	env := assets.New(a.Config.String("STATIC_FOLDER"), a.Config.String("STATIC_URL_PATH"), a.Logger)
	env.Debug = a.Config.Bool("ASSETS_DEBUG")
	if err := DeclareBundles(env); err != nil {
		return err
	}
	a.Assets = env

	if a.Config.Bool("ASSETS_AUTO_BUILD") {
		if err := env.BuildAll(); err != nil {
			return err
		}
	}
	return nil
}
