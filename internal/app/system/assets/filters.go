// internal/app/system/assets/filters.go
package assets

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

// Filter transforms the concatenated contents of a bundle.
type Filter interface {
	Name() string
	Apply(src []byte) ([]byte, error)
}

// Built-in filter names.
const (
	FilterJSMin  = "jsmin"
	FilterCSSMin = "cssmin"
	FilterJSX    = "jsx"
)

const (
	mimeJS  = "application/javascript"
	mimeCSS = "text/css"
)

// minifyFilter runs one tdewolff/minify minifier.
type minifyFilter struct {
	name string
	mime string
	m    *minify.M
}

func (f minifyFilter) Name() string { return f.name }

func (f minifyFilter) Apply(src []byte) ([]byte, error) {
	out, err := f.m.Bytes(f.mime, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return out, nil
}

// JSMin minifies JavaScript.
func JSMin() Filter {
	m := minify.New()
	m.AddFunc(mimeJS, js.Minify)
	return minifyFilter{name: FilterJSMin, mime: mimeJS, m: m}
}

// CSSMin minifies stylesheets.
func CSSMin() Filter {
	m := minify.New()
	m.AddFunc(mimeCSS, css.Minify)
	return minifyFilter{name: FilterCSSMin, mime: mimeCSS, m: m}
}

// jsxFilter transpiles JSX to plain JavaScript with esbuild.
type jsxFilter struct{}

// JSX transpiles JSX into React.createElement calls.
func JSX() Filter { return jsxFilter{} }

func (jsxFilter) Name() string { return FilterJSX }

func (jsxFilter) Apply(src []byte) ([]byte, error) {
	res := api.Transform(string(src), api.TransformOptions{
		Loader: api.LoaderJSX,
	})
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, m := range res.Errors {
			if m.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
			} else {
				msgs = append(msgs, m.Text)
			}
		}
		return nil, fmt.Errorf("jsx: %s", strings.Join(msgs, "; "))
	}
	return res.Code, nil
}

// DefaultFilters returns the filters every Environment starts with.
func DefaultFilters() []Filter {
	return []Filter{JSMin(), CSSMin(), JSX()}
}
