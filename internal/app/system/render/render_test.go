package render_test

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dalemusser/rfs/internal/app/system/render"
	"go.uber.org/zap"
)

var layoutFS = fstest.MapFS{
	"templates/layout.html": {Data: []byte(
		`{{define "layout"}}<title>{{block "title" .}}rfs{{end}}</title><main>{{block "content" .}}{{end}}</main>{{end}}`)},
}

var pagesFS = fstest.MapFS{
	"templates/shop/hello.html": {Data: []byte(`{{define "title"}}Hello{{end}}{{define "content"}}hi {{.Name}} {{shout "x"}}{{end}}`)},
	"templates/shop/bare.html":  {Data: []byte(`{{define "content"}}bare{{end}}`)},
	"templates/shop/broken.txt": {Data: []byte(`{{`)},
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r := render.New(zap.NewNop())
	if err := r.Funcs(template.FuncMap{"shout": strings.ToUpper}); err != nil {
		t.Fatalf("Funcs: %v", err)
	}
	if err := r.Layout(render.Set{Name: "layout", FS: layoutFS, Root: "templates", Patterns: []string{"templates/*.html"}}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if err := r.Register(render.Set{Name: "shop", FS: pagesFS, Root: "templates", Patterns: []string{"templates/shop/*.html"}}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return r
}

func TestRender_PageInLayout(t *testing.T) {
	r := newRenderer(t)

	rec := httptest.NewRecorder()
	if err := r.Render(rec, http.StatusTeapot, "shop/hello.html", map[string]string{"Name": "ada"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusTeapot)
	}
	body := rec.Body.String()
	if body != "<title>Hello</title><main>hi ada X</main>" {
		t.Errorf("body: got %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestRender_DefaultBlocks(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Execute("shop/bare.html", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "<title>rfs</title><main>bare</main>" {
		t.Errorf("got %q", out)
	}
}

func TestRender_UnknownPageWritesNothing(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()
	if err := r.Render(rec, http.StatusOK, "shop/missing.html", nil); err == nil {
		t.Fatal("expected error for unknown page")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestFuncs_AfterParseFails(t *testing.T) {
	r := newRenderer(t)
	if err := r.Funcs(template.FuncMap{"late": func() string { return "" }}); !errors.Is(err, render.ErrParsed) {
		t.Errorf("expected ErrParsed, got %v", err)
	}
	if _, ok := r.FuncMap()["shout"]; !ok {
		t.Error("FuncMap should contain shout")
	}
}

func TestRegister_DuplicatePage(t *testing.T) {
	r := newRenderer(t)
	err := r.Register(render.Set{Name: "again", FS: pagesFS, Root: "templates", Patterns: []string{"templates/shop/bare.html"}})
	if err == nil {
		t.Fatal("expected duplicate page error")
	}
}

func TestRegister_NoMatches(t *testing.T) {
	r := render.New(nil)
	if err := r.Register(render.Set{Name: "empty", FS: pagesFS, Patterns: []string{"nothing/*.html"}}); err == nil {
		t.Fatal("expected error for a set with no files")
	}
}

func TestNamesAndHas(t *testing.T) {
	r := newRenderer(t)
	names := r.Names()
	if len(names) != 2 || names[0] != "shop/bare.html" || names[1] != "shop/hello.html" {
		t.Errorf("Names: got %v", names)
	}
	if !r.Has("shop/hello.html") || r.Has("layout.html") {
		t.Error("Has reported wrong pages")
	}
}

func TestRegister_WithoutLayout(t *testing.T) {
	r := render.New(nil)
	fsys := fstest.MapFS{"p.html": {Data: []byte(`plain {{.}}`)}}
	if err := r.Register(render.Set{Name: "plain", FS: fsys, Patterns: []string{"*.html"}}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	out, err := r.Execute("p.html", "page")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "plain page" {
		t.Errorf("got %q", out)
	}
}
