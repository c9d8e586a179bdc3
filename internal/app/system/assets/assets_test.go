package assets_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/rfs/internal/app/system/assets"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(b)
}

func TestBuild_JSMinConcatenates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "// first file\nvar alpha = 1;\n")
	writeFile(t, dir, "b.js", "function  beta ( x ) {\n    return x  +  1;\n}\n")

	env := assets.New(dir, "/static", zap.NewNop())
	if err := env.Register("js", assets.NewBundle("out/bundle.js", []string{assets.FilterJSMin}, "a.js", "b.js")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := env.Build("js"); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := readFile(t, dir, "out/bundle.js")
	if strings.Contains(out, "first file") {
		t.Errorf("comments should be stripped: %q", out)
	}
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Errorf("both sources should be present: %q", out)
	}
	if strings.Contains(out, "    ") {
		t.Errorf("indentation should be removed: %q", out)
	}
}

func TestBuild_CSSMin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.css", "body {\n  margin : 0px;\n}\n")
	writeFile(t, dir, "app.css", "/* app */\n.title  {  color : #ffffff;  }\n")

	env := assets.New(dir, "/static", nil)
	if err := env.Register("css", assets.NewBundle("bundle.css", []string{assets.FilterCSSMin}, "lib.css", "app.css")); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Build("css"); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := readFile(t, dir, "bundle.css")
	if strings.Contains(out, "/* app */") || strings.Contains(out, "\n") {
		t.Errorf("css not minified: %q", out)
	}
	if !strings.Contains(out, "body{margin:0") || !strings.Contains(out, ".title{color:#fff") {
		t.Errorf("unexpected css output: %q", out)
	}
}

func TestBuild_JSX(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jsx/app.js", "const el = <div className=\"x\">hi</div>;\n")

	env := assets.New(dir, "/static", nil)
	if err := env.Register("jsx", assets.NewBundle("js/app.js", []string{assets.FilterJSX}, "jsx/app.js")); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Build("jsx"); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := readFile(t, dir, "js/app.js")
	if !strings.Contains(out, "React.createElement") {
		t.Errorf("expected JSX to be transpiled, got %q", out)
	}
	if strings.Contains(out, "<div") {
		t.Errorf("raw JSX left in output: %q", out)
	}
}

func TestBuild_JSXSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.js", "const el = <div>;\n")

	env := assets.New(dir, "/static", nil)
	if err := env.Register("bad", assets.NewBundle("bad.out.js", []string{assets.FilterJSX}, "bad.js")); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Build("bad"); err == nil {
		t.Fatal("expected a transpile error")
	}
}

func TestBuild_MissingSource(t *testing.T) {
	env := assets.New(t.TempDir(), "/static", nil)
	if err := env.Register("js", assets.NewBundle("x.js", nil, "missing.js")); err != nil {
		t.Fatal(err)
	}
	_, err := env.Build("js")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	env := assets.New(t.TempDir(), "/static", nil)

	if err := env.Register("", assets.NewBundle("o.js", nil, "a.js")); err == nil {
		t.Error("expected error for empty name")
	}
	if err := env.Register("empty", assets.NewBundle("o.js", nil)); err == nil {
		t.Error("expected error for bundle without contents")
	}
	if err := env.Register("noout", assets.NewBundle("", nil, "a.js")); err == nil {
		t.Error("expected error for bundle without output")
	}
	if err := env.Register("badfilter", assets.NewBundle("o.js", []string{"uglify"}, "a.js")); err == nil {
		t.Error("expected error for unknown filter")
	}
	if err := env.Register("ok", assets.NewBundle("o.js", nil, "a.js")); err != nil {
		t.Fatalf("Register ok: %v", err)
	}
	if err := env.Register("ok", assets.NewBundle("p.js", nil, "b.js")); !errors.Is(err, assets.ErrDuplicateBundle) {
		t.Errorf("expected ErrDuplicateBundle, got %v", err)
	}
	if _, err := env.Build("nope"); !errors.Is(err, assets.ErrUnknownBundle) {
		t.Errorf("expected ErrUnknownBundle, got %v", err)
	}
}

func TestNames_RegistrationOrder(t *testing.T) {
	env := assets.New(t.TempDir(), "/static", nil)
	for _, n := range []string{"c", "a", "b"} {
		if err := env.Register(n, assets.NewBundle(n+".js", nil, "src.js")); err != nil {
			t.Fatal(err)
		}
	}
	got := strings.Join(env.Names(), ",")
	if got != "c,a,b" {
		t.Errorf("Names: got %s, want c,a,b", got)
	}
}

func TestURLs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "var a=1;")
	writeFile(t, dir, "b.js", "var b=2;")

	env := assets.New(dir, "/static", nil)
	if err := env.Register("js", assets.NewBundle("libs/bundle.js", nil, "a.js", "b.js")); err != nil {
		t.Fatal(err)
	}

	urls, err := env.URLs("js")
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 1 || urls[0] != "/static/libs/bundle.js" {
		t.Errorf("unbuilt URLs: got %v", urls)
	}

	if _, err := env.Build("js"); err != nil {
		t.Fatal(err)
	}
	urls, _ = env.URLs("js")
	if len(urls) != 1 || !strings.HasPrefix(urls[0], "/static/libs/bundle.js?v=") {
		t.Errorf("built URLs: got %v", urls)
	}

	env.Debug = true
	urls, _ = env.URLs("js")
	if strings.Join(urls, " ") != "/static/a.js /static/b.js" {
		t.Errorf("debug URLs: got %v", urls)
	}

	if _, err := env.URLs("other"); !errors.Is(err, assets.ErrUnknownBundle) {
		t.Errorf("expected ErrUnknownBundle, got %v", err)
	}
}

func TestURLs_VersionComputedOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "var a=1;")

	env := assets.New(dir, "/static", nil)
	if err := env.Register("js", assets.NewBundle("out.js", nil, "a.js")); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Build("js"); err != nil {
		t.Fatal(err)
	}
	first, _ := env.URLs("js")

	// Later calls use the version taken at build time, not the file.
	writeFile(t, dir, "out.js", "changed on disk")
	second, _ := env.URLs("js")
	if err := os.Remove(filepath.Join(dir, "out.js")); err != nil {
		t.Fatal(err)
	}
	third, _ := env.URLs("js")

	if first[0] != second[0] || first[0] != third[0] {
		t.Errorf("URLs changed without a rebuild: %v %v %v", first, second, third)
	}
	if !strings.Contains(first[0], "?v=") {
		t.Errorf("expected a versioned URL, got %v", first)
	}
}

func TestURLs_PrebuiltOutputReadOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "var a=1;")
	writeFile(t, dir, "out.js", "var built=1;")

	env := assets.New(dir, "", nil)
	if err := env.Register("js", assets.NewBundle("out.js", nil, "a.js")); err != nil {
		t.Fatal(err)
	}
	first, _ := env.URLs("js")
	if !strings.Contains(first[0], "?v=") {
		t.Fatalf("pre-built output should be versioned, got %v", first)
	}

	writeFile(t, dir, "out.js", "var other=2;")
	if second, _ := env.URLs("js"); second[0] != first[0] {
		t.Errorf("output re-read: %v then %v", first, second)
	}

	if _, err := env.Build("js"); err != nil {
		t.Fatal(err)
	}
	if third, _ := env.URLs("js"); third[0] == first[0] {
		t.Errorf("rebuild should refresh the version, still %v", third)
	}
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "var a=1;")

	env := assets.New(dir, "", nil)
	if err := env.Register("js", assets.NewBundle("out.js", nil, "a.js")); err != nil {
		t.Fatal(err)
	}
	if err := env.BuildAll(); err != nil {
		t.Fatal(err)
	}
	if err := env.Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.js")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output should be removed, stat err = %v", err)
	}
	// A second clean finds nothing to remove.
	if err := env.Clean("js"); err != nil {
		t.Errorf("second Clean: %v", err)
	}
	if err := env.Clean("nope"); !errors.Is(err, assets.ErrUnknownBundle) {
		t.Errorf("expected ErrUnknownBundle, got %v", err)
	}
	if got := env.URL("a.js"); got != "/a.js" {
		t.Errorf("URL with empty prefix: got %q", got)
	}
}

type upper struct{}

func (upper) Name() string                      { return "upper" }
func (upper) Apply(src []byte) ([]byte, error) { return []byte(strings.ToUpper(string(src))), nil }

func TestRegisterFilter_Custom(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "abc")
	env := assets.New(dir, "", nil)
	env.RegisterFilter(upper{})
	if err := env.Register("txt", assets.NewBundle("o.txt", []string{"upper"}, "a.txt")); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Build("txt"); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, dir, "o.txt"); got != "ABC" {
		t.Errorf("got %q", got)
	}
}
