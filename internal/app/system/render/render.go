// internal/app/system/render/render.go

// Package render is the application's HTML template engine.
//
// Templates live in embedded filesystems grouped into Sets. One Set is the
// layout: it is parsed once and defines a "layout" template with "title" and
// "content" blocks. Every page file of a registered Set is parsed on a clone
// of the layout, so pages only define the blocks they override. Pages are
// addressed by their path relative to the Set's Root, e.g. "errors/404.html".
//
// Helpers must be added with Funcs before the layout is parsed; html/template
// resolves function names at parse time.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// LayoutName is the template executed for every page when the layout defines it.
const LayoutName = "layout"

// ErrParsed is returned by Funcs once templates have been parsed.
var ErrParsed = errors.New("render: templates already parsed; add funcs first")

// Set is a group of template files in an embedded filesystem.
type Set struct {
	Name     string
	FS       fs.FS
	Root     string   // stripped from file paths to form page names
	Patterns []string // fs.Glob patterns
}

// Renderer parses and executes page templates.
type Renderer struct {
	mu     sync.RWMutex
	funcs  template.FuncMap
	base   *template.Template
	pages  map[string]*template.Template
	parsed bool
	log    *zap.Logger
}

// New returns an empty Renderer.
func New(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		funcs: template.FuncMap{},
		pages: map[string]*template.Template{},
		log:   logger,
	}
}

// Funcs adds helpers available to every template.
func (r *Renderer) Funcs(fm template.FuncMap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsed {
		return ErrParsed
	}
	for k, v := range fm {
		r.funcs[k] = v
	}
	return nil
}

// FuncMap returns a copy of the registered helpers.
func (r *Renderer) FuncMap() template.FuncMap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(template.FuncMap, len(r.funcs))
	for k, v := range r.funcs {
		out[k] = v
	}
	return out
}

// Layout parses the shared layout and partials all pages are built on.
func (r *Renderer) Layout(set Set) error {
	files, err := set.files()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	base := template.New(set.Name).Funcs(r.funcs)
	for _, f := range files {
		src, err := fs.ReadFile(set.FS, f)
		if err != nil {
			return fmt.Errorf("render: read %s: %w", f, err)
		}
		if _, err := base.New(set.pageName(f)).Parse(string(src)); err != nil {
			return fmt.Errorf("render: parse %s: %w", f, err)
		}
	}
	r.base = base
	r.parsed = true
	return nil
}

// Register parses every page of set on top of the layout.
// A page name already registered by another set is an error.
func (r *Renderer) Register(set Set) error {
	files, err := set.files()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.base == nil {
		r.base = template.New("").Funcs(r.funcs)
	}
	r.parsed = true

	for _, f := range files {
		name := set.pageName(f)
		if _, dup := r.pages[name]; dup {
			return fmt.Errorf("render: page %q registered twice", name)
		}
		src, err := fs.ReadFile(set.FS, f)
		if err != nil {
			return fmt.Errorf("render: read %s: %w", f, err)
		}
		t, err := r.base.Clone()
		if err != nil {
			return fmt.Errorf("render: clone layout for %s: %w", name, err)
		}
		if _, err := t.New(name).Parse(string(src)); err != nil {
			return fmt.Errorf("render: parse %s: %w", f, err)
		}
		r.pages[name] = t
	}

	r.log.Debug("templates registered", zap.String("set", set.Name), zap.Int("pages", len(files)))
	return nil
}

// Has reports whether a page named name is registered.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pages[name]
	return ok
}

// Names returns the registered page names in sorted order.
func (r *Renderer) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pages))
	for n := range r.pages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Execute renders page name into a string.
func (r *Renderer) Execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.execute(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes page name with the given status. Nothing is written when
// rendering fails, so the caller can still send an error page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.execute(&buf, name, data); err != nil {
		r.log.Error("template render failed", zap.String("template", name), zap.Error(err))
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) execute(buf *bytes.Buffer, name string, data any) error {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	entry := name
	if t.Lookup(LayoutName) != nil {
		entry = LayoutName
	}
	return t.ExecuteTemplate(buf, entry, data)
}

func (s Set) files() ([]string, error) {
	if s.FS == nil {
		return nil, fmt.Errorf("render: set %q has no filesystem", s.Name)
	}
	seen := map[string]bool{}
	var files []string
	for _, p := range s.Patterns {
		matches, err := fs.Glob(s.FS, p)
		if err != nil {
			return nil, fmt.Errorf("render: set %q pattern %q: %w", s.Name, p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("render: set %q matched no files", s.Name)
	}
	sort.Strings(files)
	return files, nil
}

func (s Set) pageName(file string) string {
	if s.Root == "" {
		return file
	}
	root := path.Clean(s.Root) + "/"
	return strings.TrimPrefix(file, root)
}
