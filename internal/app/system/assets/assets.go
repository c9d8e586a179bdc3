// internal/app/system/assets/assets.go

// Package assets declares and builds static-asset bundles.
//
// A Bundle names a list of source files under the environment's directory,
// the filters their concatenation passes through, and the output file the
// result is written to. Bundles are registered on an Environment under a
// name that templates use to ask for URLs.
package assets

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrUnknownBundle is returned for a bundle name that was never registered.
	ErrUnknownBundle = errors.New("assets: unknown bundle")
	// ErrDuplicateBundle is returned when a name is registered twice.
	ErrDuplicateBundle = errors.New("assets: bundle already registered")
)

// Bundle is a declared aggregation of source files.
type Bundle struct {
	Contents []string // paths relative to the environment directory
	Filters  []string // filter names applied in order
	Output   string   // output path relative to the environment directory
}

// NewBundle is shorthand for a Bundle literal.
func NewBundle(output string, filters []string, contents ...string) *Bundle {
	return &Bundle{Contents: contents, Filters: filters, Output: output}
}

// Environment holds registered bundles and the filters they may use.
type Environment struct {
	Directory string // filesystem root for contents and outputs
	URLPrefix string // URL path the directory is served under
	Debug     bool   // serve source files instead of built outputs

	mu      sync.RWMutex
	filters map[string]Filter
	bundles map[string]*Bundle
	order   []string
	log     *zap.Logger

	// versions caches the content hash of each bundle's output, keyed by
	// bundle name. "" means the output did not exist when it was looked up.
	versions map[string]string
}

// New returns an Environment rooted at directory with the default filters.
func New(directory, urlPrefix string, logger *zap.Logger) *Environment {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Environment{
		Directory: directory,
		URLPrefix: urlPrefix,
		filters:   map[string]Filter{},
		bundles:   map[string]*Bundle{},
		log:       logger,
		versions:  map[string]string{},
	}
	for _, f := range DefaultFilters() {
		e.filters[f.Name()] = f
	}
	return e
}

// RegisterFilter makes f available to bundles, replacing any filter of the same name.
func (e *Environment) RegisterFilter(f Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters[f.Name()] = f
}

// Register adds b under name.
func (e *Environment) Register(name string, b *Bundle) error {
	if name == "" {
		return errors.New("assets: bundle name is required")
	}
	if b == nil || len(b.Contents) == 0 {
		return fmt.Errorf("assets: bundle %q has no contents", name)
	}
	if b.Output == "" {
		return fmt.Errorf("assets: bundle %q has no output", name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, dup := e.bundles[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateBundle, name)
	}
	for _, fname := range b.Filters {
		if _, ok := e.filters[fname]; !ok {
			return fmt.Errorf("assets: bundle %q uses unknown filter %q", name, fname)
		}
	}
	e.bundles[name] = b
	e.order = append(e.order, name)
	return nil
}

// Get returns the bundle registered under name.
func (e *Environment) Get(name string) (*Bundle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.bundles[name]
	return b, ok
}

// Names returns bundle names in registration order.
func (e *Environment) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.order...)
}

// Build concatenates the bundle's contents, runs its filters and writes the
// output file. It returns the output's filesystem path.
func (e *Environment) Build(name string) (string, error) {
	e.mu.RLock()
	b, ok := e.bundles[name]
	var filters []Filter
	if ok {
		for _, fname := range b.Filters {
			filters = append(filters, e.filters[fname])
		}
	}
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBundle, name)
	}

	var buf bytes.Buffer
	for i, src := range b.Contents {
		data, err := os.ReadFile(e.path(src))
		if err != nil {
			return "", fmt.Errorf("assets: bundle %q: %w", name, err)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(data)
	}

	out := buf.Bytes()
	for _, f := range filters {
		var err error
		if out, err = f.Apply(out); err != nil {
			return "", fmt.Errorf("assets: bundle %q: %w", name, err)
		}
	}

	dst := e.path(b.Output)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("assets: bundle %q: %w", name, err)
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return "", fmt.Errorf("assets: bundle %q: %w", name, err)
	}
	e.setVersion(name, version(out))

	e.log.Info("asset bundle built",
		zap.String("bundle", name),
		zap.String("output", b.Output),
		zap.Int("bytes", len(out)))
	return dst, nil
}

// BuildAll builds every bundle in registration order, stopping at the first error.
func (e *Environment) BuildAll() error {
	for _, name := range e.Names() {
		if _, err := e.Build(name); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes the output file of each named bundle (all bundles if none
// are named). Missing outputs are not an error.
func (e *Environment) Clean(names ...string) error {
	if len(names) == 0 {
		names = e.Names()
	}
	for _, name := range names {
		b, ok := e.Get(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBundle, name)
		}
		if err := os.Remove(e.path(b.Output)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("assets: clean %q: %w", name, err)
		}
		e.setVersion(name, "")
	}
	return nil
}

// URLs returns the URLs a page should load for bundle name.
//
// In debug mode these are the unprocessed source files. Otherwise it is the
// output file, versioned with a hash of its contents when it has been built.
// The hash is taken when Build writes the output; an output built by another
// process is read once, on the first call.
func (e *Environment) URLs(name string) ([]string, error) {
	b, ok := e.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBundle, name)
	}
	if e.Debug {
		urls := make([]string, 0, len(b.Contents))
		for _, c := range b.Contents {
			urls = append(urls, e.URL(c))
		}
		return urls, nil
	}

	u := e.URL(b.Output)
	if v := e.outputVersion(name, b); v != "" {
		u += "?v=" + v
	}
	return []string{u}, nil
}

func (e *Environment) outputVersion(name string, b *Bundle) string {
	e.mu.RLock()
	v, ok := e.versions[name]
	e.mu.RUnlock()
	if ok {
		return v
	}

	if data, err := os.ReadFile(e.path(b.Output)); err == nil {
		v = version(data)
	}
	e.setVersion(name, v)
	return v
}

func (e *Environment) setVersion(name, v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.versions[name] = v
}

func version(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:4])
}

// URL joins the environment's URL prefix with a file path.
func (e *Environment) URL(file string) string {
	return path.Join("/", e.URLPrefix, strings.TrimPrefix(file, "/"))
}

func (e *Environment) path(rel string) string {
	return filepath.Join(e.Directory, filepath.FromSlash(rel))
}
