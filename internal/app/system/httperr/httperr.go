// internal/app/system/httperr/httperr.go

// Package httperr maps HTTP status codes to error-page handlers.
//
// A Registry is filled once at startup and installed with Middleware. Feature
// handlers then call Abort(w, r, code) and the page registered for that code
// is rendered. Codes without a registered page get a plain-text response.
package httperr

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/zap"
)

// Handler renders the error page for code.
type Handler func(w http.ResponseWriter, r *http.Request, code int)

// Registry holds the error-page handlers keyed by status code.
type Registry struct {
	handlers map[int]Handler
	log      *zap.Logger
}

// NewRegistry returns an empty Registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{handlers: map[int]Handler{}, log: logger}
}

// Register maps each code to h. Registering a code again replaces its handler.
func (g *Registry) Register(h Handler, codes ...int) {
	for _, code := range codes {
		g.handlers[code] = h
	}
}

// Has reports whether a handler is registered for code.
func (g *Registry) Has(code int) bool {
	_, ok := g.handlers[code]
	return ok
}

// Codes returns the registered status codes in ascending order.
func (g *Registry) Codes() []int {
	codes := make([]int, 0, len(g.handlers))
	for c := range g.handlers {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// Serve renders the page registered for code, or a plain status response.
func (g *Registry) Serve(w http.ResponseWriter, r *http.Request, code int) {
	if h, ok := g.handlers[code]; ok {
		h(w, r, code)
		return
	}
	http.Error(w, http.StatusText(code), code)
}

// StatusHandler returns an http.HandlerFunc that always serves code.
// Use it for router-level fallbacks such as NotFound.
func (g *Registry) StatusHandler(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.Serve(w, r, code)
	}
}

type ctxKey struct{}

// Middleware makes g reachable from Abort and turns panics in downstream
// handlers into a 500 page. A panic after the response has started is only
// logged, since the status line is already on the wire.
func (g *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, g))
		w := &trackingWriter{ResponseWriter: rw}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			g.log.Error("panic while serving request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("panic", fmt.Sprint(rec)),
				zap.Bool("response_started", w.started),
				zap.Stack("stack"))
			if w.started {
				return
			}
			g.Serve(w, r, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// trackingWriter records whether the response has started.
type trackingWriter struct {
	http.ResponseWriter
	started bool
}

func (w *trackingWriter) WriteHeader(code int) {
	// 1xx responses are informational and leave the real status unwritten.
	if code >= 200 {
		w.started = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.started = true
	return w.ResponseWriter.Write(b)
}

func (w *trackingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		w.started = true
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *trackingWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// FromContext returns the Registry installed by Middleware, if any.
func FromContext(ctx context.Context) (*Registry, bool) {
	g, ok := ctx.Value(ctxKey{}).(*Registry)
	return g, ok
}

// Abort renders the error page registered for code on the request's
// Registry. Without a Registry it writes a plain status response.
func Abort(w http.ResponseWriter, r *http.Request, code int) {
	if g, ok := FromContext(r.Context()); ok {
		g.Serve(w, r, code)
		return
	}
	http.Error(w, http.StatusText(code), code)
}
