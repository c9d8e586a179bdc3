// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"github.com/dalemusser/rfs/internal/app/system/render"
	"github.com/dalemusser/rfs/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Page names rendered for each error status.
const (
	ForbiddenPage   = "errors/403.html"
	NotFoundPage    = "errors/404.html"
	ServerErrorPage = "errors/500.html"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// Handler renders the error pages. No DB needed.
type Handler struct {
	Render *render.Renderer
	Log    *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(rnd *render.Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Render: rnd, Log: logger}
}

// Register installs the handlers on reg: 401, 403 and 429 share the
// forbidden page, 404 and 500 have their own.
func (h *Handler) Register(reg *httperr.Registry) {
	reg.Register(h.Forbidden, http.StatusUnauthorized, http.StatusForbidden)
	reg.Register(h.TooManyRequests, http.StatusTooManyRequests)
	reg.Register(h.NotFound, http.StatusNotFound)
	reg.Register(h.ServerError, http.StatusInternalServerError)
}

// Forbidden renders the access-denied page with the status it was called for.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request, code int) {
	msg := "You don't have permission to view this page."
	if code == http.StatusUnauthorized {
		msg = "Please sign in to continue."
	}
	h.page(w, r, code, ForbiddenPage, "Access denied", msg)
}

// TooManyRequests renders the forbidden page asking the client to wait.
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request, code int) {
	h.page(w, r, code, ForbiddenPage, "Slow down", "Too many requests. Please wait a minute and try again.")
}

// NotFound renders the not-found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request, code int) {
	h.page(w, r, code, NotFoundPage, "Page not found", "The page you asked for does not exist.")
}

// ServerError renders the internal-error page.
func (h *Handler) ServerError(w http.ResponseWriter, r *http.Request, code int) {
	h.page(w, r, code, ServerErrorPage, "Something went wrong", "The server could not complete your request.")
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, code int, name, title, msg string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, "/"),
		Status:  code,
		Message: msg,
	}
	if err := h.Render.Render(w, code, name, data); err != nil {
		h.Log.Warn("error page render failed; sending plain status",
			zap.Int("status", code), zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(code), code)
	}
}
