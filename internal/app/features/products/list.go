// internal/app/features/products/list.go
package products

import (
	"context"
	"net/http"

	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"github.com/dalemusser/rfs/internal/app/system/paging"
	"github.com/dalemusser/rfs/internal/app/system/search"
	"github.com/dalemusser/rfs/internal/app/system/timeouts"
	"github.com/dalemusser/rfs/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServeList renders one page of the catalog.
// GET /?page=N&q=text
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page := paging.ParsePage(r)
	q := search.Normalize(query.Get(r, "q"))
	items, total, err := h.Store.List(ctx, q, paging.Skip(page, h.PerPage), int64(h.PerPage))
	if err != nil {
		h.Log.Error("list products failed", zap.Int("page", page), zap.String("q", q), zap.Error(err))
		httperr.Abort(w, r, http.StatusInternalServerError)
		return
	}

	rows := make([]productRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, toRow(p))
	}

	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "Products", "/").WithFlashes(h.popFlashes(w, r)),
		Query:    q,
		Products: rows,
		Pager:    paging.New(page, h.PerPage, total),
	}
	h.render(w, r, http.StatusOK, listPage, data)
}

// render writes a page, falling back to the 500 page when the template fails.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := h.Render.Render(w, status, name, data); err != nil {
		httperr.Abort(w, r, http.StatusInternalServerError)
	}
}
