// internal/app/features/products/types.go
package products

import (
	"html/template"

	"github.com/dalemusser/rfs/internal/app/system/formutil"
	"github.com/dalemusser/rfs/internal/app/system/htmlsanitize"
	"github.com/dalemusser/rfs/internal/app/system/paging"
	"github.com/dalemusser/rfs/internal/app/system/viewdata"
	"github.com/dalemusser/rfs/internal/domain/models"
)

// productRow is one product as shown in lists and detail pages.
type productRow struct {
	ID          string
	SKU         string
	Name        string
	Summary     string
	Description template.HTML
	Price       string
	Stock       int
	InStock     bool
}

func toRow(p models.Product) productRow {
	return productRow{
		ID:          p.ID.Hex(),
		SKU:         p.SKU,
		Name:        p.Name,
		Summary:     truncate(htmlsanitize.PlainText(p.Description), 120),
		Description: htmlsanitize.ToHTML(p.Description),
		Price:       FormatPrice(p.PriceCents),
		Stock:       p.Stock,
		InStock:     p.Stock > 0,
	}
}

type listData struct {
	viewdata.BaseVM
	Query    string
	Products []productRow
	Pager    paging.Pager
}

type viewData struct {
	viewdata.BaseVM
	Product productRow
}

// formData backs both the new and edit forms.
type formData struct {
	formutil.Base
	ID          string // empty for a new product
	Action      string
	SKU         string
	Name        string
	Description string
	Price       string
	Stock       string
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
