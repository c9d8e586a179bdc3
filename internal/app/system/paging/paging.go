// internal/app/system/paging/paging.go
package paging

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is used when a caller passes a non-positive size.
const PageSize = 20

// MaxPage is the highest page number ParsePage returns; larger values are
// clamped so page arithmetic cannot overflow.
const MaxPage = 1_000_000

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid, and at most MaxPage.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && s[0] != '-' {
			return MaxPage
		}
		return 1
	}
	if n < 1 {
		return 1
	}
	if n > MaxPage {
		return MaxPage
	}
	return int(n)
}

// Skip returns the number of rows before page for Mongo Find().SetSkip().
func Skip(page, size int) int64 {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = PageSize
	}
	return offset(page, size)
}

// offset is (page-1)*size, saturating at math.MaxInt64.
func offset(page, size int) int64 {
	before, n := int64(page-1), int64(size)
	if before > 0 && before > math.MaxInt64/n {
		return math.MaxInt64
	}
	return before * n
}

// Pager holds the display values for a numbered page of a list.
type Pager struct {
	Page     int
	Size     int
	Total    int64
	Pages    int
	Start    int // 1-based index of the first row shown (0 if none)
	End      int // 1-based index of the last row shown (0 if none)
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
}

// New computes a Pager for page of size rows out of total.
func New(page, size int, total int64) Pager {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = PageSize
	}

	pages := int(total / int64(size))
	if total%int64(size) != 0 {
		pages++
	}
	p := Pager{
		Page:     page,
		Size:     size,
		Total:    total,
		Pages:    pages,
		HasPrev:  page > 1,
		HasNext:  page < pages,
		PrevPage: page - 1,
		NextPage: page + 1,
	}

	skipped := offset(page, size)
	if total == 0 || skipped >= total {
		return p
	}
	end := total
	if total-skipped > int64(size) {
		end = skipped + int64(size)
	}
	p.Start, p.End = int(skipped+1), int(end)
	return p
}
