package paging

import (
	"math"
	"net/http/httptest"
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
	}
	for _, tc := range tests {
		r := httptest.NewRequest("GET", "/"+tc.query, nil)
		if got := ParsePage(r); got != tc.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}

func TestSkip(t *testing.T) {
	if got := Skip(1, 20); got != 0 {
		t.Errorf("Skip(1,20) = %d", got)
	}
	if got := Skip(3, 20); got != 40 {
		t.Errorf("Skip(3,20) = %d", got)
	}
	if got := Skip(2, 0); got != PageSize {
		t.Errorf("Skip(2,0) = %d, want %d", got, PageSize)
	}
}

func TestNew(t *testing.T) {
	p := New(2, 10, 25)
	if p.Pages != 3 || p.Start != 11 || p.End != 20 {
		t.Errorf("unexpected pager: %+v", p)
	}
	if !p.HasPrev || !p.HasNext || p.PrevPage != 1 || p.NextPage != 3 {
		t.Errorf("unexpected links: %+v", p)
	}

	last := New(3, 10, 25)
	if last.End != 25 || last.HasNext {
		t.Errorf("last page: %+v", last)
	}

	empty := New(1, 10, 0)
	if empty.Start != 0 || empty.End != 0 || empty.HasNext || empty.HasPrev {
		t.Errorf("empty: %+v", empty)
	}

	past := New(9, 10, 25)
	if past.Start != 0 || past.HasNext {
		t.Errorf("past the end: %+v", past)
	}
}

func TestParsePage_Clamps(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"?page=1000000", MaxPage},
		{"?page=1000001", MaxPage},
		{"?page=999999999999999999", MaxPage},
		{"?page=99999999999999999999999", MaxPage},
		{"?page=-99999999999999999999999", 1},
	}
	for _, tc := range tests {
		r := httptest.NewRequest("GET", "/"+tc.query, nil)
		if got := ParsePage(r); got != tc.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}

func TestSkip_DoesNotOverflow(t *testing.T) {
	if got := Skip(math.MaxInt, 20); got < 0 {
		t.Errorf("Skip(MaxInt,20) = %d, want non-negative", got)
	}
	if got := Skip(3, math.MaxInt); got != math.MaxInt64 {
		t.Errorf("Skip(3,MaxInt) = %d, want saturation", got)
	}
	if got := Skip(MaxPage, 20); got != int64(MaxPage-1)*20 {
		t.Errorf("Skip(MaxPage,20) = %d", got)
	}
}

func TestNew_HugePage(t *testing.T) {
	p := New(math.MaxInt, 20, 25)
	if p.Page != MaxPage || p.Start != 0 || p.End != 0 || p.HasNext {
		t.Errorf("huge page: %+v", p)
	}
	if p.NextPage <= p.Page {
		t.Errorf("NextPage overflowed: %+v", p)
	}

	wide := New(1, math.MaxInt, 25)
	if wide.Pages != 1 || wide.Start != 1 || wide.End != 25 {
		t.Errorf("huge size: %+v", wide)
	}
}
