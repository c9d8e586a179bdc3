package search

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"  red   shoe ", "red shoe"},
		{"a\tb\nc", "a b c"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("é", MaxQueryLen+20)
	if got := Normalize(long); len([]rune(got)) != MaxQueryLen {
		t.Errorf("long query: got %d runes, want %d", len([]rune(got)), MaxQueryLen)
	}
}

func TestProductFilter_Empty(t *testing.T) {
	if f := ProductFilter("  "); len(f) != 0 {
		t.Errorf("expected empty filter, got %v", f)
	}
}

func TestProductFilter_EscapesRegex(t *testing.T) {
	f := ProductFilter("a.b*")
	or, ok := f["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("unexpected filter %v", f)
	}
	sku, ok := or[1]["sku"].(primitive.Regex)
	if !ok {
		t.Fatalf("sku clause: %v", or[1])
	}
	if sku.Pattern != `^a\.b\*` || sku.Options != "i" {
		t.Errorf("sku regex: got %+v", sku)
	}
	name, ok := or[0]["name_ci"].(primitive.Regex)
	if !ok || !strings.HasPrefix(name.Pattern, "^") {
		t.Errorf("name clause: %v", or[0])
	}
}

func TestMatchesProduct(t *testing.T) {
	tests := []struct {
		name  string
		q     string
		pname string
		sku   string
		want  bool
	}{
		{"empty matches all", "", "Widget", "W-1", true},
		{"name prefix any case", "wid", "Widget", "X", true},
		{"sku prefix any case", "w-", "Gadget", "W-1", true},
		{"inner substring does not match", "dget", "Widget", "X", false},
		{"no match", "zzz", "Widget", "W-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesProduct(tt.q, tt.pname, tt.sku); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
