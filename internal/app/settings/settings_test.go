package settings_test

import (
	"testing"

	"github.com/dalemusser/rfs/internal/app/settings"
)

type override struct {
	DEBUG      bool   `mapstructure:"DEBUG"`
	LOG_FOLDER string `mapstructure:"LOG_FOLDER"`
	EXTRA      int    `mapstructure:"EXTRA"`
	Helper     string `mapstructure:"helper"`
}

func TestFromObject_DefaultsThenOverride(t *testing.T) {
	cfg := settings.New()
	if err := cfg.FromObject(settings.Default); err != nil {
		t.Fatalf("FromObject(defaults): %v", err)
	}
	if err := cfg.FromObject(override{DEBUG: true, LOG_FOLDER: "/var/log/rfs", EXTRA: 7}); err != nil {
		t.Fatalf("FromObject(override): %v", err)
	}

	if !cfg.Bool("DEBUG") {
		t.Error("DEBUG: override should win")
	}
	if got := cfg.String("LOG_FOLDER"); got != "/var/log/rfs" {
		t.Errorf("LOG_FOLDER: got %q, want %q", got, "/var/log/rfs")
	}
	if got := cfg.Int("EXTRA"); got != 7 {
		t.Errorf("EXTRA: got %d, want 7", got)
	}
	// Keys the override does not declare keep their defaults.
	if got := cfg.String("MONGO_DATABASE"); got != settings.Default.MongoDatabase {
		t.Errorf("MONGO_DATABASE: got %q, want %q", got, settings.Default.MongoDatabase)
	}
}

func TestFromObject_ZeroValueOverrideStillWins(t *testing.T) {
	cfg := settings.New()
	if err := cfg.FromObject(map[string]any{"PRODUCTS_PER_PAGE": 20, "DEBUG": true}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.FromObject(override{}); err != nil {
		t.Fatal(err)
	}
	if cfg.Bool("DEBUG") {
		t.Error("DEBUG: declared false in override, should be false")
	}
	if got := cfg.Int("PRODUCTS_PER_PAGE"); got != 20 {
		t.Errorf("PRODUCTS_PER_PAGE: got %d, want 20", got)
	}
}

func TestFromObject_IgnoresLowercaseKeys(t *testing.T) {
	cfg := settings.New()
	if err := cfg.FromObject(&override{Helper: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.Get("helper"); ok {
		t.Error("lowercase key should not be copied")
	}
	if err := cfg.FromObject(map[string]any{"lower": 1, "MIXED_case": 2, "UPPER": 3}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.Get("lower"); ok {
		t.Error("lower should be ignored")
	}
	if _, ok := cfg.Get("MIXED_case"); ok {
		t.Error("MIXED_case should be ignored")
	}
	if cfg.Int("UPPER") != 3 {
		t.Error("UPPER should be copied")
	}
}

func TestFromObject_NilAndUnsupported(t *testing.T) {
	cfg := settings.New()
	if err := cfg.FromObject(nil); err != nil {
		t.Errorf("nil object: %v", err)
	}
	var p *override
	if err := cfg.FromObject(p); err != nil {
		t.Errorf("nil pointer: %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("expected empty config, got %v", cfg.Keys())
	}
	if err := cfg.FromObject(42); err == nil {
		t.Error("expected error for int settings object")
	}
	if err := cfg.FromObject(map[int]string{1: "a"}); err == nil {
		t.Error("expected error for non-string map keys")
	}
}

func TestDecode(t *testing.T) {
	cfg := settings.New()
	if err := cfg.FromObject(settings.Default); err != nil {
		t.Fatal(err)
	}
	if err := cfg.FromObject(map[string]any{"PRODUCTS_PER_PAGE": "35"}); err != nil {
		t.Fatal(err)
	}

	var out settings.Defaults
	if err := cfg.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.ProductsPerPage != 35 {
		t.Errorf("PRODUCTS_PER_PAGE: got %d, want 35", out.ProductsPerPage)
	}
	if out.Project != "rfs" {
		t.Errorf("PROJECT: got %q, want rfs", out.Project)
	}
}

func TestKeys_Sorted(t *testing.T) {
	cfg := settings.Config{"B": 1, "A": 2, "C": 3}
	keys := cfg.Keys()
	want := []string{"A", "B", "C"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys: got %v, want %v", keys, want)
		}
	}
}
