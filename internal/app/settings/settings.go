// internal/app/settings/settings.go

// Package settings holds the application's settings container.
//
// A Config is a flat mapping from UPPER_SNAKE setting names to values. It is
// filled from one or more settings objects with FromObject: first the
// defaults, then an optional override. Later objects win for every key they
// declare, including keys whose value is the zero value.
package settings

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Config maps setting names to values.
type Config map[string]any

// New returns an empty Config.
func New() Config {
	return Config{}
}

// FromObject copies every uppercase key of obj into c.
//
// obj may be a struct, a pointer to a struct, or a map with string keys.
// Struct fields are named by their `mapstructure` tag, falling back to the
// field name. Keys that are not all-uppercase are ignored, so helper fields
// on a settings struct never leak into the config.
func (c Config) FromObject(obj any) error {
	if obj == nil {
		return nil
	}

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	var values map[string]any
	switch v.Kind() {
	case reflect.Struct:
		values = map[string]any{}
		if err := mapstructure.Decode(v.Interface(), &values); err != nil {
			return fmt.Errorf("settings: decode %s: %w", v.Type(), err)
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("settings: map keys must be strings, got %s", v.Type().Key())
		}
		values = make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			values[iter.Key().String()] = iter.Value().Interface()
		}
	default:
		return fmt.Errorf("settings: unsupported settings object %T", obj)
	}

	for k, val := range values {
		if isSettingName(k) {
			c[k] = val
		}
	}
	return nil
}

// isSettingName reports whether k is an UPPER_SNAKE setting name.
func isSettingName(k string) bool {
	return k != "" && k == strings.ToUpper(k) && strings.ToLower(k) != k
}

// Get returns the raw value stored under key.
func (c Config) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// String returns the value under key as a string ("" if absent).
func (c Config) String(key string) string {
	return cast.ToString(c[key])
}

// Int returns the value under key as an int (0 if absent or not numeric).
func (c Config) Int(key string) int {
	return cast.ToInt(c[key])
}

// Bool returns the value under key as a bool (false if absent).
func (c Config) Bool(key string) bool {
	return cast.ToBool(c[key])
}

// Keys returns the setting names in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode fills out (a pointer to a struct tagged with `mapstructure`) from c.
// Values are converted weakly, so "20" decodes into an int field.
func (c Config) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := dec.Decode(map[string]any(c)); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}
