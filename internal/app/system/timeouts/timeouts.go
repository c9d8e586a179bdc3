// Package timeouts holds the deadlines handlers put on database calls.
//
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries and counts
//
// Values start at the defaults and may be replaced once at startup with
// Configure; zero values leave the current setting alone.
package timeouts

import (
	"sync"
	"time"

	"github.com/spf13/cast"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Configure reads TIMEOUT_PING, TIMEOUT_SHORT and TIMEOUT_MEDIUM from a
// settings lookup. Values may be durations or strings such as "750ms".
// It returns how many timeouts were changed.
func Configure(lookup func(key string) (any, bool)) int {
	mu.Lock()
	defer mu.Unlock()

	n := 0
	for key, dst := range map[string]*time.Duration{
		"TIMEOUT_PING":   &ping,
		"TIMEOUT_SHORT":  &short,
		"TIMEOUT_MEDIUM": &medium,
	} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		if d, err := cast.ToDurationE(v); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	return n
}

// Reset restores the defaults. Tests use it to undo Configure.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, short, medium = DefaultPing, DefaultShort, DefaultMedium
}
