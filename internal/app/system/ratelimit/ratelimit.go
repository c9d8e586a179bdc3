// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit throttles requests per client with a token bucket for
// each client IP.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/rfs/internal/app/system/httperr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an unused client bucket is kept.
const DefaultIdleTTL = 10 * time.Minute

// Limiter keeps one token bucket per key. It is safe for concurrent use.
// A nil *Limiter allows everything.
type Limiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	// Proxies whose forwarding headers identify the client. Empty means
	// the limit is keyed on the connection's peer address.
	Proxies Proxies

	mu    sync.Mutex
	byKey map[string]*entry
	hits  uint64
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerMinute returns a Limiter allowing n requests per minute for each key,
// with bursts of up to n. It returns nil when n is not positive.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		return nil
	}
	return New(rate.Limit(float64(n)/60), n, DefaultIdleTTL)
}

// New returns a Limiter refilling at limit tokens per second with the given
// burst. It returns nil when limit or burst is not positive.
func New(limit rate.Limit, burst int, idleTTL time.Duration) *Limiter {
	if limit <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Limiter{
		limit:   limit,
		burst:   burst,
		idleTTL: idleTTL,
		byKey:   make(map[string]*entry),
	}
}

// Allow reports whether a request for key may proceed at now.
func (l *Limiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%512 == 0 {
		l.evictLocked(now)
	}
	return allowed
}

// Reset forgets the bucket for key.
func (l *Limiter) Reset(key string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.byKey, key)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKey)
}

func (l *Limiter) evictLocked(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for k, e := range l.byKey {
		if e.lastSeen.Before(cutoff) {
			delete(l.byKey, k)
		}
	}
}

// Middleware rejects requests over the limit with 429, rendered through the
// error-page registry when one is installed. A nil Limiter returns next.
func (l *Limiter) Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r, l.Proxies)
			if l.Allow(ip, time.Now()) {
				next.ServeHTTP(w, r)
				return
			}
			logger.Warn("rate limit exceeded",
				zap.String("ip", ip),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "60")
			httperr.Abort(w, r, http.StatusTooManyRequests)
		})
	}
}

// Proxies are the networks whose forwarding headers are believed.
type Proxies []netip.Prefix

// ParseProxies parses a comma-separated list of addresses or CIDR ranges.
// A bare address is a single-host range. An empty list trusts nobody.
func ParseProxies(list string) (Proxies, error) {
	var out Proxies
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.Contains(item, "/") {
			addr, err := netip.ParseAddr(item)
			if err != nil {
				return nil, fmt.Errorf("ratelimit: trusted proxy %q: %w", item, err)
			}
			out = append(out, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}
		p, err := netip.ParsePrefix(item)
		if err != nil {
			return nil, fmt.Errorf("ratelimit: trusted proxy %q: %w", item, err)
		}
		out = append(out, p.Masked())
	}
	return out, nil
}

// Trusts reports whether ip is inside one of the proxy ranges.
func (p Proxies) Trusts(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, pfx := range p {
		if pfx.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address of the client that sent r.
//
// It is the connection's peer address unless that peer is a trusted proxy.
// Then X-Forwarded-For is read from the right, skipping trusted hops, and
// the first untrusted address wins; X-Real-IP is used when there is no
// X-Forwarded-For. Headers from untrusted peers are ignored, so clients
// cannot pick their own key.
func ClientIP(r *http.Request, trusted Proxies) string {
	peer := remoteIP(r.RemoteAddr)
	if !trusted.Trusts(peer) {
		return peer
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !trusted.Trusts(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func remoteIP(remoteAddr string) string {
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return remoteAddr
	}
	return ip
}
