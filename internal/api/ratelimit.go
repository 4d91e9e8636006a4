// internal/api/ratelimit.go
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"ai-web-platform/internal/common/config"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Limiter decides whether a client may issue one more request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Backend() string
}

// WindowCounter is the Redis operation behind the fixed-window limiter.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// NewLimiter builds the limiter selected by the configuration. counter is only used by the
// redis backend. It returns nil when rate limiting is disabled.
func NewLimiter(cfg config.RateLimitConfig, counter WindowCounter) (Limiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("rate_limit.requests_per_minute must be positive")
	}

	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryLimiter(cfg.RequestsPerMinute, cfg.Burst), nil
	case BackendRedis:
		if counter == nil {
			return nil, fmt.Errorf("redis rate limiter requires a redis client")
		}
		return NewRedisLimiter(counter, cfg.RequestsPerMinute), nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}

// minIdleTTL is the shortest time a client bucket is kept after its last request.
const minIdleTTL = 10 * time.Minute

// MemoryLimiter keeps one token bucket per client in process memory. Buckets idle for longer
// than idleTTL are dropped; by then they have refilled, so a new bucket behaves the same.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(requestsPerMinute, burst int) *MemoryLimiter {
	if burst <= 0 {
		burst = requestsPerMinute
	}
	interval := time.Minute / time.Duration(requestsPerMinute)
	idle := time.Duration(burst) * interval
	if idle < minIdleTTL {
		idle = minIdleTTL
	}
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(interval),
		burst:   burst,
		idleTTL: idle,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= m.idleTTL {
		m.sweep(now)
	}

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1), nil
}

// sweep drops idle buckets. Callers hold m.mu.
func (m *MemoryLimiter) sweep(now time.Time) {
	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) >= m.idleTTL {
			delete(m.buckets, key)
		}
	}
	m.lastSweep = now
}

// Len returns the number of tracked clients.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

func (m *MemoryLimiter) Backend() string { return BackendMemory }

// RedisLimiter counts requests per client in one-minute fixed windows shared by every replica.
type RedisLimiter struct {
	counter WindowCounter
	limit   int64
	window  time.Duration
}

func NewRedisLimiter(counter WindowCounter, requestsPerMinute int) *RedisLimiter {
	return &RedisLimiter{
		counter: counter,
		limit:   int64(requestsPerMinute),
		window:  time.Minute,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.counter.IncrWindow(ctx, "ratelimit:"+key, r.window)
	if err != nil {
		return false, err
	}
	return count <= r.limit, nil
}

func (r *RedisLimiter) Backend() string { return BackendRedis }

// ClientResolver derives the rate limit key of a request. X-Forwarded-For is only read when
// the direct peer is a trusted proxy; the key is then the rightmost hop that is not a trusted proxy.
type ClientResolver struct {
	trusted []netip.Prefix
}

// NewClientResolver parses trusted proxy addresses, each a single IP or a CIDR range.
func NewClientResolver(trustedProxies []string) (*ClientResolver, error) {
	c := &ClientResolver{}
	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			c.trusted = append(c.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		c.trusted = append(c.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return c, nil
}

// Key returns the client identity of r. A nil resolver trusts no proxy.
func (c *ClientResolver) Key(r *http.Request) string {
	peer := remoteHost(r)
	if c == nil || !c.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !c.isTrusted(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

func (c *ClientResolver) isTrusted(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
