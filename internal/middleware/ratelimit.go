// Package middleware provides HTTP middleware for the credentialing API.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Bucket table bounds. maxTrackedClients caps memory under address-spoofing
// floods; idle entries are swept so long-running servers do not accumulate
// one bucket per client ever seen.
const (
	maxTrackedClients = 100_000
	sweepInterval     = 5 * time.Minute
	idleEviction      = 10 * time.Minute
)

// tokenBucket holds the refill state for one client IP. Tokens are
// fractional so low rates still refill smoothly between requests.
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter enforces a per-IP token bucket. Rate and burst are shared
// across all clients; each IP gets its own bucket on first sight.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	rate    float64
	burst   float64
}

// NewRateLimiter creates a RateLimiter allowing ratePerSec sustained
// requests with the given burst per client IP. The idle-bucket sweeper
// stops when ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		rate:    float64(ratePerSec),
		burst:   float64(burst),
	}
	go rl.sweep(ctx)

	return rl
}

// take refills ip's bucket for the elapsed time and spends one token.
// Returns false when the bucket is empty, or when the client table is full
// and ip is not yet tracked.
func (rl *RateLimiter) take(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[ip]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			return false
		}

		b = &tokenBucket{tokens: rl.burst, lastRefill: now}
		rl.clients[ip] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--

	return true
}

// sweep periodically drops buckets that have been idle past idleEviction.
func (rl *RateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.clients {
				if now.Sub(b.lastRefill) > idleEviction {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler returns Gin middleware that rate limits by client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() is safe from X-Forwarded-For spoofing because
		// SetTrustedProxies(nil) in router.go disables proxy header trust.
		if !rl.take(c.ClientIP(), time.Now()) {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
