// Package middleware provides HTTP middleware for the secops server.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxClients bounds the tracked-IP table so an address sweep cannot grow it
// without limit.
const maxClients = 100_000

// RateLimiter applies a per-client-IP token bucket.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	rate    float64
	burst   float64
}

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter builds a limiter allowing ratePerSec sustained requests with
// the given burst per client IP. A background goroutine evicts idle clients
// until ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		rate:    float64(ratePerSec),
		burst:   float64(burst),
	}
	go rl.evictLoop(ctx)

	return rl
}

func (rl *RateLimiter) evictLoop(ctx context.Context) {
	const idleAfter = 10 * time.Minute

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, tb := range rl.clients {
				if now.Sub(tb.lastSeen) > idleAfter {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// take refills the client's bucket for the elapsed time and consumes one
// token if available. Callers hold rl.mu.
func (rl *RateLimiter) take(tb *tokenBucket, now time.Time) bool {
	tb.tokens += now.Sub(tb.lastSeen).Seconds() * rl.rate
	if tb.tokens > rl.burst {
		tb.tokens = rl.burst
	}
	tb.lastSeen = now

	if tb.tokens < 1 {
		return false
	}
	tb.tokens--

	return true
}

// Handler returns Gin middleware enforcing the limit per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP cannot be spoofed through X-Forwarded-For here because
		// the router disables trusted proxies.
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()
		tb, ok := rl.clients[ip]
		if !ok {
			if len(rl.clients) >= maxClients {
				rl.mu.Unlock()
				respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			tb = &tokenBucket{tokens: rl.burst, lastSeen: now}
			rl.clients[ip] = tb
		}
		allowed := rl.take(tb, now)
		rl.mu.Unlock()

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
