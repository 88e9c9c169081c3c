package middleware

import (
	"net/http"
	"sync"
	"time"

	"tablebook/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client-IP token bucket. Stale buckets are
// evicted opportunistically on each new request.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

func NewRateLimiter(cfg config.BookingConfig) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(cfg.CreateRatePerSec),
		burst:   cfg.CreateBurst,
	}
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cl, ok := r.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.clients[ip] = cl
		r.evictStaleLocked(now)
	}
	cl.lastSeen = now
	return cl.limiter.Allow()
}

func (r *RateLimiter) evictStaleLocked(now time.Time) {
	for ip, cl := range r.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(r.clients, ip)
		}
	}
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
