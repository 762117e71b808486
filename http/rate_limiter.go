package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	bucketIdleEviction = 1 * time.Hour
	sweepInterval      = 30 * time.Minute
)

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. Tokens replenish continuously
// at capacity per window rather than all at once, so a client that waits
// half the window gets half its quota back. Idle clients are swept out in
// the background.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	window   time.Duration
	clients  map[string]*clientBucket
	done     chan struct{}
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: float64(capacity),
		window:   window,
		clients:  make(map[string]*clientBucket),
		done:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for ip, bucket := range r.clients {
		if now.Sub(bucket.lastSeen) > bucketIdleEviction {
			delete(r.clients, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	close(r.done)
}

// Allow reports whether the client identified by ip may proceed, spending
// one token if so.
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	bucket, exists := r.clients[ip]
	if !exists {
		r.clients[ip] = &clientBucket{tokens: r.capacity - 1, lastSeen: now}
		return true
	}

	refill := r.capacity * float64(now.Sub(bucket.lastSeen)) / float64(r.window)
	bucket.tokens = min(r.capacity, bucket.tokens+refill)
	bucket.lastSeen = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

// RateLimitMiddleware rejects clients that exhaust their bucket. RealIP
// middleware runs earlier in the chain, so RemoteAddr is trustworthy here.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
