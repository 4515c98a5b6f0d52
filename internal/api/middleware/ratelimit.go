package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is an in-memory per-client token bucket limiter.
// Each client may burst up to requests and refills at requests per window.
type RateLimiter struct {
	clients  map[string]*clientLimit
	done     chan struct{}
	limit    rate.Limit
	window   time.Duration
	requests int
	mu       sync.Mutex
	stopOnce sync.Once
}

type clientLimit struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter
// requests: maximum number of requests allowed per window
// window: time window duration (e.g., 1 minute)
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimit),
		done:     make(chan struct{}),
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		window:   window,
		requests: requests,
	}

	go rl.cleanup()

	return rl
}

// Stop ends the background cleanup
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := getClientIP(r)

		reservation := rl.limiterFor(clientID).Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			writeRateLimited(w, delay)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiterFor(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, exists := rl.clients[clientID]
	if !exists {
		client = &clientLimit{limiter: rate.NewLimiter(rl.limit, rl.requests)}
		rl.clients[clientID] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

// cleanup drops clients idle for a full window; their bucket would be full again anyway
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.window)
			for clientID, client := range rl.clients {
				if client.lastSeen.Before(cutoff) {
					delete(rl.clients, clientID)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "RateLimitExceeded",
		"message": "Rate limit exceeded. Please try again later.",
	})
}

// getClientIP keys clients on the connection address. Forwarding headers are
// ignored here; a trusted proxy setup rewrites RemoteAddr with RealIP first.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
