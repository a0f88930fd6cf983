// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for sessions, authorization,
// rate limiting and request bookkeeping.
package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/olegiv/newsroom/internal/metrics"
)

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds clears all entries if the cache exceeds maxSize.
// Returns true if the cache was cleared.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// retryAfter is the whole number of seconds until lim grants one more token.
func retryAfter(lim *rate.Limiter) int {
	if lim.Limit() <= 0 {
		return 60
	}
	missing := 1 - lim.Tokens()
	if missing <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(missing/float64(lim.Limit()))))
}

// refuse writes a 429 carrying a Retry-After header and counts it.
func refuse(w http.ResponseWriter, r *http.Request, scope, ip string, lim *rate.Limiter, message string) {
	slog.WarnContext(r.Context(), "rate limit exceeded", "scope", scope, "ip", ip, "path", r.URL.Path)
	metrics.RecordRateLimited(scope)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter(lim)))
	WriteAPIError(w, http.StatusTooManyRequests, "rate_limit_exceeded", message, nil)
}

// maxTrackedIPs bounds the number of per-IP limiters kept in memory.
const maxTrackedIPs = 10000

// RateLimiter limits API requests per client IP.
type RateLimiter struct {
	cache *limiterCache[string]
}

// NewRateLimiter creates a limiter allowing rps requests per second per IP
// with bursts of up to burst requests.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{cache: newLimiterCache[string](rps, burst)}
}

// Middleware returns the rate limiting middleware. Refused requests get a
// JSON 429 response with Retry-After.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if lim := rl.cache.get(ip); !lim.Allow() {
				refuse(w, r, "api", ip, lim, "Rate limit exceeded. Please slow down.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Prune drops every tracked limiter once more than maxTrackedIPs are held.
func (rl *RateLimiter) Prune() bool {
	return rl.cache.clearIfExceeds(maxTrackedIPs)
}

// clientIP returns the host part of RemoteAddr. chi's RealIP middleware
// runs first and rewrites RemoteAddr from trusted proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
