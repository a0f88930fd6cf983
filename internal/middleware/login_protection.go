// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxLockout caps the doubling lockout duration.
const maxLockout = 24 * time.Hour

// LoginProtection throttles login attempts per IP and locks an email after
// repeated failures.
type LoginProtection struct {
	ipLimiters *limiterCache[string]

	mu       sync.Mutex
	attempts map[string]*loginAttempt

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration
	now               func() time.Time
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is login requests per second per IP.
	IPRateLimit float64
	IPBurst     int
	// MaxFailedAttempts within AttemptWindow lock the email.
	MaxFailedAttempts int
	// LockoutDuration doubles with each further lockout of the same email.
	LockoutDuration time.Duration
	AttemptWindow   time.Duration
}

// DefaultLoginProtectionConfig returns sensible defaults.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection creates a new login protection instance. Zero config
// values take their defaults.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	return &LoginProtection{
		ipLimiters:        newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		attempts:          make(map[string]*loginAttempt),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
		now:               time.Now,
	}
}

func accountKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAccountLocked reports whether email is locked and for how much longer.
func (lp *LoginProtection) IsAccountLocked(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	attempt, ok := lp.attempts[accountKey(email)]
	if !ok {
		return false, 0
	}
	if now := lp.now(); now.Before(attempt.lockedUntil) {
		return true, attempt.lockedUntil.Sub(now)
	}
	return false, 0
}

// RecordFailedAttempt records a failed login for email and reports whether
// it is now locked and for how long.
func (lp *LoginProtection) RecordFailedAttempt(email string) (bool, time.Duration) {
	key := accountKey(email)
	now := lp.now()

	lp.mu.Lock()
	defer lp.mu.Unlock()

	attempt, ok := lp.attempts[key]
	if !ok {
		attempt = &loginAttempt{}
		lp.attempts[key] = attempt
	}
	if attempt.count == 0 || now.Sub(attempt.firstFailed) > lp.attemptWindow {
		attempt.count = 0
		attempt.firstFailed = now
	}
	attempt.count++
	if attempt.count < lp.maxFailedAttempts {
		return false, 0
	}

	lockDuration := lp.lockoutDuration
	for i := 0; i < attempt.lockouts && lockDuration < maxLockout; i++ {
		lockDuration *= 2
	}
	if lockDuration > maxLockout {
		lockDuration = maxLockout
	}

	attempt.lockedUntil = now.Add(lockDuration)
	attempt.lockouts++
	attempt.count = 0

	slog.Warn("account locked due to failed attempts",
		"email", key,
		"lockouts", attempt.lockouts,
		"duration", lockDuration)
	return true, lockDuration
}

// RecordSuccessfulLogin clears failed attempt tracking for email.
func (lp *LoginProtection) RecordSuccessfulLogin(email string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	delete(lp.attempts, accountKey(email))
}

// RemainingAttempts returns how many failures email may still have before
// it is locked.
func (lp *LoginProtection) RemainingAttempts(email string) int {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	attempt, ok := lp.attempts[accountKey(email)]
	if !ok || lp.now().Sub(attempt.firstFailed) > lp.attemptWindow {
		return lp.maxFailedAttempts
	}
	return max(lp.maxFailedAttempts-attempt.count, 0)
}

// Prune removes expired attempt records and oversized limiter state.
func (lp *LoginProtection) Prune() {
	if lp.ipLimiters.clearIfExceeds(maxTrackedIPs) {
		slog.Info("cleared login rate limiters due to size")
	}

	now := lp.now()
	lp.mu.Lock()
	defer lp.mu.Unlock()
	for key, attempt := range lp.attempts {
		if now.After(attempt.lockedUntil) && now.Sub(attempt.firstFailed) > lp.attemptWindow {
			delete(lp.attempts, key)
		}
	}
}

// Middleware returns HTTP middleware that rate limits login POSTs per IP.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if lim := lp.ipLimiters.get(ip); !lim.Allow() {
				refuse(w, r, "login", ip, lim, "Too many login attempts. Please wait a moment and try again.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
