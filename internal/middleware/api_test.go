// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(method, path, remoteAddr string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	return req
}

func decodeAPIError(t *testing.T, rr *httptest.ResponseRecorder) APIError {
	t.Helper()
	var e APIError
	if err := json.NewDecoder(rr.Body).Decode(&e); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return e
}

func TestWriteAPIError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteAPIError(rr, http.StatusUnprocessableEntity, "validation_failed", "Invalid input",
		map[string]string{"title": "is required"})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	e := decodeAPIError(t, rr)
	if e.Error.Code != "validation_failed" || e.Error.Message != "Invalid input" {
		t.Errorf("error = %+v", e.Error)
	}
	if e.Error.Details["title"] != "is required" {
		t.Errorf("details = %v", e.Error.Details)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	h := rl.Middleware()(okHandler)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, requestFrom(http.MethodGet, "/", "10.0.0.1:1234"))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom(http.MethodGet, "/", "10.0.0.1:5678"))
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", rr.Code)
	}
	if ra := rr.Header().Get("Retry-After"); ra == "" || ra == "0" {
		t.Errorf("Retry-After = %q", ra)
	}
	if e := decodeAPIError(t, rr); e.Error.Code != "rate_limit_exceeded" {
		t.Errorf("code = %q", e.Error.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom(http.MethodGet, "/", "10.0.0.2:1234"))
	if rr.Code != http.StatusOK {
		t.Errorf("other IP status = %d, want 200", rr.Code)
	}
}

func TestRateLimiterPrune(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.cache.get("10.0.0.1")
	if rl.Prune() {
		t.Error("Prune() cleared a small cache")
	}
	for i := 0; i <= maxTrackedIPs; i++ {
		rl.cache.get(string(rune(i)))
	}
	if !rl.Prune() {
		t.Error("Prune() kept an oversized cache")
	}
}

func TestRetryAfter(t *testing.T) {
	lim := rate.NewLimiter(0.5, 1)
	lim.Allow()
	if got := retryAfter(lim); got != 2 {
		t.Errorf("retryAfter() = %d, want 2", got)
	}
	if got := retryAfter(rate.NewLimiter(1, 1)); got != 1 {
		t.Errorf("retryAfter(full) = %d, want 1", got)
	}
	if got := retryAfter(rate.NewLimiter(0, 0)); got != 60 {
		t.Errorf("retryAfter(zero) = %d, want 60", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.168.1.10:4000", "192.168.1.10"},
		{"[::1]:8080", "::1"},
		{"203.0.113.7", "203.0.113.7"},
	}
	for _, tt := range tests {
		if got := clientIP(requestFrom(http.MethodGet, "/", tt.remote)); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}
