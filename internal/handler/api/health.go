// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/olegiv/newsroom/internal/middleware"
)

// StoreStatus is the part of the persistent store the health check reads.
type StoreStatus interface {
	Ping(ctx context.Context) error
	Pending() []string
}

// HealthChecker reports the health of the process and its store.
type HealthChecker struct {
	store     StoreStatus
	version   string
	startTime time.Time
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(store StoreStatus, version string) *HealthChecker {
	return &HealthChecker{
		store:     store,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for anonymous callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus represents the overall health status (privileged callers only).
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health.
// Returns minimal status for most callers, full details for privileged users.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.health.checkStore(r.Context())
	persistCheck := h.health.checkPersistence()

	overallStatus := "healthy"
	switch {
	case storeCheck.Status == "unhealthy":
		overallStatus = "unhealthy"
	case persistCheck.Status != "healthy":
		overallStatus = "degraded"
	}

	code := http.StatusOK
	if overallStatus == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	if !middleware.GetUser(r).IsPrivileged() {
		WriteJSON(w, code, HealthStatusPublic{Status: overallStatus})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.health.startTime).Round(time.Second).String(),
		Version:   h.health.version,
		Checks: map[string]Check{
			"store":       storeCheck,
			"persistence": persistCheck,
		},
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}
	WriteJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if check := h.health.checkStore(r.Context()); check.Status != "healthy" {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// checkStore verifies the store backend answers.
func (c *HealthChecker) checkStore(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: "healthy", Message: "Connected", Latency: latency.String()}
}

// checkPersistence reports keys whose last write has not reached the backend.
func (c *HealthChecker) checkPersistence() Check {
	pending := c.store.Pending()
	if len(pending) == 0 {
		return Check{Status: "healthy", Message: "All writes persisted"}
	}
	return Check{
		Status:  "degraded",
		Message: "Unsaved keys: " + strings.Join(pending, ", "),
	}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
