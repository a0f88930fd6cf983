// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// MaintenanceMessage is returned to readers while the site is in maintenance.
const MaintenanceMessage = "The publication is undergoing maintenance. Please check back soon."

// MaintenanceChecker reports whether the site is in maintenance mode.
type MaintenanceChecker interface {
	InMaintenance() bool
}

// Maintenance creates middleware that answers 503 while the site is in
// maintenance. Administrators and editors-in-chief pass through, as do
// requests whose path starts with one of exempt. Must run after LoadUser.
func Maintenance(checker MaintenanceChecker, exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.InMaintenance() || GetUser(r).IsPrivileged() {
				next.ServeHTTP(w, r)
				return
			}
			for _, prefix := range exempt {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Retry-After", "300")
			WriteAPIError(w, http.StatusServiceUnavailable, "maintenance", MaintenanceMessage, nil)
		})
	}
}
