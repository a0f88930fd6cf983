// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/olegiv/newsroom/internal/metrics"
)

func TestRequestMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RequestMetrics)
	r.Get("/articles/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/articles/{id}", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"101", "102"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/articles/"+id, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests recorded = %v, want 2", got)
	}
}
