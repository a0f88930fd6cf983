// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(WorkflowTransitions.WithLabelValues("pending", "published"))
	RecordTransition("pending", "published")
	RecordTransition("pending", "published")

	got := testutil.ToFloat64(WorkflowTransitions.WithLabelValues("pending", "published"))
	if got-before != 2 {
		t.Errorf("transitions delta = %v, want 2", got-before)
	}
}

func TestSetStoreUp(t *testing.T) {
	SetStoreUp(true)
	if got := testutil.ToFloat64(StoreUp); got != 1 {
		t.Errorf("StoreUp = %v, want 1", got)
	}
	SetStoreUp(false)
	if got := testutil.ToFloat64(StoreUp); got != 0 {
		t.Errorf("StoreUp = %v, want 0", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordSaveFailure("tl_articles")

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `newsroom_store_save_failures_total{key="tl_articles"}`) {
		t.Error("metrics output missing newsroom_store_save_failures_total")
	}
}
