// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest verifies request counters and histograms accept
// the usual label shapes without panicking.
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful list",
			method:     "GET",
			endpoint:   "/api/postcards",
			statusCode: "200",
			duration:   10 * time.Millisecond,
		},
		{
			name:       "created",
			method:     "POST",
			endpoint:   "/api/users/register",
			statusCode: "201",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "not found",
			method:     "GET",
			endpoint:   "/api/postcards/{pc_id}",
			statusCode: "404",
			duration:   time.Millisecond,
		},
		{
			name:       "slow request",
			method:     "GET",
			endpoint:   "/api/stats",
			statusCode: "200",
			duration:   3 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("expected counter to increase by 1, got %v -> %v", before, after)
			}
		})
	}
}

func TestRecordStoreOp(t *testing.T) {
	RecordStoreOp("get", "users", 2*time.Millisecond, nil)

	before := testutil.ToFloat64(StoreOpErrors.WithLabelValues("set", "postcards"))
	RecordStoreOp("set", "postcards", time.Millisecond, errors.New("txn conflict"))
	after := testutil.ToFloat64(StoreOpErrors.WithLabelValues("set", "postcards"))
	if after != before+1 {
		t.Errorf("expected error counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRecordLifecycleTransition(t *testing.T) {
	before := testutil.ToFloat64(LifecycleTransitions.WithLabelValues("send"))
	RecordLifecycleTransition("send")
	RecordLifecycleTransition("send")
	after := testutil.ToFloat64(LifecycleTransitions.WithLabelValues("send"))
	if after != before+2 {
		t.Errorf("expected transition counter to increase by 2, got %v -> %v", before, after)
	}
}

func TestRecordLifecycleRejection(t *testing.T) {
	before := testutil.ToFloat64(LifecycleRejections.WithLabelValues("receive", "already_received"))
	RecordLifecycleRejection("receive", "already_received")
	after := testutil.ToFloat64(LifecycleRejections.WithLabelValues("receive", "already_received"))
	if after != before+1 {
		t.Errorf("expected rejection counter to increase by 1, got %v -> %v", before, after)
	}
}

// TestTrackActiveRequest verifies the gauge nets out to its starting
// value after balanced inc/dec pairs.
func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != start+1 {
		t.Errorf("expected gauge %v after increment, got %v", start+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("expected gauge %v after decrement, got %v", start, got)
	}
}

// TestConcurrentRecording exercises the collectors from many goroutines.
func TestConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				RecordAPIRequest("GET", "/api/health", "200", time.Millisecond)
				RecordStoreOp("get", "counters", time.Microsecond, nil)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}
	wg.Wait()
}
