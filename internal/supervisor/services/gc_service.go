// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package services

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/mwielgat/cartolina/internal/metrics"
)

// GCRunner matches the store's value-log garbage collection hook.
//
// Satisfied by *store.Store.
type GCRunner interface {
	RunGC() error
}

// GCService periodically runs badger value-log garbage collection as a
// supervised service. Badger never reclaims value-log space on its own,
// so a long-running process needs this loop.
type GCService struct {
	store    GCRunner
	interval time.Duration
	name     string
}

// NewGCService creates a GC loop running at the given interval.
func NewGCService(store GCRunner, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &GCService{
		store:    store,
		interval: interval,
		name:     "badger-gc",
	}
}

// Serve implements suture.Service.
//
// Each tick runs one GC round. badger.ErrNoRewrite means nothing was
// reclaimable and is treated as a clean no-op. Any other error is
// returned so suture restarts the loop under its backoff policy.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.store.RunGC(); err != nil {
				if errors.Is(err, badger.ErrNoRewrite) {
					continue
				}
				return err
			}
			metrics.StoreGCRuns.Inc()
		}
	}
}

// String implements fmt.Stringer. Suture uses this to identify the
// service in log messages.
func (g *GCService) String() string {
	return g.name
}
