// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package api

import (
	"net/http"
	"time"
)

// Root handles GET /, the service banner.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("Cartolina API is running")); err != nil {
		return
	}
}

// Health handles GET /api/health. Reports store readiness: 503 once the
// document store has been closed or failed to open.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	state := "ok"
	if !h.store.Ready() {
		status = http.StatusServiceUnavailable
		state = "unavailable"
	}
	respondJSON(w, status, map[string]interface{}{
		"status":    state,
		"timestamp": time.Now().UTC(),
	})
}
