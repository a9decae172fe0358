// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package api

import (
	"net/http"

	"github.com/mwielgat/cartolina/internal/models"
)

const topCountriesLimit = 5

// StatsOverview handles GET /api/stats/overview.
func (h *Handler) StatsOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.store.CountUsers(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error fetching stats", err)
		return
	}
	postcards, err := h.store.CountPostcards(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error fetching stats", err)
		return
	}
	byStatus, err := h.store.CountPostcardsByStatus(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error fetching stats", err)
		return
	}
	topCountries, err := h.store.TopSenderCountries(ctx, topCountriesLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error fetching stats", err)
		return
	}

	sent := byStatus[models.StatusSent]
	received := byStatus[models.StatusReceived]
	inTransit := sent - received
	if inTransit < 0 {
		inTransit = 0
	}

	respondJSON(w, http.StatusOK, models.SystemStats{
		Success: true,
		Totals: models.StatsTotals{
			Users:     users,
			Postcards: postcards,
			Requested: byStatus[models.StatusRequested],
			Sent:      sent,
			Received:  received,
			InTransit: inTransit,
		},
		TopCountries: topCountries,
	})
}
