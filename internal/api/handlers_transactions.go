// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mwielgat/cartolina/internal/models"
	"github.com/mwielgat/cartolina/internal/store"
)

// ListTransactions handles GET /api/transactions: the filtered, paginated
// audit log. Supported query parameters: type, actor, sender, receiver,
// pc_id, date_from, date_to (inclusive, extended to end of day), page,
// limit, sort (created_at or -created_at, default newest first).
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.TransactionFilter{}

	if typ := q.Get("type"); typ != "" {
		t := models.TransactionType(strings.ToLower(typ))
		if !t.Valid() {
			respondError(w, http.StatusBadRequest,
				"Invalid type. Allowed: request, send, receive", nil)
			return
		}
		filter.Type = t
	}

	if pcID := q.Get("pc_id"); pcID != "" {
		filter.PCID = pcID
	}

	if from := q.Get("date_from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date_from", nil)
			return
		}
		filter.From = &t
	}
	if to := q.Get("date_to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date_to", nil)
			return
		}
		// Include the whole day.
		endOfDay := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
		filter.To = &endOfDay
	}

	// Resolve usernames to ids for actor / sender / receiver.
	for _, lookup := range []struct {
		key   string
		value string
		dst   *string
	}{
		{"actor", q.Get("actor"), &filter.ActorID},
		{"sender", q.Get("sender"), &filter.SenderID},
		{"receiver", q.Get("receiver"), &filter.ReceiverID},
	} {
		if lookup.value == "" {
			continue
		}
		u, err := h.store.GetUserByUsername(r.Context(), lookup.value)
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound,
				lookup.key+" user not found: "+lookup.value, nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching transactions", err)
			return
		}
		*lookup.dst = u.ID
	}

	page, limit := clampPagination(r, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	ascending := q.Get("sort") == "created_at"

	txns, total, err := h.store.ListTransactions(r.Context(), filter, (page-1)*limit, limit, ascending)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error while fetching transactions", err)
		return
	}

	views := make([]models.TransactionView, 0, len(txns))
	for i := range txns {
		views = append(views, h.joinTransaction(r, &txns[i]))
	}

	totalPages := (total + limit - 1) / limit

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":        total,
		"page":         page,
		"per_page":     limit,
		"total_pages":  totalPages,
		"transactions": views,
	})
}

// parseDate accepts a date or RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// joinTransaction attaches user profiles and postcard status. Missing
// references render empty, deletion does not cascade.
func (h *Handler) joinTransaction(r *http.Request, t *models.Transaction) models.TransactionView {
	view := models.TransactionView{Transaction: *t}
	if u, err := h.store.GetUser(r.Context(), t.ActorID); err == nil {
		view.Actor = u.Ref()
	}
	if u, err := h.store.GetUser(r.Context(), t.SenderID); err == nil {
		view.Sender = u.Ref()
	}
	if u, err := h.store.GetUser(r.Context(), t.ReceiverID); err == nil {
		view.Receiver = u.Ref()
	}
	if pc, err := h.store.GetPostcard(r.Context(), t.PCID); err == nil {
		view.PostcardStatus = pc.Status
	}
	return view
}
