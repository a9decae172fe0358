// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mwielgat/cartolina/internal/exchange"
	"github.com/mwielgat/cartolina/internal/models"
	"github.com/mwielgat/cartolina/internal/store"
)

// RequestPostcardRequest is the payload of POST /api/postcards/request.
type RequestPostcardRequest struct {
	SenderID string `json:"sender_id" validate:"required"`
	Message  string `json:"message" validate:"max=1000"`
}

// RequestPostcard handles POST /api/postcards/request.
func (h *Handler) RequestPostcard(w http.ResponseWriter, r *http.Request) {
	var req RequestPostcardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	res, err := h.exchange.Request(r.Context(), req.SenderID, req.Message)
	switch {
	case errors.Is(err, exchange.ErrSenderNotFound):
		respondError(w, http.StatusNotFound, "Sender not found", nil)
		return
	case errors.Is(err, exchange.ErrNoEligibleReceiver):
		respondError(w, http.StatusBadRequest, "No eligible receiver found", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Server error while requesting postcard", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Postcard successfully created",
		"postcard": map[string]interface{}{
			"pc_id":            res.Postcard.PCID,
			"sender":           res.Sender.Username,
			"receiver":         res.Receiver.Username,
			"receiver_address": res.Postcard.ReceiverAddress,
			"status":           res.Postcard.Status,
		},
	})
}

// SendPostcard handles PATCH /api/postcards/send/{pc_id}.
func (h *Handler) SendPostcard(w http.ResponseWriter, r *http.Request) {
	pc, err := h.exchange.Send(r.Context(), chi.URLParam(r, "pc_id"))
	var invalid *exchange.InvalidTransitionError
	switch {
	case errors.Is(err, exchange.ErrPostcardNotFound):
		respondError(w, http.StatusNotFound, "Postcard not found", nil)
		return
	case errors.As(err, &invalid):
		respondError(w, http.StatusBadRequest,
			"Cannot send postcard. Current status: "+string(invalid.Current), nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Server error while marking postcard as sent", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Postcard marked as sent successfully",
		"postcard": map[string]interface{}{
			"pc_id":            pc.PCID,
			"sender_country":   pc.SenderCountry,
			"receiver_country": pc.ReceiverCountry,
			"status":           pc.Status,
			"sent_at":          pc.SentAt,
		},
	})
}

// ReceivePostcard handles PATCH /api/postcards/receive/{pc_id}.
func (h *Handler) ReceivePostcard(w http.ResponseWriter, r *http.Request) {
	pc, err := h.exchange.Receive(r.Context(), chi.URLParam(r, "pc_id"))
	switch {
	case errors.Is(err, exchange.ErrPostcardNotFound):
		respondError(w, http.StatusNotFound, "Postcard not found", nil)
		return
	case errors.Is(err, exchange.ErrAlreadyReceived):
		respondError(w, http.StatusBadRequest,
			"This postcard has already been registered as received.", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Server error while marking postcard as received", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Postcard marked as received successfully",
		"postcard": map[string]interface{}{
			"pc_id":            pc.PCID,
			"sender_country":   pc.SenderCountry,
			"receiver_country": pc.ReceiverCountry,
			"status":           pc.Status,
			"received_at":      pc.ReceivedAt,
		},
	})
}

// ListPostcards handles GET /api/postcards with optional status, sender,
// receiver and country filters.
func (h *Handler) ListPostcards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.PostcardFilter{}
	applied := map[string]string{}

	if status := q.Get("status"); status != "" {
		s := models.Status(strings.ToLower(status))
		if !s.Valid() {
			respondError(w, http.StatusBadRequest,
				"Invalid status. Allowed: requested, sent, received", nil)
			return
		}
		filter.Status = s
		applied["status"] = string(s)
	}
	if sender := q.Get("sender"); sender != "" {
		u, err := h.store.GetUserByUsername(r.Context(), sender)
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Sender not found", nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while filtering postcards", err)
			return
		}
		filter.SenderID = u.ID
		applied["sender"] = u.Username
	}
	if receiver := q.Get("receiver"); receiver != "" {
		u, err := h.store.GetUserByUsername(r.Context(), receiver)
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Receiver not found", nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while filtering postcards", err)
			return
		}
		filter.ReceiverID = u.ID
		applied["receiver"] = u.Username
	}
	if country := q.Get("country"); country != "" {
		filter.Country = strings.ToUpper(country)
		applied["country"] = filter.Country
	}

	postcards, err := h.store.ListPostcards(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error while filtering postcards", err)
		return
	}

	views := make([]models.PostcardView, 0, len(postcards))
	for i := range postcards {
		views = append(views, h.joinPostcard(r, &postcards[i]))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":           len(views),
		"applied_filters": applied,
		"postcards":       views,
	})
}

// GetPostcard handles GET /api/postcards/{pc_id}.
func (h *Handler) GetPostcard(w http.ResponseWriter, r *http.Request) {
	pc, err := h.store.GetPostcard(r.Context(), chi.URLParam(r, "pc_id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Postcard not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error while fetching postcard", err)
		return
	}
	respondJSON(w, http.StatusOK, h.joinPostcard(r, pc))
}

// joinPostcard attaches sender/receiver profiles. Deleted users render as
// empty refs rather than failing the request.
func (h *Handler) joinPostcard(r *http.Request, pc *models.Postcard) models.PostcardView {
	view := models.PostcardView{Postcard: *pc}
	if u, err := h.store.GetUser(r.Context(), pc.SenderID); err == nil {
		view.Sender = u.Ref()
	}
	if u, err := h.store.GetUser(r.Context(), pc.ReceiverID); err == nil {
		view.Receiver = u.Ref()
	}
	return view
}
