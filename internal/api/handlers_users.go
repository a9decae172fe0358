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

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwielgat/cartolina/internal/logging"
	"github.com/mwielgat/cartolina/internal/models"
	"github.com/mwielgat/cartolina/internal/store"
)

// RegisterRequest is the payload of POST /api/users/register.
type RegisterRequest struct {
	Username string         `json:"username" validate:"required,username"`
	Email    string         `json:"email" validate:"required,email"`
	Country  string         `json:"country" validate:"required,len=2,alpha"`
	Address  models.Address `json:"address" validate:"required"`
}

// UpdateUserRequest is the payload of PATCH /api/users/{id}. All fields
// are optional; absent fields keep their stored value.
type UpdateUserRequest struct {
	Username *string         `json:"username" validate:"omitempty,username"`
	Email    *string         `json:"email" validate:"omitempty,email"`
	Country  *string         `json:"country" validate:"omitempty,len=2,alpha"`
	Address  *models.Address `json:"address" validate:"omitempty"`
}

// Register handles POST /api/users/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	req.Address.Normalize()
	user := &models.User{
		ID:       uuid.New().String(),
		Username: strings.ToLower(strings.TrimSpace(req.Username)),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Country:  strings.ToUpper(strings.TrimSpace(req.Country)),
		Address:  req.Address,
		JoinedAt: time.Now().UTC(),
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if conflict, ok := store.IsConflict(err); ok {
			respondError(w, http.StatusConflict, conflict.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Server error while registering user", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User registered")

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// ListUsers handles GET /api/users. Newest joiners first.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get users", err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error while fetching user", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PATCH /api/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update user", err)
		return
	}

	if req.Username != nil {
		user.Username = strings.ToLower(strings.TrimSpace(*req.Username))
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Country != nil {
		user.Country = strings.ToUpper(strings.TrimSpace(*req.Country))
	}
	if req.Address != nil {
		addr := *req.Address
		addr.Normalize()
		user.Address = addr
	}

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		if conflict, ok := store.IsConflict(err); ok {
			respondError(w, http.StatusConflict, conflict.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update user", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser handles DELETE /api/users/{id}. Deletion does not cascade:
// postcards and transactions keep their user references.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error while deleting user", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
