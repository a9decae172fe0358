// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mwielgat/cartolina/internal/logging"
	"github.com/mwielgat/cartolina/internal/validation"
)

// sanitizeLogValue strips control characters so attacker-supplied strings
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// errorBody is the error envelope: {"message": "..."}.
type errorBody struct {
	Message string `json:"message"`
}

// respondError writes the error envelope. err, when non-nil, is logged in
// full but never exposed to the client.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		logging.Error().
			Int("status", status).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, errorBody{Message: message})
}

// decodeJSON parses the request body into dst. A malformed body yields a
// 400 already written to w; callers return on false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return false
	}
	return true
}

// validateRequest runs struct validation and writes the 400 listing the
// offending fields. Callers return on false.
func validateRequest(w http.ResponseWriter, v interface{}) bool {
	if verr := validation.ValidateStruct(v); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Error(), nil)
		return false
	}
	return true
}

// getIntParam extracts an integer query parameter with a default.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// clampPagination applies the page/limit rules: page floored at 1, limit
// clamped to [1, max] with the configured default on absence or garbage.
func clampPagination(r *http.Request, defaultLimit, maxLimit int) (page, limit int) {
	page = getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = getIntParam(r, "limit", defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
