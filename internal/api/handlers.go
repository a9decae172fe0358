// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package api provides the HTTP surface of the postcard exchange: chi
// routing, request decoding and validation, and the mapping from domain
// errors to the HTTP taxonomy (404 missing entity, 400 invalid input or
// transition, 409 uniqueness conflict, 500 store failure).
package api

import (
	"github.com/mwielgat/cartolina/internal/config"
	"github.com/mwielgat/cartolina/internal/exchange"
	"github.com/mwielgat/cartolina/internal/store"
)

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	store    *store.Store
	exchange *exchange.Service
	cfg      *config.APIConfig
}

// NewHandler creates the endpoint handler set.
func NewHandler(s *store.Store, ex *exchange.Service, cfg *config.APIConfig) *Handler {
	return &Handler{store: s, exchange: ex, cfg: cfg}
}
