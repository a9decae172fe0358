// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package models defines the domain records persisted by the document store
// and the shapes returned by the HTTP API.
//
// The three persisted entities are User, Postcard and Transaction, plus the
// per-country Counter that issues postcard sequence numbers. Postcards carry
// an immutable snapshot of the receiver's address taken at request time; the
// snapshot is never re-synced when the receiver later edits their profile.
package models
