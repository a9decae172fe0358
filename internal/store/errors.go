// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrNoUsers is returned by RandomUserExcluding when no eligible user
// exists.
var ErrNoUsers = errors.New("no eligible user")

// ConflictError reports a unique-constraint violation. Fields names the
// conflicting attributes (username, email).
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate value for: %s", strings.Join(e.Fields, ", "))
}

// IsConflict reports whether err is a unique-constraint violation and
// returns the typed error when it is.
func IsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
