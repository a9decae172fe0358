// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// counterDoc is the stored representation of a per-country sequence.
type counterDoc struct {
	Seq uint64 `json:"seq"`
}

// NextSequence atomically increments and returns the sequence counter for
// the given country code, creating it at zero when absent. The first call
// for a country returns 1.
//
// The read-increment-write runs inside one badger transaction; under
// badger's snapshot isolation two concurrent increments of the same
// counter conflict, so the losing transaction is retried until it commits.
// Values are therefore strictly increasing and never handed out twice.
func (s *Store) NextSequence(ctx context.Context, countryCode string) (uint64, error) {
	key := []byte(counterKeyPrefix + "postcard_" + strings.ToUpper(countryCode))

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		var next uint64
		err := s.db.Update(func(txn *badger.Txn) error {
			var doc counterDoc

			item, err := txn.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				// First sequence for this country.
			case err != nil:
				return fmt.Errorf("get counter: %w", err)
			default:
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &doc)
				}); err != nil {
					return err
				}
			}

			doc.Seq++
			next = doc.Seq

			data, err := json.Marshal(&doc)
			if err != nil {
				return fmt.Errorf("marshal counter: %w", err)
			}
			return txn.Set(key, data)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return 0, err
		}
		return next, nil
	}
}
