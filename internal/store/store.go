// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package store persists users, postcards, transactions and counters as
// JSON documents in BadgerDB.
//
// Collections are separated by key prefix:
//
//	user:<id>                user document
//	user_name:<username>     unique index entry -> user id
//	user_email:<email>       unique index entry -> user id
//	postcard:<pc_id>         postcard document
//	txn:<nanos>:<id>         transaction document, key-ordered by time
//	counter:postcard_<CC>    per-country sequence counter
//
// Unique constraints on username and email are enforced by writing index
// entries inside the same transaction as the document; an existing index
// key is a conflict. The per-country counter increments inside a single
// transaction so concurrent callers never receive the same value.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/mwielgat/cartolina/internal/config"
	"github.com/mwielgat/cartolina/internal/logging"
)

// Key prefixes for the document collections.
const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "user_name:"
	emailKeyPrefix    = "user_email:"
	postcardKeyPrefix = "postcard:"
	txnKeyPrefix      = "txn:"
	counterKeyPrefix  = "counter:"
)

// Store is the badger-backed document store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store described by cfg.
func Open(cfg *config.StoreConfig) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Document store opened")

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ready reports whether the store can serve requests.
func (s *Store) Ready() bool {
	return s.db != nil && !s.db.IsClosed()
}

// RunGC runs one round of badger value-log garbage collection. Returns
// badger.ErrNoRewrite when there was nothing to reclaim; callers treat
// that as a clean no-op.
func (s *Store) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}

// iterate walks all values under prefix inside one read transaction.
func (s *Store) iterate(prefix string, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}
