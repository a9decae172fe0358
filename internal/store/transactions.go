// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/mwielgat/cartolina/internal/models"
)

// TransactionFilter narrows ListTransactions results. Zero-valued fields
// are ignored. From and To bound the transaction timestamp inclusively.
type TransactionFilter struct {
	Type       models.TransactionType
	PCID       string
	ActorID    string
	SenderID   string
	ReceiverID string
	From       *time.Time
	To         *time.Time
}

func (f *TransactionFilter) matches(t *models.Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.PCID != "" && t.PCID != f.PCID {
		return false
	}
	if f.ActorID != "" && t.ActorID != f.ActorID {
		return false
	}
	if f.SenderID != "" && t.SenderID != f.SenderID {
		return false
	}
	if f.ReceiverID != "" && t.ReceiverID != f.ReceiverID {
		return false
	}
	if f.From != nil && t.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && t.Timestamp.After(*f.To) {
		return false
	}
	return true
}

// AppendTransaction persists an audit record. Transactions are append-only:
// keys embed the timestamp so key order follows insertion order, and no
// update or delete path exists.
func (s *Store) AppendTransaction(ctx context.Context, t *models.Transaction) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}

	key := fmt.Sprintf("%s%020d:%s", txnKeyPrefix, t.Timestamp.UnixNano(), t.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// ListTransactions returns one page of transactions matching the filter
// plus the total match count. ascending selects oldest-first ordering;
// the default is newest-first.
func (s *Store) ListTransactions(ctx context.Context, filter TransactionFilter, offset, limit int, ascending bool) ([]models.Transaction, int, error) {
	var matches []models.Transaction
	err := s.iterate(txnKeyPrefix, func(val []byte) error {
		var t models.Transaction
		if err := json.Unmarshal(val, &t); err != nil {
			return err
		}
		if filter.matches(&t) {
			matches = append(matches, t)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if ascending {
			return matches[i].Timestamp.Before(matches[j].Timestamp)
		}
		return matches[i].Timestamp.After(matches[j].Timestamp)
	})

	total := len(matches)
	if offset >= total {
		return []models.Transaction{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matches[offset:end], total, nil
}
