// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mwielgat/cartolina/internal/models"
)

// seedTransactions appends n transactions one minute apart, oldest first.
func seedTransactions(t *testing.T, s *Store, n int) []models.Transaction {
	t.Helper()
	ctx := context.Background()

	base := time.Now().Add(-time.Duration(n) * time.Minute).Truncate(time.Millisecond)
	types := []models.TransactionType{models.TxnRequest, models.TxnSend, models.TxnReceive}

	out := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txn := models.Transaction{
			ID:         uuid.New().String(),
			Type:       types[i%len(types)],
			PCID:       fmt.Sprintf("US-%d", i/3+1),
			SenderID:   "sender-1",
			ReceiverID: "receiver-1",
			ActorID:    "actor-1",
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.AppendTransaction(ctx, &txn); err != nil {
			t.Fatalf("append transaction %d: %v", i, err)
		}
		out = append(out, txn)
	}
	return out
}

func TestListTransactionsNewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seeded := seedTransactions(t, s, 5)

	got, total, err := s.ListTransactions(context.Background(), TransactionFilter{}, 0, 10, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 || len(got) != 5 {
		t.Fatalf("total = %d, page = %d; want 5, 5", total, len(got))
	}
	if got[0].ID != seeded[4].ID {
		t.Errorf("newest transaction should come first")
	}
	if got[4].ID != seeded[0].ID {
		t.Errorf("oldest transaction should come last")
	}
}

func TestListTransactionsAscending(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seeded := seedTransactions(t, s, 4)

	got, _, err := s.ListTransactions(context.Background(), TransactionFilter{}, 0, 10, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].ID != seeded[0].ID {
		t.Errorf("ascending order should start with the oldest transaction")
	}
}

func TestListTransactionsPagination(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedTransactions(t, s, 25)
	ctx := context.Background()

	page1, total, err := s.ListTransactions(ctx, TransactionFilter{}, 0, 10, false)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if total != 25 || len(page1) != 10 {
		t.Fatalf("page 1: total = %d, len = %d", total, len(page1))
	}

	page3, _, err := s.ListTransactions(ctx, TransactionFilter{}, 20, 10, false)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(page3) != 5 {
		t.Errorf("last partial page len = %d, want 5", len(page3))
	}

	beyond, total, err := s.ListTransactions(ctx, TransactionFilter{}, 100, 10, false)
	if err != nil {
		t.Fatalf("page beyond end: %v", err)
	}
	if len(beyond) != 0 || total != 25 {
		t.Errorf("offset past end should return empty page with full total")
	}
}

func TestListTransactionsFilterByType(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedTransactions(t, s, 9)

	got, total, err := s.ListTransactions(context.Background(), TransactionFilter{Type: models.TxnSend}, 0, 100, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total send transactions = %d, want 3", total)
	}
	for _, txn := range got {
		if txn.Type != models.TxnSend {
			t.Errorf("filter leaked type %q", txn.Type)
		}
	}
}

func TestListTransactionsFilterByPCID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedTransactions(t, s, 9)

	_, total, err := s.ListTransactions(context.Background(), TransactionFilter{PCID: "US-1"}, 0, 100, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("transactions for US-1 = %d, want 3", total)
	}
}

func TestListTransactionsDateRange(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seeded := seedTransactions(t, s, 10)
	ctx := context.Background()

	from := seeded[3].Timestamp
	to := seeded[6].Timestamp

	got, total, err := s.ListTransactions(ctx, TransactionFilter{From: &from, To: &to}, 0, 100, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 4 {
		t.Fatalf("inclusive range matched %d, want 4", total)
	}
	if got[0].ID != seeded[3].ID || got[3].ID != seeded[6].ID {
		t.Errorf("range boundaries should be inclusive")
	}
}
