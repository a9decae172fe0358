// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package tabsort

import (
	"context"
	"errors"
	"testing"
)

// ============================================================================
// Mock tab provider
// ============================================================================

type mockMover struct {
	tabs     []Tab
	queryErr error
	moveErr  error

	// moves records tab IDs in the order they were placed at index 0..n.
	moves []int
}

func (m *mockMover) Query(ctx context.Context, urlPattern string) ([]Tab, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.tabs, nil
}

func (m *mockMover) Move(ctx context.Context, tabID, index int) error {
	if m.moveErr != nil {
		return m.moveErr
	}
	if index != len(m.moves) {
		return errors.New("moves arrived out of order")
	}
	m.moves = append(m.moves, tabID)
	return nil
}

func pcURL(id string) string {
	return "https://www.cartolina.example/postcards/" + id
}

// ============================================================================
// Number extraction
// ============================================================================

func TestExtractPostcardNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want int
		ok   bool
	}{
		{"plain", pcURL("CL-34269"), 34269, true},
		{"short number", pcURL("CL-100"), 100, true},
		{"lowercase country", pcURL("us-42"), 42, true},
		{"trailing path", pcURL("FR-7") + "/details", 7, true},
		{"no postcard segment", "https://www.cartolina.example/about", 0, false},
		{"missing number", pcURL("CL-"), 0, false},
		{"three letter prefix", pcURL("CLX-99"), 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractPostcardNumber(tt.url)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractPostcardNumber(%q) = (%d, %v), want (%d, %v)",
					tt.url, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// ============================================================================
// Sorting
// ============================================================================

func TestSortNumericAscending(t *testing.T) {
	t.Parallel()

	// Lexicographic order would put CL-100 after CL-34269's prefix
	// ordering; numeric order must not.
	mover := &mockMover{tabs: []Tab{
		{ID: 1, URL: pcURL("CL-34269")},
		{ID: 2, URL: pcURL("CL-100")},
		{ID: 3, URL: pcURL("CL-9")},
	}}
	res := NewSorter(mover).Sort(context.Background(), OrderAsc)

	if !res.Success {
		t.Fatalf("Sort failed: %s", res.Error)
	}
	if res.WindowsProcessed != 1 {
		t.Errorf("WindowsProcessed = %d, want 1", res.WindowsProcessed)
	}
	want := []int{3, 2, 1}
	for i, id := range want {
		if mover.moves[i] != id {
			t.Fatalf("moves = %v, want %v", mover.moves, want)
		}
	}
}

func TestSortDescending(t *testing.T) {
	t.Parallel()

	mover := &mockMover{tabs: []Tab{
		{ID: 1, URL: pcURL("US-5")},
		{ID: 2, URL: pcURL("US-50")},
		{ID: 3, URL: pcURL("US-500")},
	}}
	res := NewSorter(mover).Sort(context.Background(), OrderDesc)

	if !res.Success {
		t.Fatalf("Sort failed: %s", res.Error)
	}
	want := []int{3, 2, 1}
	for i, id := range want {
		if mover.moves[i] != id {
			t.Fatalf("moves = %v, want %v", mover.moves, want)
		}
	}
}

func TestSortDropsNonMatchingTabs(t *testing.T) {
	t.Parallel()

	mover := &mockMover{tabs: []Tab{
		{ID: 1, URL: pcURL("DE-2")},
		{ID: 2, URL: "https://www.cartolina.example/stats"},
		{ID: 3, URL: pcURL("DE-1")},
	}}
	res := NewSorter(mover).Sort(context.Background(), OrderAsc)

	if !res.Success {
		t.Fatalf("Sort failed: %s", res.Error)
	}
	if len(mover.moves) != 2 {
		t.Fatalf("moved %d tabs, want 2", len(mover.moves))
	}
	if mover.moves[0] != 3 || mover.moves[1] != 1 {
		t.Errorf("moves = %v, want [3 1]", mover.moves)
	}
}

func TestSortNoTabsOpen(t *testing.T) {
	t.Parallel()

	mover := &mockMover{}
	res := NewSorter(mover).Sort(context.Background(), OrderAsc)

	if res.Success {
		t.Error("expected failure with no tabs open")
	}
	if res.Error != "No postcard tabs open" {
		t.Errorf("Error = %q, want %q", res.Error, "No postcard tabs open")
	}
}

func TestSortPropagatesProviderErrors(t *testing.T) {
	t.Parallel()

	mover := &mockMover{queryErr: errors.New("browser gone")}
	if res := NewSorter(mover).Sort(context.Background(), OrderAsc); res.Success {
		t.Error("expected failure when query fails")
	}

	mover = &mockMover{
		tabs:    []Tab{{ID: 1, URL: pcURL("IT-1")}},
		moveErr: errors.New("tab closed"),
	}
	if res := NewSorter(mover).Sort(context.Background(), OrderAsc); res.Success {
		t.Error("expected failure when move fails")
	}
}

// ============================================================================
// Command dispatch
// ============================================================================

func TestHandle(t *testing.T) {
	t.Parallel()

	t.Run("sort command", func(t *testing.T) {
		t.Parallel()
		mover := &mockMover{tabs: []Tab{{ID: 1, URL: pcURL("BR-12")}}}
		res := NewSorter(mover).Handle(context.Background(), Command{Cmd: "sort", Order: OrderAsc})
		if !res.Success {
			t.Errorf("Handle(sort) failed: %s", res.Error)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()
		mover := &mockMover{tabs: []Tab{{ID: 1, URL: pcURL("BR-12")}}}
		res := NewSorter(mover).Handle(context.Background(), Command{Cmd: "shuffle"})
		if res.Success {
			t.Error("expected failure for unknown command")
		}
		if len(mover.moves) != 0 {
			t.Error("unknown command must not move tabs")
		}
	})

	t.Run("default order is ascending", func(t *testing.T) {
		t.Parallel()
		mover := &mockMover{tabs: []Tab{
			{ID: 1, URL: pcURL("JP-20")},
			{ID: 2, URL: pcURL("JP-3")},
		}}
		res := NewSorter(mover).Handle(context.Background(), Command{Cmd: "sort"})
		if !res.Success {
			t.Fatalf("Handle failed: %s", res.Error)
		}
		if mover.moves[0] != 2 {
			t.Errorf("moves = %v, want JP-3 first", mover.moves)
		}
	})
}
