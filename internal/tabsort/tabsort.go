// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package tabsort implements the tab-sorting core used by the browser
// companion. Open tabs pointing at postcard pages carry the postcard ID
// in their URL (for example postcards/CL-34269); the sorter extracts
// the numeric part and repositions tabs into numeric order, which is
// what a human scanning a wall of postcard tabs actually wants.
package tabsort

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// DefaultURLPattern is the tab query pattern covering postcard pages.
const DefaultURLPattern = "*://*/postcards/*"

// Sort orders accepted in a Command.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// pcNumberRe captures the numeric part of a postcard URL,
// e.g. postcards/CL-34269 -> 34269.
var pcNumberRe = regexp.MustCompile(`(?i)postcards/[A-Z]{2}-(\d+)`)

// Tab is one open browser tab as reported by the tab provider.
type Tab struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Command is the message contract the companion accepts.
type Command struct {
	Cmd   string `json:"cmd"`
	Order string `json:"order"`
}

// Result is the message contract response.
type Result struct {
	Success          bool   `json:"success"`
	WindowsProcessed int    `json:"windowsProcessed,omitempty"`
	Error            string `json:"error,omitempty"`
}

// TabMover is the narrow surface the sorter needs from a browser (or a
// stand-in). Query returns tabs whose URL matches the pattern; Move
// repositions one tab to the given index.
type TabMover interface {
	Query(ctx context.Context, urlPattern string) ([]Tab, error)
	Move(ctx context.Context, tabID, index int) error
}

// Sorter repositions postcard tabs into numeric order.
type Sorter struct {
	mover TabMover
}

// NewSorter creates a sorter on top of the given tab provider.
func NewSorter(mover TabMover) *Sorter {
	return &Sorter{mover: mover}
}

// ExtractPostcardNumber pulls the numeric postcard ID out of a URL.
// The second return is false when the URL is not a postcard page.
func ExtractPostcardNumber(url string) (int, bool) {
	m := pcNumberRe.FindStringSubmatch(url)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits too long for int. Such a tab is not sortable.
		return 0, false
	}
	return n, true
}

// Handle executes one command against the tab provider and returns the
// contract response. Unknown commands fail without touching any tabs.
func (s *Sorter) Handle(ctx context.Context, cmd Command) Result {
	if cmd.Cmd != "sort" {
		return Result{Success: false, Error: fmt.Sprintf("unknown command: %s", cmd.Cmd)}
	}
	return s.Sort(ctx, cmd.Order)
}

// Sort queries postcard tabs, orders them numerically by the ID in the
// URL and moves each tab to its sorted position. Tabs whose URL does
// not contain a postcard ID are dropped from consideration and keep
// whatever position the moves leave them in. Any order other than
// "desc" sorts ascending.
func (s *Sorter) Sort(ctx context.Context, order string) Result {
	tabs, err := s.mover.Query(ctx, DefaultURLPattern)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	if len(tabs) == 0 {
		return Result{Success: false, Error: "No postcard tabs open"}
	}

	type numbered struct {
		id     int
		number int
	}
	sorted := make([]numbered, 0, len(tabs))
	for _, tab := range tabs {
		n, ok := ExtractPostcardNumber(tab.URL)
		if !ok {
			continue
		}
		sorted = append(sorted, numbered{id: tab.ID, number: n})
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == OrderDesc {
			return sorted[i].number > sorted[j].number
		}
		return sorted[i].number < sorted[j].number
	})

	for i, t := range sorted {
		if err := s.mover.Move(ctx, t.id, i); err != nil {
			return Result{Success: false, Error: err.Error()}
		}
	}

	return Result{Success: true, WindowsProcessed: 1}
}
