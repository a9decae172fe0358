// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mwielgat/cartolina/internal/models"
)

func testPostcard(pcID, senderCountry, receiverCountry string, status models.Status, age time.Duration) *models.Postcard {
	return &models.Postcard{
		PCID:            pcID,
		SenderID:        "sender-" + pcID,
		ReceiverID:      "receiver-" + pcID,
		SenderCountry:   senderCountry,
		ReceiverCountry: receiverCountry,
		Status:          status,
		CreatedAt:       time.Now().Add(-age),
		Tracking: []models.TrackingEntry{
			{At: time.Now().Add(-age), Event: models.EventAssigned, By: models.BySystem},
		},
	}
}

func TestCreateAndGetPostcard(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	want := testPostcard("US-1", "US", "FR", models.StatusRequested, 0)
	want.ReceiverAddress = models.Address{
		Recipient: "Jean", Line: "5 Rue", Locality: "Paris", Postcode: "75000", Country: "FR",
	}
	if err := s.CreatePostcard(ctx, want); err != nil {
		t.Fatalf("create postcard: %v", err)
	}

	got, err := s.GetPostcard(ctx, "US-1")
	if err != nil {
		t.Fatalf("get postcard: %v", err)
	}
	if got.Status != models.StatusRequested {
		t.Errorf("status = %q, want requested", got.Status)
	}
	if got.ReceiverAddress.Locality != "Paris" {
		t.Errorf("address snapshot lost: %+v", got.ReceiverAddress)
	}
	if len(got.Tracking) != 1 || got.Tracking[0].Event != models.EventAssigned {
		t.Errorf("tracking log mismatch: %+v", got.Tracking)
	}
}

func TestGetPostcardNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if _, err := s.GetPostcard(context.Background(), "ZZ-999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePostcardNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ghost := testPostcard("XX-1", "XX", "YY", models.StatusSent, 0)
	if err := s.UpdatePostcard(context.Background(), ghost); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListPostcardsNewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	for i, age := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		pc := testPostcard(fmt.Sprintf("US-%d", i+1), "US", "FR", models.StatusRequested, age)
		if err := s.CreatePostcard(ctx, pc); err != nil {
			t.Fatalf("create postcard %d: %v", i, err)
		}
	}

	got, err := s.ListPostcards(ctx, PostcardFilter{})
	if err != nil {
		t.Fatalf("list postcards: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("list returned %d postcards, want 3", len(got))
	}
	// Ages were 3h, 1h, 2h so newest-first order is US-2, US-3, US-1.
	if got[0].PCID != "US-2" || got[1].PCID != "US-3" || got[2].PCID != "US-1" {
		t.Errorf("wrong order: %s, %s, %s", got[0].PCID, got[1].PCID, got[2].PCID)
	}
}

func TestListPostcardsFilters(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	cards := []*models.Postcard{
		testPostcard("US-1", "US", "FR", models.StatusRequested, time.Hour),
		testPostcard("US-2", "US", "DE", models.StatusSent, time.Minute),
		testPostcard("FR-1", "FR", "US", models.StatusReceived, time.Second),
	}
	for _, pc := range cards {
		if err := s.CreatePostcard(ctx, pc); err != nil {
			t.Fatalf("create %s: %v", pc.PCID, err)
		}
	}

	tests := []struct {
		name   string
		filter PostcardFilter
		want   []string
	}{
		{"by status", PostcardFilter{Status: models.StatusSent}, []string{"US-2"}},
		{"by sender", PostcardFilter{SenderID: "sender-US-1"}, []string{"US-1"}},
		{"by receiver", PostcardFilter{ReceiverID: "receiver-FR-1"}, []string{"FR-1"}},
		{"country matches either side", PostcardFilter{Country: "fr"}, []string{"FR-1", "US-1"}},
		{"country plus status", PostcardFilter{Country: "US", Status: models.StatusReceived}, []string{"FR-1"}},
		{"no match", PostcardFilter{Status: models.StatusSent, Country: "FR"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListPostcards(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d postcards, want %d", len(got), len(tt.want))
			}
			for i, pcID := range tt.want {
				if got[i].PCID != pcID {
					t.Errorf("result[%d] = %s, want %s", i, got[i].PCID, pcID)
				}
			}
		})
	}
}

func TestCountPostcardsByStatus(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	for i, status := range []models.Status{
		models.StatusRequested, models.StatusSent, models.StatusSent, models.StatusReceived,
	} {
		pc := testPostcard(fmt.Sprintf("GB-%d", i+1), "GB", "US", status, 0)
		if err := s.CreatePostcard(ctx, pc); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	counts, err := s.CountPostcardsByStatus(ctx)
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if counts[models.StatusRequested] != 1 || counts[models.StatusSent] != 2 || counts[models.StatusReceived] != 1 {
		t.Errorf("counts = %v", counts)
	}

	total, err := s.CountPostcards(ctx)
	if err != nil {
		t.Fatalf("count postcards: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
}

func TestTopSenderCountries(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	counts := map[string]int{"US": 3, "FR": 2, "DE": 2, "JP": 1}
	i := 0
	for country, n := range counts {
		for j := 0; j < n; j++ {
			i++
			pc := testPostcard(fmt.Sprintf("%s-%d", country, i), country, "NL", models.StatusSent, 0)
			if err := s.CreatePostcard(ctx, pc); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
	}

	top, err := s.TopSenderCountries(ctx, 3)
	if err != nil {
		t.Fatalf("top countries: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d entries, want 3", len(top))
	}
	if top[0].Country != "US" || top[0].Total != 3 {
		t.Errorf("top[0] = %+v, want US/3", top[0])
	}
	// DE and FR tie on 2; alphabetical tiebreak puts DE first.
	if top[1].Country != "DE" || top[2].Country != "FR" {
		t.Errorf("tie order = %s, %s; want DE, FR", top[1].Country, top[2].Country)
	}
}
