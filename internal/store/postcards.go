// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/mwielgat/cartolina/internal/models"
)

// PostcardFilter narrows ListPostcards results. Zero-valued fields are
// ignored. Country matches either the sender or the receiver country.
type PostcardFilter struct {
	Status     models.Status
	SenderID   string
	ReceiverID string
	Country    string
}

func (f *PostcardFilter) matches(pc *models.Postcard) bool {
	if f.Status != "" && pc.Status != f.Status {
		return false
	}
	if f.SenderID != "" && pc.SenderID != f.SenderID {
		return false
	}
	if f.ReceiverID != "" && pc.ReceiverID != f.ReceiverID {
		return false
	}
	if f.Country != "" {
		country := strings.ToUpper(f.Country)
		if pc.SenderCountry != country && pc.ReceiverCountry != country {
			return false
		}
	}
	return true
}

// CreatePostcard persists a new postcard keyed by pc_id.
func (s *Store) CreatePostcard(ctx context.Context, pc *models.Postcard) error {
	data, err := json.Marshal(pc)
	if err != nil {
		return fmt.Errorf("marshal postcard: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(postcardKeyPrefix+pc.PCID), data)
	})
}

// GetPostcard retrieves a postcard by its pc_id.
func (s *Store) GetPostcard(ctx context.Context, pcID string) (*models.Postcard, error) {
	var pc models.Postcard

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(postcardKeyPrefix + pcID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get postcard: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &pc)
		})
	})
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

// UpdatePostcard replaces an existing postcard document.
func (s *Store) UpdatePostcard(ctx context.Context, pc *models.Postcard) error {
	data, err := json.Marshal(pc)
	if err != nil {
		return fmt.Errorf("marshal postcard: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(postcardKeyPrefix + pc.PCID)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("get postcard: %w", err)
		}
		return txn.Set([]byte(postcardKeyPrefix+pc.PCID), data)
	})
}

// ListPostcards returns all postcards matching the filter, newest first.
func (s *Store) ListPostcards(ctx context.Context, filter PostcardFilter) ([]models.Postcard, error) {
	var postcards []models.Postcard
	err := s.iterate(postcardKeyPrefix, func(val []byte) error {
		var pc models.Postcard
		if err := json.Unmarshal(val, &pc); err != nil {
			return err
		}
		if filter.matches(&pc) {
			postcards = append(postcards, pc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(postcards, func(i, j int) bool {
		return postcards[i].CreatedAt.After(postcards[j].CreatedAt)
	})
	return postcards, nil
}

// CountPostcards returns the total number of postcards.
func (s *Store) CountPostcards(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(postcardKeyPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// CountPostcardsByStatus returns per-status postcard counts.
func (s *Store) CountPostcardsByStatus(ctx context.Context) (map[models.Status]int, error) {
	counts := make(map[models.Status]int)
	err := s.iterate(postcardKeyPrefix, func(val []byte) error {
		var pc models.Postcard
		if err := json.Unmarshal(val, &pc); err != nil {
			return err
		}
		counts[pc.Status]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// TopSenderCountries returns the n countries that have sent the most
// postcards, descending by count. Ties break alphabetically so the
// ordering is stable.
func (s *Store) TopSenderCountries(ctx context.Context, n int) ([]models.CountryCount, error) {
	counts := make(map[string]int)
	err := s.iterate(postcardKeyPrefix, func(val []byte) error {
		var pc models.Postcard
		if err := json.Unmarshal(val, &pc); err != nil {
			return err
		}
		counts[pc.SenderCountry]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]models.CountryCount, 0, len(counts))
	for country, total := range counts {
		result = append(result, models.CountryCount{Country: country, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Country < result[j].Country
	})

	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result, nil
}
