// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/mwielgat/cartolina/internal/models"
)

// CreateUser persists a new user and its unique index entries. Returns a
// ConflictError naming the duplicated fields when the username or email is
// already taken.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var conflicts []string
		if _, err := txn.Get([]byte(usernameKeyPrefix + user.Username)); err == nil {
			conflicts = append(conflicts, "username")
		}
		if _, err := txn.Get([]byte(emailKeyPrefix + user.Email)); err == nil {
			conflicts = append(conflicts, "email")
		}
		if len(conflicts) > 0 {
			return &ConflictError{Fields: conflicts}
		}

		if err := txn.Set([]byte(userKeyPrefix+user.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set([]byte(usernameKeyPrefix+user.Username), []byte(user.ID)); err != nil {
			return fmt.Errorf("set username index: %w", err)
		}
		if err := txn.Set([]byte(emailKeyPrefix+user.Email), []byte(user.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		return nil
	})
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername resolves a username through the unique index.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var id string

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(usernameKeyPrefix + username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get username index: %w", err)
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// ListUsers returns all users, most recently joined first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.iterate(userKeyPrefix, func(val []byte) error {
		var user models.User
		if err := json.Unmarshal(val, &user); err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].JoinedAt.After(users[j].JoinedAt)
	})
	return users, nil
}

// CountUsers returns the number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(userKeyPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// UpdateUser replaces a user document, maintaining the unique indexes when
// the username or email changed. Returns ErrNotFound for unknown ids and a
// ConflictError when the new username or email belongs to another user.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + user.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		var current models.User
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &current)
		}); err != nil {
			return err
		}

		var conflicts []string
		if user.Username != current.Username {
			if owner, err := indexOwner(txn, usernameKeyPrefix+user.Username); err == nil && owner != user.ID {
				conflicts = append(conflicts, "username")
			}
		}
		if user.Email != current.Email {
			if owner, err := indexOwner(txn, emailKeyPrefix+user.Email); err == nil && owner != user.ID {
				conflicts = append(conflicts, "email")
			}
		}
		if len(conflicts) > 0 {
			return &ConflictError{Fields: conflicts}
		}

		if user.Username != current.Username {
			if err := txn.Delete([]byte(usernameKeyPrefix + current.Username)); err != nil {
				return fmt.Errorf("delete username index: %w", err)
			}
			if err := txn.Set([]byte(usernameKeyPrefix+user.Username), []byte(user.ID)); err != nil {
				return fmt.Errorf("set username index: %w", err)
			}
		}
		if user.Email != current.Email {
			if err := txn.Delete([]byte(emailKeyPrefix + current.Email)); err != nil {
				return fmt.Errorf("delete email index: %w", err)
			}
			if err := txn.Set([]byte(emailKeyPrefix+user.Email), []byte(user.ID)); err != nil {
				return fmt.Errorf("set email index: %w", err)
			}
		}

		return txn.Set([]byte(userKeyPrefix+user.ID), data)
	})
}

// DeleteUser removes a user and its index entries. Postcards and
// transactions referencing the user are left in place; deletion does not
// cascade.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		var user models.User
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		}); err != nil {
			return err
		}

		if err := txn.Delete([]byte(userKeyPrefix + id)); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if err := txn.Delete([]byte(usernameKeyPrefix + user.Username)); err != nil {
			return fmt.Errorf("delete username index: %w", err)
		}
		if err := txn.Delete([]byte(emailKeyPrefix + user.Email)); err != nil {
			return fmt.Errorf("delete email index: %w", err)
		}
		return nil
	})
}

// RandomUserExcluding picks a user uniformly at random, excluding the
// given id. Returns ErrNoUsers when no other user exists.
func (s *Store) RandomUserExcluding(ctx context.Context, excludeID string) (*models.User, error) {
	var chosen *models.User
	seen := 0

	err := s.iterate(userKeyPrefix, func(val []byte) error {
		var user models.User
		if err := json.Unmarshal(val, &user); err != nil {
			return err
		}
		if user.ID == excludeID {
			return nil
		}
		// Reservoir sampling of size one keeps the pick uniform without
		// materializing the whole collection.
		seen++
		if rand.Intn(seen) == 0 {
			u := user
			chosen = &u
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if chosen == nil {
		return nil, ErrNoUsers
	}
	return chosen, nil
}

func indexOwner(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return "", err
	}
	var owner string
	err = item.Value(func(val []byte) error {
		owner = string(val)
		return nil
	})
	return owner, err
}
