// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package exchange implements the postcard lifecycle: request, send and
// receive. Each successful operation appends exactly one transaction to
// the audit log.
//
// The handlers perform their store writes sequentially without a
// surrounding transaction. A failure partway through (postcard saved,
// transaction append failed) leaves earlier writes in place; the error is
// surfaced and nothing is rolled back.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwielgat/cartolina/internal/logging"
	"github.com/mwielgat/cartolina/internal/metrics"
	"github.com/mwielgat/cartolina/internal/models"
	"github.com/mwielgat/cartolina/internal/store"
)

// Sentinel errors mapped to HTTP statuses at the API boundary.
var (
	ErrSenderNotFound     = errors.New("sender not found")
	ErrNoEligibleReceiver = errors.New("no eligible receiver found")
	ErrPostcardNotFound   = errors.New("postcard not found")
	ErrAlreadyReceived    = errors.New("postcard already registered as received")
)

// InvalidTransitionError rejects a send on a postcard that is no longer
// in the requested state.
type InvalidTransitionError struct {
	Current models.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot send postcard, current status: %s", e.Current)
}

// Store is the document-store surface the lifecycle needs.
// *store.Store satisfies it.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	RandomUserExcluding(ctx context.Context, excludeID string) (*models.User, error)
	NextSequence(ctx context.Context, countryCode string) (uint64, error)
	CreatePostcard(ctx context.Context, pc *models.Postcard) error
	GetPostcard(ctx context.Context, pcID string) (*models.Postcard, error)
	UpdatePostcard(ctx context.Context, pc *models.Postcard) error
	AppendTransaction(ctx context.Context, t *models.Transaction) error
}

// Service orchestrates postcard lifecycle transitions.
type Service struct {
	store Store
	now   func() time.Time
}

// New creates a lifecycle service backed by the given store.
func New(s Store) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// RequestResult is the outcome of a successful Request.
type RequestResult struct {
	Postcard *models.Postcard
	Sender   *models.User
	Receiver *models.User
}

// Request creates a postcard from the sender to a randomly chosen peer.
//
// The receiver's address is snapshotted onto the postcard; later profile
// edits do not change where this postcard ships. Nothing is written when
// sender lookup or receiver sampling fails.
func (s *Service) Request(ctx context.Context, senderID, message string) (*RequestResult, error) {
	sender, err := s.store.GetUser(ctx, senderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSenderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up sender: %w", err)
	}

	receiver, err := s.store.RandomUserExcluding(ctx, sender.ID)
	if errors.Is(err, store.ErrNoUsers) {
		return nil, ErrNoEligibleReceiver
	}
	if err != nil {
		return nil, fmt.Errorf("sample receiver: %w", err)
	}

	seq, err := s.store.NextSequence(ctx, sender.Country)
	if err != nil {
		return nil, fmt.Errorf("next sequence for %s: %w", sender.Country, err)
	}
	pcID := fmt.Sprintf("%s-%d", strings.ToUpper(sender.Country), seq)

	now := s.now()
	pc := &models.Postcard{
		PCID:            pcID,
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		SenderCountry:   strings.ToUpper(sender.Country),
		ReceiverCountry: strings.ToUpper(receiver.Country),
		ReceiverAddress: receiver.Address,
		Message:         message,
		Status:          models.StatusRequested,
		CreatedAt:       now,
		Tracking: []models.TrackingEntry{
			{At: now, Event: models.EventAssigned, By: models.BySystem},
		},
	}
	if err := s.store.CreatePostcard(ctx, pc); err != nil {
		return nil, fmt.Errorf("create postcard: %w", err)
	}

	if err := s.logTransaction(ctx, models.TxnRequest, pc, pc.SenderID,
		"Sender requested to send a new postcard."); err != nil {
		return nil, err
	}

	metrics.RecordLifecycleTransition(string(models.TxnRequest))
	logging.Ctx(ctx).Info().
		Str("pc_id", pc.PCID).
		Str("sender", sender.Username).
		Str("receiver", receiver.Username).
		Msg("Postcard requested")

	return &RequestResult{Postcard: pc, Sender: sender, Receiver: receiver}, nil
}

// Send marks a requested postcard as mailed by its sender.
func (s *Service) Send(ctx context.Context, pcID string) (*models.Postcard, error) {
	pc, err := s.store.GetPostcard(ctx, pcID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPostcardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up postcard: %w", err)
	}

	if pc.Status != models.StatusRequested {
		return nil, &InvalidTransitionError{Current: pc.Status}
	}

	now := s.now()
	pc.Status = models.StatusSent
	pc.SentAt = &now
	pc.Tracking = append(pc.Tracking, models.TrackingEntry{
		At: now, Event: models.EventSent, By: models.BySender,
	})
	if err := s.store.UpdatePostcard(ctx, pc); err != nil {
		return nil, fmt.Errorf("update postcard: %w", err)
	}

	if err := s.logTransaction(ctx, models.TxnSend, pc, pc.SenderID,
		"Sender marked postcard as sent."); err != nil {
		return nil, err
	}

	// Orphaned senders (deleted after requesting) just skip the counter
	// bump; the postcard itself is already sent.
	if sender, err := s.store.GetUser(ctx, pc.SenderID); err == nil {
		sender.SentCount++
		if err := s.store.UpdateUser(ctx, sender); err != nil {
			return nil, fmt.Errorf("update sender counters: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("look up sender: %w", err)
	}

	metrics.RecordLifecycleTransition(string(models.TxnSend))
	logging.Ctx(ctx).Info().Str("pc_id", pc.PCID).Msg("Postcard sent")
	return pc, nil
}

// Receive registers a postcard as received.
//
// Only an already-received postcard is rejected; a postcard still in the
// requested state passes straight to received. That matches the system
// this one replaces and is deliberately left as-is.
func (s *Service) Receive(ctx context.Context, pcID string) (*models.Postcard, error) {
	pc, err := s.store.GetPostcard(ctx, pcID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPostcardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up postcard: %w", err)
	}

	if pc.Status == models.StatusReceived {
		return nil, ErrAlreadyReceived
	}

	now := s.now()
	pc.Status = models.StatusReceived
	pc.ReceivedAt = &now
	pc.Tracking = append(pc.Tracking, models.TrackingEntry{
		At: now, Event: models.EventReceived, By: models.ByReceiver,
	})
	if err := s.store.UpdatePostcard(ctx, pc); err != nil {
		return nil, fmt.Errorf("update postcard: %w", err)
	}

	if err := s.logTransaction(ctx, models.TxnReceive, pc, pc.ReceiverID,
		"Receiver registered postcard as received."); err != nil {
		return nil, err
	}

	// Receiver consumes a slot (floored at zero) and counts the receipt.
	if receiver, err := s.store.GetUser(ctx, pc.ReceiverID); err == nil {
		if receiver.ReceiveSlots > 0 {
			receiver.ReceiveSlots--
		}
		receiver.ReceivedCount++
		if err := s.store.UpdateUser(ctx, receiver); err != nil {
			return nil, fmt.Errorf("update receiver counters: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("look up receiver: %w", err)
	}

	// Sender earns a slot for a completed exchange.
	if sender, err := s.store.GetUser(ctx, pc.SenderID); err == nil {
		sender.ReceiveSlots++
		if err := s.store.UpdateUser(ctx, sender); err != nil {
			return nil, fmt.Errorf("update sender counters: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("look up sender: %w", err)
	}

	metrics.RecordLifecycleTransition(string(models.TxnReceive))
	logging.Ctx(ctx).Info().Str("pc_id", pc.PCID).Msg("Postcard received")
	return pc, nil
}

func (s *Service) logTransaction(ctx context.Context, txnType models.TransactionType, pc *models.Postcard, actorID, message string) error {
	txn := &models.Transaction{
		ID:         uuid.New().String(),
		Type:       txnType,
		PCID:       pc.PCID,
		SenderID:   pc.SenderID,
		ReceiverID: pc.ReceiverID,
		ActorID:    actorID,
		Message:    message,
		Timestamp:  s.now(),
	}
	if err := s.store.AppendTransaction(ctx, txn); err != nil {
		return fmt.Errorf("append %s transaction: %w", txnType, err)
	}
	return nil
}
