// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package models

import (
	"regexp"
	"time"
)

// Status is the lifecycle state of a postcard. Transitions only move
// forward: requested, then sent, then received.
type Status string

const (
	StatusRequested Status = "requested"
	StatusSent      Status = "sent"
	StatusReceived  Status = "received"
)

// Valid reports whether s is one of the three lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusSent, StatusReceived:
		return true
	}
	return false
}

// TrackingEvent identifies a lifecycle event on the tracking log.
type TrackingEvent string

const (
	EventAssigned TrackingEvent = "assigned"
	EventSent     TrackingEvent = "sent"
	EventReceived TrackingEvent = "received"
)

// TrackingActor identifies who produced a tracking entry.
type TrackingActor string

const (
	BySystem   TrackingActor = "system"
	BySender   TrackingActor = "sender"
	ByReceiver TrackingActor = "receiver"
)

// TrackingEntry is one append-only record on a postcard's tracking log.
// Entries mirror status transitions 1:1 and are never rewritten.
type TrackingEntry struct {
	At    time.Time     `json:"at"`
	Event TrackingEvent `json:"event"`
	By    TrackingActor `json:"by"`
}

// PCIDPattern matches well-formed postcard identifiers such as "US-42".
var PCIDPattern = regexp.MustCompile(`^[A-Z]{2}-\d+$`)

// Postcard is one exchange instance between a sender and a randomly
// assigned receiver.
//
// ReceiverAddress is a shipping snapshot copied from the receiver's profile
// when the postcard is requested; later profile edits do not touch it.
type Postcard struct {
	PCID            string          `json:"pc_id"`
	SenderID        string          `json:"sender_id"`
	ReceiverID      string          `json:"receiver_id"`
	SenderCountry   string          `json:"sender_country"`
	ReceiverCountry string          `json:"receiver_country"`
	ReceiverAddress Address         `json:"receiver_address_snapshot"`
	Message         string          `json:"message"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	ReceivedAt      *time.Time      `json:"received_at,omitempty"`
	Tracking        []TrackingEntry `json:"tracking"`
}

// PostcardView is a postcard with sender/receiver profiles joined in,
// returned by list and fetch endpoints.
type PostcardView struct {
	Postcard
	Sender   UserRef `json:"sender"`
	Receiver UserRef `json:"receiver"`
}
