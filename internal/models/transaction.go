// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package models

import "time"

// TransactionType categorizes audit records. Exactly one transaction is
// written per successful lifecycle operation.
type TransactionType string

const (
	TxnRequest TransactionType = "request"
	TxnSend    TransactionType = "send"
	TxnReceive TransactionType = "receive"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TxnRequest, TxnSend, TxnReceive:
		return true
	}
	return false
}

// Transaction is an immutable audit record of one postcard lifecycle event.
// ActorID equals the sender for request/send and the receiver for receive.
// Transactions are never updated or deleted.
type Transaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	PCID       string          `json:"pc_id"`
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	ActorID    string          `json:"actor_id"`
	Message    string          `json:"message"`
	Timestamp  time.Time       `json:"timestamp"`
}

// TransactionView is a transaction with user profiles and postcard status
// joined in for the audit listing endpoint.
type TransactionView struct {
	Transaction
	Actor          UserRef `json:"actor"`
	Sender         UserRef `json:"sender"`
	Receiver       UserRef `json:"receiver"`
	PostcardStatus Status  `json:"postcard_status,omitempty"`
}
