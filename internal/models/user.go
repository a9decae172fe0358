// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package models

import (
	"strings"
	"time"
)

// Address is a full mailing address. All five fields are required whenever
// an address is present, both on the user profile and on the postcard
// snapshot.
type Address struct {
	Recipient string `json:"recipient" validate:"required"`
	Line      string `json:"line" validate:"required"`
	Locality  string `json:"locality" validate:"required"`
	Postcode  string `json:"postcode" validate:"required"`
	Country   string `json:"country" validate:"required,min=2,max=80"`
}

// Normalize trims whitespace and upper-cases the country, matching the
// store-enforced constraints of the original schema.
func (a *Address) Normalize() {
	a.Recipient = strings.TrimSpace(a.Recipient)
	a.Line = strings.TrimSpace(a.Line)
	a.Locality = strings.TrimSpace(a.Locality)
	a.Postcode = strings.TrimSpace(a.Postcode)
	a.Country = strings.ToUpper(strings.TrimSpace(a.Country))
}

// User is a registered member of the exchange.
//
// Username and email are unique across all users. ReceiveSlots is the
// number of "credits" the user holds entitling them to receive postcards;
// a slot is consumed when they register a postcard as received and a slot
// is granted to the sender of that postcard.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Country       string    `json:"country"`
	Address       Address   `json:"address"`
	JoinedAt      time.Time `json:"joined_at"`
	SentCount     int       `json:"sent_count"`
	ReceivedCount int       `json:"received_count"`
	ReceiveSlots  int       `json:"receive_slots"`
}

// UserRef is the trimmed sender/receiver profile joined into postcard and
// transaction listings. A zero UserRef renders for users that have since
// been deleted (deletion does not cascade to postcards or transactions).
type UserRef struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Ref returns the joined-profile view of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username, Country: u.Country}
}
