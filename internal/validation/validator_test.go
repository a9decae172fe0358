// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package validation

import (
	"strings"
	"testing"
)

type registerFixture struct {
	Username string         `validate:"required,username"`
	Email    string         `validate:"required,email"`
	Country  string         `validate:"required,len=2,alpha"`
	Address  addressFixture `validate:"required"`
}

type addressFixture struct {
	Recipient string `validate:"required"`
	Line      string `validate:"required"`
	Locality  string `validate:"required"`
	Postcode  string `validate:"required"`
	Country   string `validate:"required"`
}

func validFixture() registerFixture {
	return registerFixture{
		Username: "jan_kowalski",
		Email:    "jan@example.com",
		Country:  "PL",
		Address: addressFixture{
			Recipient: "Jan Kowalski",
			Line:      "ul. Dluga 1",
			Locality:  "Gdansk",
			Postcode:  "80-001",
			Country:   "PL",
		},
	}
}

func TestValidStructPasses(t *testing.T) {
	t.Parallel()

	fixture := validFixture()
	if verr := ValidateStruct(&fixture); verr != nil {
		t.Errorf("valid struct rejected: %v", verr)
	}
}

func TestUsernameRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		username string
		ok       bool
	}{
		{"abc", true},
		{"user.name_01", true},
		{"ab", false},
		{"UPPERCASE", false},
		{"has space", false},
		{"has-dash", false},
		{strings.Repeat("a", 33), false},
	}

	for _, tt := range tests {
		fixture := validFixture()
		fixture.Username = tt.username
		verr := ValidateStruct(&fixture)
		if tt.ok && verr != nil {
			t.Errorf("username %q rejected: %v", tt.username, verr)
		}
		if !tt.ok && verr == nil {
			t.Errorf("username %q accepted", tt.username)
		}
	}
}

func TestMissingAddressFieldNamed(t *testing.T) {
	t.Parallel()

	fixture := validFixture()
	fixture.Address.Postcode = ""

	verr := ValidateStruct(&fixture)
	if verr == nil {
		t.Fatal("missing address field accepted")
	}
	if !strings.Contains(verr.Error(), "address.postcode is required") {
		t.Errorf("error should name the nested field, got %q", verr.Error())
	}
}

func TestMultipleFailuresCollected(t *testing.T) {
	t.Parallel()

	fixture := registerFixture{}
	verr := ValidateStruct(&fixture)
	if verr == nil {
		t.Fatal("empty struct accepted")
	}
	if len(verr.Fields()) < 3 {
		t.Errorf("expected several failing fields, got %v", verr.Fields())
	}
}

func TestCountryLength(t *testing.T) {
	t.Parallel()

	fixture := validFixture()
	fixture.Country = "POL"
	if verr := ValidateStruct(&fixture); verr == nil {
		t.Error("three-letter country accepted")
	}
}
