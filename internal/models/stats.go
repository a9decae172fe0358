// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package models

// CountryCount is one entry of the top-sender-countries leaderboard.
type CountryCount struct {
	Country string `json:"country"`
	Total   int    `json:"total"`
}

// StatsTotals aggregates system-wide entity counts.
//
// InTransit is derived as max(0, sent-received). In a consistent system
// sent is always >= received, but the floor keeps the number from going
// negative when multi-step writes were interrupted.
type StatsTotals struct {
	Users     int `json:"users"`
	Postcards int `json:"postcards"`
	Requested int `json:"requested"`
	Sent      int `json:"sent"`
	Received  int `json:"received"`
	InTransit int `json:"in_transit"`
}

// SystemStats is the payload of the stats overview endpoint.
type SystemStats struct {
	Success      bool           `json:"success"`
	Totals       StatsTotals    `json:"totals"`
	TopCountries []CountryCount `json:"top_countries"`
}
