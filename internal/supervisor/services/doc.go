// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package services adapts Cartolina's runtime components to the
// suture.Service interface so the supervisor tree can manage their
// lifecycles. Each wrapper translates a component's native lifecycle
// (blocking ListenAndServe, interval loop) into the context-aware
// Serve pattern suture expects.
package services
