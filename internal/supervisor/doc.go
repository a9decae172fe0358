// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package supervisor builds the suture supervision tree that keeps the
// Cartolina runtime services alive. The tree has two layers under the
// root: a data layer for store maintenance (badger value-log GC) and an
// api layer for the HTTP server. Layering isolates failures, so a
// crashing GC loop never takes the API down with it.
package supervisor
