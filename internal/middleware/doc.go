// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

/*
Package middleware provides HTTP middleware for the API server.

Two components live here, both as standard func(http.Handler) http.Handler
middlewares composed into the chi router alongside chi's own RealIP and
Recoverer and the go-chi/cors and go-chi/httprate handlers:

  - RequestID: UUID request tracking. The ID is taken from an upstream
    X-Request-ID header when present, echoed back in the response, and
    placed in both the request context and the logging context so every
    log line for the request carries it.
  - PrometheusMetrics: request count, latency histogram and in-flight
    gauge, labelled by method, chi route pattern and status code.

Typical wiring:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
