// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments three areas:
  - API endpoint latency, throughput and in-flight requests
  - Document store operation performance (Badger)
  - Postcard lifecycle throughput and rejections

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

API:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Store:
  - store_operation_duration_seconds: Operation time (histogram)
    Labels: operation, collection
  - store_operation_errors_total: Failed operations (counter)
    Labels: operation, collection
  - store_gc_runs_total: Value log GC passes (counter)
  - store_sequence_conflicts_total: Sequence allocation retries (counter)

Lifecycle:
  - postcard_lifecycle_transitions_total: Successful transitions (counter)
    Labels: transition (request, send, receive)
  - postcard_lifecycle_rejections_total: Refused transitions (counter)
    Labels: transition, reason
  - postcards_by_status: Postcards per status (gauge)
    Labels: status
  - registered_users: Registered user count (gauge)

# Cardinality

Endpoint labels use the chi route pattern (no path parameters), so a
million postcards still produce one api_requests_total series per route.

All recording functions are safe for concurrent use.
*/
package metrics
