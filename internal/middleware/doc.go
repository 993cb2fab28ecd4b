// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

/*
Package middleware provides transport-agnostic HTTP middleware.

The package holds middleware that does not depend on the api package's
response envelope, so it can wrap any handler in the route tree. Router
integration (CORS, rate limits, request IDs) lives with the chi setup in
internal/api; what remains here is instrumentation.

Key Components:

  - Prometheus Metrics: request count, latency histogram, and an
    in-flight request gauge per endpoint

Usage:

	import "github.com/RaihanaAm/Bib-Readers/internal/middleware"

	handler := middleware.PrometheusMetrics(booksHandler)

Thread Safety:

All middleware components are safe for concurrent use; Prometheus
collectors handle their own synchronization.

See Also:

  - internal/api: chi router and envelope-aware middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
