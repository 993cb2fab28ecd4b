// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package metrics provides Prometheus instrumentation for the application.
//
// All collectors register against the default registry via promauto at
// package load, so importing any package that records a metric is enough
// to make it scrapeable. The /metrics endpoint is served by promhttp in
// the API router.
//
// # Metric Groups
//
// HTTP:
//   - api_requests_total (counter): method, endpoint, status_code
//   - api_request_duration_seconds (histogram): method, endpoint
//   - api_active_requests (gauge)
//   - api_rate_limit_hits_total (counter): endpoint
//
// Database:
//   - duckdb_query_duration_seconds (histogram): operation, table
//   - duckdb_query_errors_total (counter): operation, table
//   - catalog_books (gauge)
//
// Authentication:
//   - auth_logins_total (counter): result
//   - auth_registrations_total (counter)
//   - auth_token_validations_total (counter): result
//   - auth_active_sessions (gauge)
//
// Recommendations:
//   - recommend_queries_total (counter): result
//   - recommend_query_duration_seconds (histogram)
//   - recommend_training_duration_seconds (histogram)
//   - recommend_training_runs_total (counter): result
//   - recommend_model_last_trained_timestamp (gauge)
//   - recommend_model_entries, recommend_model_vocabulary_size (gauges)
//
// Scraper, events, WebSocket, and app-level groups follow the same
// naming conventions; see metrics.go for the full list.
//
// # Cardinality
//
// Endpoint labels carry the request path without its query string, and
// result labels come from small fixed sets. No label carries free-form
// user input.
//
// # Usage
//
//	metrics.RecordAPIRequest(r.Method, r.URL.Path, status, time.Since(start))
//	metrics.RecordDBQuery("SELECT", "books", elapsed, err)
//	metrics.RecordTrainingRun(elapsed, meta.EntryCount, meta.VocabSize, err)
//
// All recording functions are safe for concurrent use; synchronization is
// handled by the Prometheus client library.
package metrics
