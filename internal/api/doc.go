// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package api provides the HTTP layer of BibReaders: the chi router, the
// JSON handlers, and the middleware stack that fronts them.
//
// # Endpoints
//
// JSON endpoints live under /api/v1 and fall into five groups:
//
//   - Catalog: book listing, search, random picks, top-rated shelf, and
//     single-book reads; create/update/delete restricted to admins.
//   - Recommendations: free-text queries against the trained model.
//   - Auth: registration, login, logout, and the member profile.
//   - Admin: model training trigger and status, the audit-trail query
//     and export endpoints, and backup management (create, list, stats,
//     download, delete, restore).
//   - Health: liveness and readiness probes.
//
// Alongside the JSON API the router mounts /metrics (Prometheus),
// /swagger/* (generated OpenAPI UI), /api/v1/events/ws (WebSocket
// broadcasts), and the server-rendered HTML pages at /.
//
// # Response envelope
//
// Every JSON endpoint responds with models.APIResponse:
//
//	{"success": true, "data": {...}, "meta": {"timestamp": "...", "query_time_ms": 3}}
//	{"success": false, "error": {"code": "NOT_FOUND", "message": "...", "request_id": "..."}}
//
// Error codes are stable strings (BAD_REQUEST, VALIDATION_ERROR,
// UNAUTHORIZED, FORBIDDEN, NOT_FOUND, CONFLICT, RATE_LIMITED,
// MODEL_UNAVAILABLE, SERVICE_UNAVAILABLE, INTERNAL_ERROR) so clients can
// branch without parsing messages.
//
// # Middleware
//
// The global stack adds request IDs, real-IP resolution, panic recovery,
// and CORS. Route groups layer per-group httprate limits, security
// headers, Prometheus instrumentation, and bearer-token authentication;
// write routes additionally pass through casbin authorization.
package api
