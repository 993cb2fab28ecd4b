// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package models

import "time"

// APIResponse is the standardized response wrapper used by all JSON
// endpoints. Success and error responses share one structure so clients
// can always unmarshal into the same type.
//
// Example successful response:
//
//	{
//	  "success": true,
//	  "data": {"items": [...], "page": 1},
//	  "meta": {"timestamp": "2026-08-01T12:00:00Z", "query_time_ms": 4}
//	}
//
// Example error response:
//
//	{
//	  "success": false,
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "book 99 not found",
//	    "request_id": "f2b0..."
//	  },
//	  "meta": {"timestamp": "2026-08-01T12:00:00Z"}
//	}
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// APIError carries structured error details.
//
// Fields:
//   - Code: Machine-readable error code (e.g. "VALIDATION_ERROR")
//   - Message: Human-readable error message
//   - Details: Additional context such as per-field validation failures
//   - RequestID: Correlates the error with server logs
//
// Error codes in use:
//   - BAD_REQUEST: Malformed input (unparseable body, bad path parameter)
//   - VALIDATION_ERROR: Well-formed input violating field constraints
//   - UNAUTHORIZED: Missing, expired, or revoked credentials
//   - FORBIDDEN: Authenticated but not allowed
//   - NOT_FOUND: Resource doesn't exist
//   - CONFLICT: Uniqueness or concurrency conflict
//   - RATE_LIMITED: Too many requests
//   - MODEL_UNAVAILABLE: Recommendation artifact missing or corrupt
//   - SERVICE_UNAVAILABLE: Dependency not ready
//   - INTERNAL_ERROR: Unexpected server failure
type APIError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Meta contains response metadata for observability.
type Meta struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}
