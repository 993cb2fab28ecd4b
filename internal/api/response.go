// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
	"github.com/RaihanaAm/Bib-Readers/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log
// injection. Newlines and other control characters in attacker-supplied
// values could otherwise forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondData sends a success envelope.
func respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Success: true,
		Data:    data,
		Meta: &models.Meta{
			Timestamp: time.Now(),
		},
	})
}

// respondDataTimed sends a success envelope carrying the query time since
// start, for endpoints where database latency matters.
func respondDataTimed(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Success: true,
		Data:    data,
		Meta: &models.Meta{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondJSONStatus sends an envelope whose success flag is set explicitly,
// for probe endpoints that report a data payload even when failing.
func respondJSONStatus(w http.ResponseWriter, r *http.Request, status int, success bool, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Success: success,
		Data:    data,
		Meta: &models.Meta{
			Timestamp: time.Now(),
		},
	})
}

// respondError sends an error envelope. The underlying error is logged with
// the request-scoped logger but never leaks into the response body; clients
// only see the stable code and message.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	requestID := logging.RequestIDFromContext(r.Context())

	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Success: false,
		Error: &models.APIError{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
		Meta: &models.Meta{
			Timestamp: time.Now(),
		},
	})
}

// respondValidationError sends a VALIDATION_ERROR envelope with per-field
// details from the shared validation package.
func respondValidationError(w http.ResponseWriter, r *http.Request, apiErr *validation.APIError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Success: false,
		Error: &models.APIError{
			Code:      apiErr.Code,
			Message:   apiErr.Message,
			Details:   apiErr.Details,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Meta: &models.Meta{
			Timestamp: time.Now(),
		},
	})
}

// validateRequest validates a struct using go-playground/validator. Returns
// nil when validation passes.
func validateRequest(v interface{}) *validation.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	return validationErr.ToAPIError()
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// clampInt bounds v into [low, high].
func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
