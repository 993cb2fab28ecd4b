// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package authz

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/auth"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// Middleware provides authorization middleware using Casbin.
// It must run behind the authentication middleware, which stores the
// member in the request context.
type Middleware struct {
	enforcer *Enforcer
	auditor  *audit.Logger
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{
		enforcer: enforcer,
	}
}

// SetAuditLogger wires the optional audit trail. When set, denied
// authorization checks are recorded.
//
// Thread Safety: call once during startup, before serving.
func (m *Middleware) SetAuditLogger(auditor *audit.Logger) {
	m.auditor = auditor
}

// Require enforces that the authenticated member may perform action on
// object. Members without permission receive 403 FORBIDDEN; requests
// that skipped authentication receive 401 UNAUTHORIZED.
func (m *Middleware) Require(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member := auth.MemberFromContext(r.Context())
			if member == nil {
				writeAuthzError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}

			subject := strconv.FormatInt(member.ID, 10)
			allowed, err := m.enforcer.EnforceWithRoles(subject, []string{member.Role}, object, action)
			if err != nil {
				logging.Error().Err(err).
					Str("object", object).
					Str("action", action).
					Msg("authorization check failed")
				writeAuthzError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed")
				return
			}

			if !allowed {
				logging.Warn().
					Int64("member_id", member.ID).
					Str("role", member.Role).
					Str("object", object).
					Str("action", action).
					Msg("authorization denied")
				if m.auditor != nil {
					sessionID := ""
					if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
						sessionID = claims.ID
					}
					actor := audit.ActorFromMember(member.ID, member.Name, member.Role, "jwt", sessionID)
					m.auditor.LogAuthzDenied(r.Context(), actor, audit.SourceFromRequest(r), object, action)
				}
				writeAuthzError(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthzError emits the standard API error envelope. The middleware
// cannot use the api package's response writer without an import cycle,
// so it builds the same shape directly.
func writeAuthzError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := models.APIResponse{
		Success: false,
		Error: &models.APIError{
			Code:      code,
			Message:   message,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Meta: &models.Meta{
			Timestamp: time.Now().UTC(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to encode authorization error response")
	}
}
