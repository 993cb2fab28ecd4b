// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/auth"
	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// Register creates a member account
//
// @Summary Register member
// @Description Creates a new member account with a bcrypt-hashed password
// @Tags Auth
// @Accept json
// @Produce json
// @Param member body RegisterRequest true "Registration details"
// @Success 201 {object} models.APIResponse{data=models.Member} "Member created"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 409 {object} models.APIResponse "Email already registered"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Password cannot be used", err)
		return
	}

	member := &models.Member{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         models.RoleMember,
		IsActive:     true,
	}

	if err := h.db.CreateMember(r.Context(), member); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, r, http.StatusConflict, "CONFLICT", "Email already registered", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create member", err)
		return
	}

	metrics.AuthRegistrations.Inc()
	if h.auditor != nil {
		actor := audit.ActorFromMember(member.ID, member.Name, member.Role, "password", "")
		h.auditor.LogMemberRegistered(r.Context(), actor, audit.SourceFromRequest(r))
	}
	logging.Ctx(r.Context()).Info().
		Int64("member_id", member.ID).
		Str("email", sanitizeLogValue(member.Email)).
		Msg("Member registered")

	respondData(w, r, http.StatusCreated, member)
}

// Login authenticates a member
//
// @Summary Login
// @Description Validates credentials and returns a bearer token. The token's session is registered server-side so logout can revoke it.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse} "Authentication successful"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Invalid credentials or inactive account"
// @Failure 429 {object} models.APIResponse "Too many attempts"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	member, err := h.db.GetMemberByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			metrics.RecordLogin(false)
			h.auditAuthFailure(r, email, "unknown email")
			respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up member", err)
		return
	}

	if err := h.hasher.Verify(member.PasswordHash, req.Password); err != nil {
		metrics.RecordLogin(false)
		h.auditAuthFailure(r, email, "bad password")
		logging.Ctx(r.Context()).Warn().
			Str("email", sanitizeLogValue(req.Email)).
			Msg("Login failed: bad password")
		respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
		return
	}

	if !member.IsActive {
		metrics.RecordLogin(false)
		h.auditAuthFailure(r, email, "inactive account")
		respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Account is inactive", nil)
		return
	}

	token, claims, err := h.jwtManager.GenerateToken(member)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token", err)
		return
	}

	session, err := auth.NewSession(claims)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build session", err)
		return
	}
	if err := h.sessions.Create(r.Context(), session); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register session", err)
		return
	}

	metrics.RecordLogin(true)
	h.refreshSessionGauge(r)
	if h.auditor != nil {
		actor := audit.ActorFromMember(member.ID, member.Name, member.Role, "password", claims.ID)
		h.auditor.LogAuthSuccess(r.Context(), actor, audit.SourceFromRequest(r), "password")
	}
	logging.Ctx(r.Context()).Info().
		Int64("member_id", member.ID).
		Msg("Member logged in")

	respondData(w, r, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
		ExpiresIn:   int64(h.jwtManager.TTL().Seconds()),
		Member:      *member,
	})
}

// Me returns the authenticated member's profile
//
// @Summary Current member profile
// @Description Returns the profile of the member owning the presented token
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.Member} "Member profile"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	member := auth.MemberFromContext(r.Context())
	if member == nil {
		respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}
	respondData(w, r, http.StatusOK, member)
}

// Logout revokes the presented token's session
//
// @Summary Logout
// @Description Revokes the presented token's server-side session. The token stops working immediately even though it has not expired.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Session revoked"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	if err := h.sessions.Delete(r.Context(), claims.ID); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to revoke session", err)
		return
	}

	h.refreshSessionGauge(r)
	if h.auditor != nil {
		h.auditor.LogLogout(r.Context(), h.requestActor(r), audit.SourceFromRequest(r), claims.ID)
	}
	logging.Ctx(r.Context()).Info().Str("token_id", claims.ID).Msg("Session revoked")

	respondData(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}

// auditAuthFailure records a failed login attempt when the audit trail is
// wired. The submitted email is kept for investigations even when no
// account matches it.
func (h *Handler) auditAuthFailure(r *http.Request, email, reason string) {
	if h.auditor == nil {
		return
	}
	h.auditor.LogAuthFailure(r.Context(), email, audit.SourceFromRequest(r), reason)
}

// refreshSessionGauge re-counts registered sessions after a change. Count
// failures only cost gauge accuracy, so they are logged and ignored.
func (h *Handler) refreshSessionGauge(r *http.Request) {
	if h.sessions == nil {
		return
	}
	count, err := h.sessions.Count(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to count sessions for gauge")
		return
	}
	metrics.ActiveSessions.Set(float64(count))
}

// Authenticate is the bearer-token middleware for protected routes. It
// validates the JWT, checks the session registry for revocation, loads the
// member, and injects both into the request context.
//
// Rejections are deliberately uniform: clients get UNAUTHORIZED whether
// the token is malformed, expired, revoked, or belongs to a deactivated
// account. The distinction is kept in metrics and logs.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			metrics.RecordTokenValidation("invalid")
			respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
			return
		}

		claims, err := h.jwtManager.ValidateToken(token)
		if err != nil {
			metrics.RecordTokenValidation("invalid")
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Token validation failed")
			respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
			return
		}

		if _, err := h.sessions.Get(r.Context(), claims.ID); err != nil {
			metrics.RecordTokenValidation("revoked")
			logging.Ctx(r.Context()).Warn().
				Str("token_id", claims.ID).
				Err(err).
				Msg("Token rejected: session not active")
			respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
			return
		}

		memberID, err := claims.MemberID()
		if err != nil {
			metrics.RecordTokenValidation("invalid")
			respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
			return
		}

		member, err := h.db.GetMemberByID(r.Context(), memberID)
		if err != nil {
			metrics.RecordTokenValidation("invalid")
			respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
			return
		}

		if !member.IsActive {
			metrics.RecordTokenValidation("inactive")
			logging.Ctx(r.Context()).Warn().
				Int64("member_id", member.ID).
				Msg("Token rejected: member deactivated")
			respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Account is inactive", nil)
			return
		}

		metrics.RecordTokenValidation("success")

		ctx := auth.ContextWithMember(r.Context(), member)
		ctx = auth.ContextWithClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
