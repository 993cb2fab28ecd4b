// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RaihanaAm/Bib-Readers/internal/auth"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// TestRegister tests member account creation.
func TestRegister(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	t.Run("registered", func(t *testing.T) {
		body := `{"name":"Avid Reader","email":"Reader@EXAMPLE.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
		}
		var member models.Member
		dataAs(t, decodeEnvelope(t, rec), &member)
		if member.ID < 1 {
			t.Errorf("ID = %d, want assigned id", member.ID)
		}
		if member.Email != "reader@example.com" {
			t.Errorf("Email = %q, want lowercased %q", member.Email, "reader@example.com")
		}
		if member.Role != models.RoleMember {
			t.Errorf("Role = %q, want %q", member.Role, models.RoleMember)
		}
		if !member.IsActive {
			t.Error("IsActive = false, want true")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		// Same address as above, different case.
		body := `{"name":"Second Account","email":"reader@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		wantErrorCode(t, rec, http.StatusConflict, "CONFLICT")
	})

	t.Run("short password", func(t *testing.T) {
		body := `{"name":"Avid Reader","email":"short@example.com","password":"pw"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		wantErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		wantErrorCode(t, rec, http.StatusBadRequest, "BAD_REQUEST")
	})
}

// TestLogin tests credential checks and session issuance.
func TestLogin(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	member := createTestMember(t, db, "reader@example.com", models.RoleMember, true)
	createTestMember(t, db, "dormant@example.com", models.RoleMember, false)

	t.Run("success", func(t *testing.T) {
		body := `{"email":"reader@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
		}
		var login models.LoginResponse
		dataAs(t, decodeEnvelope(t, rec), &login)
		if login.AccessToken == "" {
			t.Error("AccessToken is empty")
		}
		if login.TokenType != models.TokenTypeBearer {
			t.Errorf("TokenType = %q, want %q", login.TokenType, models.TokenTypeBearer)
		}
		if login.ExpiresIn != 3600 {
			t.Errorf("ExpiresIn = %d, want 3600", login.ExpiresIn)
		}
		if login.Member.ID != member.ID {
			t.Errorf("Member.ID = %d, want %d", login.Member.ID, member.ID)
		}

		// The token's session must be registered so logout can revoke it.
		claims, err := handler.jwtManager.ValidateToken(login.AccessToken)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if _, err := handler.sessions.Get(context.Background(), claims.ID); err != nil {
			t.Errorf("session lookup after login error = %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		body := `{"email":"reader@example.com","password":"wrong-password"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("unknown email", func(t *testing.T) {
		body := `{"email":"nobody@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
		resp := decodeEnvelope(t, rec)
		// Unknown address and bad password must be indistinguishable.
		if resp.Error.Message != "Invalid email or password" {
			t.Errorf("Message = %q, want %q", resp.Error.Message, "Invalid email or password")
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		body := `{"email":"dormant@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("missing password", func(t *testing.T) {
		body := `{"email":"reader@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		wantErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

// TestAuthenticate tests the bearer-token middleware.
func TestAuthenticate(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	member := createTestMember(t, db, "reader@example.com", models.RoleMember, true)

	var seen *models.Member
	protected := handler.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.MemberFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("valid token without session", func(t *testing.T) {
		// Signed by us but never registered, as after a logout.
		token, _, err := handler.jwtManager.GenerateToken(member)
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("deactivated member", func(t *testing.T) {
		locked := createTestMember(t, db, "locked@example.com", models.RoleMember, true)
		token := bearerToken(t, handler, locked)
		if err := db.SetMemberActive(context.Background(), locked.ID, false); err != nil {
			t.Fatalf("SetMemberActive() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
		resp := decodeEnvelope(t, rec)
		if resp.Error.Message != "Account is inactive" {
			t.Errorf("Message = %q, want %q", resp.Error.Message, "Account is inactive")
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		token := bearerToken(t, handler, member)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
		}
		if seen == nil || seen.ID != member.ID {
			t.Errorf("member in context = %+v, want id %d", seen, member.ID)
		}
	})
}

// TestMe tests the profile endpoint through the middleware.
func TestMe(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	member := createTestMember(t, db, "reader@example.com", models.RoleMember, true)
	token := bearerToken(t, handler, member)

	me := handler.Authenticate(http.HandlerFunc(handler.Me))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	me.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	var profile models.Member
	dataAs(t, decodeEnvelope(t, rec), &profile)
	if profile.Email != member.Email {
		t.Errorf("Email = %q, want %q", profile.Email, member.Email)
	}
}

// TestMe_NoContext tests that a bare call without the middleware is rejected.
func TestMe_NoContext(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
}

// TestLogout tests that revocation takes effect immediately.
func TestLogout(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	member := createTestMember(t, db, "reader@example.com", models.RoleMember, true)
	token := bearerToken(t, handler, member)

	logout := handler.Authenticate(http.HandlerFunc(handler.Logout))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	logout.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	// The token itself is still a valid JWT, but its session is gone.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	logout.ServeHTTP(rec, req)

	wantErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
}

// TestExtractBearerToken tests Authorization header parsing.
func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "standard", header: "Bearer abc123", wantToken: "abc123", wantOK: true},
		{name: "lowercase scheme", header: "bearer abc123", wantToken: "abc123", wantOK: true},
		{name: "uppercase scheme", header: "BEARER abc123", wantToken: "abc123", wantOK: true},
		{name: "padded token", header: "Bearer   abc123", wantToken: "abc123", wantOK: true},
		{name: "wrong scheme", header: "Token abc123", wantOK: false},
		{name: "scheme only", header: "Bearer", wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
		{name: "blank token", header: "Bearer    ", wantOK: false},
		{name: "no header", header: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, ok := extractBearerToken(req)
			if ok != tt.wantOK {
				t.Fatalf("extractBearerToken(%q) ok = %v, want %v", tt.header, ok, tt.wantOK)
			}
			if ok && token != tt.wantToken {
				t.Errorf("extractBearerToken(%q) = %q, want %q", tt.header, token, tt.wantToken)
			}
		})
	}
}
