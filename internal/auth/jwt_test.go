// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret: strings.Repeat("s", 32),
		TokenTTL:  time.Hour,
	}
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
		wantTTL time.Duration
	}{
		{
			name:    "valid secret",
			cfg:     &config.SecurityConfig{JWTSecret: strings.Repeat("s", 32), TokenTTL: 2 * time.Hour},
			wantTTL: 2 * time.Hour,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{TokenTTL: time.Hour},
			wantErr: true,
		},
		{
			name:    "zero ttl falls back to one hour",
			cfg:     &config.SecurityConfig{JWTSecret: strings.Repeat("s", 32)},
			wantTTL: time.Hour,
		},
		{
			name:    "negative ttl falls back to one hour",
			cfg:     &config.SecurityConfig{JWTSecret: strings.Repeat("s", 32), TokenTTL: -time.Minute},
			wantTTL: time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager.TTL() != tt.wantTTL {
				t.Errorf("TTL() = %v, want %v", manager.TTL(), tt.wantTTL)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	member := &models.Member{
		ID:    42,
		Name:  "Test Reader",
		Email: "reader@example.com",
		Role:  models.RoleMember,
	}

	token, claims, err := manager.GenerateToken(member)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}
	if claims.ID == "" {
		t.Error("GenerateToken() claims have no token id")
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "42")
	}

	validated, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if validated.Email != member.Email {
		t.Errorf("Email = %q, want %q", validated.Email, member.Email)
	}
	if validated.Role != member.Role {
		t.Errorf("Role = %q, want %q", validated.Role, member.Role)
	}
	if validated.ID != claims.ID {
		t.Errorf("token id = %q, want %q", validated.ID, claims.ID)
	}

	id, err := validated.MemberID()
	if err != nil {
		t.Fatalf("MemberID() error = %v", err)
	}
	if id != member.ID {
		t.Errorf("MemberID() = %d, want %d", id, member.ID)
	}
}

func TestGenerateToken_UniqueTokenIDs(t *testing.T) {
	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	member := &models.Member{ID: 1, Email: "reader@example.com", Role: models.RoleMember}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		_, claims, err := manager.GenerateToken(member)
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		if seen[claims.ID] {
			t.Fatalf("GenerateToken() reused token id %q", claims.ID)
		}
		seen[claims.ID] = true
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "not a jwt", token: "not_a_jwt_token"},
		{name: "malformed segments", token: "invalid.token.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := manager.ValidateToken(tt.token)
			if err == nil {
				t.Error("ValidateToken() expected error, got nil")
			}
			if claims != nil {
				t.Error("ValidateToken() expected nil claims")
			}
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	manager1, err := NewJWTManager(&config.SecurityConfig{JWTSecret: strings.Repeat("a", 32), TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	manager2, err := NewJWTManager(&config.SecurityConfig{JWTSecret: strings.Repeat("b", 32), TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, _, err := manager1.GenerateToken(&models.Member{ID: 1, Email: "reader@example.com"})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := manager2.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted token signed with different secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testSecurityConfig()
	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	// The manager never issues expired tokens, so sign one by hand with
	// the same secret.
	claims := &Claims{
		Email: "reader@example.com",
		Role:  models.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ID:        "expired-token",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := manager.ValidateToken(signed); err == nil {
		t.Error("ValidateToken() accepted expired token")
	}
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	claims := &Claims{
		Email: "reader@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ID:        "unsigned-token",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := manager.ValidateToken(unsigned); err == nil {
		t.Error("ValidateToken() accepted token with alg=none")
	}
}

func TestValidateToken_MissingTokenID(t *testing.T) {
	cfg := testSecurityConfig()
	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	// A token without a jti cannot be revoked, so validation rejects it.
	claims := &Claims{
		Email: "reader@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := manager.ValidateToken(signed); err == nil {
		t.Error("ValidateToken() accepted token without a token id")
	}
}

func TestClaims_MemberID(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    int64
		wantErr bool
	}{
		{name: "numeric subject", subject: "42", want: 42},
		{name: "non-numeric subject", subject: "alice", wantErr: true},
		{name: "empty subject", subject: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject}}
			id, err := claims.MemberID()
			if tt.wantErr {
				if err == nil {
					t.Error("MemberID() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("MemberID() error = %v", err)
			}
			if id != tt.want {
				t.Errorf("MemberID() = %d, want %d", id, tt.want)
			}
		})
	}
}
