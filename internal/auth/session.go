// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package auth

import (
	"context"
	"errors"
	"time"
)

// Session-related errors
var (
	// ErrSessionNotFound is returned when a token id is absent from the
	// registry, either because it was never issued here or because it was
	// revoked by logout.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when the registry entry exists but the
	// token lifetime has passed.
	ErrSessionExpired = errors.New("session expired")
)

// Session is one issued-token registry entry. Entries are written on
// login, checked on every authenticated request, and deleted on logout.
type Session struct {
	// TokenID is the JWT ID (jti) claim of the issued token.
	TokenID string `json:"token_id"`

	// MemberID is the authenticated member's id.
	MemberID int64 `json:"member_id"`

	// Email is the member's email at issue time, kept for audit logging.
	Email string `json:"email"`

	// CreatedAt is when the token was issued.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt mirrors the token's exp claim so the sweeper can drop
	// entries without parsing tokens.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// NewSession builds a registry entry from issued claims.
func NewSession(claims *Claims) (*Session, error) {
	memberID, err := claims.MemberID()
	if err != nil {
		return nil, err
	}
	return &Session{
		TokenID:   claims.ID,
		MemberID:  memberID,
		Email:     claims.Email,
		CreatedAt: claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SessionStore defines the interface for issued-token registries.
type SessionStore interface {
	// Create stores a new session entry.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token id.
	// Returns ErrSessionNotFound if absent or revoked.
	// Returns ErrSessionExpired if present but past its expiry.
	Get(ctx context.Context, tokenID string) (*Session, error)

	// Delete revokes a session by token id.
	// Deleting an absent session is not an error.
	Delete(ctx context.Context, tokenID string) error

	// DeleteByMemberID revokes all sessions for a member, for example
	// when an account is deactivated. Returns the count deleted.
	DeleteByMemberID(ctx context.Context, memberID int64) (int, error)

	// CleanupExpired removes all expired entries and returns the count.
	CleanupExpired(ctx context.Context) (int, error)

	// Count returns the number of entries, expired ones included.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying storage.
	Close() error
}
