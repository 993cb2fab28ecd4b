// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package models

import "time"

// Member roles. Roles gate access through the authorization layer: members
// read the catalog and request recommendations; admins additionally manage
// books and trigger training runs.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Member represents a registered library member.
//
// The password hash never crosses the API boundary: it is tagged out of
// JSON and only the auth package reads it.
type Member struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the member holds the admin role.
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// LoginResponse is returned after a successful login.
//
// Fields:
//   - AccessToken: Signed JWT bearer token (HS256)
//   - TokenType: Always "bearer"
//   - ExpiresIn: Seconds until the token expires
//   - Member: The authenticated member, without credentials
//
// Token usage:
//   - Sent as Authorization: Bearer <token> on subsequent requests
//   - Revoked server-side on logout; expired or revoked tokens yield 401
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Member      Member `json:"member"`
}

// TokenTypeBearer is the only token type the API issues.
const TokenTypeBearer = "bearer"
