// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package auth

import (
	"context"

	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// contextKey is unexported so other packages cannot collide with our keys.
type contextKey string

const (
	memberContextKey contextKey = "auth_member"
	claimsContextKey contextKey = "auth_claims"
)

// ContextWithMember stores the authenticated member in the context.
// The authentication middleware sets this after token validation; handlers
// and the authorization layer read it back.
func ContextWithMember(ctx context.Context, member *models.Member) context.Context {
	return context.WithValue(ctx, memberContextKey, member)
}

// MemberFromContext retrieves the authenticated member from the context.
// Returns nil when the request did not pass authentication.
func MemberFromContext(ctx context.Context) *models.Member {
	member, ok := ctx.Value(memberContextKey).(*models.Member)
	if !ok {
		return nil
	}
	return member
}

// ContextWithClaims stores the validated token claims in the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves the validated token claims from the context.
// Returns nil when the request did not pass authentication.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
