// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package auth provides password hashing, JWT issuance, session tracking,
// and the authentication middleware for the HTTP layer.
//
// # Token Model
//
// Logins produce a signed HS256 JWT whose subject is the member id and
// whose custom claims carry the member's email and role. Every issued
// token is also registered in a BadgerDB session store keyed by the JWT
// ID, which makes tokens revocable: logout deletes the registry entry and
// the middleware rejects tokens whose entry is gone, even though the
// signature is still valid. Because the registry is on disk, sessions
// survive server restarts.
//
// # Request Flow
//
// The middleware extracts the token from the Authorization header (or the
// session cookie set by the web pages), validates the signature and
// expiry, checks the revocation registry, loads the member row, and
// injects both into the request context for handlers and the
// authorization layer.
//
// # Optional Single Sign-On
//
// When OIDC is enabled in configuration, a zitadel/oidc relying party
// handles the redirect and code-exchange flow. Verified identities map to
// member rows by email and then receive the same JWT the password flow
// produces, so downstream code never distinguishes the two.
package auth
