// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package main provides the BibReaders HTTP server
//
// BibReaders API provides library catalog management and content-based
// book recommendations for a self-hosted reading community.
//
// @title BibReaders API
// @version 1.0
// @description Library catalog and content-based book recommendations
// @description
// @description ## Features
// @description
// @description - **Catalog CRUD**: Paginated browsing, title search, and admin-managed book records
// @description - **Recommendations**: TF-IDF cosine ranking of the catalog against free-text queries
// @description - **Member Accounts**: Registration, bcrypt passwords, and JWT bearer tokens with server-side revocation
// @description - **Single Sign-On**: Optional OpenID Connect login alongside local accounts
// @description - **Real-time Updates**: WebSocket broadcasts for catalog changes and completed training runs
// @description - **Server-rendered Pages**: Browse, search, detail, and recommendation views with no client build step
// @description
// @description ## Authentication
// @description
// @description Catalog reads and recommendation queries are public. Mutations and admin operations require a JWT bearer token in the Authorization header.
// @description Use `/api/v1/auth/login` to obtain a token and send it as `Authorization: Bearer <token>` on subsequent requests.
// @description Logout revokes the token's server-side session, so a revoked token fails immediately even before it expires.
// @description
// @description ## Rate Limiting
// @description
// @description Limits are per client IP: 100 requests/minute for reads, 30/minute for writes and admin operations, and 5 login attempts per 5 minutes.
// @description Rate limit headers are included in responses: `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset`.
// @description Requests over the limit receive the standard error envelope with code `RATE_LIMITED`.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "meta": {
// @description     "timestamp": "2026-08-01T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/RaihanaAm/Bib-Readers/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT obtained from /api/v1/auth/login.
//
// @tag.name Catalog
// @tag.description Book catalog endpoints for browsing, search, and admin-managed records
//
// @tag.name Recommendations
// @tag.description Content-based recommendation queries ranked by TF-IDF cosine similarity
//
// @tag.name Auth
// @tag.description Member registration, login, and session management endpoints
//
// @tag.name Realtime
// @tag.description Real-time WebSocket connections for catalog change and model training notifications
//
// @tag.name Admin
// @tag.description Administrative operations requiring the admin role (model training and training status)
//
// @tag.name Health
// @tag.description Liveness and readiness probes for orchestration
package main
