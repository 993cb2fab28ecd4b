// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
)

// ChiMiddlewareConfig holds configuration for the chi middleware factories.
type ChiMiddlewareConfig struct {
	// CORS configuration
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	// RateLimitDisabled turns every limiter into a no-op. Useful for
	// tests and single-user deployments.
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns a secure default configuration.
// CORS origins default to empty, requiring explicit configuration.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins:   []string{},
		CORSAllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "Authorization"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,
	}
}

// ChiMiddleware provides chi-compatible middleware factories backed by the
// go-chi ecosystem (cors, httprate).
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a new chi middleware factory.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   cfg.CORSAllowedMethods,
		AllowedHeaders:   cfg.CORSAllowedHeaders,
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           cfg.CORSMaxAge,
	})

	return &ChiMiddleware{
		config: cfg,
		cors:   corsHandler,
	}
}

// NewChiMiddlewareFromSecurity builds the middleware factory from the
// application security config.
func NewChiMiddlewareFromSecurity(sec *config.SecurityConfig) *ChiMiddleware {
	cfg := DefaultChiMiddlewareConfig()
	if sec != nil {
		cfg.CORSAllowedOrigins = sec.CORSOrigins
		cfg.RateLimitDisabled = sec.RateLimitDisabled
	}
	return NewChiMiddleware(cfg)
}

// CORS returns a chi-compatible CORS middleware using go-chi/cors.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// ================================================================================
// Endpoint-Specific Rate Limits
// ================================================================================

// RateLimitConfig defines rate limit parameters for a route group.
type RateLimitConfig struct {
	// Requests is the number of requests allowed in the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
}

// Per-group rate limit configurations, tuned per endpoint characteristics.
var (
	// RateLimitLogin is very strict for login attempts (credential stuffing)
	RateLimitLogin = RateLimitConfig{Requests: 5, Window: 5 * time.Minute}

	// RateLimitAuth covers the other authentication endpoints
	RateLimitAuth = RateLimitConfig{Requests: 5, Window: time.Minute}

	// RateLimitAPI is the default read limit for catalog and recommendations
	RateLimitAPI = RateLimitConfig{Requests: 100, Window: time.Minute}

	// RateLimitWrite is moderate limiting for catalog mutations
	RateLimitWrite = RateLimitConfig{Requests: 30, Window: time.Minute}

	// RateLimitHealth allows frequent monitoring checks while preventing abuse
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

	// RateLimitWebSocket bounds the connection upgrade rate
	RateLimitWebSocket = RateLimitConfig{Requests: 30, Window: time.Minute}
)

// RateLimitCustom returns an IP-keyed rate limiter for one route group. The
// endpoint name labels the rate-limit-hit metric. Exceeding the limit
// produces a RATE_LIMITED envelope instead of httprate's plain-text 429.
func (m *ChiMiddleware) RateLimitCustom(endpoint string, cfg RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded(endpoint)),
	)
}

// rateLimitExceeded records the hit and responds with the standard envelope.
func rateLimitExceeded(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()
		logging.Ctx(r.Context()).Warn().
			Str("endpoint", endpoint).
			Str("remote_addr", r.RemoteAddr).
			Msg("Rate limit exceeded")
		respondError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", nil)
	}
}

// RateLimitLogin returns a very strict rate limiter for the login endpoint.
func (m *ChiMiddleware) RateLimitLogin() func(http.Handler) http.Handler {
	return m.RateLimitCustom("login", RateLimitLogin)
}

// RateLimitAuth returns a strict rate limiter for authentication endpoints.
func (m *ChiMiddleware) RateLimitAuth() func(http.Handler) http.Handler {
	return m.RateLimitCustom("auth", RateLimitAuth)
}

// RateLimitAPI returns the default API rate limiter.
func (m *ChiMiddleware) RateLimitAPI() func(http.Handler) http.Handler {
	return m.RateLimitCustom("api", RateLimitAPI)
}

// RateLimitWrite returns a rate limiter for catalog write operations.
func (m *ChiMiddleware) RateLimitWrite() func(http.Handler) http.Handler {
	return m.RateLimitCustom("write", RateLimitWrite)
}

// RateLimitHealth returns a rate limiter for health endpoints.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.RateLimitCustom("health", RateLimitHealth)
}

// RateLimitWebSocket returns a rate limiter for WebSocket upgrades.
func (m *ChiMiddleware) RateLimitWebSocket() func(http.Handler) http.Handler {
	return m.RateLimitCustom("websocket", RateLimitWebSocket)
}

// ================================================================================
// Request IDs and Security Headers
// ================================================================================

// RequestIDWithLogging returns a middleware that assigns each request an ID
// and threads it through the logging context. Upstream proxies may supply
// X-Request-ID; otherwise one is generated.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
			}

			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APISecurityHeaders returns a middleware that adds security headers to API
// responses.
//
// Headers added:
//   - X-Content-Type-Options: nosniff (prevents MIME type sniffing)
//   - X-Frame-Options: DENY (prevents clickjacking)
//   - Cache-Control: no-store (prevents caching of sensitive API responses)
//   - Referrer-Policy: strict-origin-when-cross-origin
//
// HSTS is added when the request arrived over HTTPS, directly or behind a
// TLS-terminating proxy.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler so middleware written against
// HandlerFunc (Prometheus instrumentation) works with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}
