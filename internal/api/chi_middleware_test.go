// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
)

// okHandler is the innermost handler for middleware tests.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// TestDefaultChiMiddlewareConfig tests the secure defaults.
func TestDefaultChiMiddlewareConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want empty", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowCredentials {
		t.Error("CORSAllowCredentials = true, want false")
	}
	if cfg.CORSMaxAge != 86400 {
		t.Errorf("CORSMaxAge = %d, want 86400", cfg.CORSMaxAge)
	}
	if cfg.RateLimitDisabled {
		t.Error("RateLimitDisabled = true, want false")
	}
}

// TestNewChiMiddleware_NilConfig tests that nil falls back to defaults.
func TestNewChiMiddleware_NilConfig(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(nil)
	if m.config == nil {
		t.Fatal("config is nil")
	}
	if m.cors == nil {
		t.Fatal("cors handler is nil")
	}
}

// TestNewChiMiddlewareFromSecurity tests mapping from the security config.
func TestNewChiMiddlewareFromSecurity(t *testing.T) {
	t.Parallel()

	sec := &config.SecurityConfig{
		CORSOrigins:       []string{"https://shelf.example.com"},
		RateLimitDisabled: true,
	}
	m := NewChiMiddlewareFromSecurity(sec)
	if len(m.config.CORSAllowedOrigins) != 1 || m.config.CORSAllowedOrigins[0] != "https://shelf.example.com" {
		t.Errorf("CORSAllowedOrigins = %v", m.config.CORSAllowedOrigins)
	}
	if !m.config.RateLimitDisabled {
		t.Error("RateLimitDisabled = false, want true")
	}

	if m := NewChiMiddlewareFromSecurity(nil); len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("nil security config: CORSAllowedOrigins = %v, want empty", m.config.CORSAllowedOrigins)
	}
}

// TestCORS tests origin handling on simple requests.
func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("wildcard", func(t *testing.T) {
		t.Parallel()

		m := NewChiMiddleware(&ChiMiddlewareConfig{
			CORSAllowedOrigins: []string{"*"},
			CORSAllowedMethods: []string{"GET"},
		})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		rec := httptest.NewRecorder()
		m.CORS()(okHandler).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
	})

	t.Run("origin not allowed", func(t *testing.T) {
		t.Parallel()

		m := NewChiMiddleware(&ChiMiddlewareConfig{
			CORSAllowedOrigins: []string{"https://shelf.example.com"},
			CORSAllowedMethods: []string{"GET"},
		})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		m.CORS()(okHandler).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want unset", got)
		}
	})
}

// TestAPISecurityHeaders tests the header set on plain and forwarded-TLS
// requests.
func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	t.Run("plain http", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		rec := httptest.NewRecorder()
		APISecurityHeaders()(okHandler).ServeHTTP(rec, req)

		want := map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
			"Cache-Control":          "no-store",
			"Referrer-Policy":        "strict-origin-when-cross-origin",
		}
		for header, value := range want {
			if got := rec.Header().Get(header); got != value {
				t.Errorf("%s = %q, want %q", header, got, value)
			}
		}
		if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
			t.Errorf("Strict-Transport-Security = %q, want unset over plain HTTP", got)
		}
	})

	t.Run("behind tls proxy", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rec := httptest.NewRecorder()
		APISecurityHeaders()(okHandler).ServeHTTP(rec, req)

		if got := rec.Header().Get("Strict-Transport-Security"); got == "" {
			t.Error("Strict-Transport-Security not set behind TLS proxy")
		}
	})
}

// TestRequestIDWithLogging tests ID assignment and propagation.
func TestRequestIDWithLogging(t *testing.T) {
	t.Parallel()

	t.Run("generates when absent", func(t *testing.T) {
		t.Parallel()

		var inContext string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inContext = logging.RequestIDFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		RequestIDWithLogging()(inner).ServeHTTP(rec, req)

		header := rec.Header().Get("X-Request-ID")
		if header == "" {
			t.Fatal("X-Request-ID header is empty")
		}
		if inContext != header {
			t.Errorf("context request id = %q, header = %q", inContext, header)
		}
	})

	t.Run("honors inbound id", func(t *testing.T) {
		t.Parallel()

		var inContext string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inContext = logging.RequestIDFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "proxy-assigned-42")
		rec := httptest.NewRecorder()
		RequestIDWithLogging()(inner).ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != "proxy-assigned-42" {
			t.Errorf("X-Request-ID = %q, want proxy-assigned-42", got)
		}
		if inContext != "proxy-assigned-42" {
			t.Errorf("context request id = %q, want proxy-assigned-42", inContext)
		}
	})
}

// TestRateLimitCustom_Disabled tests that the kill switch is a pass-through.
func TestRateLimitCustom_Disabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	limited := m.RateLimitCustom("test", RateLimitConfig{Requests: 1, Window: time.Minute})(okHandler)

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}
}

// TestRateLimitCustom_Exceeded tests the envelope once the limit trips.
func TestRateLimitCustom_Exceeded(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{})
	limited := m.RateLimitCustom("test", RateLimitConfig{Requests: 2, Window: time.Minute})(okHandler)

	// Same client IP for every request.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)

	wantErrorCode(t, rec, http.StatusTooManyRequests, "RATE_LIMITED")
}

// TestChiMiddlewareAdapter tests the HandlerFunc middleware bridge.
func TestChiMiddlewareAdapter(t *testing.T) {
	t.Parallel()

	wrapped := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Wrapped", "yes")
			next(w, r)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	chiMiddleware(wrapped)(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Wrapped") != "yes" {
		t.Error("middleware did not run before the handler")
	}
}
