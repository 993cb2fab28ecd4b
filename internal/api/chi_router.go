// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/RaihanaAm/Bib-Readers/internal/auth"
	"github.com/RaihanaAm/Bib-Readers/internal/authz"
	"github.com/RaihanaAm/Bib-Readers/internal/middleware"
	"github.com/RaihanaAm/Bib-Readers/internal/web"
)

// Router assembles the HTTP route tree: the JSON API under /api/v1, the
// probe endpoints, observability mounts, and the server-rendered pages.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authz         *authz.Middleware

	// pages serves the HTML frontend. Optional; nil leaves the API headless.
	pages *web.Pages

	// oidcFlow serves the optional OIDC login path. Nil unless the
	// deployment configures an identity provider.
	oidcFlow *auth.OIDCFlow
}

// NewRouter creates a router over the given handler. Authorization is
// mandatory; pages and OIDC are attached through Configure methods before
// SetupChi.
func NewRouter(handler *Handler, authzMiddleware *authz.Middleware) *Router {
	var chiMw *ChiMiddleware
	if handler.config != nil {
		chiMw = NewChiMiddlewareFromSecurity(&handler.config.Security)
	} else {
		chiMw = NewChiMiddleware(DefaultChiMiddlewareConfig())
	}

	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		authz:         authzMiddleware,
	}
}

// ConfigurePages attaches the server-rendered HTML frontend.
func (router *Router) ConfigurePages(pages *web.Pages) {
	router.pages = pages
}

// ConfigureOIDC attaches the optional OIDC login flow.
func (router *Router) ConfigureOIDC(flow *auth.OIDCFlow) {
	router.oidcFlow = flow
}

// metricsEnabled reports whether /metrics should be mounted. Defaults to
// exposed when no configuration was supplied.
func (router *Router) metricsEnabled() bool {
	return router.handler.config == nil || router.handler.config.Metrics.Enabled
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // X-Request-ID header plus logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitoring can poll frequently
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())

		r.Get("/", router.handler.Health)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	// Strict rate limiting for auth endpoints (brute force prevention)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Login has the strictest rate limiting (5 attempts per 5 minutes)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		r.Post("/register", router.handler.Register)

		// Session-bound endpoints require a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(router.handler.Authenticate)

			r.Get("/me", router.handler.Me)
			r.Post("/logout", router.handler.Logout)
		})

		// OIDC login path, mounted only when an identity provider is configured
		if router.oidcFlow != nil {
			r.Route("/oidc", func(r chi.Router) {
				r.Get("/login", router.oidcFlow.Login)
				r.Get("/callback", router.oidcFlow.Callback)
			})
		}
	})

	// ========================
	// Catalog Endpoints
	// ========================
	// Reads are public. Mutations require an authenticated member whose
	// role grants catalog write (admins).
	r.Route("/api/v1/books", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAPI())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiPathValue) // Bridge Chi URL params to r.PathValue()

		r.Get("/", router.handler.ListBooks)
		r.Get("/random", router.handler.RandomBooks)
		r.Get("/top-rated", router.handler.TopRatedBooks)
		r.Get("/{id}", router.handler.GetBook)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Use(router.handler.Authenticate)
			r.Use(router.authz.Require(authz.ObjectCatalog, authz.ActionWrite))

			r.Post("/", router.handler.CreateBook)
			r.Put("/{id}", router.handler.UpdateBook)
			r.Delete("/{id}", router.handler.DeleteBook)
		})
	})

	// ========================
	// Recommendation Endpoint
	// ========================
	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAPI())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/", router.handler.Recommend)
	})

	// ========================
	// Admin Endpoints
	// ========================
	// Each endpoint requires authentication plus the matching permission
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(router.handler.Authenticate)

		r.With(router.authz.Require(authz.ObjectTraining, authz.ActionWrite)).
			Post("/train", router.handler.TrainModel)
		r.With(router.authz.Require(authz.ObjectTraining, authz.ActionRead)).
			Get("/train/status", router.handler.TrainingStatus)

		r.Route("/audit", func(r chi.Router) {
			r.Use(router.authz.Require(authz.ObjectAudit, authz.ActionRead))

			r.Get("/", router.handler.AuditEvents)
			r.Get("/export", router.handler.AuditExport)
		})

		r.Route("/backups", func(r chi.Router) {
			r.Use(chiPathValue)
			read := router.authz.Require(authz.ObjectBackup, authz.ActionRead)
			write := router.authz.Require(authz.ObjectBackup, authz.ActionWrite)

			r.With(read).Get("/", router.handler.ListBackups)
			r.With(read).Get("/stats", router.handler.BackupStats)
			r.With(write).Post("/", router.handler.CreateBackup)
			r.With(read).Get("/{id}", router.handler.GetBackup)
			r.With(read).Get("/{id}/download", router.handler.DownloadBackup)
			r.With(write).Delete("/{id}", router.handler.DeleteBackup)
			r.With(write).Post("/{id}/restore", router.handler.RestoreBackup)
		})
	})

	// ========================
	// WebSocket Events
	// ========================
	r.Route("/api/v1/events", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWebSocket())

		r.Get("/ws", router.handler.WebSocket)
	})

	// ========================
	// Observability
	// ========================
	if router.metricsEnabled() {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// HTML Pages
	// ========================
	if router.pages != nil {
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAPI())
			r.Use(chiPathValue)

			r.Get("/", router.pages.Home)
			r.Get("/books/{id}", router.pages.BookDetail)
			r.Get("/login", router.pages.Login)
			r.Get("/register", router.pages.Register)
			r.Get("/recommend", router.pages.Recommend)
			r.Handle("/static/*", router.pages.Static())
		})
	}

	return r
}

// chiPathValue injects Chi URL params into the request so handlers using
// r.PathValue() work both behind the router and under httptest.
func chiPathValue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		if rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if i < len(rctx.URLParams.Values) {
					r.SetPathValue(key, rctx.URLParams.Values[i])
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
