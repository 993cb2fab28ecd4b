// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/auth"
	"github.com/RaihanaAm/Bib-Readers/internal/backup"
	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/events"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
	ws "github.com/RaihanaAm/Bib-Readers/internal/websocket"
)

// EventPublisher is the slice of the event bus the handlers need. It
// mirrors events.Bus so the same instance serves the API and the scraper.
type EventPublisher interface {
	// PublishCatalogChanged announces a catalog mutation.
	PublishCatalogChanged(ctx context.Context, change events.CatalogChanged) error

	// PublishModelTrained announces a completed model rebuild.
	PublishModelTrained(ctx context.Context, trained events.ModelTrained) error
}

// StalenessReporter reports whether the model has fallen behind the
// catalog. Implemented by the retrain debouncer.
type StalenessReporter interface {
	// Stale reports whether catalog changes arrived after the last train.
	Stale() bool

	// PendingChanges is the number of changes since the last train.
	PendingChanges() int

	// MarkTrained clears staleness after a successful manual rebuild.
	MarkTrained()
}

// Handler contains dependencies for the API handlers.
//
// Handler methods are split across files by concern:
//   - handlers.go: Handler struct, constructor, WebSocket plumbing (this file)
//   - handlers_books.go: catalog read and write endpoints
//   - handlers_auth.go: registration, login, logout, profile, middleware
//   - handlers_recommend.go: recommendation queries
//   - handlers_admin.go: training trigger and status
//   - handlers_audit.go: audit trail queries and export
//   - handlers_backup.go: backup management and restore
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	db         *database.DB
	engine     *recommend.Engine
	config     *config.Config
	jwtManager *auth.JWTManager
	sessions   auth.SessionStore
	hasher     *auth.PasswordHasher
	wsHub      *ws.Hub
	publisher  EventPublisher
	staleness  StalenessReporter
	auditor    *audit.Logger
	backups    *backup.Manager
	startTime  time.Time
}

// NewHandler creates the API handler with its required dependencies. The
// event publisher and staleness reporter are optional and wired separately
// because they are constructed after the handler during startup.
func NewHandler(db *database.DB, engine *recommend.Engine, cfg *config.Config, jwtManager *auth.JWTManager, sessions auth.SessionStore, hasher *auth.PasswordHasher, wsHub *ws.Hub) *Handler {
	return &Handler{
		db:         db,
		engine:     engine,
		config:     cfg,
		jwtManager: jwtManager,
		sessions:   sessions,
		hasher:     hasher,
		wsHub:      wsHub,
		startTime:  time.Now(),
	}
}

// SetEventPublisher wires the optional event publisher. When set, catalog
// mutations and completed trainings are announced on the bus.
//
// Thread Safety: call once during startup, before serving.
func (h *Handler) SetEventPublisher(publisher EventPublisher) {
	h.publisher = publisher
}

// SetStalenessReporter wires the optional staleness reporter surfaced in
// the training status endpoint.
//
// Thread Safety: call once during startup, before serving.
func (h *Handler) SetStalenessReporter(reporter StalenessReporter) {
	h.staleness = reporter
}

// SetAuditLogger wires the optional audit trail. When set, authentication
// events, catalog writes, and admin actions are recorded.
//
// Thread Safety: call once during startup, before serving.
func (h *Handler) SetAuditLogger(auditor *audit.Logger) {
	h.auditor = auditor
}

// SetBackupManager wires the optional backup manager behind the admin
// backup endpoints.
//
// Thread Safety: call once during startup, before serving.
func (h *Handler) SetBackupManager(manager *backup.Manager) {
	h.backups = manager
}

// requestActor builds the audit actor for an authenticated request from
// the member and claims the middleware stored in the context.
func (h *Handler) requestActor(r *http.Request) audit.Actor {
	member := auth.MemberFromContext(r.Context())
	if member == nil {
		return audit.SystemActor()
	}
	sessionID := ""
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		sessionID = claims.ID
	}
	return audit.ActorFromMember(member.ID, member.Name, member.Role, "jwt", sessionID)
}

// requireDB checks database availability and returns true if available,
// false if an error response was already sent.
func (h *Handler) requireDB(w http.ResponseWriter, r *http.Request) bool {
	if h.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database not available", nil)
		return false
	}
	return true
}

// publishCatalogChanged announces a catalog mutation without blocking the
// response. Publish failures are logged; the mutation already succeeded so
// the client still gets its 2xx.
func (h *Handler) publishCatalogChanged(ctx context.Context, change events.CatalogChanged) {
	if h.publisher == nil {
		return
	}

	// Detach from the request context so cancelation after the response
	// does not lose the event, but keep the request id for tracing.
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := h.publisher.PublishCatalogChanged(ctx, change); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish catalog change")
		}
	}()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow-client attacks.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin on WebSocket upgrades; an empty Origin
	// means a non-browser client bypassing CORS, so reject it.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// Fail open without config, for tests and development.
	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket handles WebSocket upgrade requests
//
// @Summary Establish WebSocket connection
// @Description Establishes a WebSocket connection receiving catalog_changed and model_trained broadcasts as JSON
// @Tags Realtime
// @Accept json
// @Produce json
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {string} string "Bad Request"
// @Failure 503 {object} models.APIResponse "WebSocket hub not available"
// @Router /events/ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
