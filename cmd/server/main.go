// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package main is the entry point for the BibReaders server application.
//
// BibReaders is a self-hosted library catalog with content-based book
// recommendations. It serves a JSON API and server-rendered pages over the
// same catalog, ranks books against free-text queries with TF-IDF cosine
// similarity, and pushes catalog and model changes to browsers over
// WebSocket.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Open DuckDB, run migrations, seed the catalog when enabled
//  3. Authentication: bcrypt hasher, JWT manager, Badger-backed session registry
//  4. Authorization: Casbin RBAC enforcer with the embedded model and policy
//  5. Recommendation Engine: TF-IDF engine over the persisted artifact
//  6. Events: Watermill bus, retrain debouncer, and event router
//  7. WebSocket Hub: Real-time updates to connected clients
//  8. Backups: archive manager and scheduled database snapshots
//  9. HTTP Server: REST API, server-rendered pages, and Swagger documentation
//
// All long-running work is supervised: the suture tree restarts crashed
// services with backoff and shuts the layers down in dependency order.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (see .env.example)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// For the bootstrap admin account (optional):
//   - ADMIN_EMAIL: Admin email address
//   - ADMIN_PASSWORD: Admin password (account promoted on start, existing hash never overwritten)
//
// For OpenID Connect single sign-on (optional):
//   - OIDC_ENABLED=true
//   - OIDC_ISSUER_URL, OIDC_CLIENT_ID, OIDC_CLIENT_SECRET, OIDC_REDIRECT_URL
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the event router, the retrain scheduler, and the session sweeper
//   - Closes the event bus, the session store, and the database
//
// # Example Usage
//
// Development with a seeded catalog:
//
//	export SEED_DATA=true
//	export JWT_SECRET=$(openssl rand -base64 32)
//	./bibreaders
//
// Production with admin bootstrap and scheduled retraining:
//
//	export DUCKDB_PATH=/data/bibreaders.duckdb
//	export SESSION_STORE_PATH=/data/sessions
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export ADMIN_EMAIL=admin@example.com
//	export ADMIN_PASSWORD=secure-password
//	export RECOMMEND_RETRAIN_INTERVAL=24h
//	./bibreaders
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/RaihanaAm/Bib-Readers/docs" // Import generated swagger docs
	"github.com/RaihanaAm/Bib-Readers/internal/api"
	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/auth"
	"github.com/RaihanaAm/Bib-Readers/internal/authz"
	"github.com/RaihanaAm/Bib-Readers/internal/backup"
	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/events"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
	"github.com/RaihanaAm/Bib-Readers/internal/supervisor"
	"github.com/RaihanaAm/Bib-Readers/internal/supervisor/services"
	"github.com/RaihanaAm/Bib-Readers/internal/web"
	ws "github.com/RaihanaAm/Bib-Readers/internal/websocket"
)

// sessionSweepInterval is how often expired sessions are purged from the
// Badger registry. Badger's own TTL handles correctness; the sweep keeps
// the value log from accumulating dead entries between compactions.
const sessionSweepInterval = 10 * time.Minute

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting BibReaders with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Bool("oidc_enabled", cfg.Security.OIDC.Enabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Seed a starter catalog if enabled (for development and demos)
	if cfg.Database.SeedData {
		logging.Info().Msg("Catalog seeding enabled (SEED_DATA=true)")
		if err := db.SeedCatalog(context.Background()); err != nil {
			// Close database before fatal exit to ensure defer runs
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed catalog")
		}
	}

	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)

	// Bootstrap the admin account when configured. EnsureAdmin promotes an
	// existing member but never overwrites a password hash, so restarts
	// with the same ADMIN_EMAIL are safe.
	if cfg.Security.AdminEmail != "" {
		adminHash, err := hasher.Hash(cfg.Security.AdminPassword)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to hash admin password")
		}
		if err := db.EnsureAdmin(context.Background(), cfg.Security.AdminEmail, adminHash); err != nil {
			logging.Fatal().Err(err).Msg("Failed to bootstrap admin account")
		}
		logging.Info().Str("email", cfg.Security.AdminEmail).Msg("Admin account ensured")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	logging.Info().Msg("JWT authentication enabled")

	sessionDB, err := auth.OpenSessionDB(cfg.Security.SessionStorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := sessionDB.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	sessions := auth.NewBadgerSessionStore(sessionDB)
	logging.Info().Str("path", cfg.Security.SessionStorePath).Msg("Session store opened")

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization enforcer")
	}
	authzMiddleware := authz.NewMiddleware(enforcer)
	logging.Info().Msg("Role-based authorization enabled")

	// Audit trail: auth events, catalog writes, and admin actions land in
	// a DuckDB table through a buffered asynchronous writer.
	var auditor *audit.Logger
	if cfg.Audit.Enabled {
		auditStore := audit.NewDuckDBStore(db.Conn())
		if err := auditStore.CreateTable(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to create audit table")
		}
		auditor = audit.NewLogger(auditStore, &audit.Config{
			Enabled:         true,
			LogLevel:        audit.SeverityInfo,
			RetentionDays:   cfg.Audit.RetentionDays,
			CleanupInterval: cfg.Audit.CleanupInterval,
			BufferSize:      cfg.Audit.BufferSize,
			LogToStdout:     cfg.Audit.LogToStdout,
		})
		defer func() {
			if err := auditor.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing audit logger")
			}
		}()
		authzMiddleware.SetAuditLogger(auditor)
		logging.Info().Int("retention_days", cfg.Audit.RetentionDays).Msg("Audit trail enabled")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for local development and CI!")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if auditor != nil {
		auditor.StartCleanupRoutine(ctx)
	}

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	logger := logging.Logger()

	// Create WebSocket hub for real-time updates (before the event router,
	// which bridges bus messages onto it)
	wsHub := ws.NewHub()

	store := recommend.NewStore(cfg.Recommend.ArtifactPath)
	engine, err := recommend.NewEngine(store, &recommend.Config{
		ArtifactPath: cfg.Recommend.ArtifactPath,
		MaxFeatures:  cfg.Recommend.MaxFeatures,
		DefaultTopK:  cfg.Recommend.DefaultTopK,
		MaxTopK:      cfg.Recommend.MaxTopK,
	}, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	logging.Info().Str("artifact", cfg.Recommend.ArtifactPath).Msg("Recommendation engine created")

	// Event plumbing: mutations publish to the bus, the router fans out to
	// the retrain debouncer and the WebSocket hub
	bus := events.NewBus(&cfg.Events, logger)
	debouncer := events.NewRetrainDebouncer(engine, db, bus, cfg.Recommend.RetrainDebounce, logger)
	eventRouter, err := events.NewRouter(events.DefaultRouterConfig(), bus, debouncer, wsHub, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create event router")
	}
	logging.Info().Dur("retrain_debounce", cfg.Recommend.RetrainDebounce).Msg("Event bus and router created")

	handler := api.NewHandler(db, engine, cfg, jwtManager, sessions, hasher, wsHub)
	handler.SetEventPublisher(bus)
	handler.SetStalenessReporter(debouncer)
	if auditor != nil {
		handler.SetAuditLogger(auditor)
	}

	// Backups snapshot the database, the model artifact, and a sanitized
	// config summary into tar.gz archives under the backup directory.
	var backups *backup.Manager
	if cfg.Backup.Enabled {
		backups, err = backup.NewManager(&backup.Config{
			Enabled:          true,
			Dir:              cfg.Backup.Dir,
			CompressionLevel: cfg.Backup.CompressionLevel,
			Retention: backup.RetentionPolicy{
				MinCount:   cfg.Backup.MinCount,
				MaxCount:   cfg.Backup.MaxCount,
				MaxAgeDays: cfg.Backup.MaxAgeDays,
			},
			ConfigSummary: cfg.Summary(),
		}, db, cfg.Recommend.ArtifactPath, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize backup manager")
		}
		handler.SetBackupManager(backups)
		logging.Info().Str("dir", cfg.Backup.Dir).Msg("Backups enabled")
	}

	router := api.NewRouter(handler, authzMiddleware)

	pages, err := web.NewPages(db, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize page templates")
	}
	router.ConfigurePages(pages)
	logging.Info().Msg("Server-rendered pages configured")

	// Optional OIDC single sign-on. Discovery happens here, so a
	// misconfigured or unreachable issuer fails fast instead of on the
	// first login attempt.
	if cfg.Security.OIDC.Enabled {
		flow, err := auth.NewOIDCFlow(ctx, &cfg.Security.OIDC, db, jwtManager, sessions, hasher)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize OIDC login")
		}
		if auditor != nil {
			flow.SetAuditLogger(auditor)
		}
		router.ConfigureOIDC(flow)
		logging.Info().Str("issuer", cfg.Security.OIDC.IssuerURL).Msg("OIDC single sign-on enabled")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer services
	tree.AddDataService(auth.NewSessionSweeper(sessions, sessionSweepInterval, logger))
	if cfg.Recommend.TrainOnStartup || cfg.Recommend.RetrainInterval > 0 {
		tree.AddDataService(services.NewRetrainService(engine, db, services.RetrainConfig{
			TrainOnStartup: cfg.Recommend.TrainOnStartup,
			Interval:       cfg.Recommend.RetrainInterval,
		}, logger))
		logging.Info().
			Bool("train_on_startup", cfg.Recommend.TrainOnStartup).
			Dur("interval", cfg.Recommend.RetrainInterval).
			Msg("Retrain scheduler added to supervisor tree")
	}

	if backups != nil && cfg.Backup.Interval > 0 {
		tree.AddDataService(services.NewBackupService(backups, cfg.Backup.Interval, logger))
		logging.Info().Dur("interval", cfg.Backup.Interval).Msg("Backup scheduler added to supervisor tree")
	}

	// Messaging layer services
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(eventRouter)
	logging.Info().Msg("WebSocket hub and event router added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// The router has stopped consuming; release the debounce timer and
	// flush the bus
	debouncer.Stop()
	if err := bus.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event bus")
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
