// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

/*
Package supervisor provides process supervision for BibReaders using suture v4.

This package implements a hierarchical supervisor tree that manages the
lifecycle of every long-running service in the application. It provides
Erlang/OTP-style supervision with automatic restart, failure isolation, and
graceful shutdown.

# Overview

The supervisor tree organizes services into three layers for failure isolation:

	RootSupervisor ("bibreaders")
	├── DataSupervisor ("data-layer")
	│   ├── SessionSweeper
	│   └── RetrainService (if retraining is scheduled)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── EventRouter
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crash in the event router doesn't affect HTTP availability
  - A hung model rebuild doesn't impact WebSocket connections
  - Each layer can restart independently

# Key Features

Automatic Restart:
  - Crashed services are automatically restarted
  - Exponential backoff prevents restart storms
  - Configurable failure thresholds and decay rates

Graceful Shutdown:
  - Context cancellation triggers orderly shutdown
  - Configurable shutdown timeout per service
  - UnstoppedServiceReport for debugging hangs

Structured Logging:
  - Service starts, stops, failures, and restarts via slog
  - Event hooks via the sutureslog adapter

# Usage Example

Basic setup in main.go:

	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    log.Fatal(err)
	}

	tree.AddDataService(sweeper)
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddMessagingService(router)
	tree.AddAPIService(services.NewHTTPServerService(srv, 30*time.Second))

	if err := tree.Serve(ctx); err != nil {
	    log.Printf("Supervisor stopped: %v", err)
	}

Background operation:

	errChan := tree.ServeBackground(ctx)
	// ... other setup ...
	if err := <-errChan; err != nil {
	    log.Printf("Supervisor error: %v", err)
	}

# Configuration

The TreeConfig controls restart behavior:

	config := supervisor.TreeConfig{
	    FailureThreshold: 5.0,              // Failures before backoff
	    FailureDecay:     30.0,             // Seconds for failures to decay
	    FailureBackoff:   15 * time.Second, // Backoff duration
	    ShutdownTimeout:  10 * time.Second, // Per-service shutdown timeout
	}

Zero values are replaced with suture's production defaults, see
DefaultTreeConfig.

# Service Interface

All services must implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - Return nil: service stopped cleanly and is restarted
  - Return suture.ErrDoNotRestart: service is removed from the tree
  - Return any other error: service crashed and is restarted after backoff
  - Context canceled: shutdown requested, return promptly

The event router and the session sweeper satisfy this interface directly and
are added to the tree without wrappers. The HTTP server and the WebSocket hub
are adapted by the services subpackage.

# What Is NOT Supervised

DuckDB and Badger are intentionally not supervised. Both are embedded
libraries whose handles are owned by their packages; a crash inside either
would require a process restart anyway.

# Debugging Shutdown Issues

If services don't stop within the timeout:

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("Service didn't stop: %v", svc)
	}

Common causes are goroutines ignoring context cancellation and blocked
network I/O without deadlines.

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4: underlying library
*/
package supervisor
