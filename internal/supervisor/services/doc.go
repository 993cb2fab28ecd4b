// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

/*
Package services provides suture.Service wrappers for BibReaders components.

This package adapts application components to the suture v4 supervision
model, translating their lifecycle patterns (ListenAndServe, RunWithContext,
a training schedule) into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation into the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

WebSocket Hub (WebSocketHubService):
  - Wraps websocket.Hub, whose RunWithContext already fits the pattern
  - Handles client connection cleanup on shutdown

Retrain Scheduler (RetrainService):
  - Rebuilds the recommendation model on a configurable interval
  - Optionally trains once at startup
  - Skips a cycle when a manual rebuild is already running

Components whose API already satisfies suture.Service, such as the event
router and the session sweeper, are added to the tree directly without a
wrapper.

# Error Handling

Return values determine supervisor behavior:

	nil                      -> restarted (suture treats nil as a crash)
	suture.ErrDoNotRestart   -> removed from the tree
	any other error          -> restarted after backoff
	ctx.Err()                -> normal shutdown

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: underlying supervision library
*/
package services
