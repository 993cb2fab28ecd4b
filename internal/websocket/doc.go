// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package websocket provides real-time catalog notifications over WebSocket.
//
// A single Hub fans messages out to every connected browser. The event
// router feeds it: catalog mutations arrive as "catalog_changed" messages
// and completed training runs as "model_trained" messages, so open pages
// can refresh book lists and recommendation results without polling.
//
// # Architecture
//
//	API handler (GET /api/v1/events/ws)
//	    |  upgrade
//	    v
//	Client (readPump/writePump) <---> Hub (register/unregister/broadcast)
//	    ^
//	    |  BroadcastJSON
//	Event router (catalog.changed, model.trained topics)
//
// # Message Format
//
// All messages share one envelope:
//
//	{"type": "catalog_changed", "data": {...}}
//
// Message types:
//   - catalog_changed: a book was created, updated, deleted, or imported
//   - model_trained: a recommendation model rebuild completed
//   - ping / pong: client liveness probes
//
// # Lifecycle
//
// The hub runs under the supervision tree via RunWithContext and closes
// every client on context cancellation. Clients that fall behind (full
// send buffer) are dropped rather than allowed to block the broadcast
// loop.
package websocket
