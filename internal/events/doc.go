// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package events provides the in-process event bus built on Watermill's
// GoChannel pub/sub.
//
// Two topics flow through the bus:
//
//   - catalog.changed: a book was created, updated, or deleted through the
//     admin API, or a scrape run imported a batch. Published by the API
//     handlers and the scraper's database sink.
//   - model.trained: a recommendation artifact rebuild completed and the
//     serving engine swapped it in.
//
// A Watermill router runs the consumers:
//
//   - retrain debouncer: collapses bursts of catalog changes into a single
//     model rebuild after a quiet period, and tracks staleness when
//     automatic retraining is disabled.
//   - WebSocket bridge: forwards both topics to connected browser clients
//     as JSON messages.
//
// Everything stays inside the process; the GoChannel transport has no
// broker and no persistence. Messages that are not consumed before
// shutdown are lost, which is acceptable for notifications that can all be
// reconstructed from the database.
package events
