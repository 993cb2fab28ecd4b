// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package recommend implements content-based book recommendations over the
// library catalog.
//
// # Architecture
//
// The package is split into an offline and an online half that share a
// serialized artifact:
//
//   - Builder: vectorizes the catalog (TF-IDF over title + description)
//     and produces a versioned Artifact.
//   - Store: persists the Artifact as a checksummed, compressed blob and
//     replaces prior versions atomically.
//   - Engine: loads the Artifact once on first use and answers free-text
//     queries by cosine similarity against every catalog row.
//
// The two halves never need to run in the same process: a batch trainer can
// write the artifact while the serving process picks it up via Reload.
//
// # Design Principles
//
//   - Deterministic: identical catalogs produce identical vocabularies,
//     column layouts, and row vectors.
//   - Explicit failure: a missing, corrupt, or empty model surfaces as a
//     typed error, never as a silently empty result.
//   - Observable: load state, training runs, and query counts are exposed
//     for monitoring.
//
// # Usage
//
//	store := recommend.NewStore(cfg.ArtifactPath)
//	engine := recommend.NewEngine(store, cfg, logger)
//
//	recs, err := engine.Recommend(ctx, "desert planet with sandworms", 5)
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Queries take a shared lock on the
// loaded artifact; Reload and Rebuild swap it under an exclusive lock, so
// in-flight queries always see a complete model.
package recommend
