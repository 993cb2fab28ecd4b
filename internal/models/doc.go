// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package models defines the domain types shared across the application:
// catalog books, library members, and the standard API response envelope.
//
// Types here are plain data carriers with JSON tags. They hold no behavior
// beyond small read-only helpers, so the database, API, and web layers can
// all depend on them without import cycles.
package models
