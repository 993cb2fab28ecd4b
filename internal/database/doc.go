// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package database provides the embedded DuckDB store for the library
// catalog and its members.
//
// # Architecture
//
// The package wraps a single DuckDB database file accessed through
// database/sql. All persistent state lives in two tables:
//
//   - books: the catalog rows served by the API, the web pages, and the
//     recommendation model builder
//   - members: registered readers and administrators
//
// Identifiers come from DuckDB sequences so rows keep stable BIGINT keys
// across upserts. Schema changes after the initial release are applied as
// versioned migrations recorded in a schema_migrations table.
//
// # Concurrency
//
// DuckDB supports concurrent readers with a single writer per process.
// The connection pool is sized to the CPU count for parallel reads, and
// scraper upserts serialize per (title, author) key so two workers cannot
// race the same row into a duplicate.
//
// # Errors
//
// Lookup misses return ErrNotFound and unique-constraint violations
// return ErrDuplicate. Both are wrapped with fmt.Errorf("%w", ...) so
// callers can branch with errors.Is while keeping the query context.
package database
