// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

/*
schema.go - Database Schema Management

This file manages the DuckDB database schema including sequence, table,
and index creation.

Tables:
  - books: catalog rows scraped or entered by administrators. Every text
    column defaults to a non-null value so the scraper can insert partial
    rows without tripping constraints.
  - members: registered readers. Email is unique; role defaults to the
    plain member role.

Schema Strategy (Pre-Release):
All columns are defined in the initial CREATE TABLE statements. After the
first public release, schema changes go through versioned migrations in
migrations.go instead.

Index Strategy:
Indexes cover the columns the API filters and sorts on: title search,
rating ordering for the top-rated endpoint, the scraper's (title, author)
upsert key, and member email lookup for login.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func (db *DB) getTableCreationQueries() []string {
	return []string{
		// Sequences first: DuckDB resolves nextval() defaults at table
		// creation time.
		`CREATE SEQUENCE IF NOT EXISTS books_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS members_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS books (
			id BIGINT PRIMARY KEY DEFAULT nextval('books_id_seq'),
			title VARCHAR NOT NULL,
			author VARCHAR NOT NULL DEFAULT 'Unknown',
			description VARCHAR NOT NULL DEFAULT '',
			price DOUBLE NOT NULL DEFAULT 0 CHECK (price >= 0),
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			rating INTEGER NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
			image_url VARCHAR NOT NULL DEFAULT '',
			product_url VARCHAR NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS members (
			id BIGINT PRIMARY KEY DEFAULT nextval('members_id_seq'),
			name VARCHAR NOT NULL,
			email VARCHAR NOT NULL UNIQUE,
			password_hash VARCHAR NOT NULL,
			role VARCHAR NOT NULL DEFAULT 'member',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
}

// createIndexes creates indexes for frequently queried columns
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		// Title search and the scraper's upsert key.
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books (title);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_books_title_author ON books (title, author);`,
		// Top-rated endpoint ordering.
		`CREATE INDEX IF NOT EXISTS idx_books_rating ON books (rating DESC, price ASC);`,
		// Login path looks members up by email.
		`CREATE INDEX IF NOT EXISTS idx_members_email ON members (email);`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
