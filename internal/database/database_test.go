// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
)

// testDBSemaphore limits concurrent database creation to one at a time.
// DuckDB CGO calls can hang when many parallel tests open connections
// under CI resource pressure, so each test holds the semaphore for its
// entire lifetime.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory test database. The semaphore is held
// until the test completes so only one test has an active DuckDB
// connection at any time.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return db
}

func TestNewFileBacked(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	// Parent directory does not exist yet; New must create it.
	path := filepath.Join(t.TempDir(), "data", "catalog.duckdb")
	cfg := &config.DatabaseConfig{
		Path:      path,
		MaxMemory: "1GB",
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestSchemaCreated(t *testing.T) {
	db := setupTestDB(t)

	tables := []string{"books", "members", "schema_migrations"}
	for _, table := range tables {
		var count int
		err := db.conn.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`, table).Scan(&count)
		if err != nil {
			t.Fatalf("information_schema query for %s failed: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s: got %d matches, want 1", table, count)
		}
	}
}

func TestSchemaIdempotent(t *testing.T) {
	db := setupTestDB(t)

	// Re-running the full initialization against an existing schema must
	// not fail; every statement uses IF NOT EXISTS.
	if err := db.initialize(); err != nil {
		t.Fatalf("second initialize() error = %v", err)
	}
}

func TestMigrationsStartAtZero(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	version, err := db.GetCurrentSchemaVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion() error = %v", err)
	}
	if version != 0 {
		t.Errorf("GetCurrentSchemaVersion() = %d, want 0", version)
	}

	history, err := db.GetMigrationHistory(ctx)
	if err != nil {
		t.Fatalf("GetMigrationHistory() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("GetMigrationHistory() returned %d entries, want 0", len(history))
	}
}

func TestCheckpoint(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Checkpoint(context.Background()); err != nil {
		t.Errorf("Checkpoint() error = %v", err)
	}
}

func TestStmtCacheReuse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	query := `SELECT COUNT(*) FROM books`
	first, err := db.stmt(ctx, query)
	if err != nil {
		t.Fatalf("stmt() error = %v", err)
	}
	second, err := db.stmt(ctx, query)
	if err != nil {
		t.Fatalf("stmt() second call error = %v", err)
	}
	if first != second {
		t.Error("stmt() returned a new statement for a cached query")
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unrelated", context.Canceled, false},
		{"duckdb duplicate key", errDuplicateForTest("Constraint Error: Duplicate key \"email: a@b.c\" violates unique constraint"), true},
		{"generic unique violation", errDuplicateForTest("UNIQUE constraint: violates unique constraint \"idx_books_title_author\""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKeyError(tt.err); got != tt.want {
				t.Errorf("isDuplicateKeyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// errDuplicateForTest builds a plain error with a driver-shaped message.
type errDuplicateForTest string

func (e errDuplicateForTest) Error() string { return string(e) }
