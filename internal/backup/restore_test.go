// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
)

func TestValidateBackup_Valid(t *testing.T) {
	m, _ := newTestManager(t)

	b, err := m.CreateBackup(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	result, err := m.ValidateBackup(b.ID)
	if err != nil {
		t.Fatalf("ValidateBackup: %v", err)
	}
	if !result.Valid {
		t.Errorf("Valid = false, errors: %v", result.Errors)
	}
	if !result.ChecksumValid || !result.ArchiveReadable || !result.FilesComplete {
		t.Errorf("checks = checksum %v, readable %v, complete %v, want all true",
			result.ChecksumValid, result.ArchiveReadable, result.FilesComplete)
	}
}

func TestValidateBackup_TamperedArchive(t *testing.T) {
	m, _ := newTestManager(t)

	b, err := m.CreateBackup(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	f, err := os.OpenFile(b.FilePath, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("tampered")); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	result, err := m.ValidateBackup(b.ID)
	if err != nil {
		t.Fatalf("ValidateBackup: %v", err)
	}
	if result.Valid {
		t.Error("tampered archive passed validation")
	}
	if result.ChecksumValid {
		t.Error("checksum matched after tampering")
	}

	got, err := m.Get(b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusCorrupted {
		t.Errorf("Status = %q, want %q", got.Status, StatusCorrupted)
	}
}

func TestValidateBackup_MissingArchive(t *testing.T) {
	m, _ := newTestManager(t)

	b, err := m.CreateBackup(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}
	if err := os.Remove(b.FilePath); err != nil {
		t.Fatal(err)
	}

	result, err := m.ValidateBackup(b.ID)
	if err != nil {
		t.Fatalf("ValidateBackup: %v", err)
	}
	if result.Valid {
		t.Error("missing archive passed validation")
	}
}

func TestRestoreFromBackup_RoundTrip(t *testing.T) {
	m, db := newTestManager(t)
	ctx := context.Background()

	b, err := m.CreateBackup(ctx, "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	// Simulate drift after the backup was taken.
	if err := os.WriteFile(db.path, []byte("drifted contents"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(m.artifactPath, []byte("drifted artifact"), 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := m.RestoreFromBackup(ctx, b.ID, RestoreOptions{})
	if err != nil {
		t.Fatalf("RestoreFromBackup: %v", err)
	}
	if !result.Success {
		t.Fatalf("Success = false, error: %s", result.Error)
	}
	if !result.DatabaseRestored {
		t.Error("DatabaseRestored = false")
	}
	if !result.ArtifactRestored {
		t.Error("ArtifactRestored = false")
	}
	if !result.RestartRequired {
		t.Error("RestartRequired = false after database restore")
	}
	if !db.closed {
		t.Error("live database was not closed before file replacement")
	}

	restored, err := os.ReadFile(db.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(restored) != "duckdb file contents" {
		t.Errorf("restored database = %q, want original contents", restored)
	}

	wal, err := os.ReadFile(db.path + ".wal")
	if err != nil {
		t.Fatal(err)
	}
	if string(wal) != "wal contents" {
		t.Errorf("restored WAL = %q, want original contents", wal)
	}

	artifact, err := os.ReadFile(m.artifactPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(artifact) != "model artifact" {
		t.Errorf("restored artifact = %q, want original contents", artifact)
	}
}

func TestRestoreFromBackup_ValidateOnly(t *testing.T) {
	m, db := newTestManager(t)
	ctx := context.Background()

	b, err := m.CreateBackup(ctx, "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}
	if err := os.WriteFile(db.path, []byte("drifted contents"), 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := m.RestoreFromBackup(ctx, b.ID, RestoreOptions{ValidateOnly: true})
	if err != nil {
		t.Fatalf("RestoreFromBackup: %v", err)
	}
	if !result.Success {
		t.Errorf("Success = false, error: %s", result.Error)
	}
	if result.DatabaseRestored || result.RestartRequired {
		t.Error("validate-only restore touched the database")
	}
	if db.closed {
		t.Error("validate-only restore closed the live database")
	}

	current, err := os.ReadFile(db.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(current) != "drifted contents" {
		t.Errorf("database changed during validate-only restore: %q", current)
	}
}

func TestRestoreFromBackup_PreRestoreBackup(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	b, err := m.CreateBackup(ctx, "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	result, err := m.RestoreFromBackup(ctx, b.ID, RestoreOptions{PreRestoreBackup: true})
	if err != nil {
		t.Fatalf("RestoreFromBackup: %v", err)
	}
	if result.PreRestoreBackupID == "" {
		t.Fatal("PreRestoreBackupID not set")
	}

	pre, err := m.Get(result.PreRestoreBackupID)
	if err != nil {
		t.Fatalf("Get pre-restore backup: %v", err)
	}
	if pre.Trigger != TriggerPreRestore {
		t.Errorf("pre-restore trigger = %q, want %q", pre.Trigger, TriggerPreRestore)
	}
}

func TestRestoreFromBackup_CorruptRejected(t *testing.T) {
	m, db := newTestManager(t)
	ctx := context.Background()

	b, err := m.CreateBackup(ctx, "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	f, err := os.OpenFile(b.FilePath, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("tampered")); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = m.RestoreFromBackup(ctx, b.ID, RestoreOptions{})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("RestoreFromBackup returned %v, want ErrValidationFailed", err)
	}
	if db.closed {
		t.Error("live database closed despite failed validation")
	}
}

func TestRestoreFromBackup_NotFound(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.RestoreFromBackup(context.Background(), "no-such-id", RestoreOptions{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RestoreFromBackup returned %v, want ErrNotFound", err)
	}
}

func TestDownload(t *testing.T) {
	m, _ := newTestManager(t)

	b, err := m.CreateBackup(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	reader, got, err := m.Download(b.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer reader.Close()

	if got.ID != b.ID {
		t.Errorf("record ID = %q, want %q", got.ID, b.ID)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading archive stream: %v", err)
	}
	if int64(len(data)) != b.FileSize {
		t.Errorf("streamed %d bytes, want %d", len(data), b.FileSize)
	}

	if _, _, err := m.Download("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Download of unknown id returned %v, want ErrNotFound", err)
	}
}
