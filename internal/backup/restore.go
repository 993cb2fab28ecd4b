// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"archive/tar"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // driver for post-restore verification
)

// maxExtractedFileSize guards extraction against decompression bombs.
const maxExtractedFileSize = 1 << 30

// RestoreFromBackup restores the database and recommendation artifact from
// a backup archive.
//
// The live DuckDB connection is closed before its file is replaced, so a
// successful database restore reports RestartRequired and the process must
// be restarted to serve from the restored catalog. ValidateOnly verifies
// the archive without touching anything.
func (m *Manager) RestoreFromBackup(ctx context.Context, id string, opts RestoreOptions) (*RestoreResult, error) {
	result := &RestoreResult{BackupID: id}
	start := time.Now()

	b, err := m.Get(id)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	if !opts.Force {
		validation, err := m.ValidateBackup(id)
		if err != nil {
			result.Error = err.Error()
			return result, err
		}
		if !validation.Valid {
			err := fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(validation.Errors, "; "))
			result.Error = err.Error()
			return result, err
		}
	}

	if opts.ValidateOnly {
		result.Success = true
		result.Duration = time.Since(start)
		return result, nil
	}

	if opts.PreRestoreBackup {
		pre, err := m.createWithTrigger(ctx, TriggerPreRestore, "Pre-restore safety backup")
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("pre-restore backup failed: %v", err))
		} else {
			result.PreRestoreBackupID = pre.ID
		}
	}

	if err := m.extractAndRestore(b, result); err != nil {
		result.Error = err.Error()
		return result, err
	}

	result.Success = true
	result.RestartRequired = result.DatabaseRestored
	result.Duration = time.Since(start)

	if opts.VerifyAfterRestore && result.DatabaseRestored {
		if err := m.verifyRestoredDatabase(ctx, b, result); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("post-restore verification failed: %v", err))
		}
	}

	m.logger.Info().
		Str("backup_id", id).
		Bool("database_restored", result.DatabaseRestored).
		Bool("artifact_restored", result.ArtifactRestored).
		Bool("restart_required", result.RestartRequired).
		Msg("restore completed")
	return result, nil
}

// extractAndRestore extracts the archive to a temp directory and moves the
// pieces into place.
func (m *Manager) extractAndRestore(b *Backup, result *RestoreResult) error {
	tr, closers, err := openArchive(b.FilePath)
	if err != nil {
		return err
	}
	defer closeAll(closers)

	tempDir, err := os.MkdirTemp("", "bibreaders-restore-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir) //nolint:errcheck // best effort cleanup

	if err := extractToTemp(tr, tempDir); err != nil {
		return err
	}

	if err := m.restoreDatabaseFiles(tempDir, result); err != nil {
		return err
	}
	m.restoreArtifactFile(tempDir, result)
	return nil
}

// extractToTemp extracts database and model entries, rejecting path
// traversal and oversized files.
func extractToTemp(tr *tar.Reader, tempDir string) error {
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}
		if header.Typeflag == tar.TypeDir {
			continue
		}
		if !strings.HasPrefix(header.Name, "database/") && !strings.HasPrefix(header.Name, "model/") {
			continue
		}

		destPath := filepath.Join(tempDir, header.Name) //nolint:gosec // validated below
		if !strings.HasPrefix(destPath, filepath.Clean(tempDir)+string(os.PathSeparator)) {
			return fmt.Errorf("invalid path in archive: %s", header.Name)
		}
		if header.Size > maxExtractedFileSize {
			return fmt.Errorf("archive entry too large: %s (%d bytes)", header.Name, header.Size)
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o750); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", header.Name, err)
		}
		if err := extractFile(tr, destPath, header.Size); err != nil {
			return fmt.Errorf("failed to extract %s: %w", header.Name, err)
		}
	}
}

// extractFile writes one entry to disk with a size-capped copy.
func extractFile(r io.Reader, destPath string, size int64) error {
	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(outFile, io.LimitReader(r, size+1))
	closeErr := outFile.Close()

	if copyErr != nil {
		os.Remove(destPath) //nolint:errcheck // cleanup on error path
		return copyErr
	}
	if closeErr != nil {
		os.Remove(destPath) //nolint:errcheck // cleanup on error path
		return closeErr
	}
	return nil
}

// restoreDatabaseFiles replaces the live database file with the extracted
// one. The connection is closed first; DuckDB holds the file exclusively.
func (m *Manager) restoreDatabaseFiles(tempDir string, result *RestoreResult) error {
	extracted := filepath.Join(tempDir, entryDatabase)
	if !fileExists(extracted) {
		return nil
	}

	dbPath := m.db.Path()
	if err := m.db.Close(); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to close database: %v", err))
	}

	for _, stale := range []string{dbPath, dbPath + ".wal"} {
		if fileExists(stale) {
			if err := os.Remove(stale); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to remove %s: %v", stale, err))
			}
		}
	}

	if err := copyFile(extracted, dbPath); err != nil {
		return fmt.Errorf("failed to restore database file: %w", err)
	}

	extractedWAL := filepath.Join(tempDir, entryWAL)
	if fileExists(extractedWAL) {
		if err := copyFile(extractedWAL, dbPath+".wal"); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to restore WAL: %v", err))
		}
	}

	result.DatabaseRestored = true
	return nil
}

// restoreArtifactFile puts the recommendation artifact back via the same
// write-then-rename discipline the model store uses, so a crash mid-restore
// never leaves a truncated artifact.
func (m *Manager) restoreArtifactFile(tempDir string, result *RestoreResult) {
	extracted := filepath.Join(tempDir, entryArtifact)
	if m.artifactPath == "" || !fileExists(extracted) {
		return
	}

	tmpPath := m.artifactPath + ".restore"
	if err := copyFile(extracted, tmpPath); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to stage artifact: %v", err))
		return
	}
	if err := os.Rename(tmpPath, m.artifactPath); err != nil {
		os.Remove(tmpPath) //nolint:errcheck // cleanup on error path
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to restore artifact: %v", err))
		return
	}
	result.ArtifactRestored = true
}

// verifyRestoredDatabase opens the restored file read-only and checks that
// the catalog tables exist and roughly match the backup's recorded counts.
func (m *Manager) verifyRestoredDatabase(ctx context.Context, b *Backup, result *RestoreResult) error {
	dbPath := m.db.Path()
	if !fileExists(dbPath) {
		return fmt.Errorf("restored database file missing at %s", dbPath)
	}
	if getFileSize(dbPath) == 0 {
		return fmt.Errorf("restored database file is empty")
	}

	verifyDB, err := sql.Open("duckdb", dbPath+"?access_mode=read_only")
	if err != nil {
		return fmt.Errorf("failed to open restored database: %w", err)
	}
	defer verifyDB.Close() //nolint:errcheck // read-only handle

	if err := verifyDB.PingContext(ctx); err != nil {
		return fmt.Errorf("restored database unreadable: %w", err)
	}

	for _, table := range []string{"books", "members"} {
		var exists bool
		row := verifyDB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = ?)", table)
		if err := row.Scan(&exists); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to check table %s: %v", table, err))
			continue
		}
		if !exists {
			result.Warnings = append(result.Warnings, fmt.Sprintf("table %s missing from restored database", table))
		}
	}

	if b.BookCount > 0 {
		var count int64
		row := verifyDB.QueryRowContext(ctx, "SELECT count(*) FROM books")
		if err := row.Scan(&count); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to count books: %v", err))
		} else if count != b.BookCount {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("book count mismatch: backup recorded %d, restored database has %d", b.BookCount, count))
		}
	}

	return nil
}

// copyFile copies src to dst with an fsync before close.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close() //nolint:errcheck // read-only handle

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close() //nolint:errcheck // cleanup on error path
		return err
	}
	if err := dstFile.Sync(); err != nil {
		dstFile.Close() //nolint:errcheck // cleanup on error path
		return err
	}
	return dstFile.Close()
}

// Download opens a backup's archive for streaming to a client. The caller
// closes the reader.
func (m *Manager) Download(id string) (io.ReadCloser, *Backup, error) {
	b, err := m.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if !fileExists(b.FilePath) {
		return nil, nil, fmt.Errorf("%w: archive file missing", ErrNotFound)
	}

	file, err := os.Open(b.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return file, b, nil
}
