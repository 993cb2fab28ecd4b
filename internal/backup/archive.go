// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// Fixed entry names inside every archive. Restore maps them back onto the
// configured paths, so archives move cleanly between installations whose
// data directories differ.
const (
	entryDatabase = "database/bibreaders.duckdb"
	entryWAL      = "database/bibreaders.duckdb.wal"
	entryArtifact = "model/artifact.gob.gz"
	entryConfig   = "config/config.json"
	entryMetadata = "backup-metadata.json"
)

// archiveWriters stacks file -> gzip -> tar and closes them in reverse.
type archiveWriters struct {
	tarWriter *tar.Writer
	closers   []io.Closer
}

// Close closes all writers in reverse order, keeping the first error.
func (aw *archiveWriters) Close() error {
	var firstErr error
	for i := len(aw.closers) - 1; i >= 0; i-- {
		if err := aw.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// setupArchiveWriters opens the archive file and layers the writers.
func (m *Manager) setupArchiveWriters(filePath string) (*archiveWriters, error) {
	outFile, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}

	gzWriter, err := gzip.NewWriterLevel(outFile, m.cfg.CompressionLevel)
	if err != nil {
		outFile.Close() //nolint:errcheck // cleanup on error path
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	aw := &archiveWriters{closers: []io.Closer{outFile, gzWriter}}
	aw.tarWriter = tar.NewWriter(gzWriter)
	aw.closers = append(aw.closers, aw.tarWriter)
	return aw, nil
}

// createArchive writes the full snapshot: database, artifact when present,
// sanitized config summary, and the metadata record last so it reflects
// every checksum computed along the way.
func (m *Manager) createArchive(ctx context.Context, b *Backup) (err error) {
	aw, err := m.setupArchiveWriters(b.FilePath)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := aw.Close()
		if err == nil {
			err = closeErr
		}
	}()

	if err := m.addDatabase(ctx, aw.tarWriter, b); err != nil {
		return err
	}
	if err := m.addArtifact(aw.tarWriter, b); err != nil {
		return err
	}
	if err := m.addConfigSummary(aw.tarWriter, b); err != nil {
		return err
	}
	return m.addMetadataEntry(aw.tarWriter, b)
}

// addDatabase checkpoints and archives the DuckDB file plus its WAL.
func (m *Manager) addDatabase(ctx context.Context, tw *tar.Writer, b *Backup) error {
	if m.db == nil {
		return fmt.Errorf("database not available")
	}

	// Flush the WAL so the copied file is self-contained. A failed
	// checkpoint is survivable because the WAL is archived too.
	if err := m.db.Checkpoint(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("checkpoint before backup failed, archiving WAL as-is")
	}

	if books, err := m.db.CountBooks(ctx); err == nil {
		b.BookCount = books
	}
	if members, err := m.db.CountMembers(ctx); err == nil {
		b.MemberCount = members
	}

	dbPath := m.db.Path()
	if err := m.addFileToArchive(tw, dbPath, entryDatabase, b); err != nil {
		return fmt.Errorf("failed to archive database: %w", err)
	}

	walPath := dbPath + ".wal"
	if fileExists(walPath) {
		if err := m.addFileToArchive(tw, walPath, entryWAL, b); err != nil {
			return fmt.Errorf("failed to archive WAL: %w", err)
		}
	}

	return nil
}

// addArtifact archives the recommendation artifact when one exists. Its
// absence only means the model was never trained; restore proceeds and the
// engine rebuilds from the restored catalog.
func (m *Manager) addArtifact(tw *tar.Writer, b *Backup) error {
	if m.artifactPath == "" || !fileExists(m.artifactPath) {
		return nil
	}
	if err := m.addFileToArchive(tw, m.artifactPath, entryArtifact, b); err != nil {
		return fmt.Errorf("failed to archive recommendation artifact: %w", err)
	}
	b.ArtifactIncluded = true
	return nil
}

// addConfigSummary writes the sanitized settings snapshot.
func (m *Manager) addConfigSummary(tw *tar.Writer, b *Backup) error {
	summary := m.cfg.ConfigSummary
	if summary == nil {
		summary = map[string]interface{}{}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config summary: %w", err)
	}

	if err := writeBytesEntry(tw, entryConfig, data); err != nil {
		return err
	}

	checksum := sha256.Sum256(data)
	b.Files = append(b.Files, ArchiveFile{
		Path:         entryConfig,
		OriginalPath: "runtime",
		Size:         int64(len(data)),
		ModTime:      time.Now(),
		Checksum:     hex.EncodeToString(checksum[:]),
	})
	return nil
}

// addMetadataEntry writes the backup record itself as the final entry.
func (m *Manager) addMetadataEntry(tw *tar.Writer, b *Backup) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup record: %w", err)
	}
	return writeBytesEntry(tw, entryMetadata, data)
}

// writeBytesEntry writes one in-memory entry into the tar stream.
func writeBytesEntry(tw *tar.Writer, name string, data []byte) error {
	header := &tar.Header{
		Name:    name,
		Size:    int64(len(data)),
		Mode:    0o640,
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// addFileToArchive copies one on-disk file into the archive, recording its
// checksum on the backup record along the way.
func (m *Manager) addFileToArchive(tw *tar.Writer, srcPath, destPath string, b *Backup) error {
	file, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer file.Close() //nolint:errcheck // read-only handle

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", srcPath, err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", srcPath, err)
	}
	header.Name = destPath

	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", srcPath, err)
	}

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tw, hasher), file); err != nil {
		return fmt.Errorf("failed to copy %s into archive: %w", srcPath, err)
	}

	b.Files = append(b.Files, ArchiveFile{
		Path:         destPath,
		OriginalPath: srcPath,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		Checksum:     hex.EncodeToString(hasher.Sum(nil)),
	})
	return nil
}

// fileChecksum returns the SHA-256 of a file as a hex string.
func fileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close() //nolint:errcheck // read-only handle

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func getFileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
