// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ValidateBackup verifies a backup's archive against its record: the
// whole-archive checksum, that the archive is readable, and that every
// recorded entry is present with a matching per-file checksum. A failed
// validation flips the record to StatusCorrupted so it stops being a
// restore candidate.
func (m *Manager) ValidateBackup(id string) (*ValidationResult, error) {
	b, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{
		Backup:           b,
		ExpectedChecksum: b.Checksum,
	}

	if !fileExists(b.FilePath) {
		result.Errors = append(result.Errors, "archive file missing")
		m.markCorrupted(b)
		return result, nil
	}

	actual, err := fileChecksum(b.FilePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to checksum archive: %v", err))
		return result, nil
	}
	result.ActualChecksum = actual
	result.ChecksumValid = actual == b.Checksum

	if !result.ChecksumValid {
		result.Errors = append(result.Errors, "archive checksum mismatch")
		m.markCorrupted(b)
		return result, nil
	}

	m.verifyArchiveEntries(b, result)

	result.Valid = result.ChecksumValid && result.ArchiveReadable && result.FilesComplete
	if !result.Valid {
		m.markCorrupted(b)
	}
	return result, nil
}

// verifyArchiveEntries walks the tar stream and checks every recorded
// file's presence and checksum.
func (m *Manager) verifyArchiveEntries(b *Backup, result *ValidationResult) {
	tr, closers, err := openArchive(b.FilePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to open archive: %v", err))
		return
	}
	defer closeAll(closers)

	seen := make(map[string]string, len(b.Files))
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read archive: %v", err))
			return
		}
		if header.Typeflag == tar.TypeDir {
			continue
		}

		hasher := sha256.New()
		if _, err := io.Copy(hasher, tr); err != nil { //nolint:gosec // bounded by archive size
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read %s: %v", header.Name, err))
			return
		}
		seen[header.Name] = hex.EncodeToString(hasher.Sum(nil))
	}
	result.ArchiveReadable = true

	result.FilesComplete = true
	for _, f := range b.Files {
		got, ok := seen[f.Path]
		if !ok {
			result.FilesComplete = false
			result.MissingFiles = append(result.MissingFiles, f.Path)
			continue
		}
		if got != f.Checksum {
			result.FilesComplete = false
			result.CorruptedFiles = append(result.CorruptedFiles, f.Path)
		}
	}
}

// markCorrupted flips a record to StatusCorrupted in the index.
func (m *Manager) markCorrupted(b *Backup) {
	if b.Status == StatusCorrupted {
		return
	}
	b.Status = StatusCorrupted
	m.saveBackup(b)
	m.logger.Warn().Str("backup_id", b.ID).Msg("backup marked corrupted")
}

// openArchive opens a backup archive and returns a tar reader over the
// decompressed stream. Caller closes the returned closers via closeAll.
func openArchive(path string) (*tar.Reader, []io.Closer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		file.Close() //nolint:errcheck // cleanup on error path
		return nil, nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}

	return tar.NewReader(gzReader), []io.Closer{file, gzReader}, nil
}

// closeAll closes in reverse order.
func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close() //nolint:errcheck // best effort on read path
	}
}
