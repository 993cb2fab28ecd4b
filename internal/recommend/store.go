// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// storedArtifact is the on-disk envelope. Metadata stays outside the
// compressed payload so it can be read without inflating the model.
type storedArtifact struct {
	Metadata       ArtifactMetadata
	CompressedData []byte
}

// Store persists artifacts to a single path. Writes go through a temp file
// in the same directory followed by a rename, so readers only ever observe
// a complete artifact: either the previous version or the new one.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store rooted at path. The parent directory is created
// on first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the artifact location.
func (s *Store) Path() string {
	return s.path
}

// Save serializes the artifact and atomically replaces any prior version.
// The payload is gob-encoded, checksummed with SHA-256, and gzip-compressed
// inside a metadata envelope. Returns the metadata as persisted, with
// checksum and sizes filled in.
func (s *Store) Save(artifact *Artifact, meta ArtifactMetadata) (ArtifactMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := artifact.Validate(); err != nil {
		return meta, fmt.Errorf("validate artifact: %w", err)
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(artifact); err != nil {
		return meta, fmt.Errorf("encode artifact: %w", err)
	}

	checksum := sha256.Sum256(payload.Bytes())
	meta.SchemaVersion = artifact.SchemaVersion
	meta.SavedAt = time.Now().UTC()
	meta.Checksum = hex.EncodeToString(checksum[:])
	meta.SizeBytes = int64(payload.Len())

	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	if _, err := gz.Write(payload.Bytes()); err != nil {
		return meta, fmt.Errorf("compress artifact: %w", err)
	}
	if err := gz.Close(); err != nil {
		return meta, fmt.Errorf("flush compression: %w", err)
	}

	var envelope bytes.Buffer
	stored := storedArtifact{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(&envelope).Encode(&stored); err != nil {
		return meta, fmt.Errorf("encode envelope: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return meta, fmt.Errorf("create artifact directory: %w", err)
	}

	// Temp file must live in the target directory: rename is only atomic
	// within a filesystem.
	tmp, err := os.CreateTemp(dir, ".artifact-*.tmp")
	if err != nil {
		return meta, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(envelope.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return meta, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return meta, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return meta, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return meta, fmt.Errorf("replace artifact: %w", err)
	}

	return meta, nil
}

// Load reads and verifies the artifact. It returns ErrArtifactNotFound when
// nothing has been saved yet, and ErrArtifactCorrupt when the file cannot
// be decoded, fails its checksum, or violates artifact invariants.
func (s *Store) Load() (*Artifact, ArtifactMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var meta ArtifactMetadata

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, meta, fmt.Errorf("%w: %s", ErrArtifactNotFound, s.path)
		}
		return nil, meta, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	var stored storedArtifact
	if err := gob.NewDecoder(f).Decode(&stored); err != nil {
		return nil, meta, fmt.Errorf("%w: decode envelope: %v", ErrArtifactCorrupt, err)
	}
	meta = stored.Metadata

	gz, err := gzip.NewReader(bytes.NewReader(stored.CompressedData))
	if err != nil {
		return nil, meta, fmt.Errorf("%w: open compressed payload: %v", ErrArtifactCorrupt, err)
	}
	payload, err := io.ReadAll(gz)
	if err != nil {
		gz.Close()
		return nil, meta, fmt.Errorf("%w: decompress payload: %v", ErrArtifactCorrupt, err)
	}
	if err := gz.Close(); err != nil {
		return nil, meta, fmt.Errorf("%w: close compressed payload: %v", ErrArtifactCorrupt, err)
	}

	checksum := sha256.Sum256(payload)
	if got := hex.EncodeToString(checksum[:]); got != meta.Checksum {
		return nil, meta, fmt.Errorf("%w: checksum mismatch: got %s, want %s", ErrArtifactCorrupt, got, meta.Checksum)
	}

	var artifact Artifact
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&artifact); err != nil {
		return nil, meta, fmt.Errorf("%w: decode artifact: %v", ErrArtifactCorrupt, err)
	}
	if err := artifact.Validate(); err != nil {
		return nil, meta, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}

	return &artifact, meta, nil
}

// Metadata reads only the envelope metadata, without decompressing the
// payload. Useful for status reporting on large artifacts.
func (s *Store) Metadata() (ArtifactMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var meta ArtifactMetadata

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return meta, fmt.Errorf("%w: %s", ErrArtifactNotFound, s.path)
		}
		return meta, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	var stored storedArtifact
	if err := gob.NewDecoder(f).Decode(&stored); err != nil {
		return meta, fmt.Errorf("%w: decode envelope: %v", ErrArtifactCorrupt, err)
	}
	return stored.Metadata, nil
}
