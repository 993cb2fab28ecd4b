// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import (
	"fmt"
	"time"
)

// SchemaVersion identifies the artifact layout. Loaders reject any other
// version rather than guessing at field meanings.
const SchemaVersion = 1

// Artifact is the serialized output of a training run: the fitted
// vectorizer plus one TF-IDF row per catalog entry, with parallel ID and
// title slices for composing results without a database round trip.
//
// Invariant: len(Rows) == len(IDs) == len(Titles), and every row index is a
// valid vectorizer column.
type Artifact struct {
	SchemaVersion int
	Vectorizer    *Vectorizer
	Rows          []SparseVector
	IDs           []int64
	Titles        []string
}

// ArtifactMetadata describes a persisted artifact. It travels in the
// storage envelope, outside the compressed payload, so status endpoints can
// report on a model without decoding it.
type ArtifactMetadata struct {
	// SchemaVersion mirrors the artifact's schema version.
	SchemaVersion int `json:"schema_version"`

	// TrainedAt is when the build that produced this artifact started.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact was persisted.
	SavedAt time.Time `json:"saved_at"`

	// EntryCount is the number of catalog entries vectorized.
	EntryCount int `json:"entry_count"`

	// VocabSize is the number of vocabulary columns.
	VocabSize int `json:"vocab_size"`

	// BuildDurationMS is how long vectorization took.
	BuildDurationMS int64 `json:"build_duration_ms"`

	// Checksum is the SHA-256 of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the uncompressed payload size.
	SizeBytes int64 `json:"size_bytes"`
}

// Len returns the number of catalog entries in the artifact.
func (a *Artifact) Len() int {
	return len(a.IDs)
}

// Validate checks the artifact's structural invariants. Load rejects
// artifacts failing validation as corrupt.
func (a *Artifact) Validate() error {
	if a.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported schema version %d, want %d", a.SchemaVersion, SchemaVersion)
	}
	if a.Vectorizer == nil {
		return fmt.Errorf("missing vectorizer")
	}
	if err := a.Vectorizer.validate(); err != nil {
		return fmt.Errorf("vectorizer: %w", err)
	}
	if len(a.Rows) != len(a.IDs) || len(a.IDs) != len(a.Titles) {
		return fmt.Errorf("row/id/title counts differ: %d/%d/%d", len(a.Rows), len(a.IDs), len(a.Titles))
	}

	dims := int32(a.Vectorizer.Dimensions())
	for i, row := range a.Rows {
		if len(row.Indices) != len(row.Values) {
			return fmt.Errorf("row %d: index count %d does not match value count %d", i, len(row.Indices), len(row.Values))
		}
		for _, col := range row.Indices {
			if col < 0 || col >= dims {
				return fmt.Errorf("row %d: column %d out of range [0,%d)", i, col, dims)
			}
		}
	}
	return nil
}
