// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import "errors"

var (
	// ErrEmptyCorpus is returned by the builder when the catalog has no
	// entries to vectorize. No artifact is produced in this case.
	ErrEmptyCorpus = errors.New("recommend: empty corpus")

	// ErrArtifactNotFound is returned when no artifact exists at the
	// configured path. The engine reports this until a build completes.
	ErrArtifactNotFound = errors.New("recommend: artifact not found")

	// ErrArtifactCorrupt is returned when an artifact exists but cannot be
	// decoded, fails its checksum, carries an unsupported schema version,
	// or violates internal consistency (row/id/title counts differ).
	ErrArtifactCorrupt = errors.New("recommend: artifact corrupt")

	// ErrTrainingInProgress is returned by Rebuild when another training
	// run is already active.
	ErrTrainingInProgress = errors.New("recommend: training already in progress")
)

// IsUnavailable reports whether err means the model cannot serve queries
// right now (missing or corrupt artifact). Handlers use this to map engine
// failures to a degraded-service response instead of an internal error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrArtifactNotFound) || errors.Is(err, ErrArtifactCorrupt)
}
