// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// CatalogEntry is one book as the recommender sees it. The database layer
// maps its rows into this shape; keeping the type here avoids a circular
// import between the two packages.
type CatalogEntry struct {
	ID          int64
	Title       string
	Description string
}

// corpusText joins title and description into the document that gets
// vectorized. The title is always included so short or missing descriptions
// still produce a usable vector.
func corpusText(e CatalogEntry) string {
	return strings.TrimSpace(e.Title + ". " + e.Description)
}

// CatalogSource provides the entries to vectorize. Implemented by the
// database layer.
type CatalogSource interface {
	AllEntries(ctx context.Context) ([]CatalogEntry, error)
}

// Builder turns catalog entries into recommendation artifacts. It holds no
// mutable state and is safe for concurrent use.
type Builder struct {
	cfg    *Config
	logger zerolog.Logger
}

// NewBuilder creates a builder.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBuilder(cfg *Config, logger zerolog.Logger) (*Builder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Builder{
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend_builder").Logger(),
	}, nil
}

// Build fits a TF-IDF vectorizer over the entries and vectorizes every one
// of them. Returns ErrEmptyCorpus when there is nothing to index; in that
// case no artifact exists and nothing should be persisted.
func (b *Builder) Build(ctx context.Context, entries []CatalogEntry) (*Artifact, ArtifactMetadata, error) {
	start := time.Now()
	var meta ArtifactMetadata

	if len(entries) == 0 {
		return nil, meta, ErrEmptyCorpus
	}

	docs := make([]string, len(entries))
	for i, e := range entries {
		docs[i] = corpusText(e)
	}

	vectorizer, err := fitVectorizer(docs, b.cfg.MaxFeatures)
	if err != nil {
		return nil, meta, err
	}

	artifact := &Artifact{
		SchemaVersion: SchemaVersion,
		Vectorizer:    vectorizer,
		Rows:          make([]SparseVector, len(docs)),
		IDs:           make([]int64, len(docs)),
		Titles:        make([]string, len(docs)),
	}
	for i, doc := range docs {
		if i%512 == 0 && ctx.Err() != nil {
			return nil, meta, ctx.Err()
		}
		artifact.Rows[i] = vectorizer.Transform(doc)
		artifact.IDs[i] = entries[i].ID
		artifact.Titles[i] = entries[i].Title
	}

	meta = ArtifactMetadata{
		SchemaVersion:   SchemaVersion,
		TrainedAt:       start.UTC(),
		EntryCount:      len(entries),
		VocabSize:       vectorizer.Dimensions(),
		BuildDurationMS: time.Since(start).Milliseconds(),
	}

	b.logger.Info().
		Int("entries", meta.EntryCount).
		Int("vocab_size", meta.VocabSize).
		Int64("duration_ms", meta.BuildDurationMS).
		Msg("artifact built")

	return artifact, meta, nil
}

// BuildAndSave fetches the catalog from source, builds an artifact, and
// persists it through the store. This is the whole offline training path;
// the batch trainer calls it directly and the engine wraps it for
// admin-triggered rebuilds.
func (b *Builder) BuildAndSave(ctx context.Context, source CatalogSource, store *Store) (ArtifactMetadata, error) {
	var meta ArtifactMetadata

	entries, err := source.AllEntries(ctx)
	if err != nil {
		return meta, fmt.Errorf("fetch catalog: %w", err)
	}

	artifact, meta, err := b.Build(ctx, entries)
	if err != nil {
		return meta, err
	}

	meta, err = store.Save(artifact, meta)
	if err != nil {
		return meta, fmt.Errorf("persist artifact: %w", err)
	}

	b.logger.Info().
		Str("path", store.Path()).
		Str("checksum", meta.Checksum).
		Int64("size_bytes", meta.SizeBytes).
		Msg("artifact saved")

	return meta, nil
}
