// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// State describes where the engine is in its artifact lifecycle.
type State int32

const (
	// StateUnloaded means no load has been attempted yet.
	StateUnloaded State = iota
	// StateLoading means the first load is in progress.
	StateLoading
	// StateLoaded means an artifact is in memory and serving queries.
	StateLoaded
	// StateLoadFailed means the load failed. The failure is sticky: queries
	// keep returning the load error until an explicit Reload succeeds or
	// the process restarts.
	StateLoadFailed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// Recommendation is one scored catalog entry.
type Recommendation struct {
	// BookID identifies the recommended book.
	BookID int64 `json:"book_id"`

	// Title is the book title at training time.
	Title string `json:"title"`

	// Score is the cosine similarity between the query and the book,
	// in [0, 1]. Zero means no vocabulary overlap.
	Score float64 `json:"score"`
}

// TrainingStatus reports on rebuild runs.
type TrainingStatus struct {
	// IsTraining indicates whether a rebuild is currently in progress.
	IsTraining bool `json:"is_training"`

	// LastTrainedAt is when the last successful rebuild completed.
	LastTrainedAt time.Time `json:"last_trained_at"`

	// LastTrainingDurationMS is how long the last rebuild took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// LastEntryCount is the catalog size of the last successful rebuild.
	LastEntryCount int `json:"last_entry_count"`

	// TrainingCount is the number of completed rebuilds since start.
	TrainingCount int64 `json:"training_count"`

	// LastError contains the last rebuild error, if any.
	LastError string `json:"last_error,omitempty"`
}

// Status is a point-in-time snapshot for health and admin endpoints.
type Status struct {
	// State is the artifact lifecycle state.
	State string `json:"state"`

	// QueryCount is the number of Recommend calls since start.
	QueryCount int64 `json:"query_count"`

	// ErrorCount is the number of Recommend calls that returned an error.
	ErrorCount int64 `json:"error_count"`

	// Artifact describes the loaded artifact, when one is loaded.
	Artifact *ArtifactMetadata `json:"artifact,omitempty"`

	// Training reports on rebuild runs.
	Training TrainingStatus `json:"training"`
}

// Engine answers free-text recommendation queries against the persisted
// artifact. The artifact is loaded lazily on first use; concurrent first
// queries trigger exactly one load. It is safe for concurrent use.
type Engine struct {
	cfg     *Config
	store   *Store
	builder *Builder
	logger  zerolog.Logger

	// mu guards artifact, meta, state, and loadErr as one unit so queries
	// never observe a half-swapped model.
	mu       sync.RWMutex
	state    State
	artifact *Artifact
	meta     ArtifactMetadata
	loadErr  error

	// training is set while a rebuild runs; rebuilds never overlap.
	training    atomic.Bool
	statusMu    sync.RWMutex
	trainStatus TrainingStatus

	queryCount atomic.Int64
	errorCount atomic.Int64
}

// NewEngine creates an engine reading artifacts from store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store *Store, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	builder, err := NewBuilder(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:     cfg,
		store:   store,
		builder: builder,
		logger:  logger.With().Str("component", "recommend_engine").Logger(),
		state:   StateUnloaded,
	}, nil
}

// Recommend returns the topK catalog entries most similar to the query
// text, ranked by cosine similarity in descending order. Ties keep catalog
// order. Blank text and topK <= 0 are documented no-ops returning an empty
// slice. A missing or corrupt artifact returns an error satisfying
// IsUnavailable.
func (e *Engine) Recommend(ctx context.Context, text string, topK int) ([]Recommendation, error) {
	e.queryCount.Add(1)

	if strings.TrimSpace(text) == "" {
		return []Recommendation{}, nil
	}
	if topK <= 0 {
		return []Recommendation{}, nil
	}
	if topK > e.cfg.MaxTopK {
		topK = e.cfg.MaxTopK
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artifact, err := e.loaded()
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	query := artifact.Vectorizer.Transform(text)

	// Brute-force cosine against every row. Both sides are unit length, so
	// the dot product is the cosine. An out-of-vocabulary query is a zero
	// vector and scores zero everywhere.
	n := artifact.Len()
	scores := make([]float64, n)
	for i := range artifact.Rows {
		scores[i] = query.Dot(artifact.Rows[i])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	k := min(topK, n)
	recs := make([]Recommendation, 0, k)
	for _, idx := range order[:k] {
		recs = append(recs, Recommendation{
			BookID: artifact.IDs[idx],
			Title:  artifact.Titles[idx],
			Score:  scores[idx],
		})
	}
	return recs, nil
}

// loaded returns the in-memory artifact, loading it from the store on
// first use. The load happens under the exclusive lock so concurrent first
// queries wait for a single load instead of racing their own.
func (e *Engine) loaded() (*Artifact, error) {
	e.mu.RLock()
	switch e.state {
	case StateLoaded:
		a := e.artifact
		e.mu.RUnlock()
		return a, nil
	case StateLoadFailed:
		err := e.loadErr
		e.mu.RUnlock()
		return nil, err
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-check: another goroutine may have finished the load while we
	// waited for the write lock.
	switch e.state {
	case StateLoaded:
		return e.artifact, nil
	case StateLoadFailed:
		return nil, e.loadErr
	}

	e.state = StateLoading
	artifact, meta, err := e.store.Load()
	if err != nil {
		e.state = StateLoadFailed
		e.loadErr = err
		e.logger.Warn().Err(err).Str("path", e.store.Path()).Msg("artifact load failed")
		return nil, err
	}

	e.artifact = artifact
	e.meta = meta
	e.state = StateLoaded
	e.loadErr = nil
	e.logger.Info().
		Int("entries", artifact.Len()).
		Int("vocab_size", artifact.Vectorizer.Dimensions()).
		Time("trained_at", meta.TrainedAt).
		Msg("artifact loaded")
	return artifact, nil
}

// Reload reads the artifact from the store and swaps it in. On failure the
// engine keeps whatever it was serving before; a load failure that was
// previously sticky stays sticky until a Reload succeeds.
func (e *Engine) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	artifact, meta, err := e.store.Load()
	if err != nil {
		e.logger.Warn().Err(err).Msg("artifact reload failed, keeping current model")
		return err
	}

	e.mu.Lock()
	e.artifact = artifact
	e.meta = meta
	e.state = StateLoaded
	e.loadErr = nil
	e.mu.Unlock()

	e.logger.Info().
		Int("entries", artifact.Len()).
		Int("vocab_size", artifact.Vectorizer.Dimensions()).
		Time("trained_at", meta.TrainedAt).
		Msg("artifact reloaded")
	return nil
}

// Rebuild runs a full training pass: fetch the catalog, build, persist,
// and reload. Only one rebuild runs at a time; a second call while one is
// active returns ErrTrainingInProgress.
func (e *Engine) Rebuild(ctx context.Context, source CatalogSource) (ArtifactMetadata, error) {
	if !e.training.CompareAndSwap(false, true) {
		return ArtifactMetadata{}, ErrTrainingInProgress
	}
	defer e.training.Store(false)

	start := time.Now()
	e.setTrainingStarted()

	meta, err := e.builder.BuildAndSave(ctx, source, e.store)
	if err != nil {
		e.setTrainingFinished(start, 0, err)
		return meta, err
	}

	if err := e.Reload(ctx); err != nil {
		err = fmt.Errorf("reload after build: %w", err)
		e.setTrainingFinished(start, meta.EntryCount, err)
		return meta, err
	}

	e.setTrainingFinished(start, meta.EntryCount, nil)
	return meta, nil
}

func (e *Engine) setTrainingStarted() {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.trainStatus.IsTraining = true
	e.trainStatus.LastError = ""
}

func (e *Engine) setTrainingFinished(start time.Time, entryCount int, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.trainStatus.IsTraining = false
	e.trainStatus.LastTrainingDurationMS = time.Since(start).Milliseconds()
	if err != nil {
		e.trainStatus.LastError = err.Error()
		return
	}
	e.trainStatus.LastTrainedAt = time.Now().UTC()
	e.trainStatus.LastEntryCount = entryCount
	e.trainStatus.TrainingCount++
}

// State returns the artifact lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// TrainingStatus returns a snapshot of rebuild state.
func (e *Engine) TrainingStatus() TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.trainStatus
}

// Status returns a snapshot for health and admin endpoints.
func (e *Engine) Status() Status {
	st := Status{
		QueryCount: e.queryCount.Load(),
		ErrorCount: e.errorCount.Load(),
		Training:   e.TrainingStatus(),
	}

	e.mu.RLock()
	st.State = e.state.String()
	if e.state == StateLoaded {
		meta := e.meta
		st.Artifact = &meta
	}
	e.mu.RUnlock()

	return st
}
