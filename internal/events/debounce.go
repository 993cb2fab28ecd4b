// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
)

// Trainer rebuilds the recommendation artifact and swaps it into the
// serving engine. Implemented by recommend.Engine.
type Trainer interface {
	Rebuild(ctx context.Context, source recommend.CatalogSource) (recommend.ArtifactMetadata, error)
}

// RetrainDebouncer collapses bursts of catalog changes into one model
// rebuild. Every change marks the model stale and re-arms a timer; the
// rebuild fires only after the catalog has been quiet for the configured
// period, so a 1000-book scrape run triggers one build, not a thousand.
//
// A quiet period of zero disables automatic retraining: changes still mark
// the model stale for the admin status endpoint, but rebuilding is left to
// the manual train endpoint or the periodic scheduler.
type RetrainDebouncer struct {
	trainer Trainer
	source  recommend.CatalogSource
	bus     *Bus
	quiet   time.Duration
	logger  zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stale   bool
	pending int
}

// NewRetrainDebouncer creates a debouncer. The bus is used to announce
// completed rebuilds on model.trained; it may be nil in tests.
func NewRetrainDebouncer(trainer Trainer, source recommend.CatalogSource, bus *Bus, quiet time.Duration, logger zerolog.Logger) *RetrainDebouncer {
	return &RetrainDebouncer{
		trainer: trainer,
		source:  source,
		bus:     bus,
		quiet:   quiet,
		logger:  logger.With().Str("component", "retrain-debouncer").Logger(),
	}
}

// Notify records one catalog change. When automatic retraining is enabled
// the quiet-period timer restarts; pending changes accumulate until a
// rebuild succeeds.
func (d *RetrainDebouncer) Notify() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stale = true
	d.pending++

	if d.quiet <= 0 {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

// Stale reports whether the catalog changed since the last successful
// rebuild.
func (d *RetrainDebouncer) Stale() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stale
}

// PendingChanges returns the number of catalog changes accumulated since
// the last successful rebuild.
func (d *RetrainDebouncer) PendingChanges() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// MarkTrained clears staleness after a rebuild that happened outside the
// debouncer, such as the manual train endpoint.
func (d *RetrainDebouncer) MarkTrained() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stale = false
	d.pending = 0
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending rebuild timer.
func (d *RetrainDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs the rebuild after the quiet period elapses. A rebuild already
// running elsewhere re-arms the timer instead of failing; any other error
// leaves the model stale so the next change tries again.
func (d *RetrainDebouncer) fire() {
	d.mu.Lock()
	pending := d.pending
	d.mu.Unlock()

	d.logger.Info().Int("pending_changes", pending).Msg("catalog quiet period elapsed, rebuilding model")

	start := time.Now()
	meta, err := d.trainer.Rebuild(context.Background(), d.source)
	if err != nil {
		if errors.Is(err, recommend.ErrTrainingInProgress) {
			d.logger.Debug().Msg("rebuild already running, re-arming debounce timer")
			d.mu.Lock()
			if d.timer != nil {
				d.timer.Stop()
			}
			d.timer = time.AfterFunc(d.quiet, d.fire)
			d.mu.Unlock()
			return
		}
		metrics.RecordTrainingRun(time.Since(start), 0, 0, err)
		d.logger.Error().Err(err).Msg("debounced rebuild failed")
		return
	}
	metrics.RecordTrainingRun(time.Since(start), meta.EntryCount, meta.VocabSize, nil)

	d.MarkTrained()

	if d.bus != nil {
		trained := ModelTrained{
			Entries:         meta.EntryCount,
			VocabSize:       meta.VocabSize,
			BuildDurationMS: meta.BuildDurationMS,
			TrainedAt:       meta.TrainedAt,
		}
		if err := d.bus.PublishModelTrained(context.Background(), trained); err != nil {
			d.logger.Warn().Err(err).Msg("failed to publish model.trained")
		}
	}

	d.logger.Info().
		Int("entries", meta.EntryCount).
		Int("vocab_size", meta.VocabSize).
		Int64("build_duration_ms", meta.BuildDurationMS).
		Msg("debounced rebuild completed")
}
