// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package services

import (
	"context"
	"errors"
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

// trainTimeout bounds a single rebuild cycle so a wedged build cannot hold
// the scheduler forever.
const trainTimeout = 30 * time.Minute

// RetrainConfig holds the schedule for the retrain service.
type RetrainConfig struct {
	// TrainOnStartup triggers one rebuild when the service starts.
	TrainOnStartup bool

	// Interval is the period between rebuilds. Zero or negative disables
	// the ticker; the service then only trains at startup and waits for
	// shutdown.
	Interval time.Duration
}

// RetrainService rebuilds the recommendation model on a fixed schedule.
//
// It complements the change-driven events.RetrainDebouncer: the debouncer
// reacts to catalog writes, while this service guarantees a fresh model
// even on a catalog that only changes through channels the bus never sees,
// such as an operator editing the database directly.
//
// A cycle that coincides with a rebuild already running elsewhere, for
// example the manual train endpoint, is skipped rather than queued.
type RetrainService struct {
	trainer Trainer
	source  recommend.CatalogSource
	config  RetrainConfig
	logger  zerolog.Logger
	name    string
}

// NewRetrainService creates a new retrain scheduler.
func NewRetrainService(trainer Trainer, source recommend.CatalogSource, cfg RetrainConfig, logger zerolog.Logger) *RetrainService {
	return &RetrainService{
		trainer: trainer,
		source:  source,
		config:  cfg,
		logger:  logger.With().Str("service", "retrain").Logger(),
		name:    "retrain-scheduler",
	}
}

// Serve implements suture.Service. It runs the optional startup rebuild,
// then rebuilds every Interval until the context is canceled.
func (s *RetrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("interval", s.config.Interval).
		Msg("retrain scheduler starting")

	if s.config.TrainOnStartup {
		s.train(ctx)
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		s.logger.Info().Msg("retrain scheduler shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("retrain scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.train(ctx)
		}
	}
}

// train runs one rebuild cycle. Failures are logged, not returned; a broken
// build must not crash the scheduler out of its slot in the tree.
func (s *RetrainService) train(ctx context.Context) {
	trainCtx, cancel := context.WithTimeout(ctx, trainTimeout)
	defer cancel()

	start := time.Now()
	meta, err := s.trainer.Rebuild(trainCtx, s.source)
	if err != nil {
		if errors.Is(err, recommend.ErrTrainingInProgress) {
			s.logger.Info().Msg("rebuild already running elsewhere, skipping this cycle")
			return
		}
		metrics.RecordTrainingRun(time.Since(start), 0, 0, err)
		s.logger.Warn().Err(err).Msg("scheduled rebuild failed, will retry next cycle")
		return
	}
	metrics.RecordTrainingRun(time.Since(start), meta.EntryCount, meta.VocabSize, nil)

	s.logger.Info().
		Int("entries", meta.EntryCount).
		Int("vocab_size", meta.VocabSize).
		Dur("duration", time.Since(start)).
		Msg("scheduled rebuild complete")
}

// String returns the service name for logging.
func (s *RetrainService) String() string {
	return s.name
}
