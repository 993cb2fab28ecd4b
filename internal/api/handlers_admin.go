// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/events"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
)

// TrainingStatusResponse combines the engine's status snapshot with
// catalog staleness from the retrain debouncer.
type TrainingStatusResponse struct {
	recommend.Status

	// ModelStale reports whether the catalog changed since the last
	// successful rebuild.
	ModelStale bool `json:"model_stale"`

	// PendingChanges is the number of catalog changes since the last
	// successful rebuild.
	PendingChanges int `json:"pending_changes"`
}

// TrainModel starts a model rebuild
//
// @Summary Trigger model training
// @Description Starts a full rebuild of the recommendation artifact in the background. The current model keeps serving queries until the new artifact is swapped in. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 202 {object} models.APIResponse{data=object{status=string}} "Training started"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 409 {object} models.APIResponse "A training run is already in progress"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Router /admin/train [post]
func (h *Handler) TrainModel(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	if h.engine.TrainingStatus().IsTraining {
		respondError(w, r, http.StatusConflict, "CONFLICT", "A training run is already in progress", nil)
		return
	}

	// Detached context: the rebuild outlives this request.
	ctx := context.WithoutCancel(r.Context())
	go h.runTraining(ctx)

	if h.auditor != nil {
		h.auditor.LogAdminAction(r.Context(), h.requestActor(r), audit.SourceFromRequest(r),
			"train_model", "Manual model training started", nil)
	}
	logging.Ctx(r.Context()).Info().Msg("Manual model training started")
	respondData(w, r, http.StatusAccepted, map[string]string{"status": "training_started"})
}

// runTraining executes the rebuild, records metrics, announces the result,
// and clears catalog staleness. Runs in its own goroutine.
func (h *Handler) runTraining(ctx context.Context) {
	start := time.Now()

	meta, err := h.engine.Rebuild(ctx, h.db)
	if err != nil {
		if errors.Is(err, recommend.ErrTrainingInProgress) {
			// Lost the race against another trigger; that run reports.
			logging.Ctx(ctx).Debug().Msg("Training already running, skipping duplicate trigger")
			return
		}
		metrics.RecordTrainingRun(time.Since(start), 0, 0, err)
		logging.Ctx(ctx).Error().Err(err).Msg("Manual model training failed")
		return
	}

	metrics.RecordTrainingRun(time.Since(start), meta.EntryCount, meta.VocabSize, nil)

	if h.staleness != nil {
		h.staleness.MarkTrained()
	}

	if h.publisher != nil {
		trained := events.ModelTrained{
			Entries:         meta.EntryCount,
			VocabSize:       meta.VocabSize,
			BuildDurationMS: meta.BuildDurationMS,
			TrainedAt:       meta.TrainedAt,
		}
		if err := h.publisher.PublishModelTrained(ctx, trained); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish model.trained")
		}
	}

	logging.Ctx(ctx).Info().
		Int("entries", meta.EntryCount).
		Int("vocab_size", meta.VocabSize).
		Int64("build_duration_ms", meta.BuildDurationMS).
		Msg("Manual model training completed")
}

// TrainingStatus returns the training status snapshot
//
// @Summary Training status
// @Description Returns the engine state, query counters, loaded artifact metadata, rebuild history, and whether the model is stale relative to the catalog. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=TrainingStatusResponse} "Training status"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Router /admin/train/status [get]
func (h *Handler) TrainingStatus(w http.ResponseWriter, r *http.Request) {
	resp := TrainingStatusResponse{
		Status: h.engine.Status(),
	}

	if h.staleness != nil {
		resp.ModelStale = h.staleness.Stale()
		resp.PendingChanges = h.staleness.PendingChanges()
	}

	respondData(w, r, http.StatusOK, resp)
}
