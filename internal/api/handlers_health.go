// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"net/http"
	"time"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
)

// Health handles liveness probe requests
//
// @Summary Liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)

	respondData(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": uptime,
	})
}

// HealthReady handles readiness probe requests
//
// @Summary Readiness probe
// @Description Returns 200 OK when the service can handle traffic. The database must answer a ping; the recommendation model's state is reported but a missing artifact does not fail readiness since catalog endpoints still work.
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	modelState := "unavailable"
	if h.engine != nil {
		modelState = h.engine.State().String()
	}

	// The model being unloaded or failed degrades recommendations only;
	// the catalog keeps serving, so readiness follows the database alone.
	ready := dbConnected
	modelDegraded := modelState != recommend.StateLoaded.String()

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	respondJSONStatus(w, r, statusCode, ready, map[string]interface{}{
		"database_connected": dbConnected,
		"model_state":        modelState,
		"model_degraded":     modelDegraded,
		"ready_to_serve":     ready,
		"uptime":             time.Since(h.startTime).Seconds(),
	})
}
