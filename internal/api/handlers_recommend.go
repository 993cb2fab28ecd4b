// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
)

// Recommend answers a free-text recommendation query
//
// @Summary Recommend books from free text
// @Description Ranks the catalog against the query text by TF-IDF cosine similarity. Blank text returns an empty list rather than an error so client forms can submit freely.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param query body RecommendRequest true "Query text and optional result count"
// @Success 200 {object} models.APIResponse{data=[]recommend.Recommendation} "Ranked recommendations"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 503 {object} models.APIResponse "Model artifact missing or corrupt"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = h.defaultTopK()
	}

	start := time.Now()
	recs, err := h.engine.Recommend(r.Context(), req.Text, topK)
	duration := time.Since(start)

	if err != nil {
		if recommend.IsUnavailable(err) {
			metrics.RecordRecommendQuery("unavailable", duration)
			respondError(w, r, http.StatusServiceUnavailable, "MODEL_UNAVAILABLE", "Recommendation model is not available", err)
			return
		}
		metrics.RecordRecommendQuery("error", duration)
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Recommendation query failed", err)
		return
	}

	metrics.RecordRecommendQuery("success", duration)
	respondDataTimed(w, r, http.StatusOK, recs, start)
}

// defaultTopK returns the configured result count for queries that leave
// top_k unset.
func (h *Handler) defaultTopK() int {
	if h.config != nil && h.config.Recommend.DefaultTopK > 0 {
		return h.config.Recommend.DefaultTopK
	}
	return 5
}
