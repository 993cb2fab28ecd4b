// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
)

// TestRecommend_ModelUnavailable tests the response before any training run.
func TestRecommend_ModelUnavailable(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	body := `{"text":"space opera with sandworms"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Recommend(rec, req)

	wantErrorCode(t, rec, http.StatusServiceUnavailable, "MODEL_UNAVAILABLE")
}

// TestRecommend_BlankText tests that empty queries return an empty list, even
// without a trained model.
func TestRecommend_BlankText(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	body := `{"text":"   "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Recommend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	var recs []recommend.Recommendation
	dataAs(t, decodeEnvelope(t, rec), &recs)
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}

// TestRecommend_Trained tests ranked results after a rebuild.
func TestRecommend_Trained(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	seedBook(t, db, "Dune", "Frank Herbert", "Desert planet politics spice sandworms", 5)
	seedBook(t, db, "Emma", "Jane Austen", "Matchmaking and manners in Highbury", 4)
	seedBook(t, db, "Walden", "Henry David Thoreau", "Solitary life in the woods by a pond", 3)

	if _, err := handler.engine.Rebuild(context.Background(), db); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	t.Run("ranked by similarity", func(t *testing.T) {
		body := `{"text":"desert spice sandworms"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Recommend(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
		}
		var recs []recommend.Recommendation
		dataAs(t, decodeEnvelope(t, rec), &recs)
		if len(recs) == 0 {
			t.Fatal("no recommendations returned")
		}
		if recs[0].Title != "Dune" {
			t.Errorf("recs[0].Title = %q, want %q", recs[0].Title, "Dune")
		}
		for i := 1; i < len(recs); i++ {
			if recs[i].Score > recs[i-1].Score {
				t.Errorf("scores not descending at %d: %f > %f", i, recs[i].Score, recs[i-1].Score)
			}
		}
	})

	t.Run("top_k limits results", func(t *testing.T) {
		body := `{"text":"desert spice sandworms","top_k":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Recommend(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var recs []recommend.Recommendation
		dataAs(t, decodeEnvelope(t, rec), &recs)
		if len(recs) != 1 {
			t.Errorf("len(recs) = %d, want 1", len(recs))
		}
	})

	t.Run("query time reported", func(t *testing.T) {
		body := `{"text":"woods pond"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Recommend(rec, req)

		resp := decodeEnvelope(t, rec)
		if resp.Meta == nil {
			t.Fatal("Meta is nil, want query timing")
		}
	})
}

// TestRecommend_BadInput tests body and field validation.
func TestRecommend_BadInput(t *testing.T) {
	db := setupTestDBForAPI(t)
	handler := newAPITestHandler(t, db)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Recommend(rec, req)

		wantErrorCode(t, rec, http.StatusBadRequest, "BAD_REQUEST")
	})

	t.Run("top_k above bound", func(t *testing.T) {
		body := `{"text":"anything","top_k":51}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Recommend(rec, req)

		wantErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("text too long", func(t *testing.T) {
		body := `{"text":"` + strings.Repeat("a", 10001) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Recommend(rec, req)

		wantErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}
