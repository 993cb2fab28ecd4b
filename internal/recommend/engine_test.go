// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("garbage"), 0o600)
}

// newTestEngine returns an engine whose store already holds an artifact
// built from entries. When entries is nil the store stays empty.
func newTestEngine(t *testing.T, entries []CatalogEntry) *Engine {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "artifact.gob.gz"))
	if entries != nil {
		b := newTestBuilder(t)
		if _, err := b.BuildAndSave(context.Background(), &sliceSource{entries: entries}, store); err != nil {
			t.Fatalf("BuildAndSave() error = %v", err)
		}
	}

	engine, err := NewEngine(store, DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func TestEngineRecommendScenarios(t *testing.T) {
	engine := newTestEngine(t, testEntries())

	t.Run("desert planet finds Dune first", func(t *testing.T) {
		recs, err := engine.Recommend(context.Background(), "desert planet", 3)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(recs) != 3 {
			t.Fatalf("len(recs) = %d, want 3", len(recs))
		}
		if recs[0].BookID != 1 {
			t.Errorf("top result = %q (id %d), want Dune (id 1)", recs[0].Title, recs[0].BookID)
		}
		if recs[0].Score <= 0 {
			t.Errorf("top score = %v, want > 0", recs[0].Score)
		}
	})

	t.Run("recipes finds Cooking Basics first", func(t *testing.T) {
		recs, err := engine.Recommend(context.Background(), "recipes", 1)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(recs) != 1 {
			t.Fatalf("len(recs) = %d, want 1", len(recs))
		}
		if recs[0].BookID != 2 {
			t.Errorf("top result = %q (id %d), want Cooking Basics (id 2)", recs[0].Title, recs[0].BookID)
		}
		if recs[0].Score <= 0 {
			t.Errorf("top score = %v, want > 0", recs[0].Score)
		}
	})

	t.Run("unknown term never errors", func(t *testing.T) {
		recs, err := engine.Recommend(context.Background(), "zzzznonexistentterm", 5)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		for _, r := range recs {
			if r.Score != 0 {
				t.Errorf("score for %q = %v, want 0", r.Title, r.Score)
			}
		}
	})

	t.Run("scores sorted descending", func(t *testing.T) {
		recs, err := engine.Recommend(context.Background(), "desert sandworms cooking", 3)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		for i := 1; i < len(recs); i++ {
			if recs[i-1].Score < recs[i].Score {
				t.Errorf("scores out of order at %d: %v then %v", i, recs[i-1].Score, recs[i].Score)
			}
		}
	})

	t.Run("identical calls return identical results", func(t *testing.T) {
		first, err := engine.Recommend(context.Background(), "desert heat survival", 3)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		second, err := engine.Recommend(context.Background(), "desert heat survival", 3)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("results differ across identical calls:\n%+v\n%+v", first, second)
		}
	})
}

func TestEngineSelfSimilarity(t *testing.T) {
	entries := testEntries()
	engine := newTestEngine(t, entries)

	// Querying with an entry's own corpus text must rank that entry first
	// with a cosine of one.
	query := corpusText(entries[1])
	recs, err := engine.Recommend(context.Background(), query, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if recs[0].BookID != entries[1].ID {
		t.Errorf("top result id = %d, want %d", recs[0].BookID, entries[1].ID)
	}
	if !almostEqual(recs[0].Score, 1.0) {
		t.Errorf("self-similarity score = %v, want 1.0", recs[0].Score)
	}
}

func TestEngineTieKeepsCatalogOrder(t *testing.T) {
	engine := newTestEngine(t, []CatalogEntry{
		{ID: 5, Title: "Twin One", Description: "identical twin description"},
		{ID: 6, Title: "Twin One", Description: "identical twin description"},
		{ID: 7, Title: "Other", Description: "something unrelated entirely"},
	})

	recs, err := engine.Recommend(context.Background(), "identical twin description", 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if recs[0].BookID != 5 || recs[1].BookID != 6 {
		t.Errorf("tied results reordered: got ids %d,%d want 5,6", recs[0].BookID, recs[1].BookID)
	}
}

func TestEngineNoOpQueries(t *testing.T) {
	tests := []struct {
		name string
		text string
		topK int
	}{
		{name: "empty text", text: "", topK: 5},
		{name: "whitespace text", text: "   \t\n", topK: 5},
		{name: "zero top k", text: "desert", topK: 0},
		{name: "negative top k", text: "desert", topK: -3},
	}

	engine := newTestEngine(t, testEntries())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := engine.Recommend(context.Background(), tt.text, tt.topK)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(recs) != 0 {
				t.Errorf("len(recs) = %d, want 0", len(recs))
			}
		})
	}
}

func TestEngineNoOpQueriesSkipLoad(t *testing.T) {
	// Blank queries must not force an artifact load: the engine with an
	// empty store still answers them without error.
	engine := newTestEngine(t, nil)

	recs, err := engine.Recommend(context.Background(), "   ", 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
	if got := engine.State(); got != StateUnloaded {
		t.Errorf("State() = %v, want %v", got, StateUnloaded)
	}
}

func TestEngineTopKClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTopK = 1
	cfg.MaxTopK = 2

	store := NewStore(filepath.Join(t.TempDir(), "artifact.gob.gz"))
	b := newTestBuilder(t)
	if _, err := b.BuildAndSave(context.Background(), &sliceSource{entries: testEntries()}, store); err != nil {
		t.Fatalf("BuildAndSave() error = %v", err)
	}
	engine, err := NewEngine(store, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	recs, err := engine.Recommend(context.Background(), "desert", 50)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("len(recs) = %d, want clamp to 2", len(recs))
	}
}

func TestEngineTopKLargerThanCatalog(t *testing.T) {
	engine := newTestEngine(t, testEntries())

	recs, err := engine.Recommend(context.Background(), "desert", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("len(recs) = %d, want full catalog of 3", len(recs))
	}
}

func TestEngineMissingArtifact(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Recommend(context.Background(), "desert", 5)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("Recommend() error = %v, want ErrArtifactNotFound", err)
	}
	if !IsUnavailable(err) {
		t.Errorf("IsUnavailable(%v) = false, want true", err)
	}
	if got := engine.State(); got != StateLoadFailed {
		t.Errorf("State() = %v, want %v", got, StateLoadFailed)
	}

	// The failure is sticky: the next query fails the same way without a
	// fresh load attempt.
	_, err = engine.Recommend(context.Background(), "desert", 5)
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Errorf("second Recommend() error = %v, want ErrArtifactNotFound", err)
	}
}

func TestEngineReloadClearsFailure(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "artifact.gob.gz"))
	engine, err := NewEngine(store, DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if _, err := engine.Recommend(context.Background(), "desert", 5); !IsUnavailable(err) {
		t.Fatalf("Recommend() error = %v, want unavailable", err)
	}

	// An artifact appears out of band; Reload picks it up.
	b := newTestBuilder(t)
	if _, err := b.BuildAndSave(context.Background(), &sliceSource{entries: testEntries()}, store); err != nil {
		t.Fatalf("BuildAndSave() error = %v", err)
	}
	if err := engine.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := engine.State(); got != StateLoaded {
		t.Errorf("State() = %v, want %v", got, StateLoaded)
	}

	recs, err := engine.Recommend(context.Background(), "desert planet", 1)
	if err != nil {
		t.Fatalf("Recommend() after reload error = %v", err)
	}
	if len(recs) != 1 || recs[0].BookID != 1 {
		t.Errorf("Recommend() after reload = %+v, want Dune first", recs)
	}
}

func TestEngineReloadFailureKeepsModel(t *testing.T) {
	engine := newTestEngine(t, testEntries())

	// Warm the engine.
	if _, err := engine.Recommend(context.Background(), "desert", 1); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Replace the artifact on disk with garbage and attempt a reload.
	if err := writeGarbage(engine.store.Path()); err != nil {
		t.Fatalf("writeGarbage() error = %v", err)
	}
	if err := engine.Reload(context.Background()); !errors.Is(err, ErrArtifactCorrupt) {
		t.Fatalf("Reload() error = %v, want ErrArtifactCorrupt", err)
	}

	// The previous in-memory model keeps serving.
	if got := engine.State(); got != StateLoaded {
		t.Errorf("State() = %v, want %v", got, StateLoaded)
	}
	if _, err := engine.Recommend(context.Background(), "desert", 1); err != nil {
		t.Errorf("Recommend() after failed reload error = %v", err)
	}
}

func TestEngineConcurrentFirstQuery(t *testing.T) {
	engine := newTestEngine(t, testEntries())

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Recommend(context.Background(), "desert planet", 2)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d: Recommend() error = %v", i, err)
		}
	}
	if got := engine.State(); got != StateLoaded {
		t.Errorf("State() = %v, want %v", got, StateLoaded)
	}
}

func TestEngineRebuild(t *testing.T) {
	engine := newTestEngine(t, nil)
	source := &sliceSource{entries: testEntries()}

	meta, err := engine.Rebuild(context.Background(), source)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if meta.EntryCount != len(source.entries) {
		t.Errorf("meta.EntryCount = %d, want %d", meta.EntryCount, len(source.entries))
	}
	if got := engine.State(); got != StateLoaded {
		t.Errorf("State() = %v, want %v", got, StateLoaded)
	}

	status := engine.TrainingStatus()
	if status.IsTraining {
		t.Error("TrainingStatus().IsTraining = true after completion")
	}
	if status.TrainingCount != 1 {
		t.Errorf("TrainingStatus().TrainingCount = %d, want 1", status.TrainingCount)
	}
	if status.LastEntryCount != len(source.entries) {
		t.Errorf("TrainingStatus().LastEntryCount = %d, want %d", status.LastEntryCount, len(source.entries))
	}
	if status.LastError != "" {
		t.Errorf("TrainingStatus().LastError = %q, want empty", status.LastError)
	}

	// The rebuilt model serves immediately.
	recs, err := engine.Recommend(context.Background(), "recipes", 1)
	if err != nil {
		t.Fatalf("Recommend() after rebuild error = %v", err)
	}
	if recs[0].BookID != 2 {
		t.Errorf("top result id = %d, want 2", recs[0].BookID)
	}
}

func TestEngineRebuildWhileTraining(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.training.Store(true)

	_, err := engine.Rebuild(context.Background(), &sliceSource{entries: testEntries()})
	if !errors.Is(err, ErrTrainingInProgress) {
		t.Errorf("Rebuild() error = %v, want ErrTrainingInProgress", err)
	}
}

func TestEngineRebuildEmptyCatalog(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Rebuild(context.Background(), &sliceSource{})
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("Rebuild() error = %v, want ErrEmptyCorpus", err)
	}

	status := engine.TrainingStatus()
	if status.IsTraining {
		t.Error("TrainingStatus().IsTraining = true after failure")
	}
	if status.LastError == "" {
		t.Error("TrainingStatus().LastError empty after failure")
	}
	if status.TrainingCount != 0 {
		t.Errorf("TrainingStatus().TrainingCount = %d, want 0", status.TrainingCount)
	}
}

func TestEngineRebuildPicksUpNewCatalog(t *testing.T) {
	engine := newTestEngine(t, testEntries())

	// Warm with the original three entries.
	if _, err := engine.Recommend(context.Background(), "desert", 1); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	grown := append(testEntries(), CatalogEntry{
		ID: 4, Title: "Starship Repair", Description: "Fixing hyperdrives and hull plating.",
	})
	if _, err := engine.Rebuild(context.Background(), &sliceSource{entries: grown}); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	recs, err := engine.Recommend(context.Background(), "hyperdrives hull repair", 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if recs[0].BookID != 4 {
		t.Errorf("top result id = %d, want 4", recs[0].BookID)
	}

	st := engine.Status()
	if st.Artifact == nil {
		t.Fatal("Status().Artifact = nil, want metadata")
	}
	if st.Artifact.EntryCount != len(grown) {
		t.Errorf("Status().Artifact.EntryCount = %d, want %d", st.Artifact.EntryCount, len(grown))
	}
}

func TestEngineStatus(t *testing.T) {
	engine := newTestEngine(t, testEntries())

	st := engine.Status()
	if st.State != "unloaded" {
		t.Errorf("State = %q, want %q", st.State, "unloaded")
	}
	if st.Artifact != nil {
		t.Errorf("Artifact = %+v, want nil before load", st.Artifact)
	}

	if _, err := engine.Recommend(context.Background(), "desert", 1); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	st = engine.Status()
	if st.State != "loaded" {
		t.Errorf("State = %q, want %q", st.State, "loaded")
	}
	if st.QueryCount == 0 {
		t.Error("QueryCount = 0 after a query")
	}
	if st.Artifact == nil || st.Artifact.EntryCount != 3 {
		t.Errorf("Artifact = %+v, want entry count 3", st.Artifact)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnloaded, "unloaded"},
		{StateLoading, "loading"},
		{StateLoaded, "loaded"},
		{StateLoadFailed, "load_failed"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
