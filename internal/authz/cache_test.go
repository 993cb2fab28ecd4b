// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package authz

import (
	"testing"
	"time"
)

// =====================================================
// Cache Unit Tests
// =====================================================

func TestNewEnforcementCache(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)
	if cache == nil {
		t.Fatal("newEnforcementCache() returned nil")
	}
	defer cache.stop()

	if cache.ttl != 5*time.Minute {
		t.Errorf("cache.ttl = %v, want 5m", cache.ttl)
	}
}

func TestNewEnforcementCache_ZeroTTL(t *testing.T) {
	// Zero TTL should use default
	cache := newEnforcementCache(0)
	if cache == nil {
		t.Fatal("newEnforcementCache() returned nil")
	}
	defer cache.stop()

	if cache.ttl != 5*time.Minute {
		t.Errorf("cache.ttl = %v, want 5m (default)", cache.ttl)
	}
}

func TestEnforcementCache_Key(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)
	defer cache.stop()

	key := cache.key("42", ObjectCatalog, ActionRead)
	expected := "42:catalog:read"

	if key != expected {
		t.Errorf("key() = %q, want %q", key, expected)
	}
}

func TestEnforcementCache_SetAndGet(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)
	defer cache.stop()

	cache.set("member", ObjectCatalog, ActionRead, true)

	allowed, found := cache.get("member", ObjectCatalog, ActionRead)
	if !found {
		t.Error("Expected to find cached value")
	}
	if !allowed {
		t.Error("Expected allowed to be true")
	}

	cache.set("member", ObjectTraining, ActionWrite, false)

	allowed, found = cache.get("member", ObjectTraining, ActionWrite)
	if !found {
		t.Error("Expected to find cached value")
	}
	if allowed {
		t.Error("Expected allowed to be false")
	}
}

func TestEnforcementCache_Get_NotFound(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)
	defer cache.stop()

	allowed, found := cache.get("nonexistent", ObjectCatalog, ActionRead)
	if found {
		t.Error("Expected not to find non-existent key")
	}
	if allowed {
		t.Error("Expected allowed to be false for not found")
	}
}

func TestEnforcementCache_Get_Expired(t *testing.T) {
	cache := newEnforcementCache(1 * time.Millisecond)
	defer cache.stop()

	cache.set("member", ObjectCatalog, ActionRead, true)

	time.Sleep(10 * time.Millisecond)

	_, found := cache.get("member", ObjectCatalog, ActionRead)
	if found {
		t.Error("Expected expired item to not be found")
	}
}

func TestEnforcementCache_InvalidateUser(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)
	defer cache.stop()

	cache.set("42", ObjectCatalog, ActionRead, true)
	cache.set("42", ObjectRecommendations, ActionRead, true)
	cache.set("7", ObjectCatalog, ActionRead, true)

	cache.invalidateUser("42")

	_, found := cache.get("42", ObjectCatalog, ActionRead)
	if found {
		t.Error("subject 42's entry should be invalidated")
	}

	_, found = cache.get("42", ObjectRecommendations, ActionRead)
	if found {
		t.Error("subject 42's other entry should be invalidated")
	}

	// Other subjects keep their entries
	_, found = cache.get("7", ObjectCatalog, ActionRead)
	if !found {
		t.Error("subject 7's entry should not be affected")
	}
}

func TestEnforcementCache_Clear(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)
	defer cache.stop()

	cache.set("member", ObjectCatalog, ActionRead, true)
	cache.set("admin", ObjectTraining, ActionWrite, true)

	cache.clear()

	_, found1 := cache.get("member", ObjectCatalog, ActionRead)
	_, found2 := cache.get("admin", ObjectTraining, ActionWrite)

	if found1 || found2 {
		t.Error("All entries should be cleared")
	}
}

func TestEnforcementCache_StopIdempotent(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)

	// Multiple concurrent stops must not panic
	done := make(chan bool, 5)
	for i := 0; i < 5; i++ {
		go func() {
			cache.stop()
			done <- true
		}()
	}

	for i := 0; i < 5; i++ {
		<-done
	}
}

func TestEnforcementCache_ConcurrentAccess(t *testing.T) {
	cache := newEnforcementCache(5 * time.Minute)
	defer cache.stop()

	done := make(chan bool, 3)

	go func() {
		for i := 0; i < 100; i++ {
			cache.set("member", ObjectCatalog, ActionRead, true)
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			cache.set("admin", ObjectTraining, ActionWrite, true)
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			cache.get("member", ObjectCatalog, ActionRead)
			cache.get("admin", ObjectTraining, ActionWrite)
		}
		done <- true
	}()

	for i := 0; i < 3; i++ {
		<-done
	}
}

func BenchmarkCache_Get(b *testing.B) {
	cache := newEnforcementCache(5 * time.Minute)
	defer cache.stop()

	cache.set("member", ObjectCatalog, ActionRead, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.get("member", ObjectCatalog, ActionRead)
	}
}
