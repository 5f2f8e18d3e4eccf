package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	if _, ok, _ := cache.Get(ctx, "missing"); ok {
		t.Errorf("expected miss for unknown key")
	}

	if err := cache.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, ok, err := cache.Get(ctx, "k")
	if err != nil || !ok || val != "v" {
		t.Errorf("expected hit with v, got %q ok=%v err=%v", val, ok, err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache(0)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_ = cache.Set(ctx, "k", "v", time.Minute)

	now = now.Add(59 * time.Second)
	if _, ok, _ := cache.Get(ctx, "k"); !ok {
		t.Errorf("expected hit before ttl")
	}

	now = now.Add(time.Second)
	if _, ok, _ := cache.Get(ctx, "k"); ok {
		t.Errorf("expected miss once ttl elapsed")
	}
	if cache.Len() != 0 {
		t.Errorf("expected expired entry to be evicted, %d left", cache.Len())
	}
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewMemoryCache(2)
	ctx := context.Background()

	_ = cache.Set(ctx, "a", "1", 0)
	_ = cache.Set(ctx, "b", "2", 0)
	// touching a leaves b as the oldest
	if _, ok, _ := cache.Get(ctx, "a"); !ok {
		t.Fatalf("expected hit for a")
	}
	_ = cache.Set(ctx, "c", "3", 0)

	if cache.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", cache.Len())
	}
	if _, ok, _ := cache.Get(ctx, "b"); ok {
		t.Errorf("expected b to be evicted")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok, _ := cache.Get(ctx, key); !ok {
			t.Errorf("expected %s to survive", key)
		}
	}
}

func TestMemoryCache_OverwriteDoesNotGrow(t *testing.T) {
	cache := NewMemoryCache(1)
	ctx := context.Background()

	_ = cache.Set(ctx, "k", "old", 0)
	_ = cache.Set(ctx, "k", "new", 0)

	val, ok, _ := cache.Get(ctx, "k")
	if !ok || val != "new" || cache.Len() != 1 {
		t.Errorf("expected single updated entry, got %q ok=%v len=%d", val, ok, cache.Len())
	}
}

func TestMemoryCache_CleanExpired(t *testing.T) {
	cache := NewMemoryCache(0)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_ = cache.Set(ctx, "short", "v", time.Second)
	_ = cache.Set(ctx, "long", "v", time.Hour)
	_ = cache.Set(ctx, "forever", "v", 0)

	now = now.Add(time.Minute)
	if removed := cache.CleanExpired(); removed != 1 {
		t.Errorf("expected 1 expired entry removed, got %d", removed)
	}
	if cache.Len() != 2 {
		t.Errorf("expected 2 entries left, got %d", cache.Len())
	}
}
