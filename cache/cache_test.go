package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	cache, err := NewMemory(MemoryConfig{
		NumCounters: 1000,
		MaxCost:     1000,
		BufferItems: 64,
		Metrics:     false,
	})
	if err != nil {
		t.Fatalf("Failed to create memory cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	key := "test_key"
	value := "test_value"
	expiration := 10 * time.Second

	err = cache.Set(ctx, key, value, expiration)
	if err != nil {
		t.Fatalf("Failed to set cache value: %v", err)
	}

	var retrievedValue string
	err = cache.Get(ctx, key, &retrievedValue)
	if err != nil {
		t.Fatalf("Failed to get cache value: %v", err)
	}

	if retrievedValue != value {
		t.Errorf("Retrieved value %s does not match original value %s", retrievedValue, value)
	}

	// 测试Exists
	exists, err := cache.Exists(ctx, key)
	if err != nil {
		t.Fatalf("Failed to check if key exists: %v", err)
	}
	if !exists {
		t.Error("Key should exist but was not found")
	}

	// 测试Delete
	err = cache.Delete(ctx, key)
	if err != nil {
		t.Fatalf("Failed to delete cache key: %v", err)
	}

	// 再次获取应该返回缓存未命中
	err = cache.Get(ctx, key, &retrievedValue)
	if !IsCacheMiss(err) {
		t.Errorf("Expected cache miss after delete, got: %v", err)
	}
}

func TestMemoryCache_BytesRoundTrip(t *testing.T) {
	cache, err := NewMemory(MemoryConfig{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		t.Fatalf("Failed to create memory cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	original := []byte("thumbnail bytes")

	if err := cache.Set(ctx, "thumb", original, time.Minute); err != nil {
		t.Fatalf("Failed to set bytes: %v", err)
	}

	var got []byte
	if err := cache.Get(ctx, "thumb", &got); err != nil {
		t.Fatalf("Failed to get bytes: %v", err)
	}
	if string(got) != string(original) {
		t.Errorf("Retrieved bytes %q do not match original %q", got, original)
	}
}

func TestIsCacheMiss(t *testing.T) {
	if !IsCacheMiss(ErrCacheMiss) {
		t.Error("ErrCacheMiss should be a cache miss")
	}
	if IsCacheMiss(nil) {
		t.Error("nil should not be a cache miss")
	}
	if IsCacheMiss(errors.New("other")) {
		t.Error("other errors should not be cache misses")
	}
}

func TestKeyBuilder(t *testing.T) {
	kb := NewKeyBuilder("album")
	if got := kb.BuildID(42); got != "album:42" {
		t.Errorf("BuildID returned %s, want album:42", got)
	}
	if got := kb.Build("a", "b"); got != "album:a:b" {
		t.Errorf("Build returned %s, want album:a:b", got)
	}
	if got := kb.Build(); got != "album" {
		t.Errorf("Build returned %s, want album", got)
	}

	if got := ThumbnailKey(3, 9); got != "thumbnail:3:9" {
		t.Errorf("ThumbnailKey returned %s, want thumbnail:3:9", got)
	}
	if got := AlbumListKey(7); got != "album_list:7" {
		t.Errorf("AlbumListKey returned %s, want album_list:7", got)
	}
}
