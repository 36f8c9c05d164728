package cache

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestNewCache(t *testing.T) {
	t.Run("String cache", func(t *testing.T) {
		cache := NewCache[string, string]()
		if cache == nil {
			t.Fatal("Expected non-nil cache")
		}
		if cache.items == nil {
			t.Fatal("Expected items map to be initialized")
		}
	})

	t.Run("Annotation-shaped cache", func(t *testing.T) {
		type annotation struct {
			ID   string
			Text string
		}
		cache := NewCache[string, *annotation]()
		if cache == nil {
			t.Fatal("Expected non-nil cache")
		}
	})
}

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		cache.Set("annotation-1", "margin note")

		got, exists := cache.Get("annotation-1")
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "margin note" {
			t.Errorf("Expected %q, got %q", "margin note", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, exists := cache.Get("non-existent")
		if exists {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Overwrite existing key", func(t *testing.T) {
		cache.Set("overwrite-key", "first")
		cache.Set("overwrite-key", "second")

		got, exists := cache.Get("overwrite-key")
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "second" {
			t.Errorf("Expected %q, got %q", "second", got)
		}
	})
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Delete existing key", func(t *testing.T) {
		cache.Set("delete-key", "delete-value")
		cache.Delete("delete-key")

		if _, exists := cache.Get("delete-key"); exists {
			t.Error("Expected key to be deleted")
		}
	})

	t.Run("Delete non-existent key", func(t *testing.T) {
		// Should not panic
		cache.Delete("non-existent")
	})
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache[string, string]()

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Clear()

	_, exists1 := cache.Get("key1")
	_, exists2 := cache.Get("key2")
	if exists1 || exists2 {
		t.Error("Expected all keys to be cleared")
	}

	cache.Clear() // Clearing an empty cache should not panic
}

func TestCache_SetTo(t *testing.T) {
	cache := NewCache[string, string]()

	cache.Set("old", "oldvalue")
	cache.SetTo(map[string]string{
		"new1": "value1",
		"new2": "value2",
	})

	if _, exists := cache.Get("old"); exists {
		t.Error("Expected old items to be replaced")
	}

	got, exists := cache.Get("new1")
	if !exists || got != "value1" {
		t.Errorf("Expected new1 to be 'value1', got %q (exists=%v)", got, exists)
	}

	cache.SetTo(map[string]string{})
	if _, exists := cache.Get("new2"); exists {
		t.Error("Expected cache to be empty after SetTo with empty map")
	}
}

func TestCache_Concurrency(t *testing.T) {
	cache := NewCache[int, string]()
	const numGoroutines = 50
	const numOperations = 200

	var wg sync.WaitGroup

	// Writers
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				key := id*numOperations + j
				cache.Set(key, fmt.Sprintf("value-%d-%d", id, j))
			}
		}(i)
	}

	// Readers
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				cache.Get(id*numOperations + j) // Result may not exist yet
			}
		}(i)
	}

	wg.Wait()

	// Every written key must be present afterwards
	for i := 0; i < numGoroutines; i++ {
		key := i * numOperations
		if _, exists := cache.Get(key); !exists {
			t.Errorf("Expected key %d to exist after concurrent writes", key)
		}
	}
}

func TestRenderedMarkdownCache(t *testing.T) {
	defer ClearRenderedMarkdownCache()

	hash := "deadbeef"
	html := []byte("<p>rendered annotation</p>")

	t.Run("Miss before set", func(t *testing.T) {
		if _, found := GetRenderedMarkdown(hash, "gruvbox"); found {
			t.Error("Expected cache miss before set")
		}
	})

	t.Run("Hit after set", func(t *testing.T) {
		SetRenderedMarkdown(hash, "gruvbox", html)

		got, found := GetRenderedMarkdown(hash, "gruvbox")
		if !found {
			t.Fatal("Expected cache hit after set")
		}
		if !bytes.Equal(got, html) {
			t.Errorf("Expected %q, got %q", html, got)
		}
	})

	t.Run("Theme is part of the key", func(t *testing.T) {
		if _, found := GetRenderedMarkdown(hash, "catppuccin-latte"); found {
			t.Error("Expected miss for same hash under a different theme")
		}
	})

	t.Run("Clear empties the cache", func(t *testing.T) {
		ClearRenderedMarkdownCache()
		if _, found := GetRenderedMarkdown(hash, "gruvbox"); found {
			t.Error("Expected miss after clear")
		}
	})
}

func TestStaticHashCache(t *testing.T) {
	SetStaticHash("/static/style.css", "abc123")

	hash, ok := GetStaticHash("/static/style.css")
	if !ok {
		t.Fatal("Expected static hash to exist")
	}
	if hash != "abc123" {
		t.Errorf("Expected hash 'abc123', got %q", hash)
	}

	if _, ok := GetStaticHash("/static/missing.js"); ok {
		t.Error("Expected missing static path to report no hash")
	}
}

func BenchmarkCache_Get(b *testing.B) {
	cache := NewCache[string, string]()
	cache.Set("bench-key", "bench-value")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			cache.Get("bench-key")
		}
	})
}

func BenchmarkCache_Set(b *testing.B) {
	cache := NewCache[int, string]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(i, "bench-value")
	}
}
