package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sidenotehq/sidenote/internal/cache"
)

// Test helpers
func setupTest() {
	cache.ClearRenderedMarkdownCache()
}

func assertCacheEntry(t *testing.T, textHash, syntaxTheme string, expectedHTML []byte) {
	t.Helper()
	cached, found := cache.GetRenderedMarkdown(textHash, syntaxTheme)
	if !found {
		t.Errorf("Expected content to be cached for hash:%s theme:%s", textHash, syntaxTheme)
		return
	}
	if !bytes.Equal(cached, expectedHTML) {
		t.Errorf("Cached HTML mismatch. Expected %q, got %q", string(expectedHTML), string(cached))
	}
}

func TestRenderMarkdownCached(t *testing.T) {
	tests := []struct {
		name        string
		markdown    []byte
		textHash    string
		syntaxTheme string
		expectCache bool
		expectHTML  bool
	}{
		{
			name:        "basic markdown",
			markdown:    []byte("# Test Header\n\nSome content with `code`"),
			textHash:    "hash-1",
			syntaxTheme: "github",
			expectCache: true,
			expectHTML:  true,
		},
		{
			name:        "empty content",
			markdown:    []byte(""),
			textHash:    "hash-empty",
			syntaxTheme: "github",
			expectCache: true,
			expectHTML:  false,
		},
		{
			name:        "code block with syntax highlighting",
			markdown:    []byte("```go\nfunc main() {\n    fmt.Println(\"Hello\")\n}\n```"),
			textHash:    "hash-code",
			syntaxTheme: "monokai",
			expectCache: true,
			expectHTML:  true,
		},
		{
			name:        "math content",
			markdown:    []byte("Math formula: $E = mc^2$"),
			textHash:    "hash-math",
			syntaxTheme: "github",
			expectCache: true,
			expectHTML:  true,
		},
		{
			name:        "special characters",
			markdown:    []byte("Content with üñíçødé & <script>alert('xss')</script>"),
			textHash:    "hash-special",
			syntaxTheme: "github",
			expectCache: true,
			expectHTML:  true,
		},
	}

	setupTest()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// First call - cache miss
			html1 := RenderMarkdownCached(tt.markdown, tt.textHash, tt.syntaxTheme)

			if tt.expectHTML && len(html1) == 0 {
				t.Error("Expected rendered HTML, got empty")
			}

			if tt.expectCache {
				assertCacheEntry(t, tt.textHash, tt.syntaxTheme, html1)
			}

			// Second call - cache hit
			html2 := RenderMarkdownCached(tt.markdown, tt.textHash, tt.syntaxTheme)

			if !bytes.Equal(html1, html2) {
				t.Error("Cache hit should return identical HTML")
			}
		})
	}
}

func TestRenderMarkdownCachedWithoutHash(t *testing.T) {
	setupTest()

	html := RenderMarkdownCached([]byte("# Uncacheable"), "", "github")
	if len(html) == 0 {
		t.Error("Expected rendered HTML even without a text hash")
	}
	if _, found := cache.GetRenderedMarkdown("", "github"); found {
		t.Error("Content without a text hash should not be cached")
	}
}

func TestCacheKeyUniqueness(t *testing.T) {
	setupTest()

	tests := []struct {
		name        string
		textHash    string
		syntaxTheme string
		markdown    []byte
	}{
		{"combo1", "hash-1", "github", []byte("# Test")},
		{"combo2", "hash-1", "monokai", []byte("# Test")},      // Same hash, different theme
		{"combo3", "hash-2", "github", []byte("# Different")},  // Different hash, same theme
		{"combo4", "hash-2", "monokai", []byte("# Different")}, // Both different
	}

	// Render all combinations
	for _, tt := range tests {
		RenderMarkdownCached(tt.markdown, tt.textHash, tt.syntaxTheme)
	}

	// Verify all are cached separately
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cached, found := cache.GetRenderedMarkdown(tt.textHash, tt.syntaxTheme)
			if !found {
				t.Error("Expected cache entry to exist")
			}
			if cached == nil {
				t.Error("Expected non-nil cache entry")
			}
		})
	}

	// Different content must not collide across hashes
	cached1, _ := cache.GetRenderedMarkdown("hash-1", "github")
	cached3, _ := cache.GetRenderedMarkdown("hash-2", "github")
	if bytes.Equal(cached1, cached3) {
		t.Error("Different hashes should cache different content")
	}
}

func TestCacheConcurrency(t *testing.T) {
	setupTest()

	const numGoroutines = 100
	const numIterations = 10

	markdown := []byte("# Concurrent Test\n\nContent with `code`")
	textHash := "concurrent-hash"
	syntaxTheme := "github"

	var wg sync.WaitGroup
	results := make(chan []byte, numGoroutines*numIterations)

	// Start multiple goroutines rendering the same content
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				results <- RenderMarkdownCached(markdown, textHash, syntaxTheme)
			}
		}()
	}

	wg.Wait()
	close(results)

	// Collect all results
	var allResults [][]byte
	for result := range results {
		allResults = append(allResults, result)
	}

	// Verify all results are identical (cache working correctly)
	if len(allResults) != numGoroutines*numIterations {
		t.Fatalf("Expected %d results, got %d", numGoroutines*numIterations, len(allResults))
	}

	firstResult := allResults[0]
	for i, result := range allResults {
		if !bytes.Equal(result, firstResult) {
			t.Errorf("Result %d differs from first result", i)
		}
	}

	cached, found := cache.GetRenderedMarkdown(textHash, syntaxTheme)
	if !found {
		t.Error("Expected content to be cached")
	}
	if !bytes.Equal(cached, firstResult) {
		t.Error("Cached HTML should match first result")
	}
}

func TestCacheInvalidation(t *testing.T) {
	setupTest()

	markdown1 := []byte("# Original Content")
	markdown2 := []byte("# Modified Content")
	textHash1 := "hash-original"
	textHash2 := "hash-modified"
	syntaxTheme := "github"

	// Cache first content
	html1 := RenderMarkdownCached(markdown1, textHash1, syntaxTheme)
	assertCacheEntry(t, textHash1, syntaxTheme, html1)

	// Cache second content (simulating content change with new hash)
	html2 := RenderMarkdownCached(markdown2, textHash2, syntaxTheme)
	assertCacheEntry(t, textHash2, syntaxTheme, html2)

	// Both should be cached with different keys
	if bytes.Equal(html1, html2) {
		t.Error("Different content should produce different HTML")
	}

	// Original content should still be cached
	assertCacheEntry(t, textHash1, syntaxTheme, html1)
}

func TestHighlightCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language string
		contains string
	}{
		{
			name:     "go code",
			code:     "func main() {}\n",
			language: "go",
			contains: "chroma",
		},
		{
			name:     "unknown language falls back",
			code:     "whatever content\n",
			language: "not-a-language",
			contains: "whatever content",
		},
		{
			name:     "callout marker becomes a span",
			code:     "x := 1 // <<1>>\n",
			language: "go",
			contains: `<span class="callout">1</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			highlighted := HighlightCode(tt.code, tt.language, "github")
			if !strings.Contains(highlighted, tt.contains) {
				t.Errorf("Expected highlighted output to contain %q, got %q", tt.contains, highlighted)
			}
		})
	}

	t.Run("code entities stay escaped", func(t *testing.T) {
		highlighted := HighlightCode("if a < b { run() }\n", "go", "github")
		if strings.Contains(highlighted, " < ") {
			t.Errorf("Expected comparison operator to stay escaped, got %q", highlighted)
		}
		if !strings.Contains(highlighted, "&lt;") {
			t.Errorf("Expected escaped angle bracket, got %q", highlighted)
		}
	})
}

func TestHighlightMarkdown(t *testing.T) {
	result, err := HighlightMarkdown("# Header\n\nSome *emphasis*", "github")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(result, `<div class="markdown-editor">`) {
		t.Errorf("Expected editor wrapper div, got %q", result)
	}
	if !strings.Contains(result, "<br>") {
		t.Errorf("Expected line breaks to be preserved, got %q", result)
	}
}

func TestRenderMarkdownOutput(t *testing.T) {
	html := string(RenderMarkdown([]byte("# Title\n\n[link](https://example.com)"), "github"))

	if !strings.Contains(html, "<h1") {
		t.Errorf("Expected heading element, got %q", html)
	}
	if !strings.Contains(html, `target="_blank"`) {
		t.Errorf("Expected links to open in a new tab, got %q", html)
	}
}

func TestEdgeCases(t *testing.T) {
	setupTest()

	tests := []struct {
		name        string
		markdown    []byte
		textHash    string
		syntaxTheme string
		description string
	}{
		{
			name:        "extremely long content",
			markdown:    []byte(strings.Repeat("# Header\n\nContent paragraph.\n\n", 1000)),
			textHash:    "hash-long",
			syntaxTheme: "github",
			description: "Should handle large content efficiently",
		},
		{
			name:        "mixed line endings",
			markdown:    []byte("# Title\r\n\r\nContent\r\nMore content\n\nEnd"),
			textHash:    "hash-mixed-endings",
			syntaxTheme: "github",
			description: "Should handle mixed line endings",
		},
		{
			name:        "nested code blocks",
			markdown:    []byte("```markdown\n# Header\n```go\nfunc main() {}\n```\n```"),
			textHash:    "hash-nested",
			syntaxTheme: "monokai",
			description: "Should handle nested code blocks",
		},
		{
			name:        "unicode content",
			markdown:    []byte("# 测试 🚀\n\nContent with emoji 😀 and unicode ñáéíóú"),
			textHash:    "hash-unicode",
			syntaxTheme: "github",
			description: "Should handle unicode content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := RenderMarkdownCached(tt.markdown, tt.textHash, tt.syntaxTheme)

			if len(html) == 0 {
				t.Errorf("Expected HTML output for case: %s", tt.description)
			}

			// Verify caching works
			assertCacheEntry(t, tt.textHash, tt.syntaxTheme, html)

			// Verify cache hit returns same content
			html2 := RenderMarkdownCached(tt.markdown, tt.textHash, tt.syntaxTheme)
			if !bytes.Equal(html, html2) {
				t.Error("Cache hit should return identical HTML")
			}
		})
	}
}

func BenchmarkRenderMarkdownCached(b *testing.B) {
	cache.ClearRenderedMarkdownCache()

	markdown := []byte(`# Performance Test

This is a test document with some **bold text** and *italic text*.

Here's some code:

` + "```go" + `
func main() {
    fmt.Println("Hello, World!")
    for i := 0; i < 10; i++ {
        fmt.Printf("Count: %d\n", i)
    }
}
` + "```" + `

And some math: $E = mc^2$

More content here to make it substantial.
`)

	textHash := "perf-test-hash"
	syntaxTheme := "github"

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		RenderMarkdownCached(markdown, textHash, syntaxTheme)
	}
}

func BenchmarkRenderMarkdownUncached(b *testing.B) {
	markdown := []byte(`# Performance Test

This is a test document with some **bold text** and *italic text*.

Here's some code:

` + "```go" + `
func main() {
    fmt.Println("Hello, World!")
    for i := 0; i < 10; i++ {
        fmt.Printf("Count: %d\n", i)
    }
}
` + "```" + `

And some math: $E = mc^2$

More content here to make it substantial.
`)

	syntaxTheme := "github"

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		RenderMarkdown(markdown, syntaxTheme)
	}
}

func BenchmarkCacheHitVsMiss(b *testing.B) {
	setupTest()

	markdown := []byte("# Simple test content\n\nWith some text.")
	textHash := "bench-hash"
	syntaxTheme := "github"

	// Pre-populate cache
	RenderMarkdownCached(markdown, textHash, syntaxTheme)

	b.Run("CacheHit", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			RenderMarkdownCached(markdown, textHash, syntaxTheme)
		}
	})

	b.Run("CacheMiss", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			// Use different hash each time to force cache miss
			RenderMarkdownCached(markdown, fmt.Sprintf("hash-%d", i), syntaxTheme)
		}
	})
}
