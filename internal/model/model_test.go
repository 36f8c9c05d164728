package model

import (
	"encoding/json"
	"html/template"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sidenotehq/sidenote/internal/config"
)

func TestAnnotationID(t *testing.T) {
	t.Run("AnnotationID type operations", func(t *testing.T) {
		var id AnnotationID = "test-annotation-123"

		if string(id) != "test-annotation-123" {
			t.Errorf("Expected string conversion 'test-annotation-123', got %s", string(id))
		}

		var id2 AnnotationID = "test-annotation-123"
		var id3 AnnotationID = "different-annotation"

		if id != id2 {
			t.Error("Expected equal AnnotationIDs to be equal")
		}
		if id == id3 {
			t.Error("Expected different AnnotationIDs to be different")
		}

		var emptyID AnnotationID
		if string(emptyID) != "" {
			t.Errorf("Expected empty AnnotationID to be empty string, got %s", string(emptyID))
		}
	})
}

func TestUserID(t *testing.T) {
	t.Run("UserID type operations", func(t *testing.T) {
		var uid UserID = "test-user-123"

		if string(uid) != "test-user-123" {
			t.Errorf("Expected string conversion 'test-user-123', got %s", string(uid))
		}

		var uid2 UserID = "test-user-123"
		var uid3 UserID = "different-user"

		if uid != uid2 {
			t.Error("Expected equal UserIDs to be equal")
		}
		if uid == uid3 {
			t.Error("Expected different UserIDs to be different")
		}
	})
}

func TestAnnotation(t *testing.T) {
	t.Run("Annotation struct creation", func(t *testing.T) {
		now := time.Now()
		ann := &Annotation{
			ID:           "test-annotation",
			URI:          "https://example.com/article",
			Group:        "reading-club",
			Text:         "A thought about the article",
			Tags:         []string{"go", "notes"},
			IsPrivate:    true,
			Content:      template.HTML("<p>A thought about the article</p>"),
			TextHash:     "hash123",
			CreatedDate:  now,
			ModifiedDate: now.Add(time.Hour),
			Owner:        "test-user",
		}

		if ann.ID != "test-annotation" {
			t.Errorf("Expected ID 'test-annotation', got %s", ann.ID)
		}
		if ann.URI != "https://example.com/article" {
			t.Errorf("Expected URI 'https://example.com/article', got %s", ann.URI)
		}
		if ann.Group != "reading-club" {
			t.Errorf("Expected Group 'reading-club', got %s", ann.Group)
		}
		if len(ann.Tags) != 2 || ann.Tags[0] != "go" || ann.Tags[1] != "notes" {
			t.Errorf("Expected Tags [go notes], got %v", ann.Tags)
		}
		if !ann.IsPrivate {
			t.Error("Expected IsPrivate to be true")
		}
		if ann.TextHash != "hash123" {
			t.Errorf("Expected TextHash 'hash123', got %s", ann.TextHash)
		}
		if ann.Owner != "test-user" {
			t.Errorf("Expected Owner 'test-user', got %s", ann.Owner)
		}
	})

	t.Run("Annotation with empty values", func(t *testing.T) {
		ann := &Annotation{}

		if ann.ID != "" {
			t.Errorf("Expected empty ID, got %s", ann.ID)
		}
		if len(ann.Tags) != 0 {
			t.Errorf("Expected no tags, got %v", ann.Tags)
		}
		if ann.IsPrivate {
			t.Error("Expected IsPrivate to be false")
		}
	})
}

func TestAnnotationPreview(t *testing.T) {
	t.Run("Preview returns first line", func(t *testing.T) {
		ann := &Annotation{Text: "First line\nSecond line\nThird line"}

		if got := ann.Preview(); got != "First line" {
			t.Errorf("Expected 'First line', got %q", got)
		}
	})

	t.Run("Preview trims whitespace", func(t *testing.T) {
		ann := &Annotation{Text: "   padded   \nmore"}

		if got := ann.Preview(); got != "padded" {
			t.Errorf("Expected 'padded', got %q", got)
		}
	})

	t.Run("Preview truncates long lines", func(t *testing.T) {
		ann := &Annotation{Text: strings.Repeat("x", 200)}

		got := ann.Preview()
		if len([]rune(got)) != previewRuneLimit+3 {
			t.Errorf("Expected %d runes, got %d", previewRuneLimit+3, len([]rune(got)))
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("Expected truncated preview to end with '...', got %q", got)
		}
	})

	t.Run("Preview counts runes not bytes", func(t *testing.T) {
		ann := &Annotation{Text: strings.Repeat("ü", previewRuneLimit)}

		got := ann.Preview()
		if strings.HasSuffix(got, "...") {
			t.Errorf("Expected %d-rune line to survive untruncated, got %q", previewRuneLimit, got)
		}
	})

	t.Run("Preview of empty text", func(t *testing.T) {
		testCases := []string{"", "   ", "\n\nbody below"}
		for _, text := range testCases {
			ann := &Annotation{Text: text}
			if got := ann.Preview(); got != "Untitled note" {
				t.Errorf("Preview(%q) = %q, want 'Untitled note'", text, got)
			}
		}
	})
}

func TestTagRecords(t *testing.T) {
	t.Run("TagRecords preserves order", func(t *testing.T) {
		records := TagRecords([]string{"go", "testing", "go"})

		if len(records) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(records))
		}
		want := []string{"go", "testing", "go"}
		for i, rec := range records {
			if rec.Text != want[i] {
				t.Errorf("Record %d = %q, want %q", i, rec.Text, want[i])
			}
		}
	})

	t.Run("TagRecords of empty slice", func(t *testing.T) {
		records := TagRecords(nil)
		if len(records) != 0 {
			t.Errorf("Expected no records, got %v", records)
		}
	})

	t.Run("Tag marshals with text property", func(t *testing.T) {
		data, err := json.Marshal(Tag{Text: "reading"})
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}
		if string(data) != `{"text":"reading"}` {
			t.Errorf("Expected {\"text\":\"reading\"}, got %s", data)
		}
	})
}

func TestGroup(t *testing.T) {
	t.Run("WorldReadable by type", func(t *testing.T) {
		testCases := []struct {
			groupType GroupType
			want      bool
		}{
			{GroupPrivate, false},
			{GroupRestricted, true},
			{GroupOpen, true},
		}

		for _, tc := range testCases {
			g := &Group{ID: "g", Name: "Group", Type: tc.groupType}
			if got := g.WorldReadable(); got != tc.want {
				t.Errorf("WorldReadable() for %q = %v, want %v", tc.groupType, got, tc.want)
			}
		}
	})
}

func TestPageData(t *testing.T) {
	originalConfig := config.AppConfig
	defer func() { config.AppConfig = originalConfig }()

	config.AppConfig = &config.Config{
		Site: config.SiteConfig{
			Name:        "Test Site",
			Tagline:     "Test Tagline",
			Description: "Test Description",
		},
		Theme: config.ThemeConfig{
			AllowSwitching: true,
		},
		Features: config.FeaturesConfig{
			Editor: config.EditorConfig{
				Enabled:     true,
				LivePreview: true,
			},
			Suggestions: config.SuggestionsConfig{
				Enabled: true,
			},
		},
	}

	t.Run("PageData struct creation", func(t *testing.T) {
		pd := &PageData{
			SiteName:            "Test Site Name",
			SiteTagline:         "Test Tagline",
			SiteDescription:     "Test Description",
			PageURL:             "/test/path",
			Theme:               "dark",
			AllowThemeSwitching: true,
			EditorEnabled:       true,
			LivePreviewEnabled:  true,
			SyntaxTheme:         "monokai",
			SyntaxThemes:        []string{"github", "monokai"},
		}

		if pd.SiteName != "Test Site Name" {
			t.Errorf("Expected SiteName 'Test Site Name', got %s", pd.SiteName)
		}
		if pd.PageURL != "/test/path" {
			t.Errorf("Expected PageURL '/test/path', got %s", pd.PageURL)
		}
		if pd.Theme != "dark" {
			t.Errorf("Expected Theme 'dark', got %s", pd.Theme)
		}
		if !pd.AllowThemeSwitching {
			t.Error("Expected AllowThemeSwitching to be true")
		}
		if !pd.EditorEnabled {
			t.Error("Expected EditorEnabled to be true")
		}
	})

	t.Run("PageData with nil pointer fields", func(t *testing.T) {
		pd := &PageData{
			ShowToolbar:  nil,
			IsEditorPage: nil,
		}

		if pd.ShowToolbar != nil {
			t.Error("Expected ShowToolbar to be nil")
		}
		if pd.IsEditorPage != nil {
			t.Error("Expected IsEditorPage to be nil")
		}
	})

	t.Run("IsAnnotation falls back to URL prefix", func(t *testing.T) {
		pd := &PageData{PageURL: config.AnnotationsURLPath + "some-id"}
		if !pd.IsAnnotation() {
			t.Error("Expected IsAnnotation() to be true for annotation URL")
		}

		pd = &PageData{PageURL: "/somewhere/else"}
		if pd.IsAnnotation() {
			t.Error("Expected IsAnnotation() to be false for unrelated URL")
		}
	})

	t.Run("IsAnnotation honors ShowToolbar override", func(t *testing.T) {
		show := true
		pd := &PageData{PageURL: "/somewhere/else", ShowToolbar: &show}
		if !pd.IsAnnotation() {
			t.Error("Expected IsAnnotation() to honor ShowToolbar = true")
		}

		hide := false
		pd = &PageData{PageURL: config.AnnotationsURLPath + "some-id", ShowToolbar: &hide}
		if pd.IsAnnotation() {
			t.Error("Expected IsAnnotation() to honor ShowToolbar = false")
		}
	})

	t.Run("IsEditor falls back to URL prefix", func(t *testing.T) {
		pd := &PageData{PageURL: config.EditAnnotationURLPath + "some-id"}
		if !pd.IsEditor() {
			t.Error("Expected IsEditor() to be true for editor URL")
		}

		pd = &PageData{PageURL: "/somewhere/else"}
		if pd.IsEditor() {
			t.Error("Expected IsEditor() to be false for unrelated URL")
		}
	})
}

func TestNewPageData(t *testing.T) {
	originalConfig := config.AppConfig
	defer func() { config.AppConfig = originalConfig }()

	config.AppConfig = &config.Config{
		Site: config.SiteConfig{
			Name:        "Test Site",
			Tagline:     "Test Tagline",
			Description: "Test Description",
		},
		Theme: config.ThemeConfig{
			Default:        config.DarkTheme,
			AllowSwitching: true,
			SyntaxHighlighting: config.SyntaxConfig{
				DefaultDark:  config.DefaultDarkSyntaxTheme,
				DefaultLight: config.DefaultLightSyntaxTheme,
			},
		},
		Features: config.FeaturesConfig{
			Editor: config.EditorConfig{
				Enabled:     true,
				LivePreview: true,
			},
		},
	}

	t.Run("NewPageData creates PageData from request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test/path", nil)

		pd := NewPageData(req)

		if pd == nil {
			t.Fatal("Expected non-nil PageData")
		}
		if pd.SiteName != "Test Site" {
			t.Errorf("Expected SiteName 'Test Site', got %s", pd.SiteName)
		}
		if pd.SiteTagline != "Test Tagline" {
			t.Errorf("Expected SiteTagline 'Test Tagline', got %s", pd.SiteTagline)
		}
		if pd.PageURL != "/test/path" {
			t.Errorf("Expected PageURL '/test/path', got %s", pd.PageURL)
		}
		if !pd.AllowThemeSwitching {
			t.Error("Expected AllowThemeSwitching to be true")
		}
		if !pd.EditorEnabled {
			t.Error("Expected EditorEnabled to be true")
		}
		if pd.Theme == "" {
			t.Error("Expected a theme to be resolved")
		}
		if pd.SyntaxTheme == "" {
			t.Error("Expected a syntax theme to be resolved")
		}
	})
}
