package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/sidenotehq/sidenote/internal/config"
	"github.com/sidenotehq/sidenote/internal/theme"
)

type PageData struct {
	SiteName        string
	SiteTagline     string
	SiteDescription string

	PageURL string

	Theme               string
	AllowThemeSwitching bool

	SyntaxCSS    template.CSS
	SyntaxTheme  string
	SyntaxThemes []string

	EditorEnabled      bool
	LivePreviewEnabled bool
	SuggestionsEnabled bool

	// Branding styles resolved from config, keyed by style option name,
	// plus the same styles rendered as :root custom properties.
	Styles      map[string]string
	BrandingCSS template.CSS

	ShowToolbar  *bool
	IsEditorPage *bool
}

func NewPageData(r *http.Request) *PageData {
	syntaxtheme := theme.GetSyntaxThemeFromRequest(r)
	styles := theme.ResolveStyles(theme.AnnotationStyleOptions(), config.BrandingSettings())
	pd := &PageData{
		SiteName:     config.SiteName(),
		PageURL:      r.URL.Path,
		Theme:        theme.GetThemeFromRequest(r),
		SyntaxTheme:  syntaxtheme,
		SyntaxThemes: theme.GetSyntaxThemes(),
		SyntaxCSS:    theme.GenerateSyntaxCSS(syntaxtheme),
		Styles:       styles,
		BrandingCSS:  theme.StyleCSS(styles),
	}

	if cfg := config.AppConfig; cfg != nil {
		pd.SiteTagline = cfg.Site.Tagline
		pd.SiteDescription = cfg.Site.Description
		pd.AllowThemeSwitching = cfg.Theme.AllowSwitching
		pd.EditorEnabled = cfg.Features.Editor.Enabled
		pd.LivePreviewEnabled = cfg.Features.Editor.LivePreview
		pd.SuggestionsEnabled = cfg.Features.Suggestions.Enabled
	}

	return pd
}

func (pd *PageData) IsAnnotation() bool {
	if pd.ShowToolbar == nil {
		return strings.HasPrefix(pd.PageURL, config.AnnotationsURLPath)
	}
	return *pd.ShowToolbar
}

func (pd *PageData) IsEditor() bool {
	if pd.IsEditorPage == nil {
		return strings.HasPrefix(pd.PageURL, config.EditAnnotationURLPath)
	}
	return *pd.IsEditorPage
}
