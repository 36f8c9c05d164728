// Package routes defines HTTP route constants for the application.
package routes

const (
	// Static and assets
	RobotsPath        = "/robots.txt"
	ThemeOppositeIcon = "/theme/opposite-icon"
	ThemeToggle       = "/theme/toggle"
	SyntaxThemeSet    = "/syntax-theme/set"
	SyntaxThemeGet    = "/syntax-theme/{theme}"

	// SSE
	SSEPath = "/sse"

	// Root
	RootPath = "/"

	// Editor routes
	NewAnnotation        = "/new/annotation"
	PartialsDraftPreview = "/partials/draft/preview"

	// API
	APIAnnotationTags       = "/api/annotations/{id}/tags"
	APIAnnotationPendingTag = "/api/annotations/{id}/pending-tag"
	APIAnnotationPrivacy    = "/api/annotations/{id}/privacy"
	APIAnnotationSave       = "/api/annotations/{id}/save"
	APIAnnotationKey        = "/api/annotations/{id}/key"
	APIAnnotationDraft      = "/api/annotations/{id}/draft"
	APITagsSuggest          = "/api/tags/suggest"

	// Auth routes
	AuthChallenge = "/auth/challenge"
	AuthVerify    = "/auth/verify"
	AuthLogin     = "/auth/login"

	// Webhooks
	WebhookUser = "/webhook/user"
)

// The helpers below fill the {id} wildcard for a single annotation. Templates
// use them to emit htmx attributes pointing at the right endpoint.

func AnnotationTagsURL(id string) string {
	return "/api/annotations/" + id + "/tags"
}

func AnnotationPendingTagURL(id string) string {
	return "/api/annotations/" + id + "/pending-tag"
}

func AnnotationPrivacyURL(id string) string {
	return "/api/annotations/" + id + "/privacy"
}

func AnnotationSaveURL(id string) string {
	return "/api/annotations/" + id + "/save"
}

func AnnotationKeyURL(id string) string {
	return "/api/annotations/" + id + "/key"
}

func AnnotationDraftURL(id string) string {
	return "/api/annotations/" + id + "/draft"
}
