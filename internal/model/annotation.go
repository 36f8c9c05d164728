// Package model defines core data structures and types for the annotation service.
package model

import (
	"html/template"
	"strings"
	"time"
)

type AnnotationID string

type UserID string

type Annotation struct {
	ID AnnotationID

	// URI of the annotated source.
	URI string

	Group GroupID

	Text string
	Tags []string

	IsPrivate bool

	// Rendered body, only populated for page serving.
	Content template.HTML

	// Used for cache busting.
	// We cannot use a hash of the rendered content because rendering depends on the syntax theme.
	TextHash string

	CreatedDate  time.Time
	ModifiedDate time.Time

	Owner UserID
}

// Tag is the record shape exchanged with the tag-suggestion service.
type Tag struct {
	Text string `json:"text"`
}

// TagRecords converts a tag sequence to suggestion-service records,
// preserving order.
func TagRecords(tags []string) []Tag {
	records := make([]Tag, len(tags))
	for i, t := range tags {
		records[i] = Tag{Text: t}
	}
	return records
}

const previewRuneLimit = 80

// Preview returns a short single-line form of the annotation text for lists.
// Value receiver so templates can call it on list elements.
func (a Annotation) Preview() string {
	line := a.Text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "Untitled note"
	}

	runes := []rune(line)
	if len(runes) > previewRuneLimit {
		return string(runes[:previewRuneLimit]) + "..."
	}
	return line
}
