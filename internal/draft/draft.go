// Package draft tracks in-progress annotation edits. A draft exists only
// while its annotation is open in the editor; the saved annotation is not
// touched until the draft is committed through the save service.
package draft

import (
	"strings"

	"github.com/sidenotehq/sidenote/internal/model"
)

// Draft is the transient editing state of a single annotation.
type Draft struct {
	Annotation model.AnnotationID
	Text       string
	Tags       []string
	IsPrivate  bool
}

// IsEmpty reports whether the draft carries no content: blank text and no
// tags. Whitespace-only text counts as blank.
func (d Draft) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == "" && len(d.Tags) == 0
}

// Fields carries the values for a draft update. The store replaces drafts
// wholesale, so callers copy the previous draft into Fields and change only
// what they need.
type Fields struct {
	Text      string
	Tags      []string
	IsPrivate bool
}

// FieldsFromDraft copies a draft's content into Fields for modification.
func FieldsFromDraft(d Draft) Fields {
	return Fields{
		Text:      d.Text,
		Tags:      cloneTags(d.Tags),
		IsPrivate: d.IsPrivate,
	}
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return append([]string(nil), tags...)
}
