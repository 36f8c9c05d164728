package editor

import (
	"strings"
	"sync"

	"github.com/sidenotehq/sidenote/internal/draft"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/suggest"
)

// TagEditor edits the tag set of an annotation's draft. Tags are plain
// strings compared by exact equality; order of insertion is preserved and
// duplicates are rejected.
type TagEditor struct {
	drafts      draft.Store
	suggestions suggest.Service

	// Uncommitted tag input, per annotation. What the user has typed into
	// the tag field but not yet confirmed.
	pending map[model.AnnotationID]string
	mu      sync.Mutex
}

func NewTagEditor(drafts draft.Store, suggestions suggest.Service) *TagEditor {
	return &TagEditor{
		drafts:      drafts,
		suggestions: suggestions,
		pending:     make(map[model.AnnotationID]string),
	}
}

// AddTag appends a tag to the annotation's draft. The candidate is trimmed
// of surrounding whitespace first; empty candidates, duplicates of an
// existing tag, and annotations that are not being edited are all rejected
// with a false return and no side effects.
//
// On success the new tag sequence is forwarded in full to the suggestion
// service, so the vocabulary learns every tag currently on the annotation.
func (e *TagEditor) AddTag(id model.AnnotationID, candidate string) bool {
	tag := strings.TrimSpace(candidate)
	if tag == "" {
		return false
	}

	d, ok := e.drafts.GetDraft(id)
	if !ok {
		return false
	}

	for _, existing := range d.Tags {
		if existing == tag {
			return false
		}
	}

	fields := draft.FieldsFromDraft(d)
	fields.Tags = append(fields.Tags, tag)
	e.drafts.CreateDraft(id, fields)

	if err := e.suggestions.StoreTags(model.TagRecords(fields.Tags)); err != nil {
		editorLogger.Warn().Err(err).
			Str("annotation_id", string(id)).
			Msg("Error forwarding tags to suggestion service")
	}

	return true
}

// RemoveTag removes the first exact occurrence of tag from the annotation's
// draft, keeping the remaining tags in order. It returns false, leaving the
// draft untouched, when the tag is not present or the annotation is not
// being edited.
func (e *TagEditor) RemoveTag(id model.AnnotationID, tag string) bool {
	d, ok := e.drafts.GetDraft(id)
	if !ok {
		return false
	}

	index := -1
	for i, existing := range d.Tags {
		if existing == tag {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	fields := draft.FieldsFromDraft(d)
	fields.Tags = append(fields.Tags[:index], fields.Tags[index+1:]...)
	e.drafts.CreateDraft(id, fields)

	return true
}

// SetPending remembers the uncommitted tag input for an annotation.
func (e *TagEditor) SetPending(id model.AnnotationID, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if text == "" {
		delete(e.pending, id)
		return
	}
	e.pending[id] = text
}

// Pending returns the uncommitted tag input for an annotation.
func (e *TagEditor) Pending(id model.AnnotationID) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending[id]
}

// FlushPending commits the uncommitted tag input through AddTag. The buffer
// is consumed either way; a rejected candidate is simply dropped. Flushing
// never blocks a save.
func (e *TagEditor) FlushPending(id model.AnnotationID) bool {
	e.mu.Lock()
	text, ok := e.pending[id]
	delete(e.pending, id)
	e.mu.Unlock()

	if !ok {
		return false
	}
	return e.AddTag(id, text)
}
