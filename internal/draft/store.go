package draft

import "github.com/sidenotehq/sidenote/internal/model"

// Store tracks which annotations are being edited and holds their drafts.
// Implementations must be safe for concurrent use.
type Store interface {
	// GetDraft returns the draft for an annotation. The second return value
	// is false when the annotation is not being edited; that is a normal
	// state, not an error.
	GetDraft(id model.AnnotationID) (Draft, bool)

	// CreateDraft replaces the draft for an annotation with the given
	// fields. There is at most one draft per annotation at a time.
	CreateDraft(id model.AnnotationID, fields Fields)

	// RemoveDraft discards the draft for an annotation. Removing an absent
	// draft is a no-op.
	RemoveDraft(id model.AnnotationID)

	// Subscribe registers fn to be called with the annotation ID whenever
	// that annotation's draft is created, replaced, or removed. The returned
	// function cancels the subscription.
	Subscribe(fn func(model.AnnotationID)) func()
}
