package editor

import (
	"context"

	"github.com/sidenotehq/sidenote/internal/draft"
	"github.com/sidenotehq/sidenote/internal/key"
	"github.com/sidenotehq/sidenote/internal/model"
)

// Shortcut routes keyboard events in the editor. Save chords trigger a save
// and are consumed; everything else passes through to the client's default
// handling.
type Shortcut struct {
	drafts draft.Store
	saver  *Saver
	keymap key.Keymap
}

func NewShortcut(drafts draft.Store, saver *Saver, keymap key.Keymap) *Shortcut {
	return &Shortcut{
		drafts: drafts,
		saver:  saver,
		keymap: keymap,
	}
}

// Handle processes one key event for the annotation's editing session. The
// returned bool reports whether the event was consumed; a consumed event
// must not reach the client's default handling.
//
// An event on an empty draft, blank text and no tags, is never consumed and
// triggers nothing, whatever the chord. Key events for annotations that are
// not being edited pass through as well.
func (s *Shortcut) Handle(ctx context.Context, ev key.Event, annotation *model.Annotation) bool {
	d, ok := s.drafts.GetDraft(annotation.ID)
	if !ok || d.IsEmpty() {
		return false
	}

	if !s.keymap.MatchesSave(ev) {
		return false
	}

	s.saver.Save(ctx, annotation)
	return true
}
