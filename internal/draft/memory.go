package draft

import (
	"sync"

	"github.com/sidenotehq/sidenote/internal/model"
)

type subscriber struct {
	fn func(model.AnnotationID)
}

// MemoryStore is an in-memory Store. Drafts live for the duration of the
// process; a restart discards all pending edits.
type MemoryStore struct {
	drafts      map[model.AnnotationID]Draft
	subscribers map[*subscriber]bool
	mu          sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts:      make(map[model.AnnotationID]Draft),
		subscribers: make(map[*subscriber]bool),
	}
}

// GetDraft returns a copy of the stored draft. The tag slice is cloned so
// callers cannot mutate store state through the returned value.
func (s *MemoryStore) GetDraft(id model.AnnotationID) (Draft, bool) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()

	if !ok {
		return Draft{}, false
	}
	d.Tags = cloneTags(d.Tags)
	return d, true
}

// CreateDraft replaces the annotation's draft with the given fields and
// notifies subscribers. The fields' tag slice is cloned on the way in, so
// later mutations by the caller do not leak into the store.
func (s *MemoryStore) CreateDraft(id model.AnnotationID, fields Fields) {
	s.mu.Lock()
	s.drafts[id] = Draft{
		Annotation: id,
		Text:       fields.Text,
		Tags:       cloneTags(fields.Tags),
		IsPrivate:  fields.IsPrivate,
	}
	s.mu.Unlock()

	s.notify(id)
}

// RemoveDraft discards the annotation's draft if present. Subscribers are
// only notified when a draft was actually removed.
func (s *MemoryStore) RemoveDraft(id model.AnnotationID) {
	s.mu.Lock()
	_, existed := s.drafts[id]
	delete(s.drafts, id)
	s.mu.Unlock()

	if existed {
		s.notify(id)
	}
}

// Subscribe registers a change callback. Callbacks run synchronously on the
// goroutine that mutated the store, after the lock is released.
func (s *MemoryStore) Subscribe(fn func(model.AnnotationID)) func() {
	sub := &subscriber{fn: fn}

	s.mu.Lock()
	s.subscribers[sub] = true
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, sub)
		s.mu.Unlock()
	}
}

func (s *MemoryStore) notify(id model.AnnotationID) {
	s.mu.RLock()
	fns := make([]func(model.AnnotationID), 0, len(s.subscribers))
	for sub := range s.subscribers {
		fns = append(fns, sub.fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(id)
	}
}
