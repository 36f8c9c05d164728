// Package group resolves annotation groups. Group type decides visibility:
// annotations shared to a non-private group are world readable, which the
// editor surfaces as a licensing notice.
package group

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/sidenotehq/sidenote/internal/model"
)

var groupLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	groupLogger = l
}

// Lookup resolves groups by ID.
type Lookup interface {
	// GetGroup returns the group, if known. False means the ID does not
	// resolve to any group.
	GetGroup(id model.GroupID) (model.Group, bool)
}

// MapLookup is a fixed in-memory Lookup.
type MapLookup struct {
	groups map[model.GroupID]model.Group
	mu     sync.RWMutex
}

func NewMapLookup() *MapLookup {
	return &MapLookup{
		groups: make(map[model.GroupID]model.Group),
	}
}

func (l *MapLookup) GetGroup(id model.GroupID) (model.Group, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.groups[id]
	return g, ok
}

func (l *MapLookup) SetGroup(g model.Group) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.groups[g.ID] = g
}
