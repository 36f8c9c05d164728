package model

type GroupID string

// GroupType is the visibility class of a group.
type GroupType string

const (
	GroupPrivate    GroupType = "private"
	GroupRestricted GroupType = "restricted"
	GroupOpen       GroupType = "open"
)

// Group is a read-only container context for annotations.
type Group struct {
	ID   GroupID
	Name string
	Type GroupType
}

// WorldReadable reports whether annotations shared to this group are visible
// beyond its members. World-readable groups carry the content license notice.
func (g *Group) WorldReadable() bool {
	return g.Type != GroupPrivate
}
