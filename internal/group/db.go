package group

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sidenotehq/sidenote/internal/db"
	"github.com/sidenotehq/sidenote/internal/model"
)

// DefaultGroupID is the group annotations land in when no group is chosen.
const DefaultGroupID = model.GroupID("public")

type DBGroupLookup struct { // implements Lookup
	db db.DB
}

func NewDBGroupLookup(db db.DB) *DBGroupLookup {
	return &DBGroupLookup{
		db: db,
	}
}

// EnsureDefaultGroup seeds the world-readable default group. Existing rows
// are left alone.
func (l *DBGroupLookup) EnsureDefaultGroup() error {
	_, err := l.db.Exec(
		`INSERT OR IGNORE INTO groups (id, name, type, created_at) VALUES (?, ?, ?, ?)`,
		DefaultGroupID, "Public", model.GroupOpen, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error seeding default group: %w", err)
	}
	return nil
}

func (l *DBGroupLookup) GetGroup(id model.GroupID) (model.Group, bool) {
	var g model.Group
	row := l.db.Get().QueryRow(`SELECT id, name, type FROM groups WHERE id = ?`, id)
	err := row.Scan(&g.ID, &g.Name, &g.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Group{}, false
	}
	if err != nil {
		groupLogger.Error().Err(err).Str("group_id", string(id)).Msg("Error reading group")
		return model.Group{}, false
	}
	return g, true
}

// CreateGroup inserts a new group.
func (l *DBGroupLookup) CreateGroup(g model.Group) error {
	_, err := l.db.Exec(
		`INSERT INTO groups (id, name, type, created_at) VALUES (?, ?, ?, ?)`,
		g.ID, g.Name, g.Type, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error creating group %q: %w", g.ID, err)
	}
	return nil
}
