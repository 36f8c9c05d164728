package suggest

import (
	"fmt"
	"strings"
	"time"

	"github.com/sidenotehq/sidenote/internal/db"
	"github.com/sidenotehq/sidenote/internal/model"
)

type DBSuggestionService struct { // implements Service
	db db.DB
}

func NewDBSuggestionService(db db.DB) *DBSuggestionService {
	return &DBSuggestionService{
		db: db,
	}
}

// StoreTags upserts one use per record. Tags already in the vocabulary get
// their use count bumped and their last_used refreshed.
func (s *DBSuggestionService) StoreTags(records []model.Tag) error {
	now := time.Now().UTC()

	for _, record := range records {
		_, err := s.db.Exec(
			`INSERT INTO tag_suggestions (tag, uses, last_used) VALUES (?, 1, ?)
			 ON CONFLICT(tag) DO UPDATE SET uses = uses + 1, last_used = excluded.last_used`,
			record.Text, now,
		)
		if err != nil {
			return fmt.Errorf("error recording tag %q: %w", record.Text, err)
		}
	}

	return nil
}

// Filter returns known tags starting with prefix, case-insensitively, most
// used first with ties broken alphabetically.
func (s *DBSuggestionService) Filter(prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultFilterLimit
	}

	rows, err := s.db.Query(
		`SELECT tag FROM tag_suggestions
		 WHERE lower(tag) LIKE ? ESCAPE '\'
		 ORDER BY uses DESC, tag ASC
		 LIMIT ?`,
		escapeLike(strings.ToLower(prefix))+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying tag suggestions: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0, limit)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("error scanning tag suggestion: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// escapeLike protects LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
