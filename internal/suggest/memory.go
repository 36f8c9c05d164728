package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/sidenotehq/sidenote/internal/model"
)

// MemorySuggestionService keeps the tag vocabulary in process memory. It
// serves single-user setups that run without persistence; counts reset on
// restart.
type MemorySuggestionService struct { // implements Service
	uses map[string]int
	mu   sync.RWMutex
}

func NewMemorySuggestionService() *MemorySuggestionService {
	return &MemorySuggestionService{
		uses: make(map[string]int),
	}
}

func (s *MemorySuggestionService) StoreTags(records []model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		s.uses[record.Text]++
	}
	return nil
}

func (s *MemorySuggestionService) Filter(prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultFilterLimit
	}
	prefix = strings.ToLower(prefix)

	s.mu.RLock()
	matches := make([]string, 0, len(s.uses))
	for tag := range s.uses {
		if strings.HasPrefix(strings.ToLower(tag), prefix) {
			matches = append(matches, tag)
		}
	}
	counts := make(map[string]int, len(matches))
	for _, tag := range matches {
		counts[tag] = s.uses[tag]
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if counts[matches[i]] != counts[matches[j]] {
			return counts[matches[i]] > counts[matches[j]]
		}
		return matches[i] < matches[j]
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
