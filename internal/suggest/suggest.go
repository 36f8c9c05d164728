// Package suggest maintains the tag vocabulary behind the editor's tag
// autocomplete. The editor forwards an annotation's entire tag list after
// every change; the service counts uses and answers prefix queries.
package suggest

import (
	"github.com/rs/zerolog"

	"github.com/sidenotehq/sidenote/internal/model"
)

var suggestLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	suggestLogger = l
}

// DefaultFilterLimit caps Filter results when the caller passes no limit.
const DefaultFilterLimit = 10

// Service records tag usage and serves completions.
type Service interface {
	// StoreTags records one use of every tag in the sequence.
	StoreTags(records []model.Tag) error

	// Filter returns up to limit known tags with the given prefix, most
	// used first. A non-positive limit falls back to DefaultFilterLimit.
	Filter(prefix string, limit int) ([]string, error)
}
