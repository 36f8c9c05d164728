// Package save commits annotation drafts to durable storage. Saving is the
// only path that discards a draft: the draft survives any failure so the
// user's work is never lost.
package save

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sidenotehq/sidenote/internal/model"
)

var saveLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	saveLogger = l
}

// Service persists the current editing state of an annotation.
type Service interface {
	Save(ctx context.Context, annotation *model.Annotation) error
}

// Mirror receives a copy of every successfully saved annotation, for
// off-site archival.
type Mirror interface {
	PutAnnotation(ctx context.Context, annotation *model.Annotation) error
}
