package editor

import (
	"context"

	"github.com/sidenotehq/sidenote/internal/config"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/notify"
	"github.com/sidenotehq/sidenote/internal/save"
)

// Saver orchestrates a save of the annotation being edited.
type Saver struct {
	tags          *TagEditor
	service       save.Service
	notifications notify.Sink
}

func NewSaver(tags *TagEditor, service save.Service, notifications notify.Sink) *Saver {
	return &Saver{
		tags:          tags,
		service:       service,
		notifications: notifications,
	}
}

// Save flushes any uncommitted tag input and commits the annotation's draft
// through the save service. The flush is best effort and never prevents the
// save from running.
//
// A failed save raises exactly one user-facing notification and leaves the
// draft in place; there is no retry. The return value reports success.
func (s *Saver) Save(ctx context.Context, annotation *model.Annotation) bool {
	s.tags.FlushPending(annotation.ID)

	if err := s.service.Save(ctx, annotation); err != nil {
		editorLogger.Error().Err(err).
			Str("annotation_id", string(annotation.ID)).
			Msg("Error saving annotation")
		s.notifications.Error(annotation.ID, config.MsgSavingAnnotationFailed)
		return false
	}

	return true
}
