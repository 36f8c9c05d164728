// Package repository persists annotations and keeps a warm in-memory view
// of them for page serving.
package repository

import (
	"github.com/rs/zerolog"

	"github.com/sidenotehq/sidenote/internal/model"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

type AnnotationRepository interface {
	Init()
	GetAnnotations() ([]model.Annotation, map[string]*model.Annotation, error)
	GetAnnotationList() []model.Annotation
	ReadAnnotation(id model.AnnotationID) (*model.Annotation, error)
	NewAnnotation() *model.Annotation
	SaveAnnotation(annotation *model.Annotation) error
	SetAnnotationContent(annotation *model.Annotation) error
	DeleteAnnotation(id model.AnnotationID) error
	ReloadAnnotations()

	// SetReloadNotifier sets a function that will be called when an
	// annotation changes underneath the current process.
	SetReloadNotifier(notifier func(model.AnnotationID))
}
