package save

import (
	"context"
	"fmt"
	"time"

	"github.com/sidenotehq/sidenote/internal/draft"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/repository"
)

const mirrorTimeout = 10 * time.Second

// RepositoryService saves annotations through the annotation repository.
// The draft store is consulted at save time, so the newest editing state
// wins even when requests overlap.
type RepositoryService struct { // implements Service
	repo   repository.AnnotationRepository
	drafts draft.Store

	// Optional. Saved annotations are mirrored in the background.
	mirror Mirror
}

func NewRepositoryService(repo repository.AnnotationRepository, drafts draft.Store) *RepositoryService {
	return &RepositoryService{
		repo:   repo,
		drafts: drafts,
	}
}

// SetMirror enables background archival of saved annotations.
func (s *RepositoryService) SetMirror(mirror Mirror) {
	s.mirror = mirror
}

// Save folds the annotation's draft over its stored state and persists the
// result. On success the draft is discarded; on failure it is kept intact.
func (s *RepositoryService) Save(ctx context.Context, annotation *model.Annotation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("error saving annotation: %w", err)
	}

	// Work on a copy so a failed save leaves the caller's annotation and
	// the repository's warm view untouched.
	work := *annotation

	if d, ok := s.drafts.GetDraft(work.ID); ok {
		work.Text = d.Text
		work.Tags = d.Tags
		work.IsPrivate = d.IsPrivate
	}

	_, err := s.repo.ReadAnnotation(work.ID)
	if err != nil {
		err = s.repo.SaveAnnotation(&work)
	} else {
		err = s.repo.SetAnnotationContent(&work)
	}
	if err != nil {
		return fmt.Errorf("error persisting annotation %s: %w", work.ID, err)
	}

	s.drafts.RemoveDraft(work.ID)

	if s.mirror != nil {
		saved := work
		go func() {
			mirrorCtx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
			defer cancel()
			if err := s.mirror.PutAnnotation(mirrorCtx, &saved); err != nil {
				saveLogger.Error().Err(err).
					Str("annotation_id", string(saved.ID)).
					Msg("Error mirroring annotation")
			}
		}()
	}

	saveLogger.Info().
		Str("annotation_id", string(work.ID)).
		Msg("Annotation saved")

	return nil
}
