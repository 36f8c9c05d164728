package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sidenotehq/sidenote/internal/cache"
	"github.com/sidenotehq/sidenote/internal/db"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/util"
	"github.com/sidenotehq/sidenote/internal/util/compression"
)

const reloadInterval = 10 * time.Second

type DBAnnotationRepository struct { // implements AnnotationRepository
	annotationsCache  *cache.Cache[string, *model.Annotation]
	annotationsSorted []model.Annotation

	reloadNotifier   func(model.AnnotationID)
	lastModifiedTime *time.Time

	// Guards annotationsSorted and lastModifiedTime against the reload loop.
	mu sync.RWMutex

	db         db.DB
	compressor compression.Compressor
}

func NewDBAnnotationRepository(db db.DB) *DBAnnotationRepository {
	return &DBAnnotationRepository{
		annotationsCache: cache.NewCache[string, *model.Annotation](),

		db: db,

		compressor: compression.NewZstdCompressor(),
	}
}

func (r *DBAnnotationRepository) Init() {
	annotations, annotationMap, err := r.GetAnnotations()
	if err != nil {
		repoLogger.Fatal().Err(err).Msg("Error initializing annotations")
	}

	r.setCached(annotations, annotationMap)

	go r.ReloadAnnotations()
}

func (r *DBAnnotationRepository) GetLatestModifiedTime() (*time.Time, error) {
	var latestTimeStr sql.NullString
	row := r.db.Get().QueryRow(`SELECT MAX(modified_at) FROM annotations`)
	err := row.Scan(&latestTimeStr)
	if err != nil {
		return nil, fmt.Errorf("error scanning latest modified time: %w", err)
	}

	if !latestTimeStr.Valid {
		return nil, nil // No annotations or no valid timestamps.
	}

	// The go-sqlite3 driver returns a string for MAX(), so we must parse it.
	timeFormats := []string{
		"2006-01-02 15:04:05.999999999-07:00", // Space separator with timezone
		time.RFC3339Nano,
		time.RFC3339,
	}

	var latestTime time.Time
	var parseErr error
	for _, format := range timeFormats {
		latestTime, parseErr = time.Parse(format, latestTimeStr.String)
		if parseErr == nil {
			return &latestTime, nil
		}
	}

	return nil, fmt.Errorf("error parsing latest modified time '%s' with any known format: %w", latestTimeStr.String, parseErr)
}

func (r *DBAnnotationRepository) GetAnnotations() ([]model.Annotation, map[string]*model.Annotation, error) {
	rows, err := r.db.Query(`SELECT id, uri, group_id, owner, text, text_hash, tags, is_private, created_at, modified_at FROM annotations`)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying annotations: %w", err)
	}
	defer rows.Close()

	annotations := make([]model.Annotation, 0)
	annotationMap := make(map[string]*model.Annotation)
	var latestModTime *time.Time

	for rows.Next() {
		var annotation model.Annotation
		var compressed []byte
		var tagsJSON sql.NullString

		err := rows.Scan(
			&annotation.ID, &annotation.URI, &annotation.Group, &annotation.Owner,
			&compressed, &annotation.TextHash, &tagsJSON, &annotation.IsPrivate,
			&annotation.CreatedDate, &annotation.ModifiedDate,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning annotation: %w", err)
		}

		if latestModTime == nil || annotation.ModifiedDate.After(*latestModTime) {
			latestModTime = &annotation.ModifiedDate
		}

		text, err := r.compressor.Decompress(compressed)
		if err != nil {
			return nil, nil, fmt.Errorf("error decompressing annotation text: %w", err)
		}
		annotation.Text = string(text)

		if tagsJSON.Valid && tagsJSON.String != "" {
			if err := json.Unmarshal([]byte(tagsJSON.String), &annotation.Tags); err != nil {
				return nil, nil, fmt.Errorf("error decoding annotation tags: %w", err)
			}
		}

		annotations = append(annotations, annotation)
		annotationMap[string(annotation.ID)] = &annotation
	}

	r.mu.Lock()
	r.lastModifiedTime = latestModTime
	r.mu.Unlock()

	slices.SortStableFunc(annotations, func(a, b model.Annotation) int {
		return -a.ModifiedDate.Compare(b.ModifiedDate)
	})

	return annotations, annotationMap, nil
}

func (r *DBAnnotationRepository) GetAnnotationList() []model.Annotation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.annotationsSorted
}

func (r *DBAnnotationRepository) ReadAnnotation(id model.AnnotationID) (*model.Annotation, error) {
	annotation, ok := r.annotationsCache.Get(string(id))
	if !ok {
		return nil, fmt.Errorf("annotation not found: %s", id)
	}
	return annotation, nil
}

func (r *DBAnnotationRepository) ReloadAnnotations() {
	for {
		time.Sleep(reloadInterval)

		// Lightweight check first: skip the full reload when nothing moved.
		latestTime, err := r.GetLatestModifiedTime()
		if err != nil {
			repoLogger.Error().Err(err).Msg("Error checking latest modification time")
			continue
		}

		r.mu.RLock()
		lastKnown := r.lastModifiedTime
		r.mu.RUnlock()

		if lastKnown != nil && latestTime != nil && !latestTime.After(*lastKnown) {
			repoLogger.Debug().Msg("No annotations modified, skipping reload")
			continue
		}

		repoLogger.Debug().Msg("Annotations may have changed, performing full reload")

		annotations, annotationMap, err := r.GetAnnotations()
		if err != nil {
			repoLogger.Error().Err(err).Msg("Error reloading annotations")
			continue
		}

		hasChanges := false

		cached := make(map[string]*model.Annotation)
		r.mu.RLock()
		for i := range r.annotationsSorted {
			cached[string(r.annotationsSorted[i].ID)] = &r.annotationsSorted[i]
		}
		previousCount := len(r.annotationsSorted)
		r.mu.RUnlock()

		for _, fresh := range annotations {
			if known, exists := cached[string(fresh.ID)]; exists {
				if fresh.TextHash != known.TextHash {
					hasChanges = true
					repoLogger.Info().
						Str("annotation_id", string(fresh.ID)).
						Msg("Annotation content changed, reloading")
					if r.reloadNotifier != nil {
						go r.reloadNotifier(fresh.ID)
					}
				}
			} else {
				hasChanges = true
				repoLogger.Info().
					Str("annotation_id", string(fresh.ID)).
					Msg("New annotation detected")
			}
		}

		if len(annotations) != previousCount {
			hasChanges = true
			repoLogger.Info().Msg("Number of annotations changed")
		}

		if hasChanges {
			repoLogger.Info().Msg("Annotations have changed, updating cache")
			r.setCached(annotations, annotationMap)
		}
	}
}

func (r *DBAnnotationRepository) SetReloadNotifier(notifier func(model.AnnotationID)) {
	r.reloadNotifier = notifier
}

func (r *DBAnnotationRepository) NewAnnotation() *model.Annotation {
	now := time.Now().UTC()

	return &model.Annotation{
		ID: model.AnnotationID(uuid.New().String()),

		CreatedDate:  now,
		ModifiedDate: now,
	}
}

// SaveAnnotation inserts a new annotation and makes it visible to readers
// immediately, without waiting for the reload loop.
func (r *DBAnnotationRepository) SaveAnnotation(annotation *model.Annotation) error {
	compressed, tagsJSON, err := r.encode(annotation)
	if err != nil {
		return err
	}

	res, err := r.db.Exec(
		`INSERT INTO annotations (id, uri, group_id, owner, text, text_hash, tags, is_private, created_at, modified_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		annotation.ID, annotation.URI, annotation.Group, annotation.Owner,
		compressed, annotation.TextHash, tagsJSON, annotation.IsPrivate,
		annotation.CreatedDate, annotation.ModifiedDate,
	)
	if err != nil {
		return fmt.Errorf("error saving annotation: %w", err)
	}

	repoLogger.Debug().Interface("result", res).Msg("Annotation saved")

	r.cacheUpsert(annotation)

	return nil
}

// SetAnnotationContent updates an existing annotation in place.
func (r *DBAnnotationRepository) SetAnnotationContent(annotation *model.Annotation) error {
	compressed, tagsJSON, err := r.encode(annotation)
	if err != nil {
		return err
	}

	annotation.ModifiedDate = time.Now().UTC()

	res, err := r.db.Exec(
		`UPDATE annotations SET uri = ?, group_id = ?, text = ?, text_hash = ?, tags = ?, is_private = ?, modified_at = ? WHERE id = ?`,
		annotation.URI, annotation.Group, compressed, annotation.TextHash,
		tagsJSON, annotation.IsPrivate, annotation.ModifiedDate, annotation.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating annotation: %w", err)
	}

	repoLogger.Debug().Interface("result", res).Msg("Annotation content set")

	r.cacheUpsert(annotation)

	return nil
}

func (r *DBAnnotationRepository) DeleteAnnotation(id model.AnnotationID) error {
	_, err := r.db.Exec(`DELETE FROM annotations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting annotation: %w", err)
	}

	r.annotationsCache.Delete(string(id))

	r.mu.Lock()
	r.annotationsSorted = slices.DeleteFunc(slices.Clone(r.annotationsSorted), func(a model.Annotation) bool {
		return a.ID == id
	})
	r.mu.Unlock()

	return nil
}

// encode compresses the annotation text, refreshes the content hash, and
// serializes the tag list.
func (r *DBAnnotationRepository) encode(annotation *model.Annotation) (compressed []byte, tagsJSON string, err error) {
	compressed, err = r.compressor.Compress([]byte(annotation.Text))
	if err != nil {
		return nil, "", fmt.Errorf("error compressing annotation text: %w", err)
	}

	annotation.TextHash = util.ContentHash(compressed)

	tags := annotation.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, "", fmt.Errorf("error encoding annotation tags: %w", err)
	}

	return compressed, string(encoded), nil
}

func (r *DBAnnotationRepository) setCached(annotations []model.Annotation, annotationMap map[string]*model.Annotation) {
	r.mu.Lock()
	r.annotationsSorted = annotations
	r.mu.Unlock()

	r.annotationsCache.SetTo(annotationMap)
}

// cacheUpsert folds a single saved annotation into the warm view.
func (r *DBAnnotationRepository) cacheUpsert(annotation *model.Annotation) {
	copied := *annotation
	r.annotationsCache.Set(string(annotation.ID), &copied)

	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := slices.DeleteFunc(slices.Clone(r.annotationsSorted), func(a model.Annotation) bool {
		return a.ID == annotation.ID
	})
	sorted = append(sorted, copied)
	slices.SortStableFunc(sorted, func(a, b model.Annotation) int {
		return -a.ModifiedDate.Compare(b.ModifiedDate)
	})
	r.annotationsSorted = sorted

	if r.lastModifiedTime == nil || copied.ModifiedDate.After(*r.lastModifiedTime) {
		r.lastModifiedTime = &copied.ModifiedDate
	}
}
