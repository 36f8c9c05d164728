// Package archive mirrors saved annotations to an S3-compatible bucket.
// Each annotation is stored as one JSON object so the bucket doubles as a
// human-readable backup.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/sidenotehq/sidenote/internal/config"
	"github.com/sidenotehq/sidenote/internal/model"
)

var archiveLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	archiveLogger = l
}

// ErrNotArchived is returned when the bucket holds no object for the
// requested annotation.
var ErrNotArchived = errors.New("annotation not archived")

// ObjectAPI is the slice of the S3 client the archive uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3Archive struct { // implements save.Mirror
	client ObjectAPI
	bucket string
	prefix string
}

// NewS3Archive builds an archive over the configured bucket. With an empty
// access key the default AWS credential chain is used; a non-empty endpoint
// switches to path-style addressing for MinIO and friends.
func NewS3Archive(accessKeyID, accessKeySecret string, archiveCfg config.ArchiveConfig) (*S3Archive, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(archiveCfg.Region),
	}
	if accessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing S3 client: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if archiveCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(archiveCfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archive{
		client: client,
		bucket: archiveCfg.Bucket,
		prefix: archiveCfg.Prefix,
	}, nil
}

// archivedAnnotation is the JSON shape written to the bucket. It is kept
// separate from the internal model so stored objects stay stable.
type archivedAnnotation struct {
	ID           string    `json:"id"`
	URI          string    `json:"uri"`
	Group        string    `json:"group"`
	Owner        string    `json:"owner"`
	Text         string    `json:"text"`
	TextHash     string    `json:"text_hash"`
	Tags         []string  `json:"tags"`
	IsPrivate    bool      `json:"is_private"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

func (a *S3Archive) key(id model.AnnotationID) string {
	return a.prefix + string(id) + ".json"
}

// PutAnnotation uploads the annotation, replacing any previous copy.
func (a *S3Archive) PutAnnotation(ctx context.Context, annotation *model.Annotation) error {
	obj := archivedAnnotation{
		ID:           string(annotation.ID),
		URI:          annotation.URI,
		Group:        string(annotation.Group),
		Owner:        string(annotation.Owner),
		Text:         annotation.Text,
		TextHash:     annotation.TextHash,
		Tags:         annotation.Tags,
		IsPrivate:    annotation.IsPrivate,
		CreatedDate:  annotation.CreatedDate,
		ModifiedDate: annotation.ModifiedDate,
	}

	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding annotation %s: %w", annotation.ID, err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(a.key(annotation.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("error uploading annotation %s: %w", annotation.ID, err)
	}

	archiveLogger.Debug().
		Str("annotation_id", string(annotation.ID)).
		Str("key", a.key(annotation.ID)).
		Msg("Annotation archived")

	return nil
}

// GetAnnotation reads the archived copy back. Returns ErrNotArchived when
// the bucket has no object for the id.
func (a *S3Archive) GetAnnotation(ctx context.Context, id model.AnnotationID) (*model.Annotation, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key(id)),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, ErrNotArchived
		}
		return nil, fmt.Errorf("error fetching annotation %s: %w", id, err)
	}
	defer out.Body.Close()

	var obj archivedAnnotation
	if err := json.NewDecoder(out.Body).Decode(&obj); err != nil {
		return nil, fmt.Errorf("error decoding annotation %s: %w", id, err)
	}

	return &model.Annotation{
		ID:           model.AnnotationID(obj.ID),
		URI:          obj.URI,
		Group:        model.GroupID(obj.Group),
		Owner:        model.UserID(obj.Owner),
		Text:         obj.Text,
		TextHash:     obj.TextHash,
		Tags:         obj.Tags,
		IsPrivate:    obj.IsPrivate,
		CreatedDate:  obj.CreatedDate,
		ModifiedDate: obj.ModifiedDate,
	}, nil
}

// ListIDs returns the ids of every archived annotation under the prefix.
func (a *S3Archive) ListIDs(ctx context.Context) ([]model.AnnotationID, error) {
	var ids []model.AnnotationID

	var continuation *string
	for {
		out, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(a.bucket),
			Prefix:            aws.String(a.prefix),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, fmt.Errorf("error listing archive: %w", err)
		}

		for _, entry := range out.Contents {
			key := aws.ToString(entry.Key)
			name := strings.TrimPrefix(key, a.prefix)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			ids = append(ids, model.AnnotationID(strings.TrimSuffix(name, ".json")))
		}

		if out.NextContinuationToken == nil {
			break
		}
		continuation = out.NextContinuationToken
	}

	return ids, nil
}
