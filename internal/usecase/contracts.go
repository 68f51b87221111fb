package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
)

type (
	// Pipeline is the full surface of the content pipeline: ingest,
	// state-machine transitions with batch variants, the scheduled
	// sweep, metadata maintenance and asset serving.
	Pipeline interface {
		Ingest(ctx context.Context, in dto.IngestInput) (*entity.PipelineItem, error)

		Process(ctx context.Context, id uuid.UUID) (*entity.PipelineItem, error)
		ProcessAll(ctx context.Context) (int, error)
		Approve(ctx context.Context, id uuid.UUID, overrides dto.ItemOverrides) (*entity.PipelineItem, error)
		Reject(ctx context.Context, id uuid.UUID, reason string) (*entity.PipelineItem, error)
		Publish(ctx context.Context, id uuid.UUID) (*entity.PipelineItem, error)
		PublishAll(ctx context.Context) (int, error)

		Update(ctx context.Context, id uuid.UUID, fields dto.ItemOverrides) (*entity.PipelineItem, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter entity.Status) (*dto.ItemList, error)

		SweepDue(ctx context.Context, now time.Time) (int, error)

		Asset(ctx context.Context, key string) (io.ReadCloser, string, error)
		Thumbnail(ctx context.Context, key string) (io.ReadCloser, string, error)
	}

	// Transformer applies the media transform to one item, mutating its
	// checks and processing summary in place. It never fails the owning
	// transition: all errors end up in the returned summary.
	Transformer interface {
		Apply(ctx context.Context, item *entity.PipelineItem, cfg *entity.CreatorConfig) *entity.TransformSummary
	}
)
