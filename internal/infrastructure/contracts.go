package infrastructure

import (
	"context"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
)

type (
	// ImageProcessor performs the pure image transformations. It reads no
	// external state; identical input bytes and config produce stable
	// output up to encoder nondeterminism.
	ImageProcessor interface {
		Optimize(ctx context.Context, data []byte, cfg dto.TransformConfig) (*dto.OptimizeResult, error)
		Thumbnail(ctx context.Context, data []byte) ([]byte, error)
	}

	// Notifier is the fire-and-forget outbound event port. Callers never
	// treat a notification failure as their own failure.
	Notifier interface {
		Notify(ctx context.Context, eventType string, payload map[string]any) error
	}

	// CatalogWriter turns a published pipeline item into a catalog entry
	// and returns the content key.
	CatalogWriter interface {
		Write(ctx context.Context, entry *entity.CatalogEntry) (string, error)
	}
)
