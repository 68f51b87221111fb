package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/internal/repo"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

// Ingest validates a new upload and creates the initial pipeline item.
// The extension and size checks are independent; when both fail the
// caller gets both failures in one ValidationError and nothing is
// persisted.
func (uc *PipelineUseCase) Ingest(ctx context.Context, in dto.IngestInput) (*entity.PipelineItem, error) {
	if in.Filename == "" {
		return nil, fmt.Errorf("PipelineUseCase - Ingest: %w: filename", errs.ErrMissingField)
	}

	cfg := uc.creatorConfig(ctx, in.CreatorID)

	ext := strings.ToLower(filepath.Ext(in.Filename))
	mediaType := entity.MediaTypeForExtension(ext)

	var failures []error
	if !cfg.AllowsExtension(ext) {
		failures = append(failures, fmt.Errorf("%w: %q", errs.ErrInvalidFileType, ext))
	}
	if limit := cfg.MaxBytesFor(mediaType); in.Size > limit {
		failures = append(failures, fmt.Errorf("%w: %d bytes over the %d byte %s limit",
			errs.ErrFileTooLarge, in.Size, limit, mediaType))
	}
	if len(failures) > 0 {
		return nil, &errs.ValidationError{Failures: failures}
	}

	id := uuid.New()
	assetKey := entity.AssetKey(id, ext)

	// 1. persist the raw payload (metadata-only ingest skips this)
	if in.Data != nil {
		err := uc.assets.UploadBytes(ctx, assetKey, in.Data, entity.ContentTypeForKey(assetKey))
		if err != nil {
			return nil, fmt.Errorf("PipelineUseCase - Ingest - uc.assets.UploadBytes: %w", err)
		}
	}

	tier := entity.Tier(in.Tier)
	if tier == "" {
		tier = entity.TierFree
	}

	item := &entity.PipelineItem{
		ID:             id,
		CreatorID:      in.CreatorID,
		Status:         entity.StatusInbox,
		Filename:       in.Filename,
		MediaType:      mediaType,
		FileExtension:  ext,
		FileSize:       in.Size,
		StoredAssetKey: assetKey,
		Checks: entity.Checks{
			FileTypeValid: true,
			FileSizeValid: true,
		},
		Caption:     in.Caption,
		Tags:        in.Tags,
		Category:    in.Category,
		Tier:        tier,
		Source:      in.Source,
		ScheduledAt: in.ScheduledAt,
		CreatedAt:   time.Now(),
	}

	// 2. item + activity record in a single transaction
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.docs.Set(ctx, repo.NamespacePipeline, id.String(), item); err != nil {
			return fmt.Errorf("PipelineUseCase - Ingest - uc.docs.Set: %w", err)
		}

		logKey, record := activityDoc("ingest", id, map[string]any{
			"filename":  in.Filename,
			"mediaType": string(mediaType),
			"size":      in.Size,
		})
		if err := uc.docs.Set(ctx, repo.NamespaceLogs, logKey, record); err != nil {
			return fmt.Errorf("PipelineUseCase - Ingest - uc.docs.Set(log): %w", err)
		}

		return nil
	})

	// if the transaction failed
	if err != nil {
		// remove the already stored payload
		if in.Data != nil {
			deleteErr := uc.assets.Delete(ctx, assetKey)
			if deleteErr != nil {
				uc.logger.Error(deleteErr, "PipelineUseCase - Ingest - uc.assets.Delete")
			}
		}
		return nil, fmt.Errorf("PipelineUseCase - Ingest - uc.transactor.WithinTransaction: %w", err)
	}

	// 3. best-effort ingest event
	uc.notify(ctx, "content_ingested", map[string]any{
		"itemId":    id.String(),
		"creatorId": in.CreatorID,
		"filename":  in.Filename,
		"mediaType": string(mediaType),
	})

	return item, nil
}
