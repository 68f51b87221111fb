package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/internal/repo"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

// Update is a metadata-only mutation; it never touches the status and is
// refused for terminal items.
func (uc *PipelineUseCase) Update(ctx context.Context, id uuid.UUID, fields dto.ItemOverrides) (*entity.PipelineItem, error) {
	item, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status.Terminal() {
		return nil, fmt.Errorf("PipelineUseCase - Update: %w: %s", errs.ErrInvalidState, item.Status)
	}

	if fields.Empty() {
		return item, nil
	}

	applyOverrides(item, fields)

	if err := uc.saveItem(ctx, item); err != nil {
		return nil, err
	}

	uc.appendActivity(ctx, "update", item.ID, map[string]any{
		"tier":        string(item.Tier),
		"scheduledAt": item.ScheduledAt,
	})

	return item, nil
}

// Delete removes the item document and every asset variant. The
// processed variant shares the primary key, so there are exactly two
// keys to clean up; a missing variant (no thumbnail for videos) is not
// an error.
func (uc *PipelineUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := uc.getItem(ctx, id)
	if err != nil {
		return err
	}

	variantKeys := []string{
		item.StoredAssetKey,
		entity.VariantKey(item.StoredAssetKey, entity.VariantThumb),
	}
	for _, key := range variantKeys {
		if err := uc.assets.Delete(ctx, key); err != nil {
			uc.logger.Warn("failed to delete key=%s, error=%v", key, err)
		}
	}

	err = uc.docs.Delete(ctx, repo.NamespacePipeline, id.String())
	if err != nil {
		return fmt.Errorf("PipelineUseCase - Delete - uc.docs.Delete: %w", err)
	}

	uc.appendActivity(ctx, "delete", id, map[string]any{
		"filename": item.Filename,
	})

	return nil
}

// List returns items matching the filter, newest first. The unfiltered
// listing carries a status -> count summary.
func (uc *PipelineUseCase) List(ctx context.Context, filter entity.Status) (*dto.ItemList, error) {
	items, err := uc.loadItems(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	result := &dto.ItemList{Items: make([]*entity.PipelineItem, 0, len(items))}

	if filter == "" {
		result.Items = items
		result.Counts = make(map[entity.Status]int, len(entity.Statuses()))
		for _, status := range entity.Statuses() {
			result.Counts[status] = 0
		}
		for _, item := range items {
			result.Counts[item.Status]++
		}

		return result, nil
	}

	for _, item := range items {
		if item.Status == filter {
			result.Items = append(result.Items, item)
		}
	}

	return result, nil
}

// Asset streams the binary under a key with a content type derived from
// the extension.
func (uc *PipelineUseCase) Asset(ctx context.Context, key string) (io.ReadCloser, string, error) {
	body, err := uc.assets.Download(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("PipelineUseCase - Asset - uc.assets.Download: %w", err)
	}

	return body, entity.ContentTypeForKey(key), nil
}

// Thumbnail resolves the derived thumbnail key first and falls back to
// the primary asset when no thumbnail exists (e.g. videos).
func (uc *PipelineUseCase) Thumbnail(ctx context.Context, key string) (io.ReadCloser, string, error) {
	thumbKey := entity.VariantKey(key, entity.VariantThumb)

	body, err := uc.assets.Download(ctx, thumbKey)
	if err == nil {
		return body, entity.ContentTypeForKey(thumbKey), nil
	}
	if !errors.Is(err, errs.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("PipelineUseCase - Thumbnail - uc.assets.Download: %w", err)
	}

	return uc.Asset(ctx, key)
}
