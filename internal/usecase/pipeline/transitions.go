package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

const (
	_defaultRejectReason = "rejected by reviewer"

	// bounded parallelism for batch transforms
	_processAllWorkers = 4
)

// Process runs the transform for an inbox item and moves it to
// processed. Transform errors degrade the checks but never block the
// transition. Creators with auto-approval continue straight to queued.
func (uc *PipelineUseCase) Process(ctx context.Context, id uuid.UUID) (*entity.PipelineItem, error) {
	item, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status != entity.StatusInbox {
		return nil, fmt.Errorf("PipelineUseCase - Process: %w: %s", errs.ErrInvalidState, item.Status)
	}

	cfg := uc.creatorConfig(ctx, item.CreatorID)

	summary := uc.transformer.Apply(ctx, item, cfg)

	now := time.Now()
	item.Status = entity.StatusProcessed
	if item.ProcessedAt == nil {
		item.ProcessedAt = &now
	}

	if cfg.AutoApprove {
		item.Status = entity.StatusQueued
		if item.QueuedAt == nil {
			item.QueuedAt = &now
		}
	}

	if err := uc.saveItem(ctx, item); err != nil {
		return nil, err
	}

	uc.appendActivity(ctx, "process", item.ID, map[string]any{
		"status": string(item.Status),
		"errors": summary.Errors,
	})

	return item, nil
}

// ProcessAll applies Process to every inbox item independently, with
// bounded parallelism. A failing item is logged and skipped.
func (uc *PipelineUseCase) ProcessAll(ctx context.Context) (int, error) {
	items, err := uc.itemsByStatus(ctx, entity.StatusInbox)
	if err != nil {
		return 0, err
	}

	var processed atomic.Int64

	g := &errgroup.Group{}
	g.SetLimit(_processAllWorkers)

	for _, item := range items {
		g.Go(func() error {
			if _, err := uc.Process(ctx, item.ID); err != nil {
				uc.logger.Error(err, "PipelineUseCase - ProcessAll - uc.Process")
				return nil
			}
			processed.Add(1)
			return nil
		})
	}

	_ = g.Wait()

	return int(processed.Load()), nil
}

// Approve moves an item to queued, applying optional overrides first.
// An item that never completed transformation gets the lazy catch-up
// transform before queueing.
func (uc *PipelineUseCase) Approve(ctx context.Context, id uuid.UUID, overrides dto.ItemOverrides) (*entity.PipelineItem, error) {
	item, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status != entity.StatusInbox && item.Status != entity.StatusProcessed {
		return nil, fmt.Errorf("PipelineUseCase - Approve: %w: %s", errs.ErrInvalidState, item.Status)
	}

	applyOverrides(item, overrides)

	if item.ProcessedAt == nil {
		cfg := uc.creatorConfig(ctx, item.CreatorID)
		uc.transformer.Apply(ctx, item, cfg)

		now := time.Now()
		item.ProcessedAt = &now
	}

	now := time.Now()
	item.Status = entity.StatusQueued
	if item.QueuedAt == nil {
		item.QueuedAt = &now
	}

	if err := uc.saveItem(ctx, item); err != nil {
		return nil, err
	}

	uc.appendActivity(ctx, "approve", item.ID, map[string]any{
		"tier":        string(item.Tier),
		"scheduledAt": item.ScheduledAt,
	})

	return item, nil
}

// Reject is reachable from any non-terminal status and is terminal. The
// stored asset is kept.
func (uc *PipelineUseCase) Reject(ctx context.Context, id uuid.UUID, reason string) (*entity.PipelineItem, error) {
	item, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status.Terminal() {
		return nil, fmt.Errorf("PipelineUseCase - Reject: %w: %s", errs.ErrInvalidState, item.Status)
	}

	if reason == "" {
		reason = _defaultRejectReason
	}

	item.Status = entity.StatusRejected
	item.RejectReason = reason

	if err := uc.saveItem(ctx, item); err != nil {
		return nil, err
	}

	uc.appendActivity(ctx, "reject", item.ID, map[string]any{"reason": reason})

	return item, nil
}

// Publish creates the catalog entry for a queued item and marks it
// published.
func (uc *PipelineUseCase) Publish(ctx context.Context, id uuid.UUID) (*entity.PipelineItem, error) {
	item, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	return uc.publishItem(ctx, item, true)
}

// PublishAll publishes every queued item independently and returns the
// count of successes.
func (uc *PipelineUseCase) PublishAll(ctx context.Context) (int, error) {
	items, err := uc.itemsByStatus(ctx, entity.StatusQueued)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, item := range items {
		if _, err := uc.publishItem(ctx, item, true); err != nil {
			uc.logger.Error(err, "PipelineUseCase - PublishAll - uc.publishItem")
			continue
		}
		published++
	}

	return published, nil
}

// publishItem performs the queued -> published transition. The status
// check is the concurrency guard against a racing manual publish and
// scheduler sweep: whoever writes first wins, the loser's re-read sees
// published and errors out here without creating a second catalog entry
// (the content key is deterministic per item in any case).
func (uc *PipelineUseCase) publishItem(ctx context.Context, item *entity.PipelineItem, notifyEach bool) (*entity.PipelineItem, error) {
	if item.Status != entity.StatusQueued {
		return nil, fmt.Errorf("PipelineUseCase - publishItem: %w: %s", errs.ErrInvalidState, item.Status)
	}

	entry := &entity.CatalogEntry{
		Title:          item.Title(),
		Tier:           item.Tier,
		Type:           item.MediaType,
		AssetReference: item.StoredAssetKey,
		Tags:           item.Tags,
		Category:       item.Category,
		Source:         item.Source,
		PipelineItemID: item.ID,
		CreatedAt:      time.Now(),
	}

	contentKey, err := uc.catalog.Write(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("PipelineUseCase - publishItem - uc.catalog.Write: %w", err)
	}

	now := time.Now()
	item.Status = entity.StatusPublished
	item.ContentKey = contentKey
	if item.PublishedAt == nil {
		item.PublishedAt = &now
	}

	if err := uc.saveItem(ctx, item); err != nil {
		return nil, err
	}

	uc.appendActivity(ctx, "publish", item.ID, map[string]any{
		"contentKey": contentKey,
		"tier":       string(item.Tier),
	})

	if notifyEach {
		uc.notify(ctx, "content_published", map[string]any{
			"itemId":     item.ID.String(),
			"contentKey": contentKey,
			"title":      entry.Title,
		})
		uc.notify(ctx, "new_content", map[string]any{
			"tier":  string(item.Tier),
			"title": entry.Title,
		})
	}

	return item, nil
}

// SweepDue publishes every queued item whose scheduled time has passed.
// Items are re-read just before publishing so a concurrent manual
// publish turns into a no-op instead of a double publish. One summary
// notification covers the whole sweep.
func (uc *PipelineUseCase) SweepDue(ctx context.Context, now time.Time) (int, error) {
	items, err := uc.itemsByStatus(ctx, entity.StatusQueued)
	if err != nil {
		return 0, err
	}

	published := 0
	var publishedIDs []string

	for _, item := range items {
		if !item.DueAt(now) {
			continue
		}

		fresh, err := uc.getItem(ctx, item.ID)
		if err != nil {
			uc.logger.Error(err, "PipelineUseCase - SweepDue - uc.getItem")
			continue
		}
		if fresh.Status != entity.StatusQueued {
			// someone published it between the listing and now
			continue
		}

		if _, err := uc.publishItem(ctx, fresh, false); err != nil {
			uc.logger.Error(err, "PipelineUseCase - SweepDue - uc.publishItem")
			continue
		}

		published++
		publishedIDs = append(publishedIDs, item.ID.String())
	}

	if published > 0 {
		uc.appendActivity(ctx, "scheduled_publish", uuid.Nil, map[string]any{
			"count": published,
			"items": publishedIDs,
		})
		uc.notify(ctx, "scheduled_publish", map[string]any{
			"count": published,
			"items": publishedIDs,
		})
	}

	return published, nil
}

func applyOverrides(item *entity.PipelineItem, o dto.ItemOverrides) {
	if o.Caption != nil {
		item.Caption = *o.Caption
	}
	if o.Tags != nil {
		item.Tags = o.Tags
	}
	if o.Category != nil {
		item.Category = *o.Category
	}
	if o.Tier != nil {
		item.Tier = entity.Tier(*o.Tier)
	}
	if o.ScheduledAt != nil {
		item.ScheduledAt = o.ScheduledAt
	}
}
