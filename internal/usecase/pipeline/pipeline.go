package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/internal/infrastructure"
	"github.com/inkedmayhem/content-pipeline/internal/repo"
	"github.com/inkedmayhem/content-pipeline/internal/usecase"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
)

const _notifyTimeout = 3 * time.Second

type PipelineUseCase struct {
	docs        repo.DocStore
	assets      repo.AssetStore
	creators    repo.CreatorConfigs
	transactor  repo.Transactor
	transformer usecase.Transformer
	notifier    infrastructure.Notifier
	catalog     infrastructure.CatalogWriter

	logger logger.Interface
}

func New(
	docs repo.DocStore,
	assets repo.AssetStore,
	creators repo.CreatorConfigs,
	transactor repo.Transactor,
	transformer usecase.Transformer,
	notifier infrastructure.Notifier,
	catalog infrastructure.CatalogWriter,
	l logger.Interface,
) *PipelineUseCase {
	return &PipelineUseCase{
		docs:        docs,
		assets:      assets,
		creators:    creators,
		transactor:  transactor,
		transformer: transformer,
		notifier:    notifier,
		catalog:     catalog,
		logger:      l,
	}
}

func (uc *PipelineUseCase) getItem(ctx context.Context, id uuid.UUID) (*entity.PipelineItem, error) {
	var item entity.PipelineItem

	err := uc.docs.Get(ctx, repo.NamespacePipeline, id.String(), &item)
	if err != nil {
		return nil, fmt.Errorf("PipelineUseCase - getItem - uc.docs.Get: %w", err)
	}

	return &item, nil
}

func (uc *PipelineUseCase) saveItem(ctx context.Context, item *entity.PipelineItem) error {
	err := uc.docs.Set(ctx, repo.NamespacePipeline, item.ID.String(), item)
	if err != nil {
		return fmt.Errorf("PipelineUseCase - saveItem - uc.docs.Set: %w", err)
	}

	return nil
}

// loadItems reads every item in the pipeline namespace. A single
// unreadable document is skipped, not fatal to the listing.
func (uc *PipelineUseCase) loadItems(ctx context.Context) ([]*entity.PipelineItem, error) {
	keys, err := uc.docs.List(ctx, repo.NamespacePipeline)
	if err != nil {
		return nil, fmt.Errorf("PipelineUseCase - loadItems - uc.docs.List: %w", err)
	}

	items := make([]*entity.PipelineItem, 0, len(keys))
	for _, key := range keys {
		var item entity.PipelineItem
		if err := uc.docs.Get(ctx, repo.NamespacePipeline, key, &item); err != nil {
			uc.logger.Warn("failed to load pipeline item key=%s, error=%v", key, err)
			continue
		}
		items = append(items, &item)
	}

	return items, nil
}

func (uc *PipelineUseCase) itemsByStatus(ctx context.Context, status entity.Status) ([]*entity.PipelineItem, error) {
	items, err := uc.loadItems(ctx)
	if err != nil {
		return nil, err
	}

	filtered := items[:0]
	for _, item := range items {
		if item.Status == status {
			filtered = append(filtered, item)
		}
	}

	return filtered, nil
}

func (uc *PipelineUseCase) creatorConfig(ctx context.Context, creatorID string) *entity.CreatorConfig {
	cfg, err := uc.creators.Get(ctx, creatorID)
	if err != nil {
		uc.logger.Error(err, "PipelineUseCase - creatorConfig - uc.creators.Get")

		return entity.DefaultCreatorConfig()
	}

	return cfg
}

func activityDoc(action string, itemID uuid.UUID, details map[string]any) (string, *entity.ActivityRecord) {
	now := time.Now()
	key := fmt.Sprintf("%020d-%s", now.UnixNano(), uuid.NewString())

	return key, &entity.ActivityRecord{
		Action:    action,
		ItemID:    itemID,
		Details:   details,
		Timestamp: now,
	}
}

// appendActivity writes the audit record; the log is advisory, so a
// failed append is logged and swallowed.
func (uc *PipelineUseCase) appendActivity(ctx context.Context, action string, itemID uuid.UUID, details map[string]any) {
	key, record := activityDoc(action, itemID, details)

	err := uc.docs.Set(ctx, repo.NamespaceLogs, key, record)
	if err != nil {
		uc.logger.Error(err, "PipelineUseCase - appendActivity - uc.docs.Set")
	}
}

// notify is fire-and-forget: a short timeout and a log line on failure,
// never an error to the caller.
func (uc *PipelineUseCase) notify(ctx context.Context, eventType string, payload map[string]any) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), _notifyTimeout)
	defer cancel()

	err := uc.notifier.Notify(notifyCtx, eventType, payload)
	if err != nil {
		uc.logger.Warn("notification %s failed: %v", eventType, err)
	}
}
