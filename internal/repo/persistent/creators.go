package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/internal/repo"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

type CreatorConfigRepo struct {
	docs repo.DocStore
}

func NewCreatorConfigRepo(docs repo.DocStore) *CreatorConfigRepo {
	return &CreatorConfigRepo{docs: docs}
}

// Get loads a creator's settings, falling back to defaults when the
// creator has no document of their own.
func (r *CreatorConfigRepo) Get(ctx context.Context, creatorID string) (*entity.CreatorConfig, error) {
	var cfg entity.CreatorConfig

	err := r.docs.Get(ctx, repo.NamespaceCreators, creatorID, &cfg)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return entity.DefaultCreatorConfig(), nil
		}
		return nil, fmt.Errorf("CreatorConfigRepo - Get - r.docs.Get: %w", err)
	}

	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = entity.DefaultCreatorConfig().AllowedExtensions
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = entity.DefaultCreatorConfig().MaxImageBytes
	}
	if cfg.MaxVideoBytes <= 0 {
		cfg.MaxVideoBytes = entity.DefaultCreatorConfig().MaxVideoBytes
	}

	return &cfg, nil
}
