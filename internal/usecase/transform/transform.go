package transform

import (
	"context"
	"time"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/internal/infrastructure"
	"github.com/inkedmayhem/content-pipeline/internal/repo"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
)

type TransformUseCase struct {
	assets    repo.AssetStore
	processor infrastructure.ImageProcessor

	logger logger.Interface
}

func New(
	assets repo.AssetStore,
	processor infrastructure.ImageProcessor,
	l logger.Interface,
) *TransformUseCase {
	return &TransformUseCase{
		assets:    assets,
		processor: processor,
		logger:    l,
	}
}

// Apply runs the configured transform steps for one item. The processed
// variant overwrites the primary asset key; the thumbnail goes under its
// derived key. The two writes are independent: a thumbnail failure never
// rolls back a successful primary write and vice versa. Every error is
// accumulated in the summary instead of being returned; the caller's
// transition proceeds with degraded checks.
func (uc *TransformUseCase) Apply(ctx context.Context, item *entity.PipelineItem, cfg *entity.CreatorConfig) *entity.TransformSummary {
	summary := &entity.TransformSummary{
		OriginalBytes: item.FileSize,
		CompletedAt:   time.Now(),
	}
	item.Processing = summary

	if item.MediaType != entity.MediaImage {
		summary.Note = "only images are transformed automatically; checks keep their honest defaults"
		return summary
	}

	data, err := uc.assets.DownloadBytes(ctx, item.StoredAssetKey)
	if err != nil {
		uc.logger.Error(err, "TransformUseCase - Apply - uc.assets.DownloadBytes")
		summary.Errors = append(summary.Errors, err.Error())

		return summary
	}
	summary.OriginalBytes = int64(len(data))

	tcfg := dto.TransformConfig{
		StripMetadata:     cfg.StripMetadata,
		Compress:          cfg.Compress,
		GenerateThumbnail: cfg.GenerateThumbnails,
		Watermark:         cfg.Watermark,
		WatermarkText:     cfg.WatermarkText,
		SourceExtension:   item.FileExtension,
	}

	if cfg.StripMetadata || cfg.Compress || cfg.Watermark {
		uc.optimize(ctx, item, data, tcfg, summary)
	}

	if cfg.GenerateThumbnails {
		uc.thumbnail(ctx, item, data, summary)
	}

	return summary
}

func (uc *TransformUseCase) optimize(
	ctx context.Context,
	item *entity.PipelineItem,
	data []byte,
	tcfg dto.TransformConfig,
	summary *entity.TransformSummary,
) {
	result, err := uc.processor.Optimize(ctx, data, tcfg)
	if err != nil {
		uc.logger.Error(err, "TransformUseCase - optimize - uc.processor.Optimize")
		summary.Errors = append(summary.Errors, err.Error())

		return
	}

	err = uc.assets.UploadBytes(ctx, item.StoredAssetKey, result.Data, contentTypeForFormat(result.Format))
	if err != nil {
		uc.logger.Error(err, "TransformUseCase - optimize - uc.assets.UploadBytes")
		summary.Errors = append(summary.Errors, err.Error())

		return
	}

	summary.ProcessedBytes = int64(len(result.Data))
	summary.Width = result.Width
	summary.Height = result.Height
	summary.Format = result.Format

	if tcfg.StripMetadata {
		item.Checks.ExifStripped = true
	}
	if tcfg.Compress {
		item.Checks.Compressed = true
	}
}

func (uc *TransformUseCase) thumbnail(
	ctx context.Context,
	item *entity.PipelineItem,
	data []byte,
	summary *entity.TransformSummary,
) {
	thumb, err := uc.processor.Thumbnail(ctx, data)
	if err != nil {
		uc.logger.Error(err, "TransformUseCase - thumbnail - uc.processor.Thumbnail")
		summary.Errors = append(summary.Errors, err.Error())

		return
	}

	thumbKey := entity.VariantKey(item.StoredAssetKey, entity.VariantThumb)

	err = uc.assets.UploadBytes(ctx, thumbKey, thumb, "image/jpeg")
	if err != nil {
		uc.logger.Error(err, "TransformUseCase - thumbnail - uc.assets.UploadBytes")
		summary.Errors = append(summary.Errors, err.Error())

		return
	}

	summary.ThumbnailBytes = int64(len(thumb))
	item.Checks.ThumbnailGenerated = true
}

func contentTypeForFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
