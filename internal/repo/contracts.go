package repo

import (
	"context"
	"io"

	"github.com/inkedmayhem/content-pipeline/internal/entity"
)

// DocStore namespaces. The pipeline owns "pipeline" and "pipeline-logs";
// "content" is written through the catalog writer; "creators" is
// read-only configuration.
const (
	NamespacePipeline = "pipeline"
	NamespaceLogs     = "pipeline-logs"
	NamespaceContent  = "content"
	NamespaceCreators = "creators"
)

type (
	// DocStore is keyed whole-document JSON storage. Set is an
	// unconditional upsert: concurrent writers on the same key are
	// last-writer-wins by contract, and state-machine correctness relies
	// on the status guards in the use case, not on storage-level
	// concurrency control. Do not add version tokens here without
	// revisiting that contract.
	DocStore interface {
		Get(ctx context.Context, namespace, key string, out any) error
		Set(ctx context.Context, namespace, key string, doc any) error
		Delete(ctx context.Context, namespace, key string) error
		List(ctx context.Context, namespace string) ([]string, error)
	}

	// AssetStore is keyed binary storage for raw and derived media.
	AssetStore interface {
		Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) error
		UploadBytes(ctx context.Context, key string, data []byte, contentType string) error
		Download(ctx context.Context, key string) (io.ReadCloser, error)
		DownloadBytes(ctx context.Context, key string) ([]byte, error)
		Delete(ctx context.Context, key string) error
	}

	// CreatorConfigs resolves per-creator pipeline settings, falling back
	// to defaults for unknown creators.
	CreatorConfigs interface {
		Get(ctx context.Context, creatorID string) (*entity.CreatorConfig, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
