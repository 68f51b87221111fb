package catalog

import (
	"context"
	"fmt"

	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/internal/repo"
)

// Writer stores catalog entries in the "content" namespace. The content
// key is deterministic per pipeline item, so writing twice for the same
// item overwrites one document instead of growing the catalog.
type Writer struct {
	docs repo.DocStore
}

func NewWriter(docs repo.DocStore) *Writer {
	return &Writer{docs: docs}
}

func (w *Writer) Write(ctx context.Context, entry *entity.CatalogEntry) (string, error) {
	key := entity.CatalogKey(entry.PipelineItemID)

	err := w.docs.Set(ctx, repo.NamespaceContent, key, entry)
	if err != nil {
		return "", fmt.Errorf("catalog Writer - Write - w.docs.Set: %w", err)
	}

	return key, nil
}
