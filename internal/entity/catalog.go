package entity

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEntry is the public-facing content record, created exactly once
// per pipeline item at publication time. Its further lifecycle belongs to
// the catalog API, not the pipeline.
type CatalogEntry struct {
	Title          string    `json:"title"`
	Body           string    `json:"body,omitempty"`
	Tier           Tier      `json:"tier"`
	Type           MediaType `json:"type"`
	AssetReference string    `json:"assetReference"`
	Tags           []string  `json:"tags,omitempty"`
	Category       string    `json:"category,omitempty"`
	Source         string    `json:"source,omitempty"`
	PipelineItemID uuid.UUID `json:"pipelineItemId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CatalogKey derives the catalog document key for a pipeline item. The
// key is deterministic per item, so a racing double publish overwrites
// the same document instead of creating a second entry.
func CatalogKey(itemID uuid.UUID) string {
	return "content-" + itemID.String()
}
