package entity

import (
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaOther MediaType = "other"
)

type Tier string

const (
	TierFree  Tier = "free"
	TierVIP   Tier = "vip"
	TierElite Tier = "elite"
)

// Checks track which automated steps have succeeded for an item. A flag
// is only ever set true by a successful step and never regresses except
// by explicit reprocessing.
type Checks struct {
	FileTypeValid      bool `json:"fileTypeValid"`
	FileSizeValid      bool `json:"fileSizeValid"`
	ExifStripped       bool `json:"exifStripped"`
	Compressed         bool `json:"compressed"`
	ThumbnailGenerated bool `json:"thumbnailGenerated"`
}

// TransformSummary is the informational record of the last transform run.
type TransformSummary struct {
	OriginalBytes  int64     `json:"originalBytes"`
	ProcessedBytes int64     `json:"processedBytes,omitempty"`
	ThumbnailBytes int64     `json:"thumbnailBytes,omitempty"`
	Width          int       `json:"width,omitempty"`
	Height         int       `json:"height,omitempty"`
	Format         string    `json:"format,omitempty"`
	Note           string    `json:"note,omitempty"`
	Errors         []string  `json:"errors,omitempty"`
	CompletedAt    time.Time `json:"completedAt"`
}

type PipelineItem struct {
	ID        uuid.UUID `json:"id"`
	CreatorID string    `json:"creatorId"`
	Status    Status    `json:"status"`

	Filename      string    `json:"filename"`
	MediaType     MediaType `json:"mediaType"`
	FileExtension string    `json:"fileExtension"`
	FileSize      int64     `json:"fileSize"`

	StoredAssetKey string `json:"storedAssetKey"`

	Checks     Checks            `json:"checks"`
	Processing *TransformSummary `json:"processing,omitempty"`

	Caption      string     `json:"caption,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Category     string     `json:"category,omitempty"`
	Tier         Tier       `json:"tier"`
	Source       string     `json:"source,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
	RejectReason string     `json:"rejectReason,omitempty"`
	ContentKey   string     `json:"contentKey,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	QueuedAt    *time.Time `json:"queuedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Title is the catalog title: caption when present, filename otherwise.
func (i *PipelineItem) Title() string {
	if i.Caption != "" {
		return i.Caption
	}
	return i.Filename
}

// DueAt reports whether the item is scheduled and its time has passed.
func (i *PipelineItem) DueAt(now time.Time) bool {
	return i.ScheduledAt != nil && !i.ScheduledAt.After(now)
}
