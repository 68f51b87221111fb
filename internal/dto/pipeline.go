package dto

import (
	"time"

	"github.com/inkedmayhem/content-pipeline/internal/entity"
)

// IngestInput is a new upload. Data may be nil for metadata-only ingest
// (e.g. a video registered before its payload arrives out of band).
type IngestInput struct {
	Filename  string
	Size      int64
	Data      []byte
	CreatorID string

	Caption     string
	Tags        []string
	Category    string
	Tier        string
	Source      string
	ScheduledAt *time.Time
}

// ItemOverrides carries the optional metadata mutations accepted by
// approve and update. Nil pointers mean "leave unchanged".
type ItemOverrides struct {
	Caption     *string
	Tags        []string
	Category    *string
	Tier        *string
	ScheduledAt *time.Time
}

func (o ItemOverrides) Empty() bool {
	return o.Caption == nil && o.Tags == nil && o.Category == nil &&
		o.Tier == nil && o.ScheduledAt == nil
}

// ItemList is the list operation result; Counts is populated only for
// unfiltered listings.
type ItemList struct {
	Items  []*entity.PipelineItem `json:"items"`
	Counts map[entity.Status]int  `json:"counts,omitempty"`
}
