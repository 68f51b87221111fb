package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRecord is an append-only audit entry. The state machine writes
// these and never reads them back.
type ActivityRecord struct {
	Action    string         `json:"action"`
	ItemID    uuid.UUID      `json:"itemId"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
