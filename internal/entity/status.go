package entity

type Status string

const (
	StatusInbox     Status = "inbox"
	StatusProcessed Status = "processed"
	StatusQueued    Status = "queued"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

func Statuses() []Status {
	return []Status{StatusInbox, StatusProcessed, StatusQueued, StatusPublished, StatusRejected}
}

func (s Status) Valid() bool {
	switch s {
	case StatusInbox, StatusProcessed, StatusQueued, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// Terminal statuses have no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusPublished || s == StatusRejected
}

// CanTransitionTo encodes the pipeline state machine:
// inbox -> processed -> queued -> published, with rejected reachable
// from any non-terminal status.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}

	if next == StatusRejected {
		return true
	}

	switch s {
	case StatusInbox:
		// approve may skip the processed step
		return next == StatusProcessed || next == StatusQueued
	case StatusProcessed:
		return next == StatusQueued
	case StatusQueued:
		return next == StatusPublished
	}

	return false
}
