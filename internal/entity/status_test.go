package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusInbox, StatusProcessed, true},
		{StatusInbox, StatusQueued, true}, // approve without prior process
		{StatusInbox, StatusPublished, false},
		{StatusProcessed, StatusQueued, true},
		{StatusProcessed, StatusPublished, false},
		{StatusQueued, StatusPublished, true},
		{StatusQueued, StatusProcessed, false},
		{StatusInbox, StatusRejected, true},
		{StatusProcessed, StatusRejected, true},
		{StatusQueued, StatusRejected, true},
		{StatusPublished, StatusRejected, false},
		{StatusRejected, StatusInbox, false},
		{StatusRejected, StatusRejected, false},
		{StatusPublished, StatusPublished, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusPublished.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusInbox.Terminal())
	assert.False(t, StatusProcessed.Terminal())
	assert.False(t, StatusQueued.Terminal())
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}
