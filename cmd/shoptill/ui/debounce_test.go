package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerOnlyLatestTriggerIsReady(t *testing.T) {
	d := NewDebouncer("box", 0)

	d.Trigger()
	first := DebounceMsg{Owner: "box", Version: d.version}
	d.Trigger()
	second := DebounceMsg{Owner: "box", Version: d.version}

	assert.False(t, d.Ready(first), "superseded trigger is stale")
	assert.True(t, d.Ready(second))
}

func TestDebouncerCancelInvalidates(t *testing.T) {
	d := NewDebouncer("box", 0)

	d.Trigger()
	pending := DebounceMsg{Owner: "box", Version: d.version}
	d.Cancel()

	assert.False(t, d.Ready(pending))
}

func TestDebouncerIgnoresOtherOwners(t *testing.T) {
	d := NewDebouncer("mine", 0)
	d.Trigger()

	assert.False(t, d.Ready(DebounceMsg{Owner: "other", Version: d.version}))
}
