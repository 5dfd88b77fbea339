package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencer(t *testing.T) {
	var s Sequencer

	first := s.Next()
	second := s.Next()

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, second, s.Current())

	assert.True(t, s.Stale(first), "earlier request is stale once a newer one was issued")
	assert.False(t, s.Stale(second))
}
