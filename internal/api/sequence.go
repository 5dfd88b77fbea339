package api

import "sync/atomic"

// Sequencer hands out monotonic request numbers so a view can discard
// search responses that arrive out of order. Fast typing can otherwise
// surface results for a stale query.
type Sequencer struct {
	n atomic.Uint64
}

// Next reserves the sequence number for a new request.
func (s *Sequencer) Next() uint64 {
	return s.n.Add(1)
}

// Current returns the most recently issued sequence number.
func (s *Sequencer) Current() uint64 {
	return s.n.Load()
}

// Stale reports whether a response tagged with seq is out of date.
func (s *Sequencer) Stale(seq uint64) bool {
	return seq < s.n.Load()
}
