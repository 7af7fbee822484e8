package sequencer

import "sync/atomic"

// Sequencer hands out monotonically increasing request ids. The newest id is
// the only "current" one; every older id is stale the instant a newer one is
// issued. In-flight capture work polls IsLatest at its checkpoints and
// discards its result once it returns false. There is no other cancellation
// mechanism.
type Sequencer struct {
	current atomic.Uint64
}

// New returns a sequencer starting at 0 (no request issued yet).
func New() *Sequencer {
	return &Sequencer{}
}

// Next issues a new request id, invalidating all previously issued ids.
func (s *Sequencer) Next() uint64 {
	return s.current.Add(1)
}

// IsLatest reports whether id is still the most recently issued request id.
func (s *Sequencer) IsLatest(id uint64) bool {
	return s.current.Load() == id
}

// Current returns the most recently issued id (0 if none). For logging only.
func (s *Sequencer) Current() uint64 {
	return s.current.Load()
}
