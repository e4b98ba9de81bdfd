package memory

import "sync/atomic"

// Sequence hands out transaction identifiers starting at 0. Each value is
// returned exactly once, including under concurrent callers.
type Sequence struct {
	next atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Next() int64 {
	return s.next.Add(1) - 1
}
