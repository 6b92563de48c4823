package order

import (
	"sync/atomic"
	"time"
)

// NextID returns an order id greater than last. Ids track the clock in
// milliseconds so they are time-derived, but never repeat or go backwards
// when two checkouts land in the same millisecond or the clock steps back.
func NextID(last int64, now time.Time) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// Sequence issues NextID values shared by many sessions so that ids stay
// unique across them. The zero value is ready to use.
type Sequence struct {
	last atomic.Int64
}

func (s *Sequence) Next(now time.Time) int64 {
	for {
		last := s.last.Load()
		id := NextID(last, now)
		if s.last.CompareAndSwap(last, id) {
			return id
		}
	}
}
