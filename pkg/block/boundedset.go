package block

// Working-set capacities. Blocks on realistic networks are small, so flat
// arrays with linear scans beat hashed sets here; the explicit capacity turns
// an unbounded graph walk into a bounded one with a defined conservative
// fallback. The numbers are tuning constants, not correctness constraints.
const (
	// OpenFrontierCap bounds the tiles a single segment exploration may
	// hold at once.
	OpenFrontierCap = 256

	// UpdateFrontierCap bounds the signals one segment may feed into the
	// state propagator.
	UpdateFrontierCap = 64

	// PendingQueueCap bounds the cross-call entry-point queue.
	PendingQueueCap = 128

	// pendingFlushThreshold triggers an automatic flush well below
	// capacity, so enqueue bursts cannot overflow the queue.
	pendingFlushThreshold = PendingQueueCap / 2
)

// BoundedSet is a fixed-capacity collection with a persistent overflow flag.
// Adds append in O(1); lookups and removals are linear scans, which wins for
// the small sizes these sets see in practice. Pop returns elements in stack
// order; callers must not rely on any other ordering.
type BoundedSet[E comparable] struct {
	items      []E
	overflowed bool
}

// NewBoundedSet creates a set holding at most capacity elements
func NewBoundedSet[E comparable](capacity int) *BoundedSet[E] {
	if capacity <= 0 {
		panic("BoundedSet capacity must be positive")
	}
	return &BoundedSet[E]{items: make([]E, 0, capacity)}
}

// Add appends an element. Returns false and latches the overflow flag if the
// set is full.
func (s *BoundedSet[E]) Add(e E) bool {
	if len(s.items) == cap(s.items) {
		s.overflowed = true
		return false
	}
	s.items = append(s.items, e)
	return true
}

// Remove deletes one occurrence of an element by swap-remove, returning
// whether it was found
func (s *BoundedSet[E]) Remove(e E) bool {
	for i, have := range s.items {
		if have == e {
			last := len(s.items) - 1
			s.items[i] = s.items[last]
			s.items = s.items[:last]
			return true
		}
	}
	return false
}

// Contains reports whether the element is in the set
func (s *BoundedSet[E]) Contains(e E) bool {
	for _, have := range s.items {
		if have == e {
			return true
		}
	}
	return false
}

// Pop removes and returns the most recently added element
func (s *BoundedSet[E]) Pop() (E, bool) {
	if len(s.items) == 0 {
		var zero E
		return zero, false
	}
	last := len(s.items) - 1
	e := s.items[last]
	s.items = s.items[:last]
	return e, true
}

// At returns the element at position i. Positions are stable under Add.
func (s *BoundedSet[E]) At(i int) E {
	return s.items[i]
}

// Len returns the number of elements currently held
func (s *BoundedSet[E]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set holds no elements
func (s *BoundedSet[E]) IsEmpty() bool {
	return len(s.items) == 0
}

// Overflowed reports whether any Add has been refused since the last Reset
func (s *BoundedSet[E]) Overflowed() bool {
	return s.overflowed
}

// Reset clears the set and the overflow flag
func (s *BoundedSet[E]) Reset() {
	s.items = s.items[:0]
	s.overflowed = false
}
