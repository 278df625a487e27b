package block

// SegmentSummary is the aggregate built while walking one block. It lives
// for a single driver iteration: filled by the explorer, consumed by the
// propagator, then discarded.
type SegmentSummary struct {
	// TrainPresent is set when any visited tile, piece or wormhole span
	// holds a train
	TrainPresent bool

	// SignalPresent is set when the walk reached any block-bounding
	// signal at all. A block with no signals has nothing to update, so
	// its classification is Free regardless of train presence.
	SignalPresent bool

	// PathSignalPresent is set when the block contains a
	// reservation-capable signal, which changes how red/green is decided
	PathSignalPresent bool

	// Overflowed is set when a working set ran out of capacity. None of
	// the other fields can be trusted then, beyond "treat as occupied".
	Overflowed bool

	// ExitCount and GreenExitCount tally the exit-acting signals bounding
	// the block, and how many of them currently show green
	ExitCount      uint
	GreenExitCount uint
}

// Status classifies a block for callers that need an immediate answer
type Status int

// Status values
const (
	StatusFree Status = iota
	StatusOccupied
	StatusPathReservation
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case StatusFree:
		return "free"
	case StatusOccupied:
		return "occupied"
	case StatusPathReservation:
		return "path-reservation"
	default:
		return "unknown"
	}
}

// Classify reduces the summary to a Status. Any uncertainty degrades to
// StatusOccupied, except that a block the walk found no signals in is
// Free: there is nothing to hold a train at.
func (sum *SegmentSummary) Classify() Status {
	switch {
	case sum.PathSignalPresent:
		return StatusPathReservation
	case sum.Overflowed:
		return StatusOccupied
	case !sum.SignalPresent:
		return StatusFree
	case sum.TrainPresent:
		return StatusOccupied
	case sum.ExitCount > 0 && sum.GreenExitCount == 0:
		return StatusOccupied
	default:
		return StatusFree
	}
}
