package rail

// Side identifies one edge of a tile, or SideNone for positions that have no
// incoming edge: the interior of a tunnel/bridge span and the inside of a
// depot.
type Side int

// Side constants
const (
	North Side = iota
	East
	South
	West
	SideNone
)

// AllSides returns the four real sides for iteration, excluding SideNone.
func AllSides() []Side {
	return []Side{North, East, South, West}
}

// String returns the string representation of a side
func (s Side) String() string {
	switch s {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case SideNone:
		return "None"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the side is one of the four tile edges
func (s Side) IsValid() bool {
	return s >= North && s <= West
}

// Opposite returns the opposite side. SideNone is its own opposite.
func (s Side) Opposite() Side {
	switch s {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return s
	}
}

// Delta returns the row and column offsets to the neighbouring tile that
// shares this side
func (s Side) Delta() (rowDelta, colDelta int) {
	switch s {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}
