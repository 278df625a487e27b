package rail

// Track identifies one of the six track pieces a tile can carry. A piece
// connects two of the tile's four edges: two straights and four corners.
type Track int

// Track constants
const (
	TrackNS Track = iota // straight, North edge to South edge
	TrackEW              // straight, East edge to West edge
	TrackNE              // corner, North edge to East edge
	TrackNW              // corner, North edge to West edge
	TrackSE              // corner, South edge to East edge
	TrackSW              // corner, South edge to West edge

	TrackInvalid Track = -1
)

// TrackBits is a bitmask of Track values, used for the track layout of a
// tile and for "which pieces are reachable from this edge" queries.
type TrackBits uint8

// TrackBits constants
const (
	BitNone TrackBits = 0
	BitNS   TrackBits = 1 << TrackNS
	BitEW   TrackBits = 1 << TrackEW
	BitNE   TrackBits = 1 << TrackNE
	BitNW   TrackBits = 1 << TrackNW
	BitSE   TrackBits = 1 << TrackSE
	BitSW   TrackBits = 1 << TrackSW
	BitAll  TrackBits = BitNS | BitEW | BitNE | BitNW | BitSE | BitSW
)

// AllTracks returns every track piece for iteration.
func AllTracks() []Track {
	return []Track{TrackNS, TrackEW, TrackNE, TrackNW, TrackSE, TrackSW}
}

// Bit returns the TrackBits mask for this single piece
func (t Track) Bit() TrackBits {
	if !t.IsValid() {
		return BitNone
	}
	return 1 << t
}

// IsValid returns true for one of the six real track pieces
func (t Track) IsValid() bool {
	return t >= TrackNS && t <= TrackSW
}

// String returns the string representation of a track piece
func (t Track) String() string {
	switch t {
	case TrackNS:
		return "NS"
	case TrackEW:
		return "EW"
	case TrackNE:
		return "NE"
	case TrackNW:
		return "NW"
	case TrackSE:
		return "SE"
	case TrackSW:
		return "SW"
	default:
		return "Invalid"
	}
}

// Ends returns the two tile edges this piece connects
func (t Track) Ends() (Side, Side) {
	switch t {
	case TrackNS:
		return North, South
	case TrackEW:
		return East, West
	case TrackNE:
		return North, East
	case TrackNW:
		return North, West
	case TrackSE:
		return South, East
	case TrackSW:
		return South, West
	default:
		return SideNone, SideNone
	}
}

// HasEnd returns true if the piece touches the given tile edge
func (t Track) HasEnd(s Side) bool {
	a, b := t.Ends()
	return s == a || s == b
}

// OtherEnd returns the edge at the far end of the piece from the given edge.
// Returns SideNone if the piece does not touch the given edge.
func (t Track) OtherEnd(from Side) Side {
	a, b := t.Ends()
	switch from {
	case a:
		return b
	case b:
		return a
	default:
		return SideNone
	}
}

// EndIndex returns 0 or 1 depending on which of the piece's two ends the
// given edge is, for indexing per-direction signal storage. Returns -1 if
// the edge is not an end of this piece.
func (t Track) EndIndex(s Side) int {
	a, b := t.Ends()
	switch s {
	case a:
		return 0
	case b:
		return 1
	default:
		return -1
	}
}

// TracksFromSide returns the mask of pieces that have an end at the given
// tile edge. These are the pieces usable by a walk entering through that
// edge.
func TracksFromSide(s Side) TrackBits {
	switch s {
	case North:
		return BitNS | BitNE | BitNW
	case East:
		return BitEW | BitNE | BitSE
	case South:
		return BitNS | BitSE | BitSW
	case West:
		return BitEW | BitNW | BitSW
	default:
		return BitNone
	}
}

// Has returns true if the mask contains the given piece
func (b TrackBits) Has(t Track) bool {
	return b&t.Bit() != 0
}

// Count returns the number of pieces in the mask
func (b TrackBits) Count() int {
	n := 0
	for _, t := range AllTracks() {
		if b.Has(t) {
			n++
		}
	}
	return n
}

// Single returns the only piece in the mask, or TrackInvalid if the mask is
// empty or contains more than one piece.
func (b TrackBits) Single() Track {
	found := TrackInvalid
	for _, t := range AllTracks() {
		if b.Has(t) {
			if found != TrackInvalid {
				return TrackInvalid
			}
			found = t
		}
	}
	return found
}

// Each calls fn for every piece in the mask
func (b TrackBits) Each(fn func(Track)) {
	for _, t := range AllTracks() {
		if b.Has(t) {
			fn(t)
		}
	}
}

// Trackdir is a track piece plus a direction of travel along it, expressed
// as the edge the movement is heading toward.
type Trackdir struct {
	Track  Track
	Toward Side
}

// TrackdirNone marks update-frontier entries that refer to a tunnel/bridge
// head signal rather than a signal on an ordinary track piece.
var TrackdirNone = Trackdir{Track: TrackInvalid, Toward: SideNone}

// TrackdirEntering returns the direction of travel along a piece for a walk
// that entered the tile through the given edge.
func TrackdirEntering(t Track, from Side) Trackdir {
	return Trackdir{Track: t, Toward: t.OtherEnd(from)}
}

// Reverse returns the opposite direction of travel along the same piece
func (td Trackdir) Reverse() Trackdir {
	return Trackdir{Track: td.Track, Toward: td.Track.OtherEnd(td.Toward)}
}

// IsValid returns true if this is a real piece/heading pair
func (td Trackdir) IsValid() bool {
	return td.Track.IsValid() && td.Track.HasEnd(td.Toward)
}
