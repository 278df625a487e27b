package rail

// SignalType is the behavioural class of a signal
type SignalType int

// Signal types
const (
	SignalNormal       SignalType = iota // plain two-state block signal
	SignalEntry                          // presignal entry: watches the exits of the block ahead
	SignalExit                           // presignal exit: feeds entry/combo signals behind it
	SignalCombo                          // presignal entry and exit at once
	SignalPath                           // path-reservation signal
	SignalOneWayPath                     // path-reservation signal, one direction only
	SignalProgrammable                   // state decided by a user-authored program
)

// String returns the string representation of a signal type
func (t SignalType) String() string {
	switch t {
	case SignalNormal:
		return "normal"
	case SignalEntry:
		return "entry"
	case SignalExit:
		return "exit"
	case SignalCombo:
		return "combo"
	case SignalPath:
		return "path"
	case SignalOneWayPath:
		return "oneway-path"
	case SignalProgrammable:
		return "programmable"
	default:
		return "unknown"
	}
}

// ActsAsExit returns true for types that contribute to a block's exit count
// when seen from an entry/combo signal behind them.
func (t SignalType) ActsAsExit() bool {
	return t == SignalExit || t == SignalCombo || t == SignalProgrammable
}

// ActsAsEntry returns true for types whose state is derived from the exits
// of the block they face.
func (t SignalType) ActsAsEntry() bool {
	return t == SignalEntry || t == SignalCombo || t == SignalProgrammable
}

// IsPathSignal returns true for reservation-governed types
func (t SignalType) IsPathSignal() bool {
	return t == SignalPath || t == SignalOneWayPath
}

// SignalVariant is the cosmetic build style of a signal
type SignalVariant int

// Signal variants
const (
	VariantElectric SignalVariant = iota
	VariantSemaphore
)

// Signal is one signal post on a track piece. A post can show an aspect for
// either or both directions of travel along its piece; presence and state
// are stored per end, indexed by Track.EndIndex.
type Signal struct {
	Type    SignalType
	Variant SignalVariant

	present [2]bool
	green   [2]bool
}

// HasToward returns true if the post shows an aspect for travel toward the
// given edge
func (s *Signal) HasToward(t Track, toward Side) bool {
	i := t.EndIndex(toward)
	return i >= 0 && s.present[i]
}

// GreenToward returns true if the aspect for travel toward the given edge is
// green. False if there is no aspect in that direction.
func (s *Signal) GreenToward(t Track, toward Side) bool {
	i := t.EndIndex(toward)
	return i >= 0 && s.present[i] && s.green[i]
}

// SetToward adds or removes the aspect for travel toward the given edge.
// New aspects start green.
func (s *Signal) SetToward(t Track, toward Side, present bool) {
	i := t.EndIndex(toward)
	if i < 0 {
		return
	}
	s.present[i] = present
	if present {
		s.green[i] = true
	}
}

// SetGreenToward sets the aspect for travel toward the given edge
func (s *Signal) SetGreenToward(t Track, toward Side, g bool) {
	if i := t.EndIndex(toward); i >= 0 {
		s.green[i] = g
	}
}

// Bidirectional returns true if the post shows aspects in both directions
func (s *Signal) Bidirectional() bool {
	return s.present[0] && s.present[1]
}

// SignalRef identifies one signal post: the tile and the track piece it
// stands on. Equality is structural.
type SignalRef struct {
	Tile  TileIndex
	Track Track
}
