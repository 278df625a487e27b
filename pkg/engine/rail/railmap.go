// Package rail provides the tile/track map layer consumed by the signalling
// engine: a 2D grid of tiles carrying track pieces, signals, depots, level
// crossings, stations and tunnel/bridge heads, with the accessors the engine
// walks the network through.
package rail

import "fmt"

// Map represents the rail network as a grid with encapsulated tile storage
type Map struct {
	tiles []Tile
	rows  int
	cols  int
}

// NewMap creates a new map with the given dimensions, all tiles empty
func NewMap(rows, cols int) *Map {
	if rows <= 0 || cols <= 0 {
		panic("Map dimensions must be positive")
	}
	return &Map{
		tiles: make([]Tile, rows*cols),
		rows:  rows,
		cols:  cols,
	}
}

// Rows returns the number of rows in the map
func (m *Map) Rows() int {
	return m.rows
}

// Cols returns the number of columns in the map
func (m *Map) Cols() int {
	return m.cols
}

// IsValidPosition checks if a row/col position is within map bounds
func (m *Map) IsValidPosition(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// Index returns the tile index for a row/col position, or InvalidTile if
// out of bounds
func (m *Map) Index(row, col int) TileIndex {
	if !m.IsValidPosition(row, col) {
		return InvalidTile
	}
	return TileIndex(row*m.cols + col)
}

// RowCol returns the row/col position of a tile index
func (m *Map) RowCol(t TileIndex) (row, col int) {
	return int(t) / m.cols, int(t) % m.cols
}

// Valid checks whether a tile index addresses a tile on this map
func (m *Map) Valid(t TileIndex) bool {
	return t >= 0 && int(t) < len(m.tiles)
}

// At returns the tile at the given index, or nil if out of bounds
func (m *Map) At(t TileIndex) *Tile {
	if !m.Valid(t) {
		return nil
	}
	return &m.tiles[t]
}

// Neighbor returns the tile across the given edge, or InvalidTile at the map
// border
func (m *Map) Neighbor(t TileIndex, s Side) TileIndex {
	if !m.Valid(t) || !s.IsValid() {
		return InvalidTile
	}
	row, col := m.RowCol(t)
	dr, dc := s.Delta()
	return m.Index(row+dr, col+dc)
}

// TypeOf returns the tile type, TileEmpty for out-of-bounds indices
func (m *Map) TypeOf(t TileIndex) TileType {
	tile := m.At(t)
	if tile == nil {
		return TileEmpty
	}
	return tile.Type
}

// OwnerOf returns the tile owner, OwnerNone for out-of-bounds indices
func (m *Map) OwnerOf(t TileIndex) Owner {
	tile := m.At(t)
	if tile == nil {
		return OwnerNone
	}
	return tile.Owner
}

// IsOneSignalBlock reports whether a walk on behalf of the given owner may
// treat the tile as part of its own signal block. Level crossings are shared
// across owners for signalling purposes.
func (m *Map) IsOneSignalBlock(owner Owner, t TileIndex) bool {
	tile := m.At(t)
	if tile == nil {
		return false
	}
	return tile.Owner == owner || tile.Type == TileCrossing
}

// TracksAt returns the track pieces on a tile. Depot and wormhole head
// tiles report the single stub piece implied by their facing side.
func (m *Map) TracksAt(t TileIndex) TrackBits {
	tile := m.At(t)
	if tile == nil {
		return BitNone
	}
	switch tile.Type {
	case TileRail, TileStation, TileCrossing:
		return tile.Tracks
	case TileDepot:
		return straightThrough(tile.DepotExit)
	case TileTunnel, TileBridge:
		return straightThrough(tile.Facing)
	default:
		return BitNone
	}
}

// straightThrough returns the straight piece whose ends include the given
// side
func straightThrough(s Side) TrackBits {
	switch s {
	case North, South:
		return BitNS
	case East, West:
		return BitEW
	default:
		return BitNone
	}
}

// ReachableTracks returns the pieces on a tile usable by a walk entering
// through the given edge
func (m *Map) ReachableTracks(t TileIndex, from Side) TrackBits {
	return m.TracksAt(t) & TracksFromSide(from)
}

// ForEachTile iterates over all tiles, calling fn for each
func (m *Map) ForEachTile(fn func(t TileIndex, tile *Tile)) {
	for i := range m.tiles {
		fn(TileIndex(i), &m.tiles[i])
	}
}

// LayRail places (or extends) plain rail at a position and returns its tile
// index. Panics if the tile already holds a different tile type.
func (m *Map) LayRail(row, col int, owner Owner, bits TrackBits) TileIndex {
	t := m.Index(row, col)
	tile := m.At(t)
	if tile == nil {
		panic(fmt.Sprintf("LayRail out of bounds at %v:%v", row, col))
	}
	if tile.Type != TileEmpty && tile.Type != TileRail {
		panic(fmt.Sprintf("LayRail over %v at %v:%v", tile.Type, row, col))
	}
	tile.Type = TileRail
	tile.Owner = owner
	tile.Tracks |= bits
	return t
}

// BuildDepot places a rail depot whose mouth opens to the given side
func (m *Map) BuildDepot(row, col int, owner Owner, exit Side) TileIndex {
	t := m.mustPlace(row, col, TileDepot, owner)
	m.At(t).DepotExit = exit
	return t
}

// BuildStation places one station platform tile carrying a single straight
// piece
func (m *Map) BuildStation(row, col int, owner Owner, axis Track) TileIndex {
	if axis != TrackNS && axis != TrackEW {
		panic("BuildStation axis must be a straight piece")
	}
	t := m.mustPlace(row, col, TileStation, owner)
	m.At(t).Tracks = axis.Bit()
	return t
}

// BuildCrossing places a road level crossing over a single straight piece
func (m *Map) BuildCrossing(row, col int, owner Owner, axis Track) TileIndex {
	if axis != TrackNS && axis != TrackEW {
		panic("BuildCrossing axis must be a straight piece")
	}
	t := m.mustPlace(row, col, TileCrossing, owner)
	m.At(t).Tracks = axis.Bit()
	return t
}

// BuildWormhole places a tunnel or bridge between two head positions that
// share a row or column, and returns both head indices. The heads face each
// other; signalled spans carry simulated signals, path spans are governed by
// reservations.
func (m *Map) BuildWormhole(kind TileType, r1, c1, r2, c2 int, owner Owner, signalled, path bool) (TileIndex, TileIndex) {
	if !kind.IsWormholeHead() {
		panic("BuildWormhole kind must be TileTunnel or TileBridge")
	}
	var facing1 Side
	switch {
	case r1 == r2 && c1 < c2:
		facing1 = East
	case r1 == r2 && c1 > c2:
		facing1 = West
	case c1 == c2 && r1 < r2:
		facing1 = South
	case c1 == c2 && r1 > r2:
		facing1 = North
	default:
		panic("BuildWormhole heads must share a row or column")
	}
	h1 := m.mustPlace(r1, c1, kind, owner)
	h2 := m.mustPlace(r2, c2, kind, owner)
	t1, t2 := m.At(h1), m.At(h2)
	t1.Span, t2.Span = h2, h1
	t1.Facing, t2.Facing = facing1, facing1.Opposite()
	t1.SpanSignalled, t2.SpanSignalled = signalled, signalled
	t1.SpanPath, t2.SpanPath = path, path
	return h1, h2
}

// SetHeadSignals configures the simulated signals on one signalled wormhole
// head. Fresh aspects start green.
func (m *Map) SetHeadSignals(t TileIndex, entrance, exit bool) {
	tile := m.At(t)
	if tile == nil || !tile.Type.IsWormholeHead() {
		panic("SetHeadSignals on a non-wormhole tile")
	}
	tile.HasEntranceSignal = entrance
	tile.HasExitSignal = exit
	tile.EntranceGreen = entrance
	tile.ExitGreen = exit
}

func (m *Map) mustPlace(row, col int, kind TileType, owner Owner) TileIndex {
	t := m.Index(row, col)
	tile := m.At(t)
	if tile == nil {
		panic(fmt.Sprintf("build out of bounds at %v:%v", row, col))
	}
	if tile.Type != TileEmpty {
		panic(fmt.Sprintf("build %v over %v at %v:%v", kind, tile.Type, row, col))
	}
	tile.Type = kind
	tile.Owner = owner
	return t
}

// PlaceSignal adds a signal post of the given type on a rail tile's piece,
// showing an aspect toward the given edge, and returns the post. Passing
// both=true adds the opposite aspect as well. Fresh aspects start green.
func (m *Map) PlaceSignal(t TileIndex, track Track, typ SignalType, variant SignalVariant, toward Side, both bool) *Signal {
	tile := m.At(t)
	if tile == nil || tile.Type != TileRail {
		panic("PlaceSignal on a non-rail tile")
	}
	if !tile.Tracks.Has(track) {
		panic(fmt.Sprintf("PlaceSignal on missing piece %v", track))
	}
	// signals live on single-piece tiles only; a post on a junction
	// would be walked past and merge the blocks around it
	if tile.Tracks.Single() == TrackInvalid {
		panic(fmt.Sprintf("PlaceSignal on junction tile %v", t))
	}
	if tile.Signals == nil {
		tile.Signals = make(map[Track]*Signal)
	}
	sig := tile.Signals[track]
	if sig == nil {
		sig = &Signal{Type: typ, Variant: variant}
		tile.Signals[track] = sig
	}
	sig.Type = typ
	sig.Variant = variant
	sig.SetToward(track, toward, true)
	if both {
		sig.SetToward(track, track.OtherEnd(toward), true)
	}
	return sig
}

// RemoveSignal removes the signal post from a tile's piece, if any
func (m *Map) RemoveSignal(t TileIndex, track Track) {
	tile := m.At(t)
	if tile == nil || tile.Signals == nil {
		return
	}
	delete(tile.Signals, track)
}

// SignalOn returns the signal post on a tile's piece, or nil
func (m *Map) SignalOn(t TileIndex, track Track) *Signal {
	tile := m.At(t)
	if tile == nil || tile.Signals == nil {
		return nil
	}
	return tile.Signals[track]
}

// HasSignalOnTrack returns true if the tile's piece carries a signal post
func (m *Map) HasSignalOnTrack(t TileIndex, track Track) bool {
	return m.SignalOn(t, track) != nil
}

// SignalGreen returns true if the aspect for the given direction of travel
// is green
func (m *Map) SignalGreen(t TileIndex, td Trackdir) bool {
	sig := m.SignalOn(t, td.Track)
	return sig != nil && sig.GreenToward(td.Track, td.Toward)
}

// SetSignalGreen sets the aspect for the given direction of travel
func (m *Map) SetSignalGreen(t TileIndex, td Trackdir, green bool) {
	if sig := m.SignalOn(t, td.Track); sig != nil {
		sig.SetGreenToward(td.Track, td.Toward, green)
	}
}
