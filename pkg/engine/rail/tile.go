package rail

// TileIndex is the opaque index of a tile in the map
type TileIndex int

// InvalidTile marks "no tile"
const InvalidTile TileIndex = -1

// Owner is the company that owns a tile
type Owner int

// OwnerNone marks unowned tiles
const OwnerNone Owner = -1

// TileType is the kind of a tile as seen by the signalling engine
type TileType int

// Tile types
const (
	TileEmpty    TileType = iota
	TileRail              // plain track, possibly with signals
	TileDepot             // rail depot, one fixed exit side
	TileStation           // station or waypoint platform, one straight track
	TileCrossing          // road level crossing over one straight track
	TileTunnel            // tunnel head
	TileBridge            // bridge head
)

// String returns the string representation of a tile type
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileRail:
		return "rail"
	case TileDepot:
		return "depot"
	case TileStation:
		return "station"
	case TileCrossing:
		return "crossing"
	case TileTunnel:
		return "tunnel"
	case TileBridge:
		return "bridge"
	default:
		return "unknown"
	}
}

// IsWormholeHead returns true for tunnel and bridge head tiles
func (t TileType) IsWormholeHead() bool {
	return t == TileTunnel || t == TileBridge
}

// Tile is one cell of the rail map. Which fields are meaningful depends on
// Type; accessors on Map guard the combinations the engine relies on.
type Tile struct {
	Type  TileType
	Owner Owner

	// Track layout. Rail tiles may carry any combination of pieces;
	// stations and crossings carry exactly one straight piece; depot and
	// wormhole head tiles derive their piece from their facing side.
	Tracks TrackBits

	// Signals on rail tiles, keyed by the piece they stand on
	Signals map[Track]*Signal

	// Depot: the side the depot mouth opens to
	DepotExit Side

	// Tunnel/bridge head fields. Span is the far head; Facing is the side
	// pointing into the wormhole. SpanSignalled spans carry simulated
	// signals along their length; SpanPath spans are governed by path
	// reservation instead of block state.
	Span          TileIndex
	Facing        Side
	SpanSignalled bool
	SpanPath      bool

	// Head signals on signalled spans. The exit signal faces trains
	// leaving the wormhole, the entrance signal faces trains about to
	// enter it. Aspects start green.
	HasEntranceSignal bool
	HasExitSignal     bool
	EntranceGreen     bool
	ExitGreen         bool
}
