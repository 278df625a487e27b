// Package sim provides the vehicle layer and the world aggregate driving the
// signal engine: trains that occupy track, a tick loop that moves them and
// feeds the engine's enqueue API, and the message log surfaced by the
// renderer.
package sim

import (
	"signalbox/pkg/engine/rail"
)

// Train is one train occupying the network. A train is on exactly one of:
// a track piece of a tile, the inside of a depot, or a wormhole span.
type Train struct {
	ID int

	Tile   rail.TileIndex
	Track  rail.Track
	Toward rail.Side // direction of travel: heading for this edge of Tile

	InDepot bool

	InWormhole bool
	WormFrom   rail.TileIndex
	WormTo     rail.TileIndex
	wormTicks  int

	// Stopped is set while the train waits at a red aspect
	Stopped bool
}

// TrainSet holds the trains on one map and answers the engine's occupancy
// queries. Linear scans: train counts are tiny next to tile counts.
type TrainSet struct {
	trains []*Train
	nextID int
}

// NewTrainSet creates an empty train set
func NewTrainSet() *TrainSet {
	return &TrainSet{}
}

// Add places a new train on a track piece, heading toward the given edge,
// and returns it
func (ts *TrainSet) Add(t rail.TileIndex, track rail.Track, toward rail.Side) *Train {
	ts.nextID++
	tr := &Train{ID: ts.nextID, Tile: t, Track: track, Toward: toward}
	ts.trains = append(ts.trains, tr)
	return tr
}

// AddInDepot places a new train inside a depot
func (ts *TrainSet) AddInDepot(t rail.TileIndex) *Train {
	ts.nextID++
	tr := &Train{ID: ts.nextID, Tile: t, InDepot: true}
	ts.trains = append(ts.trains, tr)
	return tr
}

// Remove deletes a train from the set
func (ts *TrainSet) Remove(tr *Train) {
	for i, have := range ts.trains {
		if have == tr {
			ts.trains = append(ts.trains[:i], ts.trains[i+1:]...)
			return
		}
	}
}

// Each calls fn for every train
func (ts *TrainSet) Each(fn func(*Train)) {
	for _, tr := range ts.trains {
		fn(tr)
	}
}

// Len returns the number of trains
func (ts *TrainSet) Len() int {
	return len(ts.trains)
}

// TrainOnTile implements block.TrainLocator
func (ts *TrainSet) TrainOnTile(t rail.TileIndex) bool {
	for _, tr := range ts.trains {
		if tr.Tile == t && !tr.InDepot && !tr.InWormhole {
			return true
		}
	}
	return false
}

// TrainOnTrack implements block.TrainLocator
func (ts *TrainSet) TrainOnTrack(t rail.TileIndex, track rail.Track) bool {
	for _, tr := range ts.trains {
		if tr.Tile == t && tr.Track == track && !tr.InDepot && !tr.InWormhole {
			return true
		}
	}
	return false
}

// TrainInWormhole implements block.TrainLocator
func (ts *TrainSet) TrainInWormhole(a, b rail.TileIndex) bool {
	for _, tr := range ts.trains {
		if !tr.InWormhole {
			continue
		}
		if (tr.WormFrom == a && tr.WormTo == b) || (tr.WormFrom == b && tr.WormTo == a) {
			return true
		}
	}
	return false
}

// TrainInDepot implements block.TrainLocator
func (ts *TrainSet) TrainInDepot(t rail.TileIndex) bool {
	for _, tr := range ts.trains {
		if tr.Tile == t && tr.InDepot {
			return true
		}
	}
	return false
}
