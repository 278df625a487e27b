package sim

import (
	"signalbox/pkg/block"
	"signalbox/pkg/engine/rail"
	"signalbox/pkg/program"
)

// wormholeTravelTicks is how many ticks a train spends inside a span
const wormholeTravelTicks = 2

// World ties the map, the trains, the signal engine and the programmable-
// signal store together, and owns the message log shown to the user.
type World struct {
	Map      *rail.Map
	Trains   *TrainSet
	Updater  *block.Updater
	Programs *program.Store

	Messages []string
	Steps    int
}

// NewWorld creates a world over a built map
func NewWorld(m *rail.Map, settings block.Settings) *World {
	w := &World{
		Map:    m,
		Trains: NewTrainSet(),
	}
	w.Updater = block.NewUpdater(m, w.Trains, settings)
	w.Programs = program.NewStore(m, w.Updater.Deps())
	w.Updater.SetProgramEvaluator(w.Programs)
	w.Updater.SetBudgetWarnHook(func() {
		w.AddMessage("signal program evaluation budget exhausted; failing safe to red")
	})
	return w
}

// AddMessage adds a message to the world's message log
func (w *World) AddMessage(msg string) {
	const maxMessages = 5
	w.Messages = append(w.Messages, msg)
	if len(w.Messages) > maxMessages {
		w.Messages = w.Messages[len(w.Messages)-maxMessages:]
	}
}

// SettleSignals brings every signal in line with the current occupancy, used
// after building a map or placing trains by hand. One enqueue per rail
// piece, then a flush per owner batch.
func (w *World) SettleSignals() {
	w.Map.ForEachTile(func(t rail.TileIndex, tile *rail.Tile) {
		switch {
		case tile.Type == rail.TileRail:
			tile.Tracks.Each(func(track rail.Track) {
				w.Updater.EnqueueTrack(t, track, tile.Owner)
				w.Updater.FlushPending()
			})
		case tile.Type.IsWormholeHead():
			w.Updater.EnqueueSide(t, rail.SideNone, tile.Owner)
			w.Updater.FlushPending()
		}
	})
}

// Step advances the world one tick: every train moves at most one hop, and
// the signal engine flushes the resulting notifications
func (w *World) Step() {
	w.Steps++
	w.Trains.Each(func(tr *Train) {
		w.stepTrain(tr)
	})
	w.Updater.FlushPending()
}

// stepTrain moves one train one hop along its heading, honouring red
// aspects, depot mouths and wormhole travel
func (w *World) stepTrain(tr *Train) {
	if tr.InDepot {
		return
	}

	if tr.InWormhole {
		tr.wormTicks--
		if tr.wormTicks > 0 {
			return
		}
		w.leaveWormhole(tr)
		return
	}

	cur := w.Map.At(tr.Tile)
	if cur == nil {
		return
	}

	// standing on a head facing the span: dive in
	if cur.Type.IsWormholeHead() && tr.Toward == cur.Facing {
		w.enterWormhole(tr, cur)
		return
	}

	next := w.Map.Neighbor(tr.Tile, tr.Toward)
	if next == rail.InvalidTile {
		w.reverse(tr)
		return
	}

	from := tr.Toward.Opposite()
	owner := w.Map.OwnerOf(tr.Tile)

	switch w.Map.TypeOf(next) {
	case rail.TileRail, rail.TileStation, rail.TileCrossing:
		reach := w.Map.ReachableTracks(next, from)
		if reach == rail.BitNone {
			w.reverse(tr)
			return
		}
		track := pickContinuation(reach, from, tr.Toward)
		td := rail.TrackdirEntering(track, from)
		if sig := w.Map.SignalOn(next, track); sig != nil {
			if sig.HasToward(track, td.Toward) && !sig.GreenToward(track, td.Toward) {
				tr.Stopped = true
				return
			}
		}
		w.moveTo(tr, next, track, td.Toward, owner)

	case rail.TileDepot:
		if w.Map.At(next).DepotExit != from {
			w.reverse(tr)
			return
		}
		old, oldTrack := tr.Tile, tr.Track
		tr.Tile = next
		tr.InDepot = true
		tr.Stopped = false
		w.Updater.EnqueueTrack(old, oldTrack, owner)
		w.Updater.EnqueueSide(next, from, owner)

	case rail.TileTunnel, rail.TileBridge:
		head := w.Map.At(next)
		if head.Facing.Opposite() != from {
			w.reverse(tr)
			return
		}
		if head.SpanSignalled && head.HasEntranceSignal && !head.EntranceGreen {
			tr.Stopped = true
			return
		}
		w.moveTo(tr, next, w.Map.TracksAt(next).Single(), head.Facing, owner)

	default:
		w.reverse(tr)
	}
}

// moveTo relocates a train one tile and notifies the engine about the piece
// it left and the piece it now occupies
func (w *World) moveTo(tr *Train, next rail.TileIndex, track rail.Track, toward rail.Side, owner rail.Owner) {
	old, oldTrack := tr.Tile, tr.Track
	tr.Tile = next
	tr.Track = track
	tr.Toward = toward
	tr.Stopped = false
	w.Updater.EnqueueTrack(old, oldTrack, owner)
	if track != rail.TrackInvalid {
		w.Updater.EnqueueTrack(next, track, w.Map.OwnerOf(next))
	}
}

// enterWormhole moves a train off a head tile into the hidden span
func (w *World) enterWormhole(tr *Train, head *rail.Tile) {
	from := tr.Tile
	tr.InWormhole = true
	tr.WormFrom = from
	tr.WormTo = head.Span
	tr.wormTicks = wormholeTravelTicks
	tr.Stopped = false
	owner := w.Map.OwnerOf(from)
	w.Updater.EnqueueSide(from, head.Facing.Opposite(), owner)
	w.Updater.EnqueueSide(head.Span, rail.SideNone, owner)
}

// leaveWormhole puts a train back on the far head, heading out its open side
func (w *World) leaveWormhole(tr *Train) {
	far := w.Map.At(tr.WormTo)
	tr.InWormhole = false
	tr.Tile = tr.WormTo
	tr.Track = w.Map.TracksAt(tr.WormTo).Single()
	tr.Toward = far.Facing.Opposite()
	owner := w.Map.OwnerOf(tr.Tile)
	w.Updater.EnqueueSide(tr.Tile, tr.Toward, owner)
	w.Updater.EnqueueSide(tr.WormFrom, rail.SideNone, owner)
}

// reverse turns a train around on its current piece
func (w *World) reverse(tr *Train) {
	if tr.Track.IsValid() {
		tr.Toward = tr.Track.OtherEnd(tr.Toward)
	} else {
		tr.Toward = tr.Toward.Opposite()
	}
	tr.Stopped = false
}

// pickContinuation chooses which reachable piece a train follows: straight
// through if possible, otherwise the first reachable piece
func pickContinuation(reach rail.TrackBits, from, wasToward rail.Side) rail.Track {
	straight := rail.TrackInvalid
	first := rail.TrackInvalid
	reach.Each(func(t rail.Track) {
		if first == rail.TrackInvalid {
			first = t
		}
		if t.OtherEnd(from) == wasToward {
			straight = t
		}
	})
	if straight != rail.TrackInvalid {
		return straight
	}
	return first
}
