package block

import (
	"fmt"

	"signalbox/pkg/engine/rail"
)

// exploreSegment walks one block from the seeded open-frontier entries,
// classifying every tile it reaches and filling a SegmentSummary. The open
// frontier doubles as the visited record: entries are scanned in insertion
// order and never removed until the final reset, so the de-duplication rule
// can see everything the walk has touched and each directed edge of the
// track graph is taken at most once.
func (u *Updater) exploreSegment(owner rail.Owner) SegmentSummary {
	var sum SegmentSummary

	for i := 0; i < u.open.Len(); i++ {
		u.exploreTile(u.open.At(i), owner, &sum)
		if u.open.Overflowed() || u.upd.Overflowed() {
			sum.Overflowed = true
			break
		}
	}

	u.open.Reset()
	return sum
}

// exploreTile classifies one (tile, entered-through-edge) pair
func (u *Updater) exploreTile(e sideEntry, owner rail.Owner, sum *SegmentSummary) {
	tile := u.m.At(e.Tile)
	if tile == nil {
		return
	}
	if !u.m.IsOneSignalBlock(owner, e.Tile) {
		return
	}

	switch tile.Type {
	case rail.TileRail:
		u.exploreRail(e, tile, sum)
	case rail.TileDepot:
		u.exploreDepot(e, tile, sum)
	case rail.TileStation, rail.TileCrossing:
		u.exploreStraight(e, tile, sum)
	case rail.TileTunnel, rail.TileBridge:
		u.exploreWormhole(e, tile, sum)
	default:
		// dead end
	}
}

// exploreRail handles a plain track tile: train test on the reachable
// piece(s), block-terminating signal handling, and continuation to every
// reachable neighbour
func (u *Updater) exploreRail(e sideEntry, tile *rail.Tile, sum *SegmentSummary) {
	if e.From == rail.SideNone {
		// rail tiles are only ever entered across an edge
		panic(fmt.Sprintf("rail tile %v entered without an edge", e.Tile))
	}

	reach := tile.Tracks & rail.TracksFromSide(e.From)
	if reach == rail.BitNone {
		return
	}

	if !sum.TrainPresent {
		if single := reach.Single(); single != rail.TrackInvalid {
			// exactly one piece is incident: test just that piece
			sum.TrainPresent = u.trains.TrainOnTrack(e.Tile, single)
		} else {
			sum.TrainPresent = u.trains.TrainOnTile(e.Tile)
		}
	}

	if track := reach.Single(); track != rail.TrackInvalid {
		if sig := u.m.SignalOn(e.Tile, track); sig != nil {
			u.recordSignal(e.Tile, track, sig, e.From, sum)
			// signals terminate a block; do not walk past
			return
		}
	}

	reach.Each(func(t rail.Track) {
		u.maybeAddOpen(e, t.OtherEnd(e.From))
	})
}

// recordSignal folds one block-bounding signal post into the walk. The
// aspect shown against the walk direction guards entry into this block and
// goes to the update frontier; the aspect shown along the walk direction is
// an exit of this block and feeds the presignal counts.
func (u *Updater) recordSignal(t rail.TileIndex, track rail.Track, sig *rail.Signal, from rail.Side, sum *SegmentSummary) {
	td := rail.TrackdirEntering(track, from)

	sum.SignalPresent = true

	if sig.Type.IsPathSignal() {
		sum.PathSignalPresent = true
		return
	}

	if sig.HasToward(track, td.Reverse().Toward) {
		u.upd.Add(signalEntry{Tile: t, Dir: td.Reverse()})
	}

	if sig.HasToward(track, td.Toward) && sig.Type.ActsAsExit() {
		sum.ExitCount++
		if sig.GreenToward(track, td.Toward) {
			sum.GreenExitCount++
		}
	}
}

// exploreDepot handles a rail depot tile. From the interior the walk
// continues out the depot's fixed exit; from outside, the depot mouth is a
// dead end.
func (u *Updater) exploreDepot(e sideEntry, tile *rail.Tile, sum *SegmentSummary) {
	switch e.From {
	case rail.SideNone:
		// a train switched into or out of the depot
		if !sum.TrainPresent {
			sum.TrainPresent = u.trains.TrainInDepot(e.Tile)
		}
		u.maybeAddOpen(e, tile.DepotExit)
	case tile.DepotExit:
		if !sum.TrainPresent {
			sum.TrainPresent = u.trains.TrainInDepot(e.Tile)
		}
	}
}

// exploreStraight handles station platforms and level crossings: one
// straight piece, continuation along its axis only
func (u *Updater) exploreStraight(e sideEntry, tile *rail.Tile, sum *SegmentSummary) {
	reach := tile.Tracks & rail.TracksFromSide(e.From)
	if reach == rail.BitNone {
		return
	}

	if !sum.TrainPresent {
		sum.TrainPresent = u.trains.TrainOnTile(e.Tile)
	}

	if tile.Type == rail.TileCrossing && u.settings.PathProtectedCrossings {
		sum.PathSignalPresent = true
	}

	if track := reach.Single(); track != rail.TrackInvalid {
		u.maybeAddOpen(e, track.OtherEnd(e.From))
	}
}

// exploreWormhole handles tunnel and bridge heads. Crossing the hidden span
// is a single hop, not a per-tile walk. Signalled heads terminate the block
// like track signals do; plain spans behave like one long piece of straight
// track between their two ends.
func (u *Updater) exploreWormhole(e sideEntry, tile *rail.Tile, sum *SegmentSummary) {
	openSide := tile.Facing.Opposite()

	if tile.SpanSignalled {
		switch e.From {
		case rail.SideNone, openSide:
			sum.SignalPresent = true
			if tile.HasExitSignal {
				if tile.SpanPath {
					sum.PathSignalPresent = true
				} else {
					u.upd.Add(signalEntry{Tile: e.Tile, Dir: rail.TrackdirNone})
				}
			}
			if !sum.TrainPresent {
				sum.TrainPresent = u.trains.TrainOnTile(e.Tile) ||
					u.trains.TrainInWormhole(e.Tile, tile.Span)
			}
			if e.From == openSide && !tile.SpanPath {
				u.maybeAddOpenInterior(e, tile.Span)
			}
		}
		return
	}

	switch e.From {
	case rail.SideNone:
		// came through the span; continue out the open side
		if !sum.TrainPresent {
			sum.TrainPresent = u.trains.TrainOnTile(e.Tile)
		}
		u.maybeAddOpen(e, openSide)
	case openSide:
		if !sum.TrainPresent {
			sum.TrainPresent = u.trains.TrainOnTile(e.Tile) ||
				u.trains.TrainInWormhole(e.Tile, tile.Span)
		}
		u.maybeAddOpenInterior(e, tile.Span)
	}
}

// maybeAddOpen offers the neighbour across the given exit edge to the open
// frontier, subject to the de-duplication rule: the handled pair and the
// candidate are dropped from the pending queue, a candidate whose edge was
// already taken from the other side is skipped, and only genuinely new
// entries are added.
func (u *Updater) maybeAddOpen(cur sideEntry, exit rail.Side) {
	n := u.m.Neighbor(cur.Tile, exit)
	if n == rail.InvalidTile {
		return
	}
	cand := sideEntry{Tile: n, From: exit.Opposite()}

	u.pending.Remove(cur)
	u.pending.Remove(cand)

	if u.open.Contains(sideEntry{Tile: cand.Tile, From: cand.From.Opposite()}) {
		return
	}
	if u.open.Contains(cand) {
		return
	}
	u.open.Add(cand)
}

// maybeAddOpenInterior is maybeAddOpen for the far head of a wormhole,
// reached through the interior rather than across an edge
func (u *Updater) maybeAddOpenInterior(cur sideEntry, far rail.TileIndex) {
	cand := sideEntry{Tile: far, From: rail.SideNone}

	u.pending.Remove(cur)
	u.pending.Remove(cand)

	if u.open.Contains(cand) {
		return
	}
	u.open.Add(cand)
}
