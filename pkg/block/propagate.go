package block

import (
	"fmt"

	"signalbox/pkg/engine/rail"
)

// propagate drains the update frontier, computing a new aspect for every
// signal the exploration found guarding the block. Aspect changes feed
// forward: a presignal exit requeues the block it faces away from, and any
// signal watched by programmable logic requeues its dependants.
func (u *Updater) propagate(sum *SegmentSummary) {
	for {
		se, ok := u.upd.Pop()
		if !ok {
			return
		}
		if se.Dir == rail.TrackdirNone {
			u.updateHeadSignals(se.Tile, sum)
		} else {
			u.updateTrackSignal(se, sum)
		}
	}
}

// updateHeadSignals recomputes the signals on one signalled wormhole head.
// The exit aspect guards entry into the block just walked; the entrance
// aspect, when present, mirrors the span's own occupancy.
func (u *Updater) updateHeadSignals(t rail.TileIndex, sum *SegmentSummary) {
	tile := u.m.At(t)
	if tile == nil || !tile.Type.IsWormholeHead() {
		panic(fmt.Sprintf("wormhole signal update on tile %v of type %v", t, u.m.TypeOf(t)))
	}
	if tile.SpanPath {
		// reservation-governed spans are not ours to drive
		return
	}

	changed := false

	if tile.HasExitSignal {
		green := !sum.TrainPresent
		if tile.ExitGreen != green {
			tile.ExitGreen = green
			changed = true
		}
	}
	if tile.HasEntranceSignal {
		green := !u.trains.TrainInWormhole(t, tile.Span)
		if tile.EntranceGreen != green {
			tile.EntranceGreen = green
			changed = true
		}
	}

	if changed && u.onChanged != nil {
		u.onChanged(t)
	}
}

// updateTrackSignal recomputes the aspect of one conventional signal for one
// direction of travel
func (u *Updater) updateTrackSignal(se signalEntry, sum *SegmentSummary) {
	td := se.Dir
	sig := u.m.SignalOn(se.Tile, td.Track)
	if sig == nil || !sig.HasToward(td.Track, td.Toward) {
		panic(fmt.Sprintf("signal update entry for %v/%v without a signal", se.Tile, td))
	}

	green := true
	switch {
	case sum.TrainPresent:
		green = false
	case sig.Type == rail.SignalProgrammable && u.evaluations > u.settings.MaxSignalEvaluations:
		// runaway cascade; fail safe
		green = false
		u.reportBudgetExhausted()
	case sig.Type.ActsAsEntry():
		exits, greens := sum.ExitCount, sum.GreenExitCount
		if sig.Type != rail.SignalEntry && sig.Bidirectional() {
			// the far aspect of a bidirectional combo is itself an
			// exit of this block; leave it out of its own decision
			if exits > 0 {
				exits--
			}
			if greens > 0 && u.m.SignalGreen(se.Tile, td.Reverse()) {
				greens--
			}
		}
		green = u.entryAspect(se, sig, exits, greens)
	}

	if u.m.SignalGreen(se.Tile, td) == green {
		return
	}
	u.m.SetSignalGreen(se.Tile, td, green)
	if u.onChanged != nil {
		u.onChanged(se.Tile)
	}

	if sig.Type.ActsAsExit() {
		// the block behind this exit counts its green; make that
		// block re-evaluate its entry signals in this same flush
		u.pending.Add(sideEntry{Tile: se.Tile, From: td.Reverse().Toward})
	}

	u.cascadeDependants(rail.SignalRef{Tile: se.Tile, Track: td.Track})
}

// entryAspect decides an entry-acting signal's aspect from the (possibly
// self-adjusted) exit counts: programmable signals run their program, plain
// ones show red when the block ahead has exits but no green ones
func (u *Updater) entryAspect(se signalEntry, sig *rail.Signal, exits, greens uint) bool {
	if sig.Type == rail.SignalProgrammable && u.programs != nil {
		u.evaluations++
		ref := rail.SignalRef{Tile: se.Tile, Track: se.Dir.Track}
		if green, hasProgram := u.programs.Evaluate(ref, exits, greens); hasProgram {
			return green
		}
	}
	return !(exits > 0 && greens == 0)
}

// cascadeDependants requeues every signal whose program reads the signal
// that just changed, approaching from both directions
func (u *Updater) cascadeDependants(ref rail.SignalRef) {
	u.deps.EachDependant(ref, func(dep rail.SignalRef) {
		a, b := dep.Track.Ends()
		u.pending.Add(sideEntry{Tile: dep.Tile, From: a})
		u.pending.Add(sideEntry{Tile: dep.Tile, From: b})
	})
}

// reportBudgetExhausted fires the advisory hook at most once per flush
func (u *Updater) reportBudgetExhausted() {
	if u.warnedBudget {
		return
	}
	u.warnedBudget = true
	if u.warnBudget != nil {
		u.warnBudget()
	}
}
