// Package block keeps the red/green state of block signals consistent with
// the rail network. Contiguous unsignalled track is treated as one safety
// block: a walk from a changed tile collects the block's trains, exits and
// reservation-capable signals into a SegmentSummary, then every signal
// guarding entry to the block is recomputed from it. Presignal exits requeue
// the adjacent block, and programmable signals cascade through a dependency
// tracker, so one change settles the whole affected neighbourhood in a
// single flush.
package block

import (
	"fmt"

	"signalbox/pkg/engine/rail"
)

// TrainLocator answers the occupancy queries the walk needs. Implemented by
// the vehicle layer.
type TrainLocator interface {
	// TrainOnTile reports a train anywhere on the tile
	TrainOnTile(t rail.TileIndex) bool

	// TrainOnTrack reports a train on one specific piece of the tile
	TrainOnTrack(t rail.TileIndex, track rail.Track) bool

	// TrainInWormhole reports a train on the hidden span between two
	// tunnel/bridge heads
	TrainInWormhole(a, b rail.TileIndex) bool

	// TrainInDepot reports a train inside the depot building
	TrainInDepot(t rail.TileIndex) bool
}

// ProgramEvaluator runs the user-authored program of a programmable signal.
// Provided by the programmable-signal front end.
type ProgramEvaluator interface {
	// Evaluate returns the signal's aspect given the block's adjusted
	// exit counts. hasProgram is false when no program is attached, in
	// which case the signal falls back to plain presignal rules.
	Evaluate(ref rail.SignalRef, exits, greenExits uint) (green, hasProgram bool)
}

// Settings are the tunables the engine consults. Capacities are compile-time
// constants instead; see boundedset.go.
type Settings struct {
	// PathProtectedCrossings makes level crossings count as
	// reservation-capable, so blocks containing one classify as
	// path-reservation governed
	PathProtectedCrossings bool

	// MaxSignalEvaluations bounds programmable-signal program runs per
	// flush. Once exceeded, further programmable signals fail safe to
	// red.
	MaxSignalEvaluations uint
}

// DefaultSettings returns the stock tuning
func DefaultSettings() Settings {
	return Settings{
		PathProtectedCrossings: false,
		MaxSignalEvaluations:   256,
	}
}

// sideEntry is an open-frontier or pending-queue element: a tile plus the
// edge the walk enters it through. From is SideNone for wormhole and depot
// interiors.
type sideEntry struct {
	Tile rail.TileIndex
	From rail.Side
}

// signalEntry is an update-frontier element: a signal post and the direction
// of travel whose aspect must be recomputed. Dir is TrackdirNone for
// wormhole head signals.
type signalEntry struct {
	Tile rail.TileIndex
	Dir  rail.Trackdir
}

// Updater owns the engine's working state: the three bounded sets, the
// dependency tracker, and the per-flush evaluation budget. It is strictly
// single-threaded and non-reentrant; the sets are empty whenever no flush is
// in progress, and Flush panics if invoked while a previous invocation is
// still walking.
type Updater struct {
	m        *rail.Map
	trains   TrainLocator
	programs ProgramEvaluator
	deps     *DependencyTracker
	settings Settings

	open    *BoundedSet[sideEntry]   // tiles still to walk in the current exploration
	upd     *BoundedSet[signalEntry] // signals awaiting a new state for the current block
	pending *BoundedSet[sideEntry]   // cross-call entry-point queue

	pendingOwner rail.Owner
	evaluations  uint
	warnedBudget bool

	warnBudget func()
	onChanged  func(rail.TileIndex)
}

// NewUpdater creates an updater over the given map and vehicle layer
func NewUpdater(m *rail.Map, trains TrainLocator, settings Settings) *Updater {
	return &Updater{
		m:        m,
		trains:   trains,
		deps:     NewDependencyTracker(),
		settings: settings,
		open:     NewBoundedSet[sideEntry](OpenFrontierCap),
		upd:      NewBoundedSet[signalEntry](UpdateFrontierCap),
		pending:  NewBoundedSet[sideEntry](PendingQueueCap),
	}
}

// SetProgramEvaluator wires the programmable-signal front end
func (u *Updater) SetProgramEvaluator(p ProgramEvaluator) {
	u.programs = p
}

// SetBudgetWarnHook installs a callback fired at most once per flush when
// the evaluation budget is exhausted, for a user-visible advisory
func (u *Updater) SetBudgetWarnHook(fn func()) {
	u.warnBudget = fn
}

// SetChangeHook installs a callback fired for every tile whose signal state
// was rewritten, typically a redraw request
func (u *Updater) SetChangeHook(fn func(rail.TileIndex)) {
	u.onChanged = fn
}

// Deps returns the dependency tracker for the programmable-signal front end
func (u *Updater) Deps() *DependencyTracker {
	return u.deps
}

// RegisterDependency records that dependant's program reads on
func (u *Updater) RegisterDependency(on, dependant rail.SignalRef) {
	u.deps.AddLink(on, dependant)
}

// UnregisterDependency removes one recorded read edge
func (u *Updater) UnregisterDependency(on, dependant rail.SignalRef) {
	u.deps.RemoveLink(on, dependant)
}

// EnqueueTrack registers that the neighbourhood of a track piece must be
// re-evaluated. Both approach directions are queued. Flushes automatically
// once the queue grows past its batching threshold.
func (u *Updater) EnqueueTrack(t rail.TileIndex, track rail.Track, owner rail.Owner) {
	a, b := track.Ends()
	u.addPending(t, a, owner)
	u.addPending(t, b, owner)
	u.maybeAutoFlush()
}

// EnqueueSide registers that the block touching one edge of a tile must be
// re-evaluated. Flushes automatically once the queue grows past its batching
// threshold.
func (u *Updater) EnqueueSide(t rail.TileIndex, s rail.Side, owner rail.Owner) {
	u.addPending(t, s, owner)
	u.maybeAutoFlush()
}

// FlushPending drains the entry-point queue, re-exploring and re-signalling
// every queued neighbourhood. Called once per game-logic step, and
// automatically by the enqueue API when the queue fills up.
func (u *Updater) FlushPending() {
	u.flush()
}

// UpdateSegmentAt queues one entry point and drains the queue synchronously,
// returning the classified status of the first block processed. Callers use
// this when they need an immediate "is this block currently free" answer.
func (u *Updater) UpdateSegmentAt(t rail.TileIndex, s rail.Side, owner rail.Owner) Status {
	u.addPending(t, s, owner)
	return u.flush()
}

// addPending adds one entry-point queue element, enforcing the one-owner-
// per-flush contract. Mixing two companies' notifications in one flush is a
// caller bug.
func (u *Updater) addPending(t rail.TileIndex, s rail.Side, owner rail.Owner) {
	if u.pending.IsEmpty() {
		u.pendingOwner = owner
	} else if owner != u.pendingOwner {
		panic(fmt.Sprintf("signal update queue holds owner %v entries, got owner %v", u.pendingOwner, owner))
	}
	u.pending.Add(sideEntry{Tile: t, From: s})
}

func (u *Updater) maybeAutoFlush() {
	if u.pending.Len() >= pendingFlushThreshold {
		u.flush()
	}
}

// flush is the update driver: pop an entry point, seed the open frontier for
// its tile type, explore the segment, propagate the new signal states, and
// repeat until the queue is drained. The first block's classification is the
// return value. Overflow anywhere aborts the remainder conservatively.
func (u *Updater) flush() Status {
	if !u.open.IsEmpty() || !u.upd.IsEmpty() {
		panic("signal update driver invoked while a previous walk is in progress")
	}

	u.evaluations = 0
	u.warnedBudget = false

	first := StatusFree
	haveFirst := false

	for {
		e, ok := u.pending.Pop()
		if !ok {
			break
		}

		switch u.m.TypeOf(e.Tile) {
		case rail.TileDepot, rail.TileTunnel, rail.TileBridge:
			// dive in from the interior
			u.open.Add(sideEntry{Tile: e.Tile, From: rail.SideNone})
		case rail.TileRail, rail.TileStation, rail.TileCrossing:
			// both tiles around the edge that triggered the
			// notification, so the walk is symmetric about it
			u.open.Add(e)
			if n := u.m.Neighbor(e.Tile, e.From); n != rail.InvalidTile {
				u.open.Add(sideEntry{Tile: n, From: e.From.Opposite()})
			}
		default:
			// track was removed since it was queued
			continue
		}

		sum := u.exploreSegment(u.pendingOwner)

		if !haveFirst {
			haveFirst = true
			first = sum.Classify()
		}

		if sum.Overflowed || u.pending.Overflowed() {
			// the exploration is inconsistent; do not propagate a
			// partial result, drop everything instead
			u.open.Reset()
			u.upd.Reset()
			u.pending.Reset()
			break
		}

		u.propagate(&sum)
	}

	return first
}
