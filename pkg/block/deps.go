package block

import (
	"github.com/zyedidia/generic/mapset"

	"signalbox/pkg/engine/rail"
)

// DependencyTracker maps a signal to the set of signals whose programmable
// logic reads it. Edges are created and destroyed by the programmable-signal
// front end; the propagator only looks dependants up to re-enqueue them when
// the watched signal's observable state changes.
type DependencyTracker struct {
	dependants map[rail.SignalRef]mapset.Set[rail.SignalRef]
}

// NewDependencyTracker creates an empty tracker
func NewDependencyTracker() *DependencyTracker {
	return &DependencyTracker{
		dependants: make(map[rail.SignalRef]mapset.Set[rail.SignalRef]),
	}
}

// AddLink records that dependant's program reads the state of on
func (d *DependencyTracker) AddLink(on, dependant rail.SignalRef) {
	set, found := d.dependants[on]
	if !found {
		set = mapset.New[rail.SignalRef]()
		d.dependants[on] = set
	}
	set.Put(dependant)
}

// RemoveLink deletes one edge, if present
func (d *DependencyTracker) RemoveLink(on, dependant rail.SignalRef) {
	if set, found := d.dependants[on]; found {
		set.Remove(dependant)
		if set.Size() == 0 {
			delete(d.dependants, on)
		}
	}
}

// RemoveDependant deletes every edge pointing at the given dependant, used
// when its program is removed or rewritten
func (d *DependencyTracker) RemoveDependant(dependant rail.SignalRef) {
	for on, set := range d.dependants {
		set.Remove(dependant)
		if set.Size() == 0 {
			delete(d.dependants, on)
		}
	}
}

// EachDependant calls fn for every signal whose program reads on
func (d *DependencyTracker) EachDependant(on rail.SignalRef, fn func(rail.SignalRef)) {
	if set, found := d.dependants[on]; found {
		set.Each(fn)
	}
}

// HasDependants reports whether anything reads the given signal
func (d *DependencyTracker) HasDependants(on rail.SignalRef) bool {
	set, found := d.dependants[on]
	return found && set.Size() > 0
}
