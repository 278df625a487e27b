package block

import (
	"testing"

	"signalbox/pkg/engine/rail"
)

func ref(tile rail.TileIndex, track rail.Track) rail.SignalRef {
	return rail.SignalRef{Tile: tile, Track: track}
}

func TestDependencyTracker_LinkAndLookup(t *testing.T) {
	d := NewDependencyTracker()
	watched := ref(1, rail.TrackEW)
	dep := ref(9, rail.TrackNS)

	d.AddLink(watched, dep)

	if !d.HasDependants(watched) {
		t.Error("HasDependants = false after AddLink")
	}

	var seen []rail.SignalRef
	d.EachDependant(watched, func(r rail.SignalRef) {
		seen = append(seen, r)
	})
	if len(seen) != 1 || seen[0] != dep {
		t.Errorf("EachDependant visited %v, want just %v", seen, dep)
	}
}

func TestDependencyTracker_DuplicateLinksCollapse(t *testing.T) {
	d := NewDependencyTracker()
	watched := ref(1, rail.TrackEW)
	dep := ref(9, rail.TrackNS)

	d.AddLink(watched, dep)
	d.AddLink(watched, dep)

	count := 0
	d.EachDependant(watched, func(rail.SignalRef) { count++ })
	if count != 1 {
		t.Errorf("duplicate AddLink produced %d edges, want 1", count)
	}
}

func TestDependencyTracker_RemoveLink(t *testing.T) {
	d := NewDependencyTracker()
	watched := ref(1, rail.TrackEW)
	dep := ref(9, rail.TrackNS)

	d.AddLink(watched, dep)
	d.RemoveLink(watched, dep)

	if d.HasDependants(watched) {
		t.Error("HasDependants = true after RemoveLink")
	}
}

func TestDependencyTracker_RemoveDependantDropsAllEdges(t *testing.T) {
	d := NewDependencyTracker()
	a := ref(1, rail.TrackEW)
	b := ref(2, rail.TrackEW)
	dep := ref(9, rail.TrackNS)
	other := ref(8, rail.TrackNE)

	d.AddLink(a, dep)
	d.AddLink(b, dep)
	d.AddLink(b, other)

	d.RemoveDependant(dep)

	if d.HasDependants(a) {
		t.Error("edge a->dep survived RemoveDependant")
	}
	if !d.HasDependants(b) {
		t.Error("unrelated edge b->other was dropped")
	}
}
