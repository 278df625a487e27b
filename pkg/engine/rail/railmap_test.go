package rail

import "testing"

func TestNeighbor_BorderIsInvalid(t *testing.T) {
	m := NewMap(2, 2)
	if got := m.Neighbor(m.Index(0, 0), North); got != InvalidTile {
		t.Errorf("Neighbor(0:0, North) = %v, want InvalidTile", got)
	}
	if got := m.Neighbor(m.Index(0, 0), East); got != m.Index(0, 1) {
		t.Errorf("Neighbor(0:0, East) = %v, want %v", got, m.Index(0, 1))
	}
}

func TestLayRail_AccumulatesPieces(t *testing.T) {
	m := NewMap(1, 1)
	tile := m.LayRail(0, 0, 0, BitEW)
	m.LayRail(0, 0, 0, BitSW)

	if got := m.TracksAt(tile); got != BitEW|BitSW {
		t.Errorf("TracksAt = %v, want EW|SW", got)
	}
}

func TestLayRail_OverStationPanics(t *testing.T) {
	m := NewMap(1, 1)
	m.BuildStation(0, 0, 0, TrackEW)

	defer func() {
		if recover() == nil {
			t.Error("LayRail over a station did not panic")
		}
	}()
	m.LayRail(0, 0, 0, BitEW)
}

func TestTracksAt_DepotAndHeadsReportStubPiece(t *testing.T) {
	m := NewMap(1, 6)
	depot := m.BuildDepot(0, 0, 0, East)
	h1, _ := m.BuildWormhole(TileTunnel, 0, 2, 0, 5, 0, false, false)

	if got := m.TracksAt(depot); got != BitEW {
		t.Errorf("depot TracksAt = %v, want EW stub", got)
	}
	if got := m.TracksAt(h1); got != BitEW {
		t.Errorf("tunnel head TracksAt = %v, want EW stub", got)
	}
}

func TestBuildWormhole_HeadsFaceEachOther(t *testing.T) {
	m := NewMap(4, 4)
	h1, h2 := m.BuildWormhole(TileBridge, 0, 1, 3, 1, 0, true, false)

	if got := m.At(h1).Facing; got != South {
		t.Errorf("near head faces %v, want South", got)
	}
	if got := m.At(h2).Facing; got != North {
		t.Errorf("far head faces %v, want North", got)
	}
	if m.At(h1).Span != h2 || m.At(h2).Span != h1 {
		t.Error("heads do not reference each other's span")
	}
}

func TestReachableTracks_FiltersByEntryEdge(t *testing.T) {
	m := NewMap(1, 1)
	tile := m.LayRail(0, 0, 0, BitEW|BitSW)

	if got := m.ReachableTracks(tile, East); got != BitEW {
		t.Errorf("ReachableTracks from East = %v, want EW only", got)
	}
	if got := m.ReachableTracks(tile, West); got != BitEW|BitSW {
		t.Errorf("ReachableTracks from West = %v, want EW|SW", got)
	}
	if got := m.ReachableTracks(tile, North); got != BitNone {
		t.Errorf("ReachableTracks from North = %v, want none", got)
	}
}

func TestPlaceSignal_FreshAspectsStartGreen(t *testing.T) {
	m := NewMap(1, 1)
	tile := m.LayRail(0, 0, 0, BitEW)
	m.PlaceSignal(tile, TrackEW, SignalNormal, VariantElectric, East, false)

	if !m.SignalGreen(tile, Trackdir{Track: TrackEW, Toward: East}) {
		t.Error("fresh signal aspect is red, want green")
	}
	sig := m.SignalOn(tile, TrackEW)
	if sig.HasToward(TrackEW, West) {
		t.Error("one-way signal reports an aspect toward West")
	}
}

func TestPlaceSignal_BothAddsOppositeAspect(t *testing.T) {
	m := NewMap(1, 1)
	tile := m.LayRail(0, 0, 0, BitNS)
	sig := m.PlaceSignal(tile, TrackNS, SignalNormal, VariantSemaphore, North, true)

	if !sig.Bidirectional() {
		t.Error("signal placed with both=true is not bidirectional")
	}
}

func TestPlaceSignal_OnJunctionTilePanics(t *testing.T) {
	m := NewMap(1, 1)
	tile := m.LayRail(0, 0, 0, BitEW|BitSW)

	defer func() {
		if recover() == nil {
			t.Error("PlaceSignal on a two-piece tile did not panic")
		}
	}()
	m.PlaceSignal(tile, TrackEW, SignalNormal, VariantElectric, East, false)
}

func TestIsOneSignalBlock_CrossingsAreShared(t *testing.T) {
	m := NewMap(1, 3)
	mine := m.LayRail(0, 0, 1, BitEW)
	theirs := m.LayRail(0, 1, 2, BitEW)
	crossing := m.BuildCrossing(0, 2, 2, TrackEW)

	if !m.IsOneSignalBlock(1, mine) {
		t.Error("own tile rejected")
	}
	if m.IsOneSignalBlock(1, theirs) {
		t.Error("foreign rail accepted")
	}
	if !m.IsOneSignalBlock(1, crossing) {
		t.Error("foreign level crossing rejected, want shared")
	}
}
