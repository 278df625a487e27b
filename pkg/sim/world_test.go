package sim

import (
	"testing"

	"signalbox/pkg/block"
	"signalbox/pkg/engine/rail"
)

func lineWorld(t *testing.T, cols int) *World {
	t.Helper()
	m := rail.NewMap(1, cols)
	for c := 0; c < cols; c++ {
		m.LayRail(0, c, 0, rail.BitEW)
	}
	return NewWorld(m, block.DefaultSettings())
}

func TestStep_TrainAdvancesAlongStraightTrack(t *testing.T) {
	w := lineWorld(t, 6)
	tr := w.Trains.Add(w.Map.Index(0, 0), rail.TrackEW, rail.East)
	w.SettleSignals()

	w.Step()

	if tr.Tile != w.Map.Index(0, 1) {
		t.Errorf("train at %v after one step, want 0:1", tr.Tile)
	}
}

func TestStep_TrainReversesAtMapBorder(t *testing.T) {
	w := lineWorld(t, 3)
	tr := w.Trains.Add(w.Map.Index(0, 2), rail.TrackEW, rail.East)
	w.SettleSignals()

	w.Step()

	if tr.Tile != w.Map.Index(0, 2) || tr.Toward != rail.West {
		t.Errorf("train at %v toward %v after dead end, want 0:2 toward West", tr.Tile, tr.Toward)
	}
}

func TestStep_TrainHeldAtRedSignal(t *testing.T) {
	m := rail.NewMap(1, 8)
	for c := 0; c < 7; c++ {
		m.LayRail(0, c, 0, rail.BitEW)
	}
	depot := m.BuildDepot(0, 7, 0, rail.West)
	sigTile := m.Index(0, 3)
	m.PlaceSignal(sigTile, rail.TrackEW, rail.SignalNormal, rail.VariantElectric, rail.East, false)
	w := NewWorld(m, block.DefaultSettings())

	// a train parked in the depot keeps the block past the signal occupied
	w.Trains.AddInDepot(depot)
	runner := w.Trains.Add(m.Index(0, 0), rail.TrackEW, rail.East)
	w.SettleSignals()

	if w.Map.SignalGreen(sigTile, rail.Trackdir{Track: rail.TrackEW, Toward: rail.East}) {
		t.Fatal("signal green with a train in the block ahead")
	}

	// the runner must stop before the signal tile and stay stopped
	for i := 0; i < 6; i++ {
		w.Step()
	}

	if runner.Tile != w.Map.Index(0, 2) {
		t.Errorf("runner at %v, want held at 0:2 before the signal", runner.Tile)
	}
	if !runner.Stopped {
		t.Error("runner not flagged as stopped at the red aspect")
	}
}

func TestStep_TrainEntersDepotThroughItsMouth(t *testing.T) {
	m := rail.NewMap(1, 4)
	m.LayRail(0, 0, 0, rail.BitEW)
	m.LayRail(0, 1, 0, rail.BitEW)
	m.LayRail(0, 2, 0, rail.BitEW)
	depot := m.BuildDepot(0, 3, 0, rail.West)
	w := NewWorld(m, block.DefaultSettings())

	tr := w.Trains.Add(m.Index(0, 2), rail.TrackEW, rail.East)
	w.SettleSignals()

	w.Step()

	if !tr.InDepot || tr.Tile != depot {
		t.Errorf("train InDepot=%v at %v, want inside depot %v", tr.InDepot, tr.Tile, depot)
	}
	if !w.Trains.TrainInDepot(depot) {
		t.Error("TrainInDepot does not report the parked train")
	}
}

func TestStep_TrainCrossesWormholeInOneHopPlusTravel(t *testing.T) {
	m := rail.NewMap(1, 8)
	m.LayRail(0, 0, 0, rail.BitEW)
	m.LayRail(0, 1, 0, rail.BitEW)
	_, h2 := m.BuildWormhole(rail.TileTunnel, 0, 2, 0, 5, 0, false, false)
	m.LayRail(0, 6, 0, rail.BitEW)
	m.LayRail(0, 7, 0, rail.BitEW)
	w := NewWorld(m, block.DefaultSettings())

	tr := w.Trains.Add(m.Index(0, 1), rail.TrackEW, rail.East)
	w.SettleSignals()

	w.Step() // onto the near head
	if tr.Tile != m.Index(0, 2) {
		t.Fatalf("train at %v, want on near head 0:2", tr.Tile)
	}

	w.Step() // dives into the span
	if !tr.InWormhole {
		t.Fatal("train did not enter the wormhole from the head")
	}

	for i := 0; i < 4 && tr.InWormhole; i++ {
		w.Step()
	}

	if tr.InWormhole {
		t.Fatal("train never emerged from the wormhole")
	}
	if tr.Tile != h2 || tr.Toward != rail.East {
		t.Errorf("train at %v toward %v, want far head %v toward East", tr.Tile, tr.Toward, h2)
	}
}

func TestStep_EntranceSignalHoldsSecondTrainOut(t *testing.T) {
	m := rail.NewMap(1, 8)
	m.LayRail(0, 0, 0, rail.BitEW)
	m.LayRail(0, 1, 0, rail.BitEW)
	h1, h2 := m.BuildWormhole(rail.TileBridge, 0, 2, 0, 5, 0, true, false)
	m.SetHeadSignals(h1, true, true)
	m.SetHeadSignals(h2, true, true)
	m.LayRail(0, 6, 0, rail.BitEW)
	m.LayRail(0, 7, 0, rail.BitEW)
	w := NewWorld(m, block.DefaultSettings())

	inside := w.Trains.Add(h1, rail.TrackEW, rail.East)
	follower := w.Trains.Add(m.Index(0, 0), rail.TrackEW, rail.East)
	w.SettleSignals()

	w.Step() // inside dives in off the head; entrance goes red

	if !inside.InWormhole {
		t.Fatal("leading train did not enter the span")
	}
	if w.Map.At(h1).EntranceGreen {
		t.Error("entrance aspect green with a train on the span")
	}

	w.Step() // follower reaches the tile before the head

	if follower.InWormhole {
		t.Error("second train entered the span while it was occupied")
	}
	if !follower.Stopped {
		t.Error("second train not held at the red entrance aspect")
	}
	if follower.Tile != m.Index(0, 1) {
		t.Errorf("second train at %v, want held at 0:1", follower.Tile)
	}
}

func TestAddMessage_KeepsOnlyTheMostRecent(t *testing.T) {
	w := lineWorld(t, 2)

	for i := 0; i < 9; i++ {
		w.AddMessage("msg")
	}

	if len(w.Messages) != 5 {
		t.Errorf("message log holds %d entries, want capped at 5", len(w.Messages))
	}
}
