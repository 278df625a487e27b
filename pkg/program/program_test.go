package program

import (
	"testing"

	"signalbox/pkg/block"
	"signalbox/pkg/engine/rail"
)

func buildLine(t *testing.T, cols int) *rail.Map {
	t.Helper()
	m := rail.NewMap(1, cols)
	for c := 0; c < cols; c++ {
		m.LayRail(0, c, 0, rail.BitEW)
	}
	return m
}

func TestProgramGreen_EmptyProgramIsAlwaysGreen(t *testing.T) {
	p := &Program{}
	if !p.Green(nil, 0, 0) {
		t.Error("empty program evaluated red, want green")
	}
}

func TestProgramGreen_CounterComparisons(t *testing.T) {
	p := &Program{
		Conditions: []Condition{
			{Operand: OpGreenExitCount, Cmp: CmpGe, Value: 1},
		},
	}

	if !p.Green(nil, 2, 1) {
		t.Error("green-exits >= 1 failed with one green exit")
	}
	if p.Green(nil, 2, 0) {
		t.Error("green-exits >= 1 held with no green exits")
	}
}

func TestProgramGreen_RedExitCountIsDerived(t *testing.T) {
	p := &Program{
		Conditions: []Condition{
			{Operand: OpRedExitCount, Cmp: CmpEq, Value: 2},
		},
	}

	if !p.Green(nil, 3, 1) {
		t.Error("red-exits == 2 failed for 3 exits, 1 green")
	}
	if p.Green(nil, 3, 3) {
		t.Error("red-exits == 2 held for 3 exits, all green")
	}
}

func TestProgramGreen_OtherwiseAspect(t *testing.T) {
	p := &Program{
		Conditions: []Condition{
			{Operand: OpExitCount, Cmp: CmpGt, Value: 0},
		},
		Otherwise: true,
	}

	if !p.Green(nil, 0, 0) {
		t.Error("failing condition with Otherwise=true evaluated red")
	}
}

func TestProgramGreen_SignalReadCondition(t *testing.T) {
	m := buildLine(t, 4)
	watched := m.Index(0, 1)
	m.PlaceSignal(watched, rail.TrackEW, rail.SignalNormal, rail.VariantElectric, rail.East, false)

	dir := rail.Trackdir{Track: rail.TrackEW, Toward: rail.East}
	p := &Program{
		Conditions: []Condition{
			{
				ReadSignal: true,
				Signal:     rail.SignalRef{Tile: watched, Track: rail.TrackEW},
				Dir:        dir,
				WantGreen:  true,
			},
		},
	}

	if !p.Green(m, 0, 0) {
		t.Error("signal-read condition failed while the watched aspect is green")
	}

	m.SetSignalGreen(watched, dir, false)
	if p.Green(m, 0, 0) {
		t.Error("signal-read condition held while the watched aspect is red")
	}
}

func TestStoreAttach_RejectsNonProgrammableSignals(t *testing.T) {
	m := buildLine(t, 4)
	sigTile := m.Index(0, 1)
	m.PlaceSignal(sigTile, rail.TrackEW, rail.SignalNormal, rail.VariantElectric, rail.East, false)

	s := NewStore(m, block.NewDependencyTracker())
	err := s.Attach(rail.SignalRef{Tile: sigTile, Track: rail.TrackEW}, &Program{})
	if err == nil {
		t.Error("Attach to a normal signal succeeded, want error")
	}
}

func TestStoreAttach_RegistersDependencyEdges(t *testing.T) {
	m := buildLine(t, 8)
	watched := m.Index(0, 1)
	prog := m.Index(0, 5)
	m.PlaceSignal(watched, rail.TrackEW, rail.SignalNormal, rail.VariantElectric, rail.East, false)
	m.PlaceSignal(prog, rail.TrackEW, rail.SignalProgrammable, rail.VariantElectric, rail.East, false)

	deps := block.NewDependencyTracker()
	s := NewStore(m, deps)

	watchedRef := rail.SignalRef{Tile: watched, Track: rail.TrackEW}
	progRef := rail.SignalRef{Tile: prog, Track: rail.TrackEW}

	err := s.Attach(progRef, &Program{
		Conditions: []Condition{
			{
				ReadSignal: true,
				Signal:     watchedRef,
				Dir:        rail.Trackdir{Track: rail.TrackEW, Toward: rail.East},
				WantGreen:  true,
			},
		},
	})
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if !deps.HasDependants(watchedRef) {
		t.Error("Attach did not register the signal-read dependency edge")
	}

	s.Detach(progRef)
	if deps.HasDependants(watchedRef) {
		t.Error("Detach left the dependency edge behind")
	}
}

func TestStoreEvaluate_NoProgramFallsBack(t *testing.T) {
	m := buildLine(t, 4)
	s := NewStore(m, block.NewDependencyTracker())

	if _, hasProgram := s.Evaluate(rail.SignalRef{Tile: 1, Track: rail.TrackEW}, 1, 0); hasProgram {
		t.Error("Evaluate reported a program for a signal that has none")
	}
}
