// Package program is the programmable-signal front end: small user-authored
// condition programs that decide a signal's aspect from the runtime counters
// of the block it faces and from the aspects of other signals. The block
// engine calls Evaluate synchronously during propagation; signal reads are
// registered as dependency edges so the engine can cascade re-evaluation
// when a watched signal changes.
package program

import (
	"fmt"

	"signalbox/pkg/block"
	"signalbox/pkg/engine/rail"
)

// Operand selects the counter a condition compares
type Operand int

// Operands
const (
	OpExitCount Operand = iota
	OpGreenExitCount
	OpRedExitCount
)

// Comparator is the comparison a condition applies
type Comparator int

// Comparators
const (
	CmpEq Comparator = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (c Comparator) compare(a, b uint) bool {
	switch c {
	case CmpEq:
		return a == b
	case CmpNe:
		return a != b
	case CmpLt:
		return a < b
	case CmpLe:
		return a <= b
	case CmpGt:
		return a > b
	case CmpGe:
		return a >= b
	default:
		return false
	}
}

// Condition is one clause of a program: either a counter comparison or a
// read of another signal's aspect
type Condition struct {
	// Counter comparison; used when ReadSignal is false
	Operand Operand
	Cmp     Comparator
	Value   uint

	// Signal aspect read
	ReadSignal bool
	Signal     rail.SignalRef
	Dir        rail.Trackdir // direction of travel whose aspect is read
	WantGreen  bool
}

// Program decides a programmable signal's aspect: green when every condition
// holds, Otherwise when any condition fails. A program with no conditions is
// always green.
type Program struct {
	Conditions []Condition
	Otherwise  bool // aspect when any condition fails; false = red
}

// Green evaluates the program against the adjusted exit counts
func (p *Program) Green(m *rail.Map, exits, greens uint) bool {
	for _, c := range p.Conditions {
		if !c.holds(m, exits, greens) {
			return p.Otherwise
		}
	}
	return true
}

func (c *Condition) holds(m *rail.Map, exits, greens uint) bool {
	if c.ReadSignal {
		return m.SignalGreen(c.Signal.Tile, c.Dir) == c.WantGreen
	}
	var have uint
	switch c.Operand {
	case OpExitCount:
		have = exits
	case OpGreenExitCount:
		have = greens
	case OpRedExitCount:
		have = exits - greens
	}
	return c.Cmp.compare(have, c.Value)
}

// Store holds the programs attached to signals and implements the engine's
// ProgramEvaluator. Attaching a program registers one dependency edge per
// signal-read condition; detaching removes them again.
type Store struct {
	m        *rail.Map
	deps     *block.DependencyTracker
	programs map[rail.SignalRef]*Program
}

// NewStore creates a store wired to the engine's dependency tracker
func NewStore(m *rail.Map, deps *block.DependencyTracker) *Store {
	return &Store{
		m:        m,
		deps:     deps,
		programs: make(map[rail.SignalRef]*Program),
	}
}

// Attach binds a program to a signal, replacing any previous one. The
// signal must exist and be programmable.
func (s *Store) Attach(ref rail.SignalRef, p *Program) error {
	sig := s.m.SignalOn(ref.Tile, ref.Track)
	if sig == nil || sig.Type != rail.SignalProgrammable {
		return fmt.Errorf("no programmable signal at %v/%v", ref.Tile, ref.Track)
	}
	s.Detach(ref)
	s.programs[ref] = p
	for _, c := range p.Conditions {
		if c.ReadSignal {
			s.deps.AddLink(c.Signal, ref)
		}
	}
	return nil
}

// Detach removes a signal's program and its dependency edges
func (s *Store) Detach(ref rail.SignalRef) {
	p, found := s.programs[ref]
	if !found {
		return
	}
	for _, c := range p.Conditions {
		if c.ReadSignal {
			s.deps.RemoveLink(c.Signal, ref)
		}
	}
	delete(s.programs, ref)
}

// Evaluate implements block.ProgramEvaluator
func (s *Store) Evaluate(ref rail.SignalRef, exits, greens uint) (green, hasProgram bool) {
	p, found := s.programs[ref]
	if !found {
		return false, false
	}
	return p.Green(s.m, exits, greens), true
}
