package block

import "testing"

func TestBoundedSet_AddRefusedAtCapacityAndLatches(t *testing.T) {
	s := NewBoundedSet[int](2)

	if !s.Add(1) || !s.Add(2) {
		t.Fatal("adds within capacity refused")
	}
	if s.Add(3) {
		t.Error("add beyond capacity accepted")
	}
	if !s.Overflowed() {
		t.Error("overflow flag not latched after refused add")
	}

	// the flag stays up even after room is made
	s.Remove(1)
	if !s.Overflowed() {
		t.Error("overflow flag dropped by Remove")
	}
}

func TestBoundedSet_ResetClearsElementsAndFlag(t *testing.T) {
	s := NewBoundedSet[int](1)
	s.Add(1)
	s.Add(2)

	s.Reset()

	if !s.IsEmpty() {
		t.Error("set not empty after Reset")
	}
	if s.Overflowed() {
		t.Error("overflow flag survived Reset")
	}
	if !s.Add(7) {
		t.Error("add refused after Reset")
	}
}

func TestBoundedSet_RemoveIsSwapRemove(t *testing.T) {
	s := NewBoundedSet[int](4)
	s.Add(1)
	s.Add(2)
	s.Add(3)

	if !s.Remove(1) {
		t.Fatal("Remove(1) did not find the element")
	}
	if s.Remove(1) {
		t.Error("Remove(1) found an already-removed element")
	}
	if s.Len() != 2 || !s.Contains(2) || !s.Contains(3) {
		t.Errorf("unexpected contents after remove: len %d", s.Len())
	}
}

func TestBoundedSet_PopIsStackOrder(t *testing.T) {
	s := NewBoundedSet[string](4)
	s.Add("a")
	s.Add("b")

	if e, ok := s.Pop(); !ok || e != "b" {
		t.Errorf("first Pop = %q, %v; want b, true", e, ok)
	}
	if e, ok := s.Pop(); !ok || e != "a" {
		t.Errorf("second Pop = %q, %v; want a, true", e, ok)
	}
	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty set reported ok")
	}
}

func TestBoundedSet_AtPositionsStableUnderAdd(t *testing.T) {
	s := NewBoundedSet[int](8)
	for i := 0; i < 5; i++ {
		s.Add(i * 10)
	}
	for i := 0; i < 5; i++ {
		if got := s.At(i); got != i*10 {
			t.Errorf("At(%d) = %d, want %d", i, got, i*10)
		}
	}
}
