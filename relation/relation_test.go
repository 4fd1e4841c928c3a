package relation

import (
	"testing"

	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
)

func TestSymLatticeLaws(t *testing.T) {
	l := loc.Var("a")
	s := OfLoc(l)
	if !Bot().Leq(s) {
		t.Fatal("bot <= s must hold")
	}
	if !s.Leq(Top()) {
		t.Fatal("s <= top must hold")
	}
	if s.Join(OfLoc(loc.Var("b"))) != Top() {
		t.Fatal("joining unequal named symbols must yield top")
	}
}

func TestStoreMeetConstraintsDetectsUnsat(t *testing.T) {
	s := Empty()
	s = s.MeetConstraints(map[string]itv.Itv{"x": itv.OfInt(5)}, nil)
	if s.IsUnsat() {
		t.Fatal("a single finite box entry must be satisfiable")
	}
	s2 := s.MeetConstraints(map[string]itv.Itv{"x": itv.OfInt(6)}, nil)
	if !s2.IsUnsat() {
		t.Fatal("meeting [5,5] with [6,6] must be unsatisfiable")
	}
}

func TestStoreNegativeCycleDetection(t *testing.T) {
	s := Empty()
	// x - y <= -1 and y - x <= -1 implies x - x <= -2, a negative cycle.
	s = s.MeetConstraints(nil, []DiffConstraint{
		{Lhs: "x", Rhs: "y", Bound: -1},
		{Lhs: "y", Rhs: "x", Bound: -1},
	})
	if !s.IsUnsat() {
		t.Fatal("expected a negative-cycle unsat store")
	}
}

func TestInstantiateWithBottomCallee(t *testing.T) {
	caller := Empty()
	result := caller.Instantiate(SubstMap{}, BotStore())
	if !result.IsUnsat() {
		t.Fatal("instantiating a bottom callee must yield an unsat store")
	}
}
