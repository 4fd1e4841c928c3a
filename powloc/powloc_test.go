package powloc

import (
	"testing"

	"github.com/cs-au-dk/bufoverrun/loc"
)

func TestLatticeLaws(t *testing.T) {
	a, b := loc.Var("a"), loc.Var("b")
	p := Singleton(a)
	q := Singleton(b)

	if !Bot().Leq(p) {
		t.Fatal("bot <= p must hold")
	}
	if !p.Leq(Unknown()) {
		t.Fatal("p <= top must hold")
	}
	j := p.Join(q)
	if !p.Leq(j) || !q.Leq(j) {
		t.Fatal("p, q <= join(p,q) must hold")
	}
	if len(j.Elements()) != len(q.Join(p).Elements()) {
		t.Fatal("join must be commutative")
	}
}

func TestFold(t *testing.T) {
	a, b := loc.Var("a"), loc.Var("b")
	p := Singleton(a).Add(b)
	count := Fold(p, 0, func(acc int, _ loc.Loc) int { return acc + 1 })
	if count != 2 {
		t.Fatalf("expected 2 elements, got %d", count)
	}
}

func TestUnknownAbsorbs(t *testing.T) {
	p := Singleton(loc.Var("a"))
	if !p.Join(Unknown()).IsUnknown() {
		t.Fatal("joining with Unknown must yield Unknown")
	}
	if !Unknown().Mem(loc.Var("anything")) {
		t.Fatal("Unknown must claim membership of everything")
	}
}
