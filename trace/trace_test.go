package trace

import (
	"testing"

	"github.com/cs-au-dk/bufoverrun/loc"
)

func TestLatticeLaws(t *testing.T) {
	l1, l2 := loc.Var("a"), loc.Var("b")
	s1 := Singleton(Assign{Location: l1})
	s2 := Singleton(Assign{Location: l2})

	if !Empty().Leq(s1) {
		t.Fatal("empty <= s1 must hold")
	}
	j := s1.Join(s2)
	if !s1.Leq(j) || !s2.Leq(j) {
		t.Fatal("s1, s2 <= join(s1,s2) must hold")
	}
	if j.Len() != s2.Join(s1).Len() {
		t.Fatal("join must be commutative")
	}
}

func TestCall(t *testing.T) {
	location := loc.Var("L")
	caller := Singleton(Assign{Location: loc.Var("a")})
	callee := Singleton(ArrDecl{Location: loc.Var("b")})

	combined := Call(location, caller, callee)
	if !combined.Mem(Assign{Location: location}) {
		t.Fatal("Call must record an Assign at the call site")
	}
	if !caller.Leq(combined) || !callee.Leq(combined) {
		t.Fatal("Call must subsume caller and callee traces")
	}
}

func TestElementEquality(t *testing.T) {
	a1 := Assign{Location: loc.Var("x")}
	a2 := Assign{Location: loc.Var("x")}
	s := Singleton(a1)
	if !s.Mem(a2) {
		t.Fatal("structurally equal Assign elements must be considered equal members")
	}
}
