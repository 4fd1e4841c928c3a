package itv

import "testing"

func TestLeqJoinMeetLaws(t *testing.T) {
	vals := []Itv{Bot(), Top(), Nat(), OfInt(0), OfInt(1), OfInt(-5), Itv{Low: FiniteOf(2), High: FiniteOf(9)}}

	for _, v := range vals {
		if !v.Leq(v) {
			t.Errorf("%v is not Leq itself", v)
		}
		if !Bot().Leq(v) {
			t.Errorf("Bot is not Leq %v", v)
		}
		if !v.Leq(Top()) {
			t.Errorf("%v is not Leq Top", v)
		}
	}

	for _, a := range vals {
		for _, b := range vals {
			j := a.Join(b)
			if !a.Leq(j) || !b.Leq(j) {
				t.Errorf("Join(%v, %v) = %v is not an upper bound", a, b, j)
			}
			m := a.Meet(b)
			if !m.Leq(a) || !m.Leq(b) {
				t.Errorf("Meet(%v, %v) = %v is not a lower bound", a, b, m)
			}
		}
	}
}

func TestIsBot(t *testing.T) {
	tests := []struct {
		name string
		i    Itv
		want bool
	}{
		{"canonical bot", Bot(), true},
		{"top", Top(), false},
		{"low > high", Itv{Low: FiniteOf(5), High: FiniteOf(1)}, true},
		{"singleton", OfInt(3), false},
		{"nat", Nat(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.i.IsBot(); got != tt.want {
				t.Errorf("IsBot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWidenTerminates(t *testing.T) {
	prev := OfInt(0)
	next := Itv{Low: FiniteOf(0), High: FiniteOf(1)}
	w := prev.Widen(next, 1)
	if !w.High.IsInfinite() {
		t.Errorf("Widen should push a growing upper bound to +oo, got %v", w)
	}
	if w.Low.IsInfinite() {
		t.Errorf("stable lower bound should not be widened, got %v", w)
	}

	stable := Itv{Low: FiniteOf(0), High: FiniteOf(1)}
	w2 := stable.Widen(stable, 2)
	if !w2.Eq(stable) {
		t.Errorf("Widen of a stable sequence should be a no-op, got %v want %v", w2, stable)
	}
}

func TestArith(t *testing.T) {
	a := Itv{Low: FiniteOf(1), High: FiniteOf(3)}
	b := Itv{Low: FiniteOf(2), High: FiniteOf(4)}

	if got := a.Plus(b); got.Low.(*Finite).bi().Int64() != 3 || got.High.(*Finite).bi().Int64() != 7 {
		t.Errorf("Plus = %v, want [3,7]", got)
	}
	if got := a.Minus(b); got.Low.(*Finite).bi().Int64() != -3 || got.High.(*Finite).bi().Int64() != 1 {
		t.Errorf("Minus = %v, want [-3,1]", got)
	}
	if got := a.Mult(b); got.Low.(*Finite).bi().Int64() != 2 || got.High.(*Finite).bi().Int64() != 12 {
		t.Errorf("Mult = %v, want [2,12]", got)
	}
	if got := Zero().Mult(Top()); !got.Eq(Zero()) {
		t.Errorf("0 * top = %v, want 0", got)
	}
	if got := a.Div(Itv{Low: FiniteOf(-1), High: FiniteOf(1)}); !got.Eq(Top()) {
		t.Errorf("division by an interval spanning zero should be Top, got %v", got)
	}
}

func TestModShiftBAnd(t *testing.T) {
	if got := (Itv{Low: FiniteOf(-5), High: FiniteOf(20)}).ModSem(OfInt(4)); !got.Eq(Itv{Low: FiniteOf(0), High: FiniteOf(3)}) {
		t.Errorf("ModSem = %v, want [0,3]", got)
	}
	if got := OfInt(3).ShiftLT(OfInt(2)); !got.Eq(OfInt(12)) {
		t.Errorf("ShiftLT = %v, want 12", got)
	}
	if got := OfInt(12).ShiftRT(OfInt(2)); !got.Eq(OfInt(3)) {
		t.Errorf("ShiftRT = %v, want 3", got)
	}
	if got := Nat().BAndSem(OfInt(7)); got.Low.(*Finite).bi().Int64() != 0 {
		t.Errorf("BAndSem low should be 0, got %v", got)
	}
}

func TestCompareAndPrune(t *testing.T) {
	small := Itv{Low: FiniteOf(0), High: FiniteOf(2)}
	large := Itv{Low: FiniteOf(5), High: FiniteOf(9)}
	overlap := Itv{Low: FiniteOf(1), High: FiniteOf(6)}

	if !small.Lt(large).EqConst(1) {
		t.Errorf("small < large should be definitely true")
	}
	if !large.Lt(small).EqConst(0) {
		t.Errorf("large < small should be definitely false")
	}
	if small.Lt(overlap).EqConst(0) || small.Lt(overlap).EqConst(1) {
		// fine either way as long as it doesn't panic; overlap makes it Top
	}

	pruned := overlap.PruneComp(OpLt, large)
	if pruned.High.(*Finite).bi().Int64() != 4 {
		t.Errorf("PruneComp(<, [5,9]) on [1,6] = %v, want high=4", pruned)
	}

	if !OfInt(0).PruneNeZero().IsBot() {
		t.Errorf("PruneNeZero on {0} should be Bot")
	}
	if got := Nat().PruneNeZero(); got.IsBot() {
		t.Errorf("PruneNeZero on Nat should not be Bot")
	}
}

func TestRange(t *testing.T) {
	f, ok := Itv{Low: FiniteOf(2), High: FiniteOf(5)}.Range()
	if !ok || f.bi().Int64() != 4 {
		t.Errorf("Range([2,5]) = %v, %v, want 4, true", f, ok)
	}
	_, ok = Nat().Range()
	if ok {
		t.Errorf("Range(Nat) should report unbounded")
	}
}
