package domain

import (
	"testing"

	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/symb"
	"github.com/cs-au-dk/bufoverrun/trace"
)

func TestAbstractValueLatticeLaws(t *testing.T) {
	a := OfInt(1)
	b := OfInt(2)
	if !Bot().Leq(a) {
		t.Fatal("bot <= a must hold")
	}
	if !a.Leq(a) {
		t.Fatal("a <= a must hold")
	}
	j := a.Join(b)
	if !a.Leq(j) || !b.Leq(j) {
		t.Fatal("a, b <= join(a,b) must hold")
	}
	if j.String() != b.Join(a).String() {
		t.Fatal("join must be commutative")
	}
}

func TestSymbolicInputScenario(t *testing.T) {
	symtab := symb.NewSymbolTable()
	l := loc.Var("a")
	location := loc.Var("L")
	path := symb.SymbolPath{RepresentsMultipleValues: true}
	v := MakeSymbolic(l, "P", symtab, path, location, false)

	if len(v.Itv.GetSymbols()) == 0 {
		t.Fatal("get_symbols(v) must be non-empty after make_symbolic")
	}
	elems := v.Traces.Elements()
	if len(elems) != 1 {
		t.Fatalf("expected a single trace element, got %d", len(elems))
	}
	if _, ok := elems[0].(trace.SymAssign); !ok {
		t.Fatalf("expected a SymAssign trace element, got %T", elems[0])
	}
	if v.RepresentsMultipleValues != path.RepresentsMultipleValues {
		t.Fatal("represents_multiple_values must carry over from the symbol path")
	}
}

func TestBranchMergeScenario(t *testing.T) {
	x := loc.Var("x")
	m0 := EmptyReachableMemory().AddStack(x, TopInterval())

	mTrue := m0.SetPrunePairs(Of(map[loc.Loc]AbstractValue{x: OfInt(5)}))
	mTrue = mTrue.UpdateMem(nil, []loc.Loc{x}, OfInt(1))
	mTrue = mTrue.UpdateLatestPrune(loc.LvarExp{Name: "x"}, loc.ConstExp{Value: 1})

	mFalse := m0.SetPrunePairs(Of(map[loc.Loc]AbstractValue{x: OfInt(6)}))
	mFalse = mFalse.UpdateMem(nil, []loc.Loc{x}, OfInt(1))
	mFalse = mFalse.UpdateLatestPrune(loc.LvarExp{Name: "x"}, loc.ConstExp{Value: 0})

	joined := mTrue.Join(mFalse)
	if joined.LatestPrune.tag != tagV || !joined.LatestPrune.x.Equal(x) {
		t.Fatalf("expected latest_prune = V(x, ...), got %s", joined.LatestPrune.String())
	}

	rTemp := loc.Ident{Num: 0}
	joined.AliasState.Map = joined.AliasState.Map.Load(rTemp, Simple(x))
	joined = joined.ApplyLatestPrune(nil, loc.TempExp{Id: rTemp})

	got := joined.Find(x)
	want := OfInt(5)
	if got.Itv.String() != want.Itv.String() {
		t.Fatalf("expected x bound to of_int(5), got %s", got.Itv.String())
	}
}

func TestArrayAllocationScenario(t *testing.T) {
	site := loc.Allocsite{ProcName: "P", Line: 10, Counter: 0}
	stride := itv.OfInt(4)
	v := OfArrayAlloc(site, &stride, itv.OfInt(0), itv.OfInt(10), trace.Empty())

	if len(v.GetAllLocs()) == 0 {
		t.Fatal("get_all_locs must include locations derived from the allocsite")
	}

	location := loc.Var("L")
	v2 := v.SetArrayLength(location, OfInt(20))
	elems := v2.Traces.Elements()
	found := false
	for _, e := range elems {
		if d, ok := e.(trace.ArrDecl); ok && d.Location.Equal(location) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a fresh ArrDecl trace element")
	}
}

func TestUnknownCallScenario(t *testing.T) {
	id := loc.Var("t0")
	location := loc.Var("L")
	m := EmptyReachableMemory().AddUnknownFrom(id, "p", location)

	if !m.Find(id).Itv.Eq(itv.Top()) {
		t.Fatal("find(id) must have top interval")
	}
	if !m.Find(loc.Unknown()).Itv.Eq(itv.Top()) {
		t.Fatal("find(Unknown) must have top interval")
	}
	for _, l := range []loc.Loc{id, loc.Unknown()} {
		elems := m.Find(l).Traces.Elements()
		found := false
		for _, e := range elems {
			if u, ok := e.(trace.UnknownFrom); ok && u.Callee == "p" && u.Location.Equal(location) {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected an UnknownFrom(p, L) trace at %s", l)
		}
	}
}

func TestComparisonWithPointerScenario(t *testing.T) {
	vPtr := OfLocation(loc.Var("a"))
	r := vPtr.Lt(OfInt(3))
	want := itv.OfBool(itv.BoolTop)
	if r.Itv.String() != want.String() {
		t.Fatalf("expected of_bool(Top), got %s", r.Itv.String())
	}
}

func TestReachabilityClosureScenario(t *testing.T) {
	a, b, c := loc.Var("a"), loc.Var("b"), loc.Var("c")
	m := EmptyReachableMemory()
	m.MemPure = m.MemPure.Set(a, OfLocation(b))
	m.MemPure = m.MemPure.Set(b, OfLocation(c))
	m.MemPure = m.MemPure.Set(c, Bot())

	got := m.GetReachableLocsFrom([]loc.Loc{a})
	want := map[string]bool{"a": true, "b": true, "c": true}
	if len(got) != len(want) {
		t.Fatalf("expected 3 reachable locations, got %d (%v)", len(got), got)
	}
	for _, l := range got {
		if !want[l.String()] {
			t.Fatalf("unexpected reachable location %s", l)
		}
	}
}

func TestLatestPruneJoinRules(t *testing.T) {
	x, y := loc.Var("x"), loc.Var("y")
	p := Of(map[loc.Loc]AbstractValue{x: OfInt(1)})
	q := Of(map[loc.Loc]AbstractValue{x: OfInt(2)})

	if got := TrueBranchOf(x, p).Join(FalseBranchOf(x, q)); got.tag != tagV {
		t.Fatalf("expected V, got %s", got.String())
	}
	if got := TrueBranchOf(x, p).Join(TrueBranchOf(y, q)); got.tag != tagTop {
		t.Fatalf("expected Top for mismatched variables, got %s", got.String())
	}
	v := VOf(x, q, q)
	if !TrueBranchOf(x, p).Leq(v) {
		t.Fatal("TrueBranch(x,p) <= V(x,q,_) must hold when p <= q")
	}
}

func TestMemoryBottomLiftDefaults(t *testing.T) {
	bot := MemBottom()
	if !bot.IsBottom() {
		t.Fatal("MemBottom must report IsBottom")
	}
	if bot.IsStackLoc(loc.Var("x")) {
		t.Fatal("bottom memory has no stack locations")
	}
	if !bot.Find(loc.Var("x")).Leq(Bot()) {
		t.Fatal("bottom memory finds bottom everywhere")
	}
	if !bot.IsRelationUnsat() {
		t.Fatal("bottom memory's relation must be unsat")
	}
}
