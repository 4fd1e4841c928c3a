package arrayblk

import (
	"testing"

	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
)

func site() loc.Allocsite { return loc.Allocsite{ProcName: "P", Line: 1, Counter: 0} }

func TestLatticeLaws(t *testing.T) {
	a := Make(site(), itv.OfInt(0), itv.OfInt(10), nil)
	if !Bot().Leq(a) {
		t.Fatal("bot <= a must hold")
	}
	if !a.Leq(a) {
		t.Fatal("a <= a must hold")
	}
	b := Make(site(), itv.OfInt(0), itv.OfInt(20), nil)
	j := a.Join(b)
	if !a.Leq(j) || !b.Leq(j) {
		t.Fatal("a, b <= join(a,b) must hold")
	}
}

func TestSetLengthAndPlusOffset(t *testing.T) {
	a := Make(site(), itv.OfInt(0), itv.OfInt(10), nil)
	a2 := a.SetLength(itv.OfInt(20))
	if a2.Strideof().Leq(itv.Bot()) {
		t.Fatal("stride must survive SetLength")
	}

	shifted := a.PlusOffset(itv.OfInt(4))
	offsets := shifted.GetPowLoc()
	if len(offsets) != len(a.GetPowLoc()) {
		t.Fatal("PlusOffset must not change which locations the descriptor covers")
	}
}

func TestDiffBetweenSites(t *testing.T) {
	a := Make(site(), itv.OfInt(0), itv.OfInt(10), nil)
	if a.Diff(a).IsBot() {
		t.Fatal("diffing a descriptor against itself must not be bottom")
	}
}
