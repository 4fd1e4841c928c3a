// Package domain implements the abstract value and memory lattices at the
// core of the buffer-overrun analyzer: AbstractValue, PureMemory,
// StackLocSet, the alias components, PrunePairs/LatestPrune,
// ReachableMemory, and its bottom-lift Memory. Every sub-lattice it builds
// on (itv, arrayblk, powloc, trace, relation) is a sibling package; domain
// composes them the way the teacher's analysis/lattice/value.go,
// memory.go, and memory-ops.go compose their own sub-lattices, but with
// static per-type methods in place of goat's dynamic Element dispatch, per
// the preference for static dispatch in a fixed-point-engine-consumed
// domain.
package domain

import (
	"math/big"

	"github.com/cs-au-dk/bufoverrun/arrayblk"
	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/powloc"
	"github.com/cs-au-dk/bufoverrun/relation"
	"github.com/cs-au-dk/bufoverrun/symb"
	"github.com/cs-au-dk/bufoverrun/trace"
)

// AbstractValue is the lattice element attached to every location and
// expression: a product of six lattice components plus a scalar flag.
type AbstractValue struct {
	Itv      itv.Itv
	Sym      relation.Sym
	PowLoc   powloc.PowLoc
	ArrayBlk arrayblk.ArrayBlk
	// OffsetSym and SizeSym name the offset and size of the array this
	// value may denote, once materialized by ReachableMemory.AddHeap.
	OffsetSym relation.Sym
	SizeSym   relation.Sym
	Traces    trace.Set
	// RepresentsMultipleValues is true when this value summarizes several
	// concrete cells (e.g. an array element, or a symbolic slot that may
	// alias); such locations cannot be strongly updated.
	RepresentsMultipleValues bool
}

// Bot is the bottom value: all six lattice components at their own bottom.
func Bot() AbstractValue {
	return AbstractValue{
		Itv:       itv.Bot(),
		Sym:       relation.Bot(),
		PowLoc:    powloc.Bot(),
		ArrayBlk:  arrayblk.Bot(),
		OffsetSym: relation.Bot(),
		SizeSym:   relation.Bot(),
		Traces:    trace.Empty(),
	}
}

// TopInterval is the value whose only non-bottom component is a fully
// unconstrained interval: the default for an unmodeled heap cell.
func TopInterval() AbstractValue {
	v := Bot()
	v.Itv = itv.Top()
	return v
}

// OfInt builds the value whose interval is the singleton {n}.
func OfInt(n int64) AbstractValue {
	v := Bot()
	v.Itv = itv.OfInt(n)
	return v
}

// OfBigInt builds the value whose interval is the singleton {n}.
func OfBigInt(n *big.Int) AbstractValue {
	v := Bot()
	v.Itv = itv.OfBigInt(n)
	return v
}

// OfInterval builds a value wrapping i, tagged with traces.
func OfInterval(i itv.Itv, traces trace.Set) AbstractValue {
	v := Bot()
	v.Itv = i
	v.Traces = traces
	return v
}

// OfLocation builds the value of a pointer known to denote exactly l.
func OfLocation(l loc.Loc) AbstractValue {
	v := Bot()
	v.PowLoc = powloc.Singleton(l)
	return v
}

// OfPowLoc builds the value of a pointer known to denote one of p.
func OfPowLoc(p powloc.PowLoc, traces trace.Set) AbstractValue {
	v := Bot()
	v.PowLoc = p
	v.Traces = traces
	return v
}

// OfArrayAlloc builds the value of a freshly allocated array: an array
// descriptor at allocsite with the given offset and size, and relational
// symbols naming that offset and size. stride defaults to Nat (the most
// permissive positive-stride assumption) when nil.
func OfArrayAlloc(allocsite loc.Allocsite, stride *itv.Itv, offset, size itv.Itv, traces trace.Set) AbstractValue {
	v := Bot()
	v.ArrayBlk = arrayblk.Make(allocsite, offset, size, stride)
	v.OffsetSym = relation.OfAllocsiteOffset(allocsite)
	v.SizeSym = relation.OfAllocsiteSize(allocsite)
	v.Traces = traces
	return v
}

// MakeSymbolic builds a symbolic input value, drawing a fresh interval
// symbol from symtab: the value of an unconstrained formal parameter path
// observed at location, within proc. unsigned narrows the drawn interval
// to Nat instead of Top.
func MakeSymbolic(l loc.Loc, proc string, symtab *symb.SymbolTable, path symb.SymbolPath, location loc.Loc, unsigned bool) AbstractValue {
	i, _ := itv.MakeSym(symtab, unsigned)
	v := Bot()
	v.Itv = i
	v.Sym = relation.OfLoc(l)
	v.Traces = trace.Singleton(trace.SymAssign{Loc: l, Location: location})
	v.RepresentsMultipleValues = path.RepresentsMultipleValues
	return v
}

// UnknownFrom builds the value a call to an unmodeled procedure returns:
// fully unconstrained, tagged with an UnknownFrom trace naming the callee
// (empty when even the callee itself is unknown, e.g. an indirect call
// through an unresolved function value) and the call site.
func UnknownFrom(callee string, location loc.Loc) AbstractValue {
	v := TopInterval()
	v.Traces = trace.Singleton(trace.UnknownFrom{Callee: callee, Location: location})
	return v
}

// Leq computes v <= o, pointwise over the six lattice components.
func (v AbstractValue) Leq(o AbstractValue) bool {
	return v.Itv.Leq(o.Itv) &&
		v.Sym.Leq(o.Sym) &&
		v.PowLoc.Leq(o.PowLoc) &&
		v.ArrayBlk.Leq(o.ArrayBlk) &&
		v.OffsetSym.Leq(o.OffsetSym) &&
		v.SizeSym.Leq(o.SizeSym) &&
		v.Traces.Leq(o.Traces) &&
		(!v.RepresentsMultipleValues || o.RepresentsMultipleValues)
}

// Join computes v ⊔ o, pointwise over the six lattice components;
// RepresentsMultipleValues joins by disjunction.
func (v AbstractValue) Join(o AbstractValue) AbstractValue {
	return AbstractValue{
		Itv:                      v.Itv.Join(o.Itv),
		Sym:                      v.Sym.Join(o.Sym),
		PowLoc:                   v.PowLoc.Join(o.PowLoc),
		ArrayBlk:                 v.ArrayBlk.Join(o.ArrayBlk),
		OffsetSym:                v.OffsetSym.Join(o.OffsetSym),
		SizeSym:                  v.SizeSym.Join(o.SizeSym),
		Traces:                   v.Traces.Join(o.Traces),
		RepresentsMultipleValues: v.RepresentsMultipleValues || o.RepresentsMultipleValues,
	}
}

// Widen widens v toward next: each sub-lattice delegates to its own
// widening, given the same iteration count.
func (v AbstractValue) Widen(next AbstractValue, numIters int) AbstractValue {
	return AbstractValue{
		Itv:                      v.Itv.Widen(next.Itv, numIters),
		Sym:                      v.Sym.Join(next.Sym),
		PowLoc:                   v.PowLoc.Widen(next.PowLoc, numIters),
		ArrayBlk:                 v.ArrayBlk.Widen(next.ArrayBlk, numIters),
		OffsetSym:                v.OffsetSym.Join(next.OffsetSym),
		SizeSym:                  v.SizeSym.Join(next.SizeSym),
		Traces:                   v.Traces.Join(next.Traces),
		RepresentsMultipleValues: v.RepresentsMultipleValues || next.RepresentsMultipleValues,
	}
}

// GetAllLocs returns every location v may denote: the union of its
// pointer set and the locations of its array descriptor's allocation
// sites.
func (v AbstractValue) GetAllLocs() []loc.Loc {
	locs := v.PowLoc.Elements()
	locs = append(locs, v.ArrayBlk.GetPowLoc()...)
	return locs
}

func (v AbstractValue) String() string {
	return "{itv=" + v.Itv.String() +
		", sym=" + v.Sym.String() +
		", powloc=" + v.PowLoc.String() +
		", arrayblk=" + v.ArrayBlk.String() +
		", offset_sym=" + v.OffsetSym.String() +
		", size_sym=" + v.SizeSym.String() +
		", traces=" + v.Traces.String() + "}"
}
