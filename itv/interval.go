package itv

import (
	"fmt"
	"math/big"

	"github.com/cs-au-dk/bufoverrun/symb"
)

// Itv is a member of the interval lattice: a closed interval [Low, High]
// with possibly infinite bounds, plus an optional relational symbol tag
// recording that this interval was introduced by make_sym as the value of
// an unconstrained symbolic input (spec.md §6's Itv.make_sym/get_symbols).
// Bot is the empty interval [+oo, -oo].
type Itv struct {
	Low, High Bound
	Sym       symb.Sym
}

// Bot is the bottom element [+oo, -oo] (the empty set of integers).
func Bot() Itv { return Itv{Low: PlusInf{}, High: MinusInf{}} }

// Top is the top element [-oo, +oo].
func Top() Itv { return Itv{Low: MinusInf{}, High: PlusInf{}} }

// Nat is the interval [0, +oo].
func Nat() Itv { return Itv{Low: FiniteOf(0), High: PlusInf{}} }

// One is the singleton interval [1, 1].
func One() Itv { return OfInt(1) }

// Zero is the singleton interval [0, 0].
func Zero() Itv { return OfInt(0) }

// Pos is the interval [1, +oo].
func Pos() Itv { return Itv{Low: FiniteOf(1), High: PlusInf{}} }

// M1255 is the interval [-1, 255], the classic "small negative or a byte"
// range used to seed unsigned-looking symbolic inputs.
func M1255() Itv { return Itv{Low: FiniteOf(-1), High: FiniteOf(255)} }

// OfInt builds the singleton interval [n, n].
func OfInt(n int64) Itv { f := FiniteOf(n); return Itv{Low: f, High: f} }

// OfBigInt builds the singleton interval [n, n] from an arbitrary-precision
// integer.
func OfBigInt(n *big.Int) Itv { f := FiniteOfBig(n); return Itv{Low: f, High: f} }

// OfBool builds the boolean-as-interval encoding: 0, 1, or [0,1] for "top".
type TriBool int

const (
	BoolFalse TriBool = iota
	BoolTrue
	BoolTop
)

func OfBool(b TriBool) Itv {
	switch b {
	case BoolFalse:
		return OfInt(0)
	case BoolTrue:
		return OfInt(1)
	default:
		return Itv{Low: FiniteOf(0), High: FiniteOf(1)}
	}
}

func (i Itv) String() string {
	if i.IsBot() {
		return "bot"
	}
	if i.Sym.Valid() {
		return fmt.Sprintf("[%s, %s]%s", i.Low, i.High, i.Sym)
	}
	return fmt.Sprintf("[%s, %s]", i.Low, i.High)
}

// IsBot reports whether the interval is empty: either the canonical
// [+oo, -oo] or any interval whose low bound exceeds its high bound.
func (i Itv) IsBot() bool {
	if sameBound(i.Low, PlusInf{}) && sameBound(i.High, MinusInf{}) {
		return true
	}
	return i.Low.Gt(i.High)
}

func sameBound(a, b Bound) bool {
	switch a.(type) {
	case PlusInf:
		_, ok := b.(PlusInf)
		return ok
	case MinusInf:
		_, ok := b.(MinusInf)
		return ok
	default:
		return false
	}
}

// IsTop reports whether the interval is [-oo, +oo].
func (i Itv) IsTop() bool {
	return sameBound(i.Low, MinusInf{}) && sameBound(i.High, PlusInf{})
}

// IsEmpty is an alias for IsBot, matching spec.md's Itv.is_empty.
func (i Itv) IsEmpty() bool { return i.IsBot() }

// EqConst reports whether the interval is the singleton {n}.
func (i Itv) EqConst(n int64) bool {
	f, ok := i.Low.(*Finite)
	if !ok || !i.Low.Eq(i.High) {
		return false
	}
	return f.bi().Int64() == n
}

// Leq computes i <= o (subset ordering).
func (i Itv) Leq(o Itv) bool {
	if i.IsBot() {
		return true
	}
	if o.IsBot() {
		return false
	}
	return i.Low.Geq(o.Low) && i.High.Leq(o.High)
}

// Geq computes i >= o.
func (i Itv) Geq(o Itv) bool { return o.Leq(i) }

// Eq computes i == o.
func (i Itv) Eq(o Itv) bool { return i.Leq(o) && i.Geq(o) }

// Join computes the interval hull of i and o.
func (i Itv) Join(o Itv) Itv {
	if i.IsBot() {
		return o
	}
	if o.IsBot() {
		return i
	}
	low := i.Low
	if !i.Low.Leq(o.Low) {
		low = o.Low
	}
	high := i.High
	if !i.High.Geq(o.High) {
		high = o.High
	}
	sym := symb.NoSym
	if i.Sym == o.Sym {
		sym = i.Sym
	}
	return Itv{Low: low, High: high, Sym: sym}
}

// Meet computes the intersection of i and o.
func (i Itv) Meet(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if i.High.Lt(o.Low) || o.High.Lt(i.Low) {
		return Bot()
	}
	low := i.Low
	if !i.Low.Geq(o.Low) {
		low = o.Low
	}
	high := i.High
	if !i.High.Leq(o.High) {
		high = o.High
	}
	return Itv{Low: low, High: high}
}

// Widen implements the classic Cousot-Cousot interval widening: any bound
// that moved outward between the previous and next iterate snaps to the
// matching infinity, guaranteeing termination over an infinite-height
// lattice. numIters is accepted for symmetry with other sub-lattices'
// Widen(prev, next, numIters) signature (spec.md §6); Itv's widening needs
// no iteration count.
func (prev Itv) Widen(next Itv, numIters int) Itv {
	if prev.IsBot() {
		return next
	}
	if next.IsBot() {
		return prev
	}
	low := prev.Low
	if !next.Low.Geq(prev.Low) {
		low = MinusInf{}
	}
	high := prev.High
	if !next.High.Leq(prev.High) {
		high = PlusInf{}
	}
	return Itv{Low: low, High: high}
}

// Range returns the (possibly infinite) number of integers in the interval.
// A false second result (with a nil first result) means "unbounded".
func (i Itv) Range() (*Finite, bool) {
	if i.IsBot() {
		return FiniteOf(0), true
	}
	lo, lok := i.Low.(*Finite)
	hi, hok := i.High.(*Finite)
	if !lok || !hok {
		return nil, false
	}
	return FiniteOfBig(hi.bi()).sub(lo).addOne(), true
}

func (f *Finite) sub(o *Finite) *Finite { r := f.Minus(o).(*Finite); return r }
func (f *Finite) addOne() *Finite       { return f.Plus(FiniteOf(1)).(*Finite) }

// Normalize is the identity for this representation: every Itv value built
// through the exported constructors is already in normal form.
func (i Itv) Normalize() Itv { return i }

// GetIteratorItv returns the interval a "for x in [this]" front-end
// construct should bind its loop variable to: the interval itself, unless
// it is Bot, in which case the loop body is unreachable and Nat is
// returned as a harmless placeholder (no concrete input ever enters the
// loop body at that program point).
func (i Itv) GetIteratorItv() Itv {
	if i.IsBot() {
		return Nat()
	}
	return i
}
