// Package itv implements Itv, the numeric interval lattice that spec.md §6
// treats as an external collaborator: a complete bounded lattice with
// widening and arithmetic. The implementation follows the bound algebra of
// the teacher's analysis/lattice/interval.go (FiniteBound/PlusInfinity/
// MinusInfinity), generalized with a classic Cousot-Cousot Widen and the
// symbol/substitution hooks spec.md §4.1 requires for pruning and call-site
// substitution.
package itv

import (
	"fmt"
	"math/big"
)

// Bound is a single interval endpoint: a finite integer or one of the two
// infinities.
type Bound interface {
	fmt.Stringer
	IsInfinite() bool
	Eq(Bound) bool
	Leq(Bound) bool
	Geq(Bound) bool
	Lt(Bound) bool
	Gt(Bound) bool
	Plus(Bound) Bound
	Minus(Bound) Bound
	Mult(Bound) Bound
	Div(Bound) Bound
	Max(Bound) Bound
	Min(Bound) Bound
}

type (
	// Finite is a finite interval bound.
	Finite big.Int
	// PlusInf represents +∞.
	PlusInf struct{}
	// MinusInf represents -∞.
	MinusInf struct{}
)

// FiniteOf builds a finite bound from an int64.
func FiniteOf(n int64) *Finite { return (*Finite)(big.NewInt(n)) }

// FiniteOfBig builds a finite bound from an arbitrary-precision integer.
func FiniteOfBig(n *big.Int) *Finite { return (*Finite)(new(big.Int).Set(n)) }

func (b *Finite) bi() *big.Int { return (*big.Int)(b) }

// Value returns the finite bound's arbitrary-precision value.
func (b *Finite) Value() *big.Int { return new(big.Int).Set(b.bi()) }

func (b *Finite) String() string { return b.bi().String() }

func (*Finite) IsInfinite() bool { return false }

func (b *Finite) Eq(o Bound) bool {
	if f, ok := o.(*Finite); ok {
		return b.bi().Cmp(f.bi()) == 0
	}
	return false
}

func (b *Finite) Leq(o Bound) bool {
	switch o := o.(type) {
	case *Finite:
		return b.bi().Cmp(o.bi()) <= 0
	case PlusInf:
		return true
	case MinusInf:
		return false
	}
	panic(errBadBound(o))
}

func (b *Finite) Geq(o Bound) bool {
	switch o := o.(type) {
	case *Finite:
		return b.bi().Cmp(o.bi()) >= 0
	case PlusInf:
		return false
	case MinusInf:
		return true
	}
	panic(errBadBound(o))
}

func (b *Finite) Lt(o Bound) bool {
	switch o := o.(type) {
	case *Finite:
		return b.bi().Cmp(o.bi()) < 0
	case PlusInf:
		return true
	case MinusInf:
		return false
	}
	panic(errBadBound(o))
}

func (b *Finite) Gt(o Bound) bool {
	switch o := o.(type) {
	case *Finite:
		return b.bi().Cmp(o.bi()) > 0
	case PlusInf:
		return false
	case MinusInf:
		return true
	}
	panic(errBadBound(o))
}

func (b *Finite) Plus(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		return FiniteOfBig(new(big.Int).Add(b.bi(), o.bi()))
	case PlusInf:
		return PlusInf{}
	case MinusInf:
		return MinusInf{}
	}
	panic(errBadBound(o))
}

func (b *Finite) Minus(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		return FiniteOfBig(new(big.Int).Sub(b.bi(), o.bi()))
	case PlusInf:
		return MinusInf{}
	case MinusInf:
		return PlusInf{}
	}
	panic(errBadBound(o))
}

func (b *Finite) Mult(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		return FiniteOfBig(new(big.Int).Mul(b.bi(), o.bi()))
	case PlusInf:
		switch sign := b.bi().Sign(); {
		case sign > 0:
			return PlusInf{}
		case sign < 0:
			return MinusInf{}
		default:
			panic("0 * +inf")
		}
	case MinusInf:
		switch sign := b.bi().Sign(); {
		case sign > 0:
			return MinusInf{}
		case sign < 0:
			return PlusInf{}
		default:
			panic("0 * -inf")
		}
	}
	panic(errBadBound(o))
}

func (b *Finite) Div(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		if o.bi().Sign() == 0 {
			switch sign := b.bi().Sign(); {
			case sign > 0:
				return PlusInf{}
			case sign < 0:
				return MinusInf{}
			default:
				panic("0 / 0")
			}
		}
		q := new(big.Int).Quo(b.bi(), o.bi())
		return FiniteOfBig(q)
	case PlusInf, MinusInf:
		return FiniteOf(0)
	}
	panic(errBadBound(o))
}

func (b *Finite) Max(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		if b.bi().Cmp(o.bi()) >= 0 {
			return b
		}
		return o
	case PlusInf:
		return o
	case MinusInf:
		return b
	}
	panic(errBadBound(o))
}

func (b *Finite) Min(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		if b.bi().Cmp(o.bi()) <= 0 {
			return b
		}
		return o
	case PlusInf:
		return b
	case MinusInf:
		return o
	}
	panic(errBadBound(o))
}

func (PlusInf) String() string   { return "+oo" }
func (PlusInf) IsInfinite() bool { return true }

func (PlusInf) Eq(o Bound) bool { _, ok := o.(PlusInf); return ok }
func (PlusInf) Leq(o Bound) bool {
	_, ok := o.(PlusInf)
	return ok
}
func (PlusInf) Geq(Bound) bool { return true }
func (PlusInf) Lt(Bound) bool  { return false }
func (PlusInf) Gt(o Bound) bool {
	_, ok := o.(PlusInf)
	return !ok
}
func (PlusInf) Plus(o Bound) Bound {
	if _, ok := o.(MinusInf); ok {
		panic("+inf - inf")
	}
	return PlusInf{}
}
func (PlusInf) Minus(o Bound) Bound {
	if _, ok := o.(PlusInf); ok {
		panic("+inf - +inf")
	}
	return PlusInf{}
}
func (PlusInf) Mult(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		switch sign := o.bi().Sign(); {
		case sign < 0:
			return MinusInf{}
		case sign == 0:
			panic("+inf * 0")
		}
		return PlusInf{}
	case MinusInf:
		panic("+inf * -inf")
	}
	return PlusInf{}
}
func (PlusInf) Div(o Bound) Bound {
	switch o.(type) {
	case PlusInf:
		panic("+inf / +inf")
	case MinusInf:
		panic("+inf / -inf")
	}
	return PlusInf{}
}
func (PlusInf) Max(Bound) Bound   { return PlusInf{} }
func (PlusInf) Min(o Bound) Bound { return o }

func (MinusInf) String() string   { return "-oo" }
func (MinusInf) IsInfinite() bool { return true }

func (MinusInf) Eq(o Bound) bool { _, ok := o.(MinusInf); return ok }
func (MinusInf) Leq(Bound) bool  { return true }
func (MinusInf) Geq(o Bound) bool {
	_, ok := o.(MinusInf)
	return ok
}
func (MinusInf) Lt(o Bound) bool {
	_, ok := o.(MinusInf)
	return !ok
}
func (MinusInf) Gt(Bound) bool { return false }
func (MinusInf) Plus(o Bound) Bound {
	if _, ok := o.(PlusInf); ok {
		panic("-inf + inf")
	}
	return MinusInf{}
}
func (MinusInf) Minus(o Bound) Bound {
	if _, ok := o.(MinusInf); ok {
		panic("-inf - (-inf)")
	}
	return MinusInf{}
}
func (MinusInf) Mult(o Bound) Bound {
	switch o := o.(type) {
	case *Finite:
		switch sign := o.bi().Sign(); {
		case sign < 0:
			return PlusInf{}
		case sign == 0:
			panic("-inf * 0")
		}
		return MinusInf{}
	case PlusInf:
		panic("-inf * +inf")
	}
	return MinusInf{}
}
func (MinusInf) Div(o Bound) Bound {
	switch o.(type) {
	case PlusInf:
		panic("-inf / +inf")
	case MinusInf:
		panic("-inf / -inf")
	}
	return MinusInf{}
}
func (MinusInf) Max(o Bound) Bound { return o }
func (MinusInf) Min(Bound) Bound   { return MinusInf{} }

func errBadBound(b Bound) error {
	return fmt.Errorf("itv: unsupported bound operand %v (%T)", b, b)
}
