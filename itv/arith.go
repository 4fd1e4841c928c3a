package itv

import "math/big"

// Plus computes i + o by taking the min/max combination of endpoint sums,
// matching the teacher's interval-bound arithmetic table
// (analysis/lattice/interval.go's IntervalBound.Plus doc comment).
func (i Itv) Plus(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	return Itv{Low: i.Low.Plus(o.Low), High: i.High.Plus(o.High)}
}

// Minus computes i - o.
func (i Itv) Minus(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	return Itv{Low: i.Low.Minus(o.High), High: i.High.Minus(o.Low)}
}

// Mult computes i * o by taking the extremal product of all four endpoint
// combinations.
func (i Itv) Mult(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if i.EqConst(0) || o.EqConst(0) {
		return Zero()
	}
	candidates := []Bound{
		i.Low.Mult(o.Low), i.Low.Mult(o.High),
		i.High.Mult(o.Low), i.High.Mult(o.High),
	}
	low, high := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		low = low.Min(c)
		high = high.Max(c)
	}
	return Itv{Low: low, High: high}
}

// Div computes i / o (truncating integer division), falling back to Top
// when o may be zero (division by zero is undefined in the abstraction).
func (i Itv) Div(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if o.includesZero() {
		return Top()
	}
	candidates := []Bound{
		i.Low.Div(o.Low), i.Low.Div(o.High),
		i.High.Div(o.Low), i.High.Div(o.High),
	}
	low, high := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		low = low.Min(c)
		high = high.Max(c)
	}
	return Itv{Low: low, High: high}
}

func (i Itv) includesZero() bool {
	return i.Low.Leq(FiniteOf(0)) && i.High.Geq(FiniteOf(0))
}

// ModSem computes i mod o, conservatively: if o is a known positive constant
// c, the result is clamped to [0, c-1]; otherwise Nat.
func (i Itv) ModSem(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if c, ok := o.Low.(*Finite); ok && o.Low.Eq(o.High) && c.bi().Sign() > 0 {
		return Itv{Low: FiniteOf(0), High: c.Minus(FiniteOf(1))}
	}
	return Nat()
}

// ShiftLT computes i << o conservatively: a known non-negative shift amount
// scales the bounds by 2^k; otherwise Top.
func (i Itv) ShiftLT(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if c, ok := o.Low.(*Finite); ok && o.Low.Eq(o.High) && c.bi().Sign() >= 0 {
		k := c.bi().Int64()
		factor := Itv{Low: FiniteOf(1 << uint(k)), High: FiniteOf(1 << uint(k))}
		return i.Mult(factor)
	}
	return Top()
}

// ShiftRT computes i >> o conservatively: a known non-negative shift amount
// divides the bounds by 2^k; otherwise Top.
func (i Itv) ShiftRT(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if c, ok := o.Low.(*Finite); ok && o.Low.Eq(o.High) && c.bi().Sign() >= 0 {
		k := c.bi().Int64()
		factor := Itv{Low: FiniteOf(1 << uint(k)), High: FiniteOf(1 << uint(k))}
		return i.Div(factor)
	}
	return Top()
}

// BAndSem computes i & o conservatively: a known non-negative operand bounds
// the result to [0, min(high1, high2)]; otherwise Top.
func (i Itv) BAndSem(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if i.Low.Geq(FiniteOf(0)) || o.Low.Geq(FiniteOf(0)) {
		high := i.High.Min(o.High)
		if high.IsInfinite() {
			return Nat()
		}
		return Itv{Low: FiniteOf(0), High: high}
	}
	return Top()
}

// Neg computes -i.
func (i Itv) Neg() Itv {
	if i.IsBot() {
		return Bot()
	}
	return Itv{Low: negBound(i.High), High: negBound(i.Low)}
}

func negBound(b Bound) Bound {
	switch b := b.(type) {
	case *Finite:
		return FiniteOfBig(new(big.Int).Neg(b.bi()))
	case PlusInf:
		return MinusInf{}
	case MinusInf:
		return PlusInf{}
	}
	panic(errBadBound(b))
}

// Lnot computes the logical negation of a boolean-as-interval value.
func (i Itv) Lnot() Itv {
	switch {
	case i.EqConst(0):
		return OfInt(1)
	case i.EqConst(1):
		return OfInt(0)
	default:
		return OfBool(BoolTop)
	}
}
