package domain

import "github.com/cs-au-dk/bufoverrun/itv"

func arith(v, o AbstractValue, f func(itv.Itv, itv.Itv) itv.Itv) AbstractValue {
	r := Bot()
	r.Itv = f(v.Itv, o.Itv)
	r.Traces = v.Traces.Join(o.Traces)
	return r
}

// Plus computes v + o.
func (v AbstractValue) Plus(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.Plus)
}

// Minus computes v - o.
func (v AbstractValue) Minus(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.Minus)
}

// Mult computes v * o.
func (v AbstractValue) Mult(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.Mult)
}

// Div computes v / o.
func (v AbstractValue) Div(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.Div)
}

// Mod computes v mod o.
func (v AbstractValue) Mod(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.ModSem)
}

// ShiftLT computes v << o.
func (v AbstractValue) ShiftLT(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.ShiftLT)
}

// ShiftRT computes v >> o.
func (v AbstractValue) ShiftRT(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.ShiftRT)
}

// BAnd computes v & o.
func (v AbstractValue) BAnd(o AbstractValue) AbstractValue {
	return arith(v, o, itv.Itv.BAndSem)
}

// Neg computes -v.
func (v AbstractValue) Neg() AbstractValue {
	r := Bot()
	r.Itv = v.Itv.Neg()
	r.Traces = v.Traces
	return r
}

// Lnot computes the logical negation of the boolean-as-interval value v.
func (v AbstractValue) Lnot() AbstractValue {
	r := Bot()
	r.Itv = v.Itv.Lnot()
	r.Traces = v.Traces
	return r
}

// hasPointerInfo reports whether v carries any non-bottom pointer or
// array information, the condition under which comparisons lose all
// precision (spec.md §4.1).
func (v AbstractValue) hasPointerInfo() bool {
	return !v.PowLoc.IsBot() || !v.ArrayBlk.IsBot()
}

func compare(v, o AbstractValue, f func(itv.Itv, itv.Itv) itv.Itv) AbstractValue {
	r := Bot()
	r.Traces = v.Traces.Join(o.Traces)
	if v.hasPointerInfo() || o.hasPointerInfo() {
		r.Itv = itv.OfBool(itv.BoolTop)
		return r
	}
	r.Itv = f(v.Itv, o.Itv)
	return r
}

// Lt computes the boolean-as-interval result of v < o.
func (v AbstractValue) Lt(o AbstractValue) AbstractValue { return compare(v, o, itv.Itv.Lt) }

// Le computes the boolean-as-interval result of v <= o.
func (v AbstractValue) Le(o AbstractValue) AbstractValue { return compare(v, o, itv.Itv.Le) }

// Gt computes the boolean-as-interval result of v > o.
func (v AbstractValue) Gt(o AbstractValue) AbstractValue { return compare(v, o, itv.Itv.Gt) }

// Ge computes the boolean-as-interval result of v >= o.
func (v AbstractValue) Ge(o AbstractValue) AbstractValue { return compare(v, o, itv.Itv.Ge) }

// Eq computes the boolean-as-interval result of v == o.
func (v AbstractValue) Eq(o AbstractValue) AbstractValue { return compare(v, o, itv.Itv.Eql) }

// Ne computes the boolean-as-interval result of v != o.
func (v AbstractValue) Ne(o AbstractValue) AbstractValue { return compare(v, o, itv.Itv.Neq) }

// LogicalAnd computes the boolean-as-interval conjunction of v and o.
func (v AbstractValue) LogicalAnd(o AbstractValue) AbstractValue {
	return compare(v, o, itv.Itv.LogicalAnd)
}

// LogicalOr computes the boolean-as-interval disjunction of v and o.
func (v AbstractValue) LogicalOr(o AbstractValue) AbstractValue {
	return compare(v, o, itv.Itv.LogicalOr)
}
