package itv

// CmpOp names a comparison operator for PruneComp, mirroring spec.md §4.1's
// prune_comp(op, x, y).
type CmpOp int

const (
	OpLt CmpOp = iota
	OpLe
	OpGt
	OpGe
)

// Lt computes the boolean-as-interval result of i < o.
func (i Itv) Lt(o Itv) Itv { return i.cmp(o, OpLt) }

// Le computes the boolean-as-interval result of i <= o.
func (i Itv) Le(o Itv) Itv { return i.cmp(o, OpLe) }

// Gt computes the boolean-as-interval result of i > o.
func (i Itv) Gt(o Itv) Itv { return i.cmp(o, OpGt) }

// Ge computes the boolean-as-interval result of i >= o.
func (i Itv) Ge(o Itv) Itv { return i.cmp(o, OpGe) }

func (i Itv) cmp(o Itv, op CmpOp) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	definitelyTrue, definitelyFalse := false, false
	switch op {
	case OpLt:
		definitelyTrue = i.High.Lt(o.Low)
		definitelyFalse = i.Low.Geq(o.High)
	case OpLe:
		definitelyTrue = i.High.Leq(o.Low)
		definitelyFalse = i.Low.Gt(o.High)
	case OpGt:
		definitelyTrue = i.Low.Gt(o.High)
		definitelyFalse = i.High.Leq(o.Low)
	case OpGe:
		definitelyTrue = i.Low.Geq(o.High)
		definitelyFalse = i.High.Lt(o.Low)
	}
	switch {
	case definitelyTrue:
		return OfBool(BoolTrue)
	case definitelyFalse:
		return OfBool(BoolFalse)
	default:
		return OfBool(BoolTop)
	}
}

// Eql computes the boolean-as-interval result of i == o.
func (i Itv) Eql(o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	if i.EqConst(0) && o.EqConst(0) {
		return OfBool(BoolTrue)
	}
	if i.Meet(o).IsBot() {
		return OfBool(BoolFalse)
	}
	if i.Low.Eq(i.High) && o.Low.Eq(o.High) && i.Low.Eq(o.Low) {
		return OfBool(BoolTrue)
	}
	return OfBool(BoolTop)
}

// Neq computes the boolean-as-interval result of i != o.
func (i Itv) Neq(o Itv) Itv { return i.Eql(o).Lnot() }

// LogicalAnd computes the boolean-as-interval conjunction of two
// boolean-as-interval operands.
func (i Itv) LogicalAnd(o Itv) Itv {
	switch {
	case i.EqConst(0) || o.EqConst(0):
		return OfBool(BoolFalse)
	case i.EqConst(1) && o.EqConst(1):
		return OfBool(BoolTrue)
	default:
		return OfBool(BoolTop)
	}
}

// LogicalOr computes the boolean-as-interval disjunction of two
// boolean-as-interval operands.
func (i Itv) LogicalOr(o Itv) Itv {
	switch {
	case i.EqConst(1) || o.EqConst(1):
		return OfBool(BoolTrue)
	case i.EqConst(0) && o.EqConst(0):
		return OfBool(BoolFalse)
	default:
		return OfBool(BoolTop)
	}
}

// PruneEqZero refines i under the assumption that it equals 0.
func (i Itv) PruneEqZero() Itv { return i.Meet(Zero()) }

// PruneNeZero refines i under the assumption that it does not equal 0. Only
// a singleton {0} can be fully excluded; otherwise the interval is
// unaffected (we cannot punch a hole in a dense interval domain).
func (i Itv) PruneNeZero() Itv {
	if i.EqConst(0) {
		return Bot()
	}
	return i
}

// PruneComp refines i under the assumption that `i op o` holds.
func (i Itv) PruneComp(op CmpOp, o Itv) Itv {
	if i.IsBot() || o.IsBot() {
		return Bot()
	}
	switch op {
	case OpLt:
		return i.Meet(Itv{Low: MinusInf{}, High: o.High.Minus(FiniteOf(1))})
	case OpLe:
		return i.Meet(Itv{Low: MinusInf{}, High: o.High})
	case OpGt:
		return i.Meet(Itv{Low: o.Low.Plus(FiniteOf(1)), High: PlusInf{}})
	case OpGe:
		return i.Meet(Itv{Low: o.Low, High: PlusInf{}})
	}
	return i
}

// PruneEq refines i under the assumption that i == o.
func (i Itv) PruneEq(o Itv) Itv { return i.Meet(o) }

// PruneNe refines i under the assumption that i != o. Mirrors PruneNeZero:
// only exact, singleton equality can be excluded.
func (i Itv) PruneNe(o Itv) Itv {
	if i.Low.Eq(i.High) && o.Low.Eq(o.High) && i.Low.Eq(o.Low) {
		return Bot()
	}
	return i
}
