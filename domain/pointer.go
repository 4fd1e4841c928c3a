package domain

import "github.com/cs-au-dk/bufoverrun/itv"

// isPointerToNonArray reports whether v is known to point somewhere, but
// carries no array-descriptor information about where: the domain has
// lost precision about the target's shape.
func (v AbstractValue) isPointerToNonArray() bool {
	return !v.PowLoc.IsBot() && v.ArrayBlk.IsBot()
}

// PlusPointer computes p + i for a pointer value p and integer offset i.
// When p is a pointer to an array, its descriptor's offset shifts by i.
// When p points to a non-array cell, the result loses all numeric
// precision (top interval), reflecting that this domain does not model
// arbitrary pointer arithmetic beyond array-base + offset (spec.md §1's
// Non-goals).
func (p AbstractValue) PlusPointer(i AbstractValue) AbstractValue {
	r := Bot()
	r.Traces = p.Traces.Join(i.Traces)
	if !p.ArrayBlk.IsBot() {
		r.ArrayBlk = p.ArrayBlk.PlusOffset(i.Itv)
		r.OffsetSym = p.OffsetSym
		r.SizeSym = p.SizeSym
		return r
	}
	if p.isPointerToNonArray() {
		r.Itv = itv.Top()
		return r
	}
	r.Itv = p.Itv.Plus(i.Itv)
	return r
}

// MinusPointer computes p - i, the mirror of PlusPointer.
func (p AbstractValue) MinusPointer(i AbstractValue) AbstractValue {
	r := Bot()
	r.Traces = p.Traces.Join(i.Traces)
	if !p.ArrayBlk.IsBot() {
		r.ArrayBlk = p.ArrayBlk.MinusOffset(i.Itv)
		r.OffsetSym = p.OffsetSym
		r.SizeSym = p.SizeSym
		return r
	}
	if p.isPointerToNonArray() {
		r.Itv = itv.Top()
		return r
	}
	r.Itv = p.Itv.Minus(i.Itv)
	return r
}

// MinusPointerPointer computes p - q where both are pointer values,
// yielding the interval difference of their array descriptors' offsets.
// Top when both are pointers to non-array cells (no offsets to subtract).
func (p AbstractValue) MinusPointerPointer(q AbstractValue) AbstractValue {
	r := Bot()
	r.Traces = p.Traces.Join(q.Traces)
	if !p.ArrayBlk.IsBot() || !q.ArrayBlk.IsBot() {
		r.Itv = p.ArrayBlk.Diff(q.ArrayBlk)
		return r
	}
	if p.isPointerToNonArray() && q.isPointerToNonArray() {
		r.Itv = itv.Top()
		return r
	}
	r.Itv = p.Itv.Minus(q.Itv)
	return r
}
