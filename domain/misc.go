package domain

import (
	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/trace"
)

// SetArrayLength replaces v's array descriptor's size interval with
// len's interval and records an ArrDecl trace element at location.
func (v AbstractValue) SetArrayLength(location loc.Loc, length AbstractValue) AbstractValue {
	r := v
	r.ArrayBlk = v.ArrayBlk.SetLength(length.Itv)
	r.Traces = v.Traces.Add(trace.ArrDecl{Location: location})
	return r
}

// SetArrayStride replaces v's array descriptor's stride with newStride,
// if it differs from the current one.
func (v AbstractValue) SetArrayStride(newStride itv.Itv) AbstractValue {
	if v.ArrayBlk.Strideof().Eq(newStride) {
		return v
	}
	r := v
	r.ArrayBlk = v.ArrayBlk.SetStride(newStride)
	return r
}
