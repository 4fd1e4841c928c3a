package domain

import (
	"log"

	"github.com/cs-au-dk/bufoverrun/config"
	"github.com/cs-au-dk/bufoverrun/itv"
)

// noteIfMultiValued prints a "pruned a multi-valued slot" diagnostic when
// v summarizes multiple concrete cells and cfg.WriteHTML is set. This is
// diagnostic-only (spec.md §7): it never changes the returned value.
func noteIfMultiValued(cfg *config.Flags, v AbstractValue) {
	if cfg != nil && cfg.WriteHTML && v.RepresentsMultipleValues {
		log.Printf("%s", config.Pruned("pruned a multi-valued slot"))
	}
}

// PruneEqZero refines v under the assumption that it equals 0. Only the
// interval is refined.
func (v AbstractValue) PruneEqZero(cfg *config.Flags) AbstractValue {
	noteIfMultiValued(cfg, v)
	r := v
	r.Itv = v.Itv.PruneEqZero()
	return r
}

// PruneNeZero refines v under the assumption that it does not equal 0.
func (v AbstractValue) PruneNeZero(cfg *config.Flags) AbstractValue {
	noteIfMultiValued(cfg, v)
	r := v
	r.Itv = v.Itv.PruneNeZero()
	return r
}

// PruneComp refines v under the assumption that `v op o` holds. Both the
// interval and the array descriptor (used for array-size refinement by
// bounds tests) are refined.
func (v AbstractValue) PruneComp(cfg *config.Flags, op itv.CmpOp, o AbstractValue) AbstractValue {
	noteIfMultiValued(cfg, v)
	r := v
	r.Itv = v.Itv.PruneComp(op, o.Itv)
	r.ArrayBlk = v.ArrayBlk.PruneComp(op, o.Itv)
	return r
}

// PruneEq refines v under the assumption that v == o.
func (v AbstractValue) PruneEq(cfg *config.Flags, o AbstractValue) AbstractValue {
	noteIfMultiValued(cfg, v)
	r := v
	r.Itv = v.Itv.PruneEq(o.Itv)
	r.ArrayBlk = v.ArrayBlk.PruneEq(o.Itv)
	return r
}

// PruneNe refines v under the assumption that v != o.
func (v AbstractValue) PruneNe(cfg *config.Flags, o AbstractValue) AbstractValue {
	noteIfMultiValued(cfg, v)
	r := v
	r.Itv = v.Itv.PruneNe(o.Itv)
	r.ArrayBlk = v.ArrayBlk.PruneNe(o.Itv)
	return r
}
