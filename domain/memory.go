package domain

import (
	"github.com/cs-au-dk/bufoverrun/config"
	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/relation"
)

// Memory is the bottom-lift of ReachableMemory: either the unreachable
// state (no execution reaches this program point) or a concrete
// ReachableMemory. Every ReachableMemory operation has a Memory wrapper
// that returns a documented default when the receiver is Bottom, and
// otherwise delegates (spec.md §4.7).
type Memory struct {
	isBottom bool
	m        ReachableMemory
}

// MemBottom is the unreachable memory state.
func MemBottom() Memory { return Memory{isBottom: true} }

// MemOf lifts a ReachableMemory into the non-bottom case.
func MemOf(m ReachableMemory) Memory { return Memory{m: m} }

// IsBottom reports whether mem is the unreachable state.
func (mem Memory) IsBottom() bool { return mem.isBottom }

// Leq computes mem <= o: Bottom is least.
func (mem Memory) Leq(o Memory) bool {
	if mem.isBottom {
		return true
	}
	if o.isBottom {
		return false
	}
	return mem.m.Leq(o.m)
}

// Join computes mem ⊔ o.
func (mem Memory) Join(o Memory) Memory {
	if mem.isBottom {
		return o
	}
	if o.isBottom {
		return mem
	}
	return MemOf(mem.m.Join(o.m))
}

// Widen widens mem toward next.
func (mem Memory) Widen(next Memory, numIters int) Memory {
	if mem.isBottom {
		return next
	}
	if next.isBottom {
		return mem
	}
	return MemOf(mem.m.Widen(next.m, numIters))
}

func (mem Memory) IsStackLoc(l loc.Loc) bool {
	if mem.isBottom {
		return false
	}
	return mem.m.IsStackLoc(l)
}

func (mem Memory) FindOpt(l loc.Loc) (AbstractValue, bool) {
	if mem.isBottom {
		return Bot(), false
	}
	return mem.m.FindOpt(l)
}

func (mem Memory) FindStack(l loc.Loc) AbstractValue {
	if mem.isBottom {
		return Bot()
	}
	return mem.m.FindStack(l)
}

func (mem Memory) FindHeap(l loc.Loc) AbstractValue {
	if mem.isBottom {
		return Bot()
	}
	return mem.m.FindHeap(l)
}

func (mem Memory) Find(l loc.Loc) AbstractValue {
	if mem.isBottom {
		return Bot()
	}
	return mem.m.Find(l)
}

func (mem Memory) FindSet(p []loc.Loc) AbstractValue {
	if mem.isBottom {
		return Bot()
	}
	return mem.m.FindSet(p)
}

func (mem Memory) AddStack(l loc.Loc, v AbstractValue) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.AddStack(l, v))
}

func (mem Memory) ReplaceStack(l loc.Loc, v AbstractValue) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.ReplaceStack(l, v))
}

func (mem Memory) AddHeap(l loc.Loc, v AbstractValue) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.AddHeap(l, v))
}

func (mem Memory) CanStrongUpdate(p []loc.Loc) bool {
	if mem.isBottom {
		return false
	}
	return mem.m.CanStrongUpdate(p)
}

func (mem Memory) StrongUpdate(p []loc.Loc, v AbstractValue) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.StrongUpdate(p, v))
}

func (mem Memory) WeakUpdate(cfg *config.Flags, p []loc.Loc, v AbstractValue) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.WeakUpdate(cfg, p, v))
}

func (mem Memory) UpdateMem(cfg *config.Flags, p []loc.Loc, v AbstractValue) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.UpdateMem(cfg, p, v))
}

func (mem Memory) TransformMem(cfg *config.Flags, f func(AbstractValue) AbstractValue, p []loc.Loc) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.TransformMem(cfg, f, p))
}

func (mem Memory) AddUnknownFrom(id loc.Loc, callee string, location loc.Loc) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.AddUnknownFrom(id, callee, location))
}

func (mem Memory) SetPrunePairs(p PrunePairs) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.SetPrunePairs(p))
}

func (mem Memory) UpdateLatestPrune(lhs, rhs loc.Exp) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.UpdateLatestPrune(lhs, rhs))
}

func (mem Memory) ApplyLatestPrune(cfg *config.Flags, cond loc.Exp) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.ApplyLatestPrune(cfg, cond))
}

func (mem Memory) GetReachableLocsFrom(roots []loc.Loc) []loc.Loc {
	if mem.isBottom {
		return nil
	}
	return mem.m.GetReachableLocsFrom(roots)
}

func (mem Memory) GetRelation() relation.Store {
	if mem.isBottom {
		return relation.BotStore()
	}
	return mem.m.GetRelation()
}

func (mem Memory) IsRelationUnsat() bool {
	if mem.isBottom {
		return true
	}
	return mem.m.IsRelationUnsat()
}

func (mem Memory) MeetConstraints(box map[string]itv.Itv, diffs []relation.DiffConstraint) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.MeetConstraints(box, diffs))
}

func (mem Memory) StoreRelation(syms []relation.Sym, bound itv.Itv) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.StoreRelation(syms, bound))
}

func (mem Memory) ForgetLocs(p []loc.Loc) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.ForgetLocs(p))
}

func (mem Memory) InitParamRelation(l loc.Loc) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.InitParamRelation(l))
}

func (mem Memory) InitArrayRelation(site loc.Allocsite, offset, size itv.Itv) Memory {
	if mem.isBottom {
		return mem
	}
	return MemOf(mem.m.InitArrayRelation(site, offset, size))
}

// InstantiateRelation specializes: if callee is Bottom, the caller mem is
// returned unchanged (spec.md §4.7).
func (mem Memory) InstantiateRelation(sm relation.SubstMap, callee Memory) Memory {
	if mem.isBottom || callee.isBottom {
		return mem
	}
	return MemOf(mem.m.InstantiateRelation(sm, callee.m.Relation))
}

func (mem Memory) String() string {
	if mem.isBottom {
		return "Bottom"
	}
	return mem.m.String()
}
