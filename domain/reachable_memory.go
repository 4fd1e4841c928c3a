package domain

import (
	"log"

	"github.com/cs-au-dk/bufoverrun/config"
	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/relation"
)

// ReachableMemory is the non-bottom shape of Memory: the state reachable
// by the fixed-point iterator while analyzing a single procedure body -
// which locations live on the current stack frame, the pure map from
// locations to values, the alias bookkeeping, the most recently recorded
// branch pruning, and the relational-constraint store (spec.md §4.6).
type ReachableMemory struct {
	StackLocs   StackLocSet
	MemPure     PureMemory
	AliasState  Alias
	LatestPrune LatestPrune
	Relation    relation.Store
}

// EmptyReachableMemory is the initial state of a fresh procedure frame.
func EmptyReachableMemory() ReachableMemory {
	return ReachableMemory{
		StackLocs:   EmptyStackLocSet(),
		MemPure:     EmptyPureMemory(),
		AliasState:  EmptyAlias(),
		LatestPrune: TopPrune(),
		Relation:    relation.Empty(),
	}
}

// Leq computes m <= o, pointwise over the first four components; the
// relational store is not compared.
func (m ReachableMemory) Leq(o ReachableMemory) bool {
	return m.StackLocs.Leq(o.StackLocs) &&
		m.MemPure.Leq(o.MemPure) &&
		m.AliasState.Leq(o.AliasState) &&
		m.LatestPrune.Leq(o.LatestPrune)
}

// Join computes m ⊔ o, pointwise over the first four components. The relational
// store has no lattice join defined by spec.md (only meet_constraints,
// is_unsat, and instantiate); joining two analyses of the same frame
// reverts to the caller-favored side's store, matching the store's role as
// a within-block refinement that a fresh branch may simply re-derive.
func (m ReachableMemory) Join(o ReachableMemory) ReachableMemory {
	return ReachableMemory{
		StackLocs:   m.StackLocs.Join(o.StackLocs),
		MemPure:     m.MemPure.Join(o.MemPure),
		AliasState:  m.AliasState.Join(o.AliasState),
		LatestPrune: m.LatestPrune.Join(o.LatestPrune),
		Relation:    m.Relation,
	}
}

// Widen widens m toward next.
func (m ReachableMemory) Widen(next ReachableMemory, numIters int) ReachableMemory {
	return ReachableMemory{
		StackLocs:   m.StackLocs.Widen(next.StackLocs, numIters),
		MemPure:     m.MemPure.Widen(next.MemPure, numIters),
		AliasState:  m.AliasState.Widen(next.AliasState, numIters),
		LatestPrune: m.LatestPrune.Widen(next.LatestPrune, numIters),
		Relation:    m.Relation,
	}
}

// IsStackLoc reports whether l lives on the current frame's stack.
func (m ReachableMemory) IsStackLoc(l loc.Loc) bool { return m.StackLocs.Mem(l) }

// FindOpt is the raw lookup in mem_pure, with no default applied.
func (m ReachableMemory) FindOpt(l loc.Loc) (AbstractValue, bool) { return m.MemPure.Get(l) }

// FindStack defaults to bottom on miss: an unbound stack slot has not yet
// been initialized and so denotes nothing.
func (m ReachableMemory) FindStack(l loc.Loc) AbstractValue {
	if v, found := m.MemPure.Get(l); found {
		return v
	}
	return Bot()
}

// FindHeap defaults to top interval on miss: an unmodeled heap cell is an
// arbitrary integer, never an arbitrary pointer (spec.md §9's documented
// open-question resolution - do not generalize this default).
func (m ReachableMemory) FindHeap(l loc.Loc) AbstractValue {
	if v, found := m.MemPure.Get(l); found {
		return v
	}
	return TopInterval()
}

// Find reads l, applying the stack or heap default depending on IsStackLoc.
func (m ReachableMemory) Find(l loc.Loc) AbstractValue {
	if m.IsStackLoc(l) {
		return m.FindStack(l)
	}
	return m.FindHeap(l)
}

// FindSet reads the join of Find over every location in p.
func (m ReachableMemory) FindSet(p []loc.Loc) AbstractValue {
	r := Bot()
	for _, l := range p {
		r = r.Join(m.Find(l))
	}
	return r
}

// AddStack inserts l into stack_locs and binds it to v.
func (m ReachableMemory) AddStack(l loc.Loc, v AbstractValue) ReachableMemory {
	m.StackLocs = m.StackLocs.Add(l)
	m.MemPure = m.MemPure.Set(l, v)
	return m
}

// ReplaceStack updates l's binding without touching stack_locs.
func (m ReachableMemory) ReplaceStack(l loc.Loc, v AbstractValue) ReachableMemory {
	m.MemPure = m.MemPure.Set(l, v)
	return m
}

// AddHeap stores v at l with its relational symbols materialized: v.Sym
// names l's value unless the interval is empty, and v.OffsetSym/SizeSym
// name l's array offset/size unless v's array descriptor is bottom
// (spec.md §4.6).
func (m ReachableMemory) AddHeap(l loc.Loc, v AbstractValue) ReachableMemory {
	if !v.Itv.IsBot() {
		v.Sym = relation.OfLoc(l)
	}
	if !v.ArrayBlk.IsBot() {
		v.OffsetSym = relation.OfLocOffset(l)
		v.SizeSym = relation.OfLocSize(l)
	}
	m.MemPure = m.MemPure.Set(l, v)
	return m
}

// CanStrongUpdate reports whether p is precise enough to overwrite rather
// than join: a singleton whose sole location does not summarize multiple
// concrete cells.
func (m ReachableMemory) CanStrongUpdate(p []loc.Loc) bool {
	if len(p) != 1 {
		return false
	}
	return !m.Find(p[0]).RepresentsMultipleValues
}

// StrongUpdate writes v to every location in p, replacing whatever was
// there (stack locations via ReplaceStack, heap locations via AddHeap).
func (m ReachableMemory) StrongUpdate(p []loc.Loc, v AbstractValue) ReachableMemory {
	for _, l := range p {
		if m.IsStackLoc(l) {
			m = m.ReplaceStack(l, v)
		} else {
			m = m.AddHeap(l, v)
		}
	}
	return m
}

// WeakUpdate writes v joined with the current value at every location in
// p, never discarding what was already known there. Prints a "weak update
// for ..." diagnostic per location when cfg's debug level is on
// (spec.md §7).
func (m ReachableMemory) WeakUpdate(cfg *config.Flags, p []loc.Loc, v AbstractValue) ReachableMemory {
	for _, l := range p {
		noteWeakUpdate(cfg, l)
		joined := v.Join(m.Find(l))
		if m.IsStackLoc(l) {
			m = m.ReplaceStack(l, joined)
		} else {
			m = m.AddHeap(l, joined)
		}
	}
	return m
}

// UpdateMem writes v to p, strongly when CanStrongUpdate(p) holds and
// weakly otherwise.
func (m ReachableMemory) UpdateMem(cfg *config.Flags, p []loc.Loc, v AbstractValue) ReachableMemory {
	if m.CanStrongUpdate(p) {
		return m.StrongUpdate(p, v)
	}
	return m.WeakUpdate(cfg, p, v)
}

// TransformMem applies f to the current value at every location in p and
// writes the result back, weakly (like WeakUpdate, but deriving each
// location's new value from its own old value rather than a shared v).
func (m ReachableMemory) TransformMem(cfg *config.Flags, f func(AbstractValue) AbstractValue, p []loc.Loc) ReachableMemory {
	for _, l := range p {
		noteWeakUpdate(cfg, l)
		transformed := f(m.Find(l)).Join(m.Find(l))
		if m.IsStackLoc(l) {
			m = m.ReplaceStack(l, transformed)
		} else {
			m = m.AddHeap(l, transformed)
		}
	}
	return m
}

// AddUnknownFrom binds the location of id to unknown_from(callee, location)
// as a stack entry, and joins that value into Loc.Unknown on the heap, so
// downstream reads through Unknown observe the pollution.
func (m ReachableMemory) AddUnknownFrom(id loc.Loc, callee string, location loc.Loc) ReachableMemory {
	v := UnknownFrom(callee, location)
	m = m.AddStack(id, v)
	m = m.AddHeap(loc.Unknown(), v.Join(m.Find(loc.Unknown())))
	return m
}

// SetPrunePairs sets latest_prune = Latest(p).
func (m ReachableMemory) SetPrunePairs(p PrunePairs) ReachableMemory {
	m.LatestPrune = LatestOf(p)
	return m
}

// UpdateLatestPrune reacts to a store of rhs into lhs: when lhs is a
// program variable x and rhs is the integer constant 0 or 1 and the
// current record is Latest(p), promotes to FalseBranch(x,p) or
// TrueBranch(x,p); any other write demotes latest_prune to Top.
func (m ReachableMemory) UpdateLatestPrune(lhs loc.Exp, rhs loc.Exp) ReachableMemory {
	lvar, isVar := lhs.(loc.LvarExp)
	constVal, isConst := rhs.(loc.ConstExp)
	latest, isLatest := m.latestAsLatest()
	if isVar && isConst && isLatest && (constVal.Value == 0 || constVal.Value == 1) {
		x := loc.Var(lvar.Name)
		if constVal.Value == 1 {
			m.LatestPrune = TrueBranchOf(x, latest)
		} else {
			m.LatestPrune = FalseBranchOf(x, latest)
		}
		return m
	}
	m.LatestPrune = TopPrune()
	return m
}

func (m ReachableMemory) latestAsLatest() (PrunePairs, bool) {
	lp := m.LatestPrune
	if lp.tag != tagLatest {
		return PrunePairs{}, false
	}
	return lp.p, true
}

// ApplyLatestPrune reacts to a branch on cond: when cond is a temporary r
// (or its logical negation) and latest_prune = V(x,p_t,p_f) and the alias
// map says r currently equals x, folds the matching PrunePairs side into
// memory via UpdateMem on each entry.
func (m ReachableMemory) ApplyLatestPrune(cfg *config.Flags, cond loc.Exp) ReachableMemory {
	temp, negated, ok := unwrapCond(cond)
	if !ok {
		return m
	}
	if m.LatestPrune.tag != tagV {
		return m
	}
	target, found := m.AliasState.Map.Find(temp)
	if !found || !target.Valid() || target.isEmpty || !target.loc.Equal(m.LatestPrune.x) {
		return m
	}
	chosen := m.LatestPrune.pTrue
	if negated {
		chosen = m.LatestPrune.pFalse
	}
	chosen.ForEach(func(l loc.Loc, v AbstractValue) {
		m = m.UpdateMem(cfg, []loc.Loc{l}, v)
	})
	return m
}

// unwrapCond recognizes cond as a bare temporary or its negation.
func unwrapCond(cond loc.Exp) (loc.Ident, bool, bool) {
	switch e := cond.(type) {
	case loc.TempExp:
		return e.Id, false, true
	case loc.NotExp:
		if inner, ok := e.Inner.(loc.TempExp); ok {
			return inner.Id, true, true
		}
	}
	return loc.Ident{}, false, false
}

// GetReachableLocsFrom computes the smallest set containing roots and
// closed under "if l is in, add get_all_locs(m.mem_pure[l]) and every
// field of l" - used to limit procedure summaries to locations reachable
// from formals and globals (spec.md §4.6).
func (m ReachableMemory) GetReachableLocsFrom(roots []loc.Loc) []loc.Loc {
	seen := map[string]loc.Loc{}
	var worklist []loc.Loc
	add := func(l loc.Loc) {
		if _, ok := seen[l.String()]; !ok {
			seen[l.String()] = l
			worklist = append(worklist, l)
		}
	}
	for _, r := range roots {
		add(r)
	}
	for len(worklist) > 0 {
		l := worklist[0]
		worklist = worklist[1:]
		if v, found := m.MemPure.Get(l); found {
			for _, next := range v.GetAllLocs() {
				add(next)
			}
		}
		for it := m.MemPure.base().Iterator(); !it.Done(); {
			k, _, _ := it.Next()
			if base, ok := loc.FieldBase(k); ok && base.Equal(l) {
				add(k)
			}
		}
	}
	out := make([]loc.Loc, 0, len(seen))
	for _, l := range seen {
		out = append(out, l)
	}
	return out
}

// GetRelation returns the current relational-constraint store.
func (m ReachableMemory) GetRelation() relation.Store { return m.Relation }

// IsRelationUnsat reports whether the relational store is unsatisfiable.
func (m ReachableMemory) IsRelationUnsat() bool { return m.Relation.IsUnsat() }

// MeetConstraints refines the relational store.
func (m ReachableMemory) MeetConstraints(box map[string]itv.Itv, diffs []relation.DiffConstraint) ReachableMemory {
	m.Relation = m.Relation.MeetConstraints(box, diffs)
	return m
}

// StoreRelation records that each of syms now holds bound. syms already
// name the locations/allocsites they describe, so there is no separate
// location list to thread through.
func (m ReachableMemory) StoreRelation(syms []relation.Sym, bound itv.Itv) ReachableMemory {
	m.Relation = m.Relation.StoreRelation(syms, bound)
	return m
}

// ForgetLocs projects locations in p out of the relational store.
func (m ReachableMemory) ForgetLocs(p []loc.Loc) ReachableMemory {
	m.Relation = m.Relation.ForgetLocs(p)
	return m
}

// InitParamRelation seeds the relational store for a formal parameter.
func (m ReachableMemory) InitParamRelation(l loc.Loc) ReachableMemory {
	m.Relation = m.Relation.InitParam(l)
	return m
}

// InitArrayRelation seeds the relational store for a freshly allocated
// array.
func (m ReachableMemory) InitArrayRelation(site loc.Allocsite, offset, size itv.Itv) ReachableMemory {
	m.Relation = m.Relation.InitArray(site, offset, size)
	return m
}

// InstantiateRelation specializes callee's relational store at a call
// site, merging the result into m's own store.
func (m ReachableMemory) InstantiateRelation(sm relation.SubstMap, callee relation.Store) ReachableMemory {
	m.Relation = m.Relation.Instantiate(sm, callee)
	return m
}

func (m ReachableMemory) String() string {
	return "{stack=" + m.StackLocs.String() +
		", mem=" + m.MemPure.String() +
		", alias=" + m.AliasState.Map.String() +
		", latest_prune=" + m.LatestPrune.String() +
		", relation=" + m.Relation.String() + "}"
}

func noteWeakUpdate(cfg *config.Flags, l loc.Loc) {
	if cfg != nil && cfg.DebugEnabled() {
		log.Printf("weak update for %s", config.WeakUpdate(l.String()))
	}
}
