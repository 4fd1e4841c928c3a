package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/bufoverrun/loc"
)

// AliasTarget is a tagged variant naming what a temporary currently
// aliases: either the live value of a location (Simple), or a boolean
// standing in for whether a location is logically empty (Empty, used to
// prune a container's size after an empty()-style test). The lattice is
// flat: x <= y iff x = y, and joining two unequal targets is a
// precondition violation left to the caller to avoid (spec.md §7, §9 open
// question).
type AliasTarget struct {
	isEmpty bool // discriminates Empty from Simple; meaningless if !valid
	valid   bool
	loc     loc.Loc
}

// NoTarget is the absence of an alias target.
func NoTarget() AliasTarget { return AliasTarget{} }

// Simple builds the target "currently holds the value of l".
func Simple(l loc.Loc) AliasTarget { return AliasTarget{valid: true, loc: l} }

// Empty builds the target "currently equals 1 iff l is logically empty".
func Empty(l loc.Loc) AliasTarget { return AliasTarget{valid: true, isEmpty: true, loc: l} }

// Valid reports whether t names an actual target.
func (t AliasTarget) Valid() bool { return t.valid }

// Mentions reports whether t names l.
func (t AliasTarget) Mentions(l loc.Loc) bool { return t.valid && t.loc.Equal(l) }

// Equal reports structural equality.
func (t AliasTarget) Equal(o AliasTarget) bool {
	if t.valid != o.valid {
		return false
	}
	if !t.valid {
		return true
	}
	return t.isEmpty == o.isEmpty && t.loc.Equal(o.loc)
}

// Leq computes t <= o over the flat lattice.
func (t AliasTarget) Leq(o AliasTarget) bool { return t.Equal(o) }

// Join computes t ⊔ o. Panics if t and o are both valid and unequal: the
// flat-lattice contract requires the calling driver to never join two
// distinct targets bound to the same key (spec.md §7).
func (t AliasTarget) Join(o AliasTarget) AliasTarget {
	if !t.valid {
		return o
	}
	if !o.valid {
		return t
	}
	if !t.Equal(o) {
		panic(fmt.Sprintf("AliasTarget.Join: unequal targets %v and %v", t, o))
	}
	return t
}

func (t AliasTarget) String() string {
	if !t.valid {
		return "-"
	}
	if t.isEmpty {
		return "Empty(" + t.loc.String() + ")"
	}
	return "Simple(" + t.loc.String() + ")"
}

type identHasher struct{}

func (identHasher) Hash(id loc.Ident) uint32  { return uint32(id.Num)*2654435761 + 1 }
func (identHasher) Equal(a, b loc.Ident) bool { return a == b }

// AliasMap is the finite map Ident -> AliasTarget.
type AliasMap struct {
	m *immutable.Map[loc.Ident, AliasTarget]
}

// EmptyAliasMap is the empty map.
func EmptyAliasMap() AliasMap { return AliasMap{} }

func (a AliasMap) base() *immutable.Map[loc.Ident, AliasTarget] {
	if a.m != nil {
		return a.m
	}
	return immutable.NewMap[loc.Ident, AliasTarget](identHasher{})
}

// Find looks up id, reporting whether a binding exists.
func (a AliasMap) Find(id loc.Ident) (AliasTarget, bool) {
	if a.m == nil {
		return NoTarget(), false
	}
	return a.m.Get(id)
}

// Load binds id to target.
func (a AliasMap) Load(id loc.Ident, target AliasTarget) AliasMap {
	return AliasMap{m: a.base().Set(id, target)}
}

// Store drops every binding whose target mentions l, the post-write
// invalidation every memory write to l must trigger.
func (a AliasMap) Store(l loc.Loc) AliasMap {
	if a.m == nil {
		return a
	}
	result := a.m
	for it := a.m.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if v.Mentions(l) {
			result = result.Delete(k)
		}
	}
	return AliasMap{m: result}
}

// RemoveTemp drops id's binding, used when an SSA temporary goes out of
// scope.
func (a AliasMap) RemoveTemp(id loc.Ident) AliasMap {
	if a.m == nil {
		return a
	}
	return AliasMap{m: a.m.Delete(id)}
}

// Leq computes a <= o.
func (a AliasMap) Leq(o AliasMap) bool {
	if a.m == o.m {
		return true
	}
	for it := a.base().Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		ov, found := o.Find(k)
		if !found || !v.Leq(ov) {
			return false
		}
	}
	return true
}

// Join computes the pointwise join of a and o (panicking, via
// AliasTarget.Join, if a shared key carries unequal targets).
func (a AliasMap) Join(o AliasMap) AliasMap {
	if a.m == o.m {
		return a
	}
	result := a.base()
	for it := o.base().Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if cur, found := result.Get(k); found {
			result = result.Set(k, cur.Join(v))
		} else {
			result = result.Set(k, v)
		}
	}
	return AliasMap{m: result}
}

// Widen is Join: AliasMap has finite height (bounded by the number of
// temporaries live at once), so plain join terminates.
func (a AliasMap) Widen(next AliasMap, numIters int) AliasMap { return a.Join(next) }

func (a AliasMap) String() string {
	type kv struct {
		k loc.Ident
		v AliasTarget
	}
	var kvs []kv
	for it := a.base().Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		kvs = append(kvs, kv{k, v})
	}
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].k.Num < kvs[j].k.Num })
	parts := make([]string, len(kvs))
	for i, p := range kvs {
		parts[i] = fmt.Sprintf("%s->%s", p.k, p.v)
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// AliasReturn is the flat lattice over AliasTarget attached to the
// procedure's return slot.
type AliasReturn struct{ target AliasTarget }

// NoReturnAlias is the bottom return alias: nothing known.
func NoReturnAlias() AliasReturn { return AliasReturn{} }

// ReturnOf builds the return alias t.
func ReturnOf(t AliasTarget) AliasReturn { return AliasReturn{target: t} }

// Target returns the aliased target, if any.
func (r AliasReturn) Target() (AliasTarget, bool) { return r.target, r.target.Valid() }

// Leq computes r <= o.
func (r AliasReturn) Leq(o AliasReturn) bool { return r.target.Leq(o.target) }

// Join computes r ⊔ o.
func (r AliasReturn) Join(o AliasReturn) AliasReturn { return AliasReturn{target: r.target.Join(o.target)} }

// Widen is Join.
func (r AliasReturn) Widen(next AliasReturn, numIters int) AliasReturn { return r.Join(next) }

func (r AliasReturn) String() string { return r.target.String() }

// Alias is the pair of the alias map and the return alias.
type Alias struct {
	Map AliasMap
	Ret AliasReturn
}

// EmptyAlias is the empty alias state.
func EmptyAlias() Alias { return Alias{Map: EmptyAliasMap(), Ret: NoReturnAlias()} }

// Leq computes a <= o.
func (a Alias) Leq(o Alias) bool { return a.Map.Leq(o.Map) && a.Ret.Leq(o.Ret) }

// Join computes a ⊔ o.
func (a Alias) Join(o Alias) Alias { return Alias{Map: a.Map.Join(o.Map), Ret: a.Ret.Join(o.Ret)} }

// Widen widens a toward next.
func (a Alias) Widen(next Alias, numIters int) Alias {
	return Alias{Map: a.Map.Widen(next.Map, numIters), Ret: a.Ret.Widen(next.Ret, numIters)}
}

// StoreSimple performs Store(l) on the map; additionally, when l is the
// return slot and expr aliases some location l2, sets the return alias to
// Simple(l2) (spec.md §4.3).
func (a Alias) StoreSimple(l loc.Loc, isReturnSlot bool, expr loc.Ident) Alias {
	a.Map = a.Map.Store(l)
	if isReturnSlot {
		if t, found := a.Map.Find(expr); found && t.Valid() && !t.isEmpty {
			a.Ret = ReturnOf(Simple(t.loc))
		}
	}
	return a
}

// StoreEmpty performs Store(l) on the map; if formal's GetAllLocs is a
// singleton l2, sets the return alias to Empty(l2) (spec.md §4.3, used to
// record an empty()-style API result).
func (a Alias) StoreEmpty(l loc.Loc, formal AbstractValue) Alias {
	a.Map = a.Map.Store(l)
	if locs := formal.GetAllLocs(); len(locs) == 1 {
		a.Ret = ReturnOf(Empty(locs[0]))
	}
	return a
}
