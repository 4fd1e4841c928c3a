package domain

import (
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/bufoverrun/loc"
)

// PrunePairs is the inverted finite map Loc -> AbstractValue recording
// "the latest pruning refined these locations to these values": top is
// the empty map (no refinement known), and smaller, more-refined states
// have more entries (spec.md §4.5). Open question resolved here (recorded
// in the grounding ledger): Leq(p1,p2) holds when p2's domain is a subset
// of p1's and p1 agrees with or refines p2 at every shared key; Meet -
// used when control flow merges two refinements that may not both hold -
// keeps only the keys both sides agree carry a refinement, joining the
// values (spec.md's literal "pointwise join of values at shared keys with
// drop-on-absent").
type PrunePairs struct {
	m *immutable.Map[loc.Loc, AbstractValue]
}

// Top is the empty map: no pruning refinement recorded.
func Top() PrunePairs { return PrunePairs{} }

// Of builds a PrunePairs from a literal set of bindings.
func Of(bindings map[loc.Loc]AbstractValue) PrunePairs {
	p := Top()
	for l, v := range bindings {
		p = p.Set(l, v)
	}
	return p
}

func (p PrunePairs) base() *immutable.Map[loc.Loc, AbstractValue] {
	if p.m != nil {
		return p.m
	}
	return immutable.NewMap[loc.Loc, AbstractValue](loc.Hasher{})
}

// Get looks up l.
func (p PrunePairs) Get(l loc.Loc) (AbstractValue, bool) {
	if p.m == nil {
		return Bot(), false
	}
	return p.m.Get(l)
}

// Set binds l to v.
func (p PrunePairs) Set(l loc.Loc, v AbstractValue) PrunePairs {
	return PrunePairs{m: p.base().Set(l, v)}
}

// Len reports the number of refined locations.
func (p PrunePairs) Len() int {
	if p.m == nil {
		return 0
	}
	return p.m.Len()
}

// ForEach visits every (location, value) pair.
func (p PrunePairs) ForEach(f func(loc.Loc, AbstractValue)) {
	if p.m == nil {
		return
	}
	for it := p.m.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		f(k, v)
	}
}

// Leq computes p <= o under the inverted order: p must carry at least
// every refinement o does, agreeing with or refining it.
func (p PrunePairs) Leq(o PrunePairs) bool {
	if p.m == o.m {
		return true
	}
	ok := true
	o.ForEach(func(l loc.Loc, ov AbstractValue) {
		v, found := p.Get(l)
		if !found || !v.Leq(ov) {
			ok = false
		}
	})
	return ok
}

// Meet keeps only the locations refined on both sides, joining their
// values: the weakest refinement still guaranteed regardless of which of
// two incoming edges was taken.
func (p PrunePairs) Meet(o PrunePairs) PrunePairs {
	if p.m == o.m {
		return p
	}
	result := Top()
	p.ForEach(func(l loc.Loc, v AbstractValue) {
		if ov, found := o.Get(l); found {
			result = result.Set(l, v.Join(ov))
		}
	})
	return result
}

func (p PrunePairs) String() string {
	type kv struct {
		k loc.Loc
		v AbstractValue
	}
	var kvs []kv
	p.ForEach(func(l loc.Loc, v AbstractValue) { kvs = append(kvs, kv{l, v}) })
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].k.Less(kvs[j].k) })
	parts := make([]string, len(kvs))
	for i, e := range kvs {
		parts[i] = e.k.String() + "->" + e.v.String()
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
