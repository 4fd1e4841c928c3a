// Package powloc implements PowLoc, the set-of-locations lattice named in
// spec.md §6: the set of abstract locations a pointer value may denote,
// with a distinguished Unknown top element. Backed by a benbjohnson/
// immutable.Map[loc.Loc, struct{}] used as a persistent set, mirroring the
// teacher's utils/ssa-value-set.go pattern (a *immutable.Map[T, struct{}]
// wrapper around the library's map type) and map-base.go's physical-
// equality fast paths for join/leq.
package powloc

import (
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/bufoverrun/loc"
)

// PowLoc is a member of the set-of-locations lattice.
type PowLoc struct {
	unknown bool
	locs    *immutable.Map[loc.Loc, struct{}]
}

// Bot is the empty set, and also this lattice's bottom element.
func Bot() PowLoc { return PowLoc{} }

// Empty is an alias for Bot, matching spec.md's PowLoc.empty.
func Empty() PowLoc { return Bot() }

// Unknown is the top element: "points somewhere, but we don't know where".
func Unknown() PowLoc { return PowLoc{unknown: true} }

// Singleton builds the one-element set {l}.
func Singleton(l loc.Loc) PowLoc {
	m := immutable.NewMap[loc.Loc, struct{}](loc.Hasher{}).Set(l, struct{}{})
	return PowLoc{locs: m}
}

// IsBot reports whether the set is empty.
func (p PowLoc) IsBot() bool { return !p.unknown && (p.locs == nil || p.locs.Len() == 0) }

// IsUnknown reports whether p is the distinguished Unknown element.
func (p PowLoc) IsUnknown() bool { return p.unknown }

// IsSingletonOrMore reports whether the set carries at least one concrete
// location (used by callers that need "is this a must-alias singleton").
func (p PowLoc) IsSingletonOrMore() bool { return !p.unknown && p.locs != nil && p.locs.Len() >= 1 }

// Mem reports whether l is a member of p.
func (p PowLoc) Mem(l loc.Loc) bool {
	if p.unknown {
		return true
	}
	if p.locs == nil {
		return false
	}
	_, found := p.locs.Get(l)
	return found
}

// Add inserts l into p.
func (p PowLoc) Add(l loc.Loc) PowLoc {
	if p.unknown {
		return p
	}
	base := p.locs
	if base == nil {
		base = immutable.NewMap[loc.Loc, struct{}](loc.Hasher{})
	}
	return PowLoc{locs: base.Set(l, struct{}{})}
}

// Union computes the set union of p and o.
func (p PowLoc) Union(o PowLoc) PowLoc {
	if p.locs == o.locs && p.unknown == o.unknown {
		return p
	}
	if p.unknown || o.unknown {
		return Unknown()
	}
	if p.IsBot() {
		return o
	}
	if o.IsBot() {
		return p
	}
	result := p.locs
	for it := o.locs.Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		result = result.Set(k, struct{}{})
	}
	return PowLoc{locs: result}
}

// Leq computes p <= o (subset ordering, with Unknown as top).
func (p PowLoc) Leq(o PowLoc) bool {
	if p.locs == o.locs && p.unknown == o.unknown {
		return true
	}
	if p.IsBot() {
		return true
	}
	if o.unknown {
		return true
	}
	if p.unknown {
		return false
	}
	for it := p.locs.Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		if !o.Mem(k) {
			return false
		}
	}
	return true
}

// Join is an alias for Union: the set lattice's join is set union.
func (p PowLoc) Join(o PowLoc) PowLoc { return p.Union(o) }

// Widen is Join: PowLoc has finite height bounded by the number of
// allocation/variable sites in the analyzed program, so plain join
// terminates without a dedicated widening operator.
func (p PowLoc) Widen(next PowLoc, numIters int) PowLoc { return p.Join(next) }

// Fold applies f to every member location, threading an accumulator.
func Fold[A any](p PowLoc, init A, f func(A, loc.Loc) A) A {
	acc := init
	if p.unknown || p.locs == nil {
		return acc
	}
	for _, l := range p.Elements() {
		acc = f(acc, l)
	}
	return acc
}

// Elements returns the set's members in a deterministic order. nil for
// Unknown and Bot.
func (p PowLoc) Elements() []loc.Loc {
	if p.unknown || p.locs == nil {
		return nil
	}
	out := make([]loc.Loc, 0, p.locs.Len())
	for it := p.locs.Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (p PowLoc) String() string {
	if p.unknown {
		return "unknown"
	}
	if p.IsBot() {
		return "{}"
	}
	elems := p.Elements()
	parts := make([]string, len(elems))
	for i, l := range elems {
		parts[i] = l.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
