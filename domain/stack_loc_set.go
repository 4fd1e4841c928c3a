package domain

import (
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/bufoverrun/loc"
)

// StackLocSet is the finite set of locations known to live on the current
// frame's stack. Membership affects ReachableMemory's read-default and
// strong-update policy (spec.md §4.6).
type StackLocSet struct {
	s *immutable.Map[loc.Loc, struct{}]
}

// EmptyStackLocSet is the empty set.
func EmptyStackLocSet() StackLocSet { return StackLocSet{} }

func (s StackLocSet) base() *immutable.Map[loc.Loc, struct{}] {
	if s.s != nil {
		return s.s
	}
	return immutable.NewMap[loc.Loc, struct{}](loc.Hasher{})
}

// Mem reports whether l is a stack location.
func (s StackLocSet) Mem(l loc.Loc) bool {
	if s.s == nil {
		return false
	}
	_, found := s.s.Get(l)
	return found
}

// Add inserts l into the set.
func (s StackLocSet) Add(l loc.Loc) StackLocSet {
	return StackLocSet{s: s.base().Set(l, struct{}{})}
}

// Leq computes s <= o (subset ordering).
func (s StackLocSet) Leq(o StackLocSet) bool {
	if s.s == o.s {
		return true
	}
	for it := s.base().Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		if !o.Mem(k) {
			return false
		}
	}
	return true
}

// Join computes the union of s and o.
func (s StackLocSet) Join(o StackLocSet) StackLocSet {
	if s.s == o.s {
		return s
	}
	result := s.base()
	for it := o.base().Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		result = result.Set(k, struct{}{})
	}
	return StackLocSet{s: result}
}

// Widen is Join: the set of stack locations in a procedure is fixed by
// its declarations, so it has finite height and needs no dedicated
// widening operator.
func (s StackLocSet) Widen(next StackLocSet, numIters int) StackLocSet { return s.Join(next) }

func (s StackLocSet) String() string {
	var out []string
	for it := s.base().Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		out = append(out, k.String())
	}
	sort.Strings(out)
	if len(out) == 0 {
		return "{}"
	}
	return "{" + strings.Join(out, ", ") + "}"
}
