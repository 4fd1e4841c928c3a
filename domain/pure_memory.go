package domain

import (
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/polynomial"
)

// PureMemory is a finite map Loc -> AbstractValue, with lattice-map
// semantics: pointwise join of values at shared keys, union of keys.
// Absent entries denote bottom on the stack and top-of-interval on the
// heap; that default is applied by ReachableMemory's read discipline, not
// here (spec.md §4.6).
type PureMemory struct {
	m *immutable.Map[loc.Loc, AbstractValue]
}

// EmptyPureMemory is the empty map.
func EmptyPureMemory() PureMemory { return PureMemory{} }

func (m PureMemory) base() *immutable.Map[loc.Loc, AbstractValue] {
	if m.m != nil {
		return m.m
	}
	return immutable.NewMap[loc.Loc, AbstractValue](loc.Hasher{})
}

// Get looks up l, reporting whether it was found.
func (m PureMemory) Get(l loc.Loc) (AbstractValue, bool) {
	if m.m == nil {
		return Bot(), false
	}
	return m.m.Get(l)
}

// Set binds l to v, replacing any prior binding.
func (m PureMemory) Set(l loc.Loc, v AbstractValue) PureMemory {
	return PureMemory{m: m.base().Set(l, v)}
}

// Remove drops l's binding, if any.
func (m PureMemory) Remove(l loc.Loc) PureMemory {
	if m.m == nil {
		return m
	}
	return PureMemory{m: m.m.Delete(l)}
}

// Len reports the number of bound locations.
func (m PureMemory) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Leq computes m <= o: every binding in m must be <= its counterpart in o
// (an absent key in o is treated as bottom, so m must have none beyond o
// that aren't already <= bottom, i.e. bottom themselves).
func (m PureMemory) Leq(o PureMemory) bool {
	if m.m == o.m {
		return true
	}
	for it := m.base().Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		ov, found := o.Get(k)
		if !found {
			ov = Bot()
		}
		if !v.Leq(ov) {
			return false
		}
	}
	return true
}

// Join computes the pointwise join of m and o, unioning their keys.
func (m PureMemory) Join(o PureMemory) PureMemory {
	if m.m == o.m {
		return m
	}
	result := m.base()
	for it := o.base().Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if cur, found := result.Get(k); found {
			result = result.Set(k, cur.Join(v))
		} else {
			result = result.Set(k, v)
		}
	}
	return PureMemory{m: result}
}

// Widen widens m toward next, key by key.
func (m PureMemory) Widen(next PureMemory, numIters int) PureMemory {
	result := m.base()
	for it := next.base().Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if cur, found := result.Get(k); found {
			result = result.Set(k, cur.Widen(v, numIters))
		} else {
			result = result.Set(k, v)
		}
	}
	return PureMemory{m: result}
}

// Range computes the product, over every location passing filter, of the
// top-lifted polynomial bounding that location's interval's cardinality.
// Used to bound loop trip counts (spec.md §4.2).
func (m PureMemory) Range(filter func(loc.Loc) bool) polynomial.NonNegativePolynomial {
	result := polynomial.One()
	for it := m.base().Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if !filter(k) {
			continue
		}
		n, ok := v.Itv.Range()
		var term polynomial.NonNegativePolynomial
		if !ok {
			term = polynomial.Top()
		} else {
			val := n.Value()
			if !val.IsUint64() {
				term = polynomial.Top()
			} else {
				term = polynomial.OfUint64(val.Uint64())
			}
		}
		result = polynomial.Mult(result, term)
	}
	return result
}

func (m PureMemory) String() string {
	keys := make([]loc.Loc, 0, m.Len())
	for it := m.base().Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := m.Get(k)
		parts = append(parts, k.String()+"->"+v.String())
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
