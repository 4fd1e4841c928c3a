// Package arrayblk implements ArrayBlk, the array-descriptor lattice named
// in spec.md §6: for each allocation site an abstract pointer may denote,
// a stride, an offset interval, and a size interval. The map itself is a
// benbjohnson/immutable.Map keyed by loc.Allocsite, following the physical-
// equality fast paths and iterator-based join/leq of the teacher's
// analysis/lattice/map-base.go, generalized with per-site widening instead
// of goat's dynamic Element dispatch (per spec.md §9's preference for
// static dispatch in a fixed-point-engine-consumed domain).
package arrayblk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/symb"
)

// Site is the per-allocation-site record: stride, offset interval, and size
// interval.
type Site struct {
	Stride itv.Itv
	Offset itv.Itv
	Size   itv.Itv
}

func (s Site) String() string {
	return fmt.Sprintf("{stride=%s, offset=%s, size=%s}", s.Stride, s.Offset, s.Size)
}

func (s Site) leq(o Site) bool {
	return s.Stride.Leq(o.Stride) && s.Offset.Leq(o.Offset) && s.Size.Leq(o.Size)
}

func (s Site) join(o Site) Site {
	return Site{
		Stride: s.Stride.Join(o.Stride),
		Offset: s.Offset.Join(o.Offset),
		Size:   s.Size.Join(o.Size),
	}
}

func (s Site) widen(next Site, numIters int) Site {
	return Site{
		Stride: s.Stride.Widen(next.Stride, numIters),
		Offset: s.Offset.Widen(next.Offset, numIters),
		Size:   s.Size.Widen(next.Size, numIters),
	}
}

// ArrayBlk is a member of the array-descriptor lattice: either bottom (no
// information), unknown (known to be an array pointer, but to no specific
// site), or a finite map from allocation site to Site.
type ArrayBlk struct {
	unknown bool
	sites   *immutable.Map[loc.Allocsite, Site]
}

var allocsiteHasher = allocsiteHasherT{}

type allocsiteHasherT struct{}

func (allocsiteHasherT) Hash(a loc.Allocsite) uint32 {
	h := loc.Hasher{}
	return h.Hash(loc.OfAllocsite(a))
}

func (allocsiteHasherT) Equal(a, b loc.Allocsite) bool { return a.Equal(b) }

// Bot is the bottom element: not known to be a pointer to any array.
func Bot() ArrayBlk { return ArrayBlk{} }

// Unknown is the top-like element: known to point into some array, but the
// site is unknown (e.g. a value returned from an unmodeled call).
func Unknown() ArrayBlk { return ArrayBlk{unknown: true} }

// Make builds a single-site array descriptor.
func Make(site loc.Allocsite, offset, size itv.Itv, stride *itv.Itv) ArrayBlk {
	s := Site{Offset: offset, Size: size}
	if stride != nil {
		s.Stride = *stride
	} else {
		s.Stride = itv.Nat()
	}
	m := immutable.NewMap[loc.Allocsite, Site](allocsiteHasher).Set(site, s)
	return ArrayBlk{sites: m}
}

// IsBot reports whether the descriptor carries no information.
func (a ArrayBlk) IsBot() bool {
	return !a.unknown && (a.sites == nil || a.sites.Len() == 0)
}

// IsUnknown reports whether the descriptor is the distinguished "points
// into some array, site unknown" element.
func (a ArrayBlk) IsUnknown() bool { return a.unknown }

func (a ArrayBlk) String() string {
	if a.IsBot() {
		return "bot"
	}
	if a.unknown {
		return "unknown"
	}
	keys := allocsites(a.sites)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := a.sites.Get(k)
		parts = append(parts, fmt.Sprintf("%s->%s", k, v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func allocsites(m *immutable.Map[loc.Allocsite, Site]) []loc.Allocsite {
	if m == nil {
		return nil
	}
	out := make([]loc.Allocsite, 0, m.Len())
	for it := m.Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Leq computes a <= o.
func (a ArrayBlk) Leq(o ArrayBlk) bool {
	if a.sites == o.sites && a.unknown == o.unknown {
		return true
	}
	if a.IsBot() {
		return true
	}
	if o.unknown {
		return true
	}
	if a.unknown {
		return false
	}
	if o.IsBot() {
		return false
	}
	for it := a.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		ov, found := o.sites.Get(k)
		if !found || !v.leq(ov) {
			return false
		}
	}
	return true
}

// Join computes a ⊔ o.
func (a ArrayBlk) Join(o ArrayBlk) ArrayBlk {
	if a.sites == o.sites && a.unknown == o.unknown {
		return a
	}
	if a.unknown || o.unknown {
		return Unknown()
	}
	if a.IsBot() {
		return o
	}
	if o.IsBot() {
		return a
	}
	result := a.sites
	for it := o.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if cur, found := result.Get(k); found {
			result = result.Set(k, cur.join(v))
		} else {
			result = result.Set(k, v)
		}
	}
	return ArrayBlk{sites: result}
}

// Widen widens a toward next, site by site.
func (a ArrayBlk) Widen(next ArrayBlk, numIters int) ArrayBlk {
	if a.unknown || next.unknown {
		return Unknown()
	}
	if a.IsBot() {
		return next
	}
	if next.IsBot() {
		return a
	}
	result := a.sites
	for it := next.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if cur, found := result.Get(k); found {
			result = result.Set(k, cur.widen(v, numIters))
		} else {
			result = result.Set(k, v)
		}
	}
	return ArrayBlk{sites: result}
}

// SetLength replaces every site's size interval with len, used by
// AbstractValue.set_array_length (spec.md §4.1).
func (a ArrayBlk) SetLength(length itv.Itv) ArrayBlk {
	if a.IsBot() || a.unknown {
		return a
	}
	result := a.sites
	for it := a.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		v.Size = length
		result = result.Set(k, v)
	}
	return ArrayBlk{sites: result}
}

// SetStride replaces every site's stride with newStride, if it differs.
func (a ArrayBlk) SetStride(newStride itv.Itv) ArrayBlk {
	if a.IsBot() || a.unknown {
		return a
	}
	result := a.sites
	for it := a.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if !v.Stride.Eq(newStride) {
			v.Stride = newStride
			result = result.Set(k, v)
		}
	}
	return ArrayBlk{sites: result}
}

// Strideof joins the stride intervals of every site.
func (a ArrayBlk) Strideof() itv.Itv {
	result := itv.Bot()
	if a.IsBot() || a.unknown {
		return itv.Nat()
	}
	for it := a.sites.Iterator(); !it.Done(); {
		_, v, _ := it.Next()
		result = result.Join(v.Stride)
	}
	return result
}

// GetPowLoc returns the set of locations this descriptor's sites denote
// (one location per allocation site), for AbstractValue.get_all_locs.
func (a ArrayBlk) GetPowLoc() []loc.Loc {
	if a.IsBot() || a.unknown {
		return nil
	}
	var out []loc.Loc
	for _, k := range allocsites(a.sites) {
		out = append(out, loc.OfAllocsite(k))
	}
	return out
}

// GetSymbols reports every relational symbol mentioned by any site's
// offset, size, or stride interval.
func (a ArrayBlk) GetSymbols() []symb.Sym {
	if a.IsBot() || a.unknown {
		return nil
	}
	var out []symb.Sym
	for it := a.sites.Iterator(); !it.Done(); {
		_, v, _ := it.Next()
		out = append(out, v.Offset.GetSymbols()...)
		out = append(out, v.Size.GetSymbols()...)
		out = append(out, v.Stride.GetSymbols()...)
	}
	return out
}

// PlusOffset shifts every site's offset interval by i.
func (a ArrayBlk) PlusOffset(i itv.Itv) ArrayBlk {
	return a.mapOffsets(func(o itv.Itv) itv.Itv { return o.Plus(i) })
}

// MinusOffset shifts every site's offset interval by -i.
func (a ArrayBlk) MinusOffset(i itv.Itv) ArrayBlk {
	return a.mapOffsets(func(o itv.Itv) itv.Itv { return o.Minus(i) })
}

func (a ArrayBlk) mapOffsets(f func(itv.Itv) itv.Itv) ArrayBlk {
	if a.IsBot() || a.unknown {
		return a
	}
	result := a.sites
	for it := a.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		v.Offset = f(v.Offset)
		result = result.Set(k, v)
	}
	return ArrayBlk{sites: result}
}

func (a ArrayBlk) mapSizes(f func(itv.Itv) itv.Itv) ArrayBlk {
	if a.IsBot() || a.unknown {
		return a
	}
	result := a.sites
	for it := a.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		v.Size = f(v.Size)
		result = result.Set(k, v)
	}
	return ArrayBlk{sites: result}
}

// Diff computes the difference of offsets between two array descriptors
// that share at least one allocation site; top if they share none.
func (a ArrayBlk) Diff(o ArrayBlk) itv.Itv {
	if a.IsBot() || o.IsBot() || a.unknown || o.unknown {
		return itv.Top()
	}
	result := itv.Bot()
	shared := false
	for it := a.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		if ov, found := o.sites.Get(k); found {
			shared = true
			result = result.Join(v.Offset.Minus(ov.Offset))
		}
	}
	if !shared {
		return itv.Top()
	}
	return result
}

// PruneComp refines every site's size interval under the assumption that a
// bounds test `a op bound` holds (e.g. `i < a.length`), per spec.md §4.1's
// "used for array-size refinement by bounds tests".
func (a ArrayBlk) PruneComp(op itv.CmpOp, bound itv.Itv) ArrayBlk {
	return a.mapSizes(func(sz itv.Itv) itv.Itv { return sz.PruneComp(op, bound) })
}

// PruneEq refines every site's size interval under the assumption that the
// descriptor's size equals bound.
func (a ArrayBlk) PruneEq(bound itv.Itv) ArrayBlk {
	return a.mapSizes(func(sz itv.Itv) itv.Itv { return sz.PruneEq(bound) })
}

// PruneNe refines every site's size interval under the assumption that the
// descriptor's size differs from bound.
func (a ArrayBlk) PruneNe(bound itv.Itv) ArrayBlk {
	return a.mapSizes(func(sz itv.Itv) itv.Itv { return sz.PruneNe(bound) })
}

// Subst substitutes relational symbols in every site's intervals.
func (a ArrayBlk) Subst(eval func(symb.Sym) itv.Itv) ArrayBlk {
	if a.IsBot() || a.unknown {
		return a
	}
	result := a.sites
	for it := a.sites.Iterator(); !it.Done(); {
		k, v, _ := it.Next()
		v.Offset = v.Offset.Subst(eval)
		v.Size = v.Size.Subst(eval)
		v.Stride = v.Stride.Subst(eval)
		result = result.Set(k, v)
	}
	return ArrayBlk{sites: result}
}

// Normalize is the identity: every ArrayBlk built through the exported
// constructors is already in normal form.
func (a ArrayBlk) Normalize() ArrayBlk { return a }
