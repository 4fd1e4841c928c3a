// Package trace implements TraceSet, the provenance-trace lattice named in
// spec.md §6: a persistent set of Trace elements recording how an
// AbstractValue arose, for diagnostics. Backed by benbjohnson/immutable,
// following the same persistent-set pattern as package powloc and the
// teacher's utils/ssa-value-set.go.
package trace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/bufoverrun/loc"
)

// Elem is a single provenance-trace element.
type Elem interface {
	fmt.Stringer
	hash() uint32
	equal(Elem) bool
}

// Assign records that a value was assigned directly at location.
type Assign struct{ Location loc.Loc }

func (e Assign) String() string { return fmt.Sprintf("Assign(%s)", e.Location) }
func (e Assign) hash() uint32   { return hashString("Assign:" + e.Location.String()) }
func (e Assign) equal(o Elem) bool {
	oa, ok := o.(Assign)
	return ok && oa.Location.Equal(e.Location)
}

// SymAssign records that loc was bound to a fresh symbolic input value,
// introduced at location.
type SymAssign struct {
	Loc      loc.Loc
	Location loc.Loc
}

func (e SymAssign) String() string { return fmt.Sprintf("SymAssign(%s, %s)", e.Loc, e.Location) }
func (e SymAssign) hash() uint32 {
	return hashString("SymAssign:" + e.Loc.String() + "@" + e.Location.String())
}
func (e SymAssign) equal(o Elem) bool {
	oa, ok := o.(SymAssign)
	return ok && oa.Loc.Equal(e.Loc) && oa.Location.Equal(e.Location)
}

// ArrDecl records that an array was (re)declared (allocated, or its length
// set) at location.
type ArrDecl struct{ Location loc.Loc }

func (e ArrDecl) String() string { return fmt.Sprintf("ArrDecl(%s)", e.Location) }
func (e ArrDecl) hash() uint32   { return hashString("ArrDecl:" + e.Location.String()) }
func (e ArrDecl) equal(o Elem) bool {
	oa, ok := o.(ArrDecl)
	return ok && oa.Location.Equal(e.Location)
}

// UnknownFrom records that a value flowed from an unmodeled procedure call
// at location. Callee is empty when the call target itself is unknown.
type UnknownFrom struct {
	Callee   string
	Location loc.Loc
}

func (e UnknownFrom) String() string {
	return fmt.Sprintf("UnknownFrom(%s, %s)", e.Callee, e.Location)
}
func (e UnknownFrom) hash() uint32 {
	return hashString("UnknownFrom:" + e.Callee + "@" + e.Location.String())
}
func (e UnknownFrom) equal(o Elem) bool {
	oa, ok := o.(UnknownFrom)
	return ok && oa.Callee == e.Callee && oa.Location.Equal(e.Location)
}

func hashString(s string) uint32 {
	h := uint32(2166136261)
	for _, c := range []byte(s) {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

type elemHasher struct{}

func (elemHasher) Hash(e Elem) uint32   { return e.hash() }
func (elemHasher) Equal(a, b Elem) bool { return a.equal(b) }

// Set is a persistent set of trace elements: TraceSet in spec.md's vocabulary.
type Set struct {
	elems *immutable.Map[Elem, struct{}]
}

// Empty is the empty trace set.
func Empty() Set { return Set{} }

// Of builds a trace set containing exactly the given elements.
func Of(elems ...Elem) Set {
	s := Empty()
	for _, e := range elems {
		s = s.Add(e)
	}
	return s
}

// Singleton builds a trace set containing exactly elem.
func Singleton(elem Elem) Set { return Of(elem) }

// Add inserts elem into the set.
func (s Set) Add(elem Elem) Set {
	base := s.elems
	if base == nil {
		base = immutable.NewMap[Elem, struct{}](elemHasher{})
	}
	return Set{elems: base.Set(elem, struct{}{})}
}

// Leq reports whether s is a subset of o.
func (s Set) Leq(o Set) bool {
	if s.elems == o.elems {
		return true
	}
	for _, e := range s.Elements() {
		if !o.Mem(e) {
			return false
		}
	}
	return true
}

// Mem reports whether elem is a member of the set.
func (s Set) Mem(elem Elem) bool {
	if s.elems == nil {
		return false
	}
	_, found := s.elems.Get(elem)
	return found
}

// Join computes the union of two trace sets.
func (s Set) Join(o Set) Set {
	if s.elems == o.elems {
		return s
	}
	if s.elems == nil {
		return o
	}
	if o.elems == nil {
		return s
	}
	result := s.elems
	for it := o.elems.Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		result = result.Set(k, struct{}{})
	}
	return Set{elems: result}
}

// Call builds the trace set recorded on a value after it crosses a call
// boundary at location, joining the caller-side traces gathered for the
// substituted symbols with the callee's own traces (spec.md §4.1's
// substitute operation).
func Call(location loc.Loc, caller, callee Set) Set {
	return caller.Join(callee).Add(Assign{Location: location})
}

// Elements returns the set's members in a deterministic order.
func (s Set) Elements() []Elem {
	if s.elems == nil {
		return nil
	}
	out := make([]Elem, 0, s.elems.Len())
	for it := s.elems.Iterator(); !it.Done(); {
		k, _, _ := it.Next()
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Len reports the number of elements in the set.
func (s Set) Len() int {
	if s.elems == nil {
		return 0
	}
	return s.elems.Len()
}

func (s Set) String() string {
	elems := s.Elements()
	if len(elems) == 0 {
		return "{}"
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
