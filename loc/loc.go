// Package loc defines the abstract-location vocabulary that the buffer-overrun
// domain is built over: program variables, logical temporaries, field
// projections, allocation sites, and the distinguished unknown location.
//
// This vocabulary is external to the domain in the sense that the SIL/CFG
// front-end (out of scope per spec §1) is the one minting concrete Loc
// values; the domain only requires equality, a total order, and String().
package loc

import "fmt"

// Loc denotes an abstract location: a program variable, a logical
// temporary, a field projection, an allocation-site slot, or Unknown.
type Loc interface {
	fmt.Stringer
	// Equal reports whether two locations denote the same abstract cell.
	Equal(Loc) bool
	// Less gives Loc a total order, used to keep map iteration and
	// pretty-printing deterministic.
	Less(Loc) bool
	// IsUnknown reports whether this is the distinguished Unknown location.
	IsUnknown() bool
}

// Allocsite identifies an array object abstractly, at the program point that
// created it.
type Allocsite struct {
	ProcName string
	Line     int
	Counter  int
}

func (a Allocsite) String() string {
	return fmt.Sprintf("alloc<%s:%d#%d>", a.ProcName, a.Line, a.Counter)
}

func (a Allocsite) Equal(b Allocsite) bool { return a == b }

func (a Allocsite) Less(b Allocsite) bool {
	if a.ProcName != b.ProcName {
		return a.ProcName < b.ProcName
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Counter < b.Counter
}

// Ident denotes an SSA-style logical temporary introduced by the front-end.
type Ident struct {
	Num int
}

func (i Ident) String() string { return fmt.Sprintf("$t%d", i.Num) }

// kind discriminates the concrete shape of a Loc.
type kind int

const (
	kVar kind = iota
	kField
	kAlloc
	kUnknown
)

// loc is the sole concrete implementation of Loc. Kept private: construct
// via Var, Field, OfAllocsite, or Unknown.
type locImpl struct {
	kind kind
	// kVar
	name string
	// kField: base Loc plus a field name
	base  *locImpl
	field string
	// kAlloc
	site Allocsite
}

// Var builds the location of a named program variable.
func Var(name string) Loc {
	return &locImpl{kind: kVar, name: name}
}

// Field builds the location of a field projection `base.field`.
func Field(base Loc, field string) Loc {
	b, ok := base.(*locImpl)
	if !ok {
		panic("loc.Field: base is not a *locImpl")
	}
	return &locImpl{kind: kField, base: b, field: field}
}

// OfAllocsite builds the location denoting the array object created at site.
func OfAllocsite(site Allocsite) Loc {
	return &locImpl{kind: kAlloc, site: site}
}

// OfIdent builds the (stack) location that shadows a logical temporary.
// Temporaries live in the same Loc space as variables so they can be
// entries in StackLocSet and PureMemory.
func OfIdent(id Ident) Loc {
	return &locImpl{kind: kVar, name: id.String()}
}

// FieldBase returns the base location of a field projection, if l is one.
func FieldBase(l Loc) (Loc, bool) {
	impl, ok := l.(*locImpl)
	if !ok || impl.kind != kField {
		return nil, false
	}
	return impl.base, true
}

// unknownLoc is the distinguished singleton Unknown location.
var unknownLoc Loc = &locImpl{kind: kUnknown}

// Unknown returns the distinguished location that PowLoc's Top element and
// "polluted heap" reads are attributed to.
func Unknown() Loc { return unknownLoc }

func (l *locImpl) IsUnknown() bool { return l.kind == kUnknown }

func (l *locImpl) String() string {
	switch l.kind {
	case kVar:
		return l.name
	case kField:
		return l.base.String() + "." + l.field
	case kAlloc:
		return l.site.String()
	case kUnknown:
		return "Unknown"
	}
	panic("unreachable")
}

func (l *locImpl) order() int { return int(l.kind) }

func (l *locImpl) Equal(o Loc) bool {
	r, ok := o.(*locImpl)
	if !ok {
		return false
	}
	if l == r {
		return true
	}
	if l.kind != r.kind {
		return false
	}
	switch l.kind {
	case kVar:
		return l.name == r.name
	case kField:
		return l.field == r.field && l.base.Equal(r.base)
	case kAlloc:
		return l.site.Equal(r.site)
	case kUnknown:
		return true
	}
	return false
}

func (l *locImpl) Less(o Loc) bool {
	r, ok := o.(*locImpl)
	if !ok {
		panic("loc.Less: incomparable Loc implementation")
	}
	if l.kind != r.kind {
		return l.order() < r.order()
	}
	switch l.kind {
	case kVar:
		return l.name < r.name
	case kField:
		if !l.base.Equal(r.base) {
			return l.base.Less(r.base)
		}
		return l.field < r.field
	case kAlloc:
		return l.site.Less(r.site)
	case kUnknown:
		return false
	}
	return false
}

// Hasher adapts Loc for use as a key in benbjohnson/immutable persistent
// maps, which require an explicit Hash/Equal pair rather than relying on Go
// map equality (Loc is an interface over a pointer-ish implementation).
type Hasher struct{}

func (Hasher) Hash(l Loc) uint32 {
	h := uint32(2166136261)
	for _, c := range []byte(l.String()) {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

func (Hasher) Equal(a, b Loc) bool { return a.Equal(b) }

// Exp denotes a front-end expression tree: a variable, a constant, or a
// unary/binary operator application. The domain only consumes Exp to decide
// how update_latest_prune should react to a store (spec §4.6): is the RHS a
// boolean constant 0/1, is the LHS a plain program variable.
type Exp interface {
	fmt.Stringer
}

// LvarExp denotes a reference to a program variable appearing as an lvalue.
type LvarExp struct{ Name string }

func (e LvarExp) String() string { return e.Name }

// ConstExp denotes an integer constant.
type ConstExp struct{ Value int64 }

func (e ConstExp) String() string { return fmt.Sprintf("%d", e.Value) }

// TempExp denotes a reference to a logical temporary (an Ident).
type TempExp struct{ Id Ident }

func (e TempExp) String() string { return e.Id.String() }

// NotExp denotes the logical negation of another expression.
type NotExp struct{ Inner Exp }

func (e NotExp) String() string { return "!" + e.Inner.String() }
