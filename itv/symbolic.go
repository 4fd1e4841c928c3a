package itv

import "github.com/cs-au-dk/bufoverrun/symb"

// MakeSym builds the interval value of an unconstrained symbolic input: a
// fresh symbol drawn from symtab, tagging an envelope interval (Nat if the
// caller knows the input is unsigned, Top otherwise). AbstractValue's
// make_symbolic (spec.md §4.1) uses this to seed v.itv.
func MakeSym(symtab *symb.SymbolTable, unsigned bool) (Itv, symb.Sym) {
	s := symtab.NewSymbol()
	base := Top()
	if unsigned {
		base = Nat()
	}
	return Itv{Low: base.Low, High: base.High, Sym: s}, s
}

// GetSymbols reports the relational symbols mentioned by this interval:
// just its own tag, if any. Concrete (non-symbolic) intervals mention none.
func (i Itv) GetSymbols() []symb.Sym {
	if i.Sym.Valid() {
		return []symb.Sym{i.Sym}
	}
	return nil
}

// Subst substitutes relational symbols in the interval using eval. If i
// carries a symbol, the whole interval is replaced by eval's answer for
// that symbol (the envelope bounds stored alongside the tag are just the
// symbol's declared range, superseded entirely once it is resolved);
// otherwise i is returned unchanged. AbstractValue.substitute (spec.md
// §4.1) calls this while specializing a callee summary at a call site.
func (i Itv) Subst(eval func(symb.Sym) Itv) Itv {
	if i.Sym.Valid() {
		return eval(i.Sym)
	}
	return i
}
