package domain

import (
	"github.com/cs-au-dk/bufoverrun/itv"
	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/cs-au-dk/bufoverrun/symb"
	"github.com/cs-au-dk/bufoverrun/trace"
)

// Substitute specializes a callee's summary value v at a call site:
// symbols mentioned by v's interval and array descriptor are replaced via
// evalSymbol, and the traces that justified those symbols in the caller
// (looked up via traceOfSymbol) are joined with v's own traces under a
// Call trace element naming callSite (spec.md §4.1).
func Substitute(v AbstractValue, evalSymbol func(symb.Sym) itv.Itv, traceOfSymbol func(symb.Sym) trace.Set, callSite loc.Loc) AbstractValue {
	callerTraces := trace.Empty()
	for _, s := range v.Itv.GetSymbols() {
		callerTraces = callerTraces.Join(traceOfSymbol(s))
	}
	for _, s := range v.ArrayBlk.GetSymbols() {
		callerTraces = callerTraces.Join(traceOfSymbol(s))
	}

	r := v
	r.Itv = v.Itv.Subst(evalSymbol)
	r.ArrayBlk = v.ArrayBlk.Subst(evalSymbol)
	r.Traces = trace.Call(callSite, callerTraces, v.Traces)
	return r.Normalize()
}

// Normalize maps a value whose interval, pointer set, and array
// descriptor are all bottom to the canonical joined-bottom (dropping any
// leftover symbol or trace metadata), and is the identity otherwise.
func (v AbstractValue) Normalize() AbstractValue {
	if v.Itv.IsBot() && v.PowLoc.IsBot() && v.ArrayBlk.IsBot() {
		return Bot()
	}
	return v
}
