package domain

import (
	"testing"

	"github.com/cs-au-dk/bufoverrun/loc"
	"github.com/sebdah/goldie/v2"
)

// Pins the pretty-printed String() form of a representative ReachableMemory
// value, the way the teacher's absint-goker_test.go pins detected-bug
// summaries: catches accidental formatting drift in any of the five
// component String() methods it composes.
func TestReachableMemoryStringGolden(t *testing.T) {
	x := loc.Var("x")
	m := EmptyReachableMemory().AddStack(x, OfInt(5))

	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(m.String()))
}
