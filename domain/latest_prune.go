package domain

import "github.com/cs-au-dk/bufoverrun/loc"

// latestPruneTag discriminates LatestPrune's five variants.
type latestPruneTag int

const (
	tagTop latestPruneTag = iota
	tagLatest
	tagTrueBranch
	tagFalseBranch
	tagV
)

// LatestPrune remembers the most recent branch-condition write, so that a
// later apply_latest_prune can fold the refinement the branch implied back
// into memory. Top means "nothing usable is remembered"; Latest(p) means
// "p was just recorded by set_prune_pairs, branch not yet taken"; the
// TrueBranch/FalseBranch/V variants record which side of a branch on
// variable x led here, carrying the PrunePairs recorded just before the
// branch (spec.md §4.4).
type LatestPrune struct {
	tag     latestPruneTag
	x       loc.Loc
	p       PrunePairs
	pTrue   PrunePairs
	pFalse  PrunePairs
}

// TopPrune is the top element: nothing remembered.
func TopPrune() LatestPrune { return LatestPrune{tag: tagTop} }

// LatestOf records p as the most recent prune pairs, branch not yet taken.
func LatestOf(p PrunePairs) LatestPrune { return LatestPrune{tag: tagLatest, p: p} }

// TrueBranchOf records that control reached here via the true branch of a
// test on x, with p the prune pairs recorded before the branch.
func TrueBranchOf(x loc.Loc, p PrunePairs) LatestPrune {
	return LatestPrune{tag: tagTrueBranch, x: x, p: p}
}

// FalseBranchOf is the false-branch counterpart of TrueBranchOf.
func FalseBranchOf(x loc.Loc, p PrunePairs) LatestPrune {
	return LatestPrune{tag: tagFalseBranch, x: x, p: p}
}

// VOf records that both branches of a test on x have been observed at a
// join point, with the prune pairs each side carried.
func VOf(x loc.Loc, pTrue, pFalse PrunePairs) LatestPrune {
	return LatestPrune{tag: tagV, x: x, pTrue: pTrue, pFalse: pFalse}
}

// Leq computes lp <= o per spec.md §4.4's partial order: Latest compares
// pointwise on its PrunePairs; TrueBranch/FalseBranch compare equal only
// when the bound variable matches and the pairs compare; critically,
// TrueBranch(x,p) <= V(x,p',_) iff p <= p' (symmetrically for FalseBranch),
// and every other cross-tag combination is incomparable.
func (lp LatestPrune) Leq(o LatestPrune) bool {
	if o.tag == tagTop {
		return true
	}
	switch lp.tag {
	case tagTop:
		return o.tag == tagTop
	case tagLatest:
		return o.tag == tagLatest && lp.p.Leq(o.p)
	case tagTrueBranch:
		switch o.tag {
		case tagTrueBranch:
			return lp.x.Equal(o.x) && lp.p.Leq(o.p)
		case tagV:
			return lp.x.Equal(o.x) && lp.p.Leq(o.pTrue)
		}
		return false
	case tagFalseBranch:
		switch o.tag {
		case tagFalseBranch:
			return lp.x.Equal(o.x) && lp.p.Leq(o.p)
		case tagV:
			return lp.x.Equal(o.x) && lp.p.Leq(o.pFalse)
		}
		return false
	case tagV:
		return o.tag == tagV && lp.x.Equal(o.x) && lp.pTrue.Leq(o.pTrue) && lp.pFalse.Leq(o.pFalse)
	}
	return false
}

// Join computes lp ⊔ o per spec.md §4.4's join rules.
func (lp LatestPrune) Join(o LatestPrune) LatestPrune {
	if lp.Leq(o) {
		return o
	}
	if o.Leq(lp) {
		return lp
	}
	switch {
	case lp.tag == tagLatest && o.tag == tagLatest:
		return LatestOf(lp.p.Meet(o.p))
	case lp.tag == tagTrueBranch && o.tag == tagTrueBranch && lp.x.Equal(o.x):
		return TrueBranchOf(lp.x, lp.p.Meet(o.p))
	case lp.tag == tagFalseBranch && o.tag == tagFalseBranch && lp.x.Equal(o.x):
		return FalseBranchOf(lp.x, lp.p.Meet(o.p))
	case lp.tag == tagTrueBranch && o.tag == tagFalseBranch && lp.x.Equal(o.x):
		return VOf(lp.x, lp.p, o.p)
	case lp.tag == tagFalseBranch && o.tag == tagTrueBranch && lp.x.Equal(o.x):
		return VOf(lp.x, o.p, lp.p)
	case lp.tag == tagV && o.tag == tagV && lp.x.Equal(o.x):
		return VOf(lp.x, lp.pTrue.Meet(o.pTrue), lp.pFalse.Meet(o.pFalse))
	}
	return TopPrune()
}

// Widen is Join: LatestPrune has finite height, so iteration terminates
// without a dedicated widener.
func (lp LatestPrune) Widen(next LatestPrune, numIters int) LatestPrune { return lp.Join(next) }

func (lp LatestPrune) String() string {
	switch lp.tag {
	case tagTop:
		return "Top"
	case tagLatest:
		return "Latest(" + lp.p.String() + ")"
	case tagTrueBranch:
		return "TrueBranch(" + lp.x.String() + "," + lp.p.String() + ")"
	case tagFalseBranch:
		return "FalseBranch(" + lp.x.String() + "," + lp.p.String() + ")"
	case tagV:
		return "V(" + lp.x.String() + "," + lp.pTrue.String() + "," + lp.pFalse.String() + ")"
	}
	return "?"
}
