package search

import "github.com/vrpkit/routecore/internal/domain"

// RelocateStar evaluates every single-client relocation between two
// routes, in both directions, and keeps the best (spec.md §4.4.4). It
// amortises the granular-neighbour scan the driver would otherwise do
// one relocation at a time by considering every insertion point in the
// other route in one call.
type RelocateStar struct {
	exchange *Exchange

	bestDelta domain.Cost
	bestFrom  *Node
	bestTo    *Node
	found     bool
}

func NewRelocateStar() *RelocateStar {
	return &RelocateStar{exchange: NewExchange(1, 0)}
}

// Evaluate scans every client in r1 for relocation into every position
// of r2, and every client in r2 for relocation into every position of
// r1, returning the best (most negative) delta found. The winning move
// is remembered for Apply.
func (rs *RelocateStar) Evaluate(r1, r2 *Route, ce *domain.CostEvaluator) domain.Cost {
	rs.found = false
	rs.bestDelta = 0

	rs.scanDirection(r1, r2, ce)
	rs.scanDirection(r2, r1, ce)

	if !rs.found {
		return 0
	}
	return rs.bestDelta
}

func (rs *RelocateStar) scanDirection(from, to *Route, ce *domain.CostEvaluator) {
	for i := 1; i <= from.Size(); i++ {
		u := from.At(i)
		for j := 0; j <= to.Size(); j++ {
			v := to.At(j)
			delta := rs.exchange.Evaluate(u, v, ce)
			if delta < 0 && (!rs.found || delta < rs.bestDelta) {
				rs.bestDelta = delta
				rs.bestFrom = u
				rs.bestTo = v
				rs.found = true
			}
		}
	}
}

// Apply relocates the single client found best by the preceding Evaluate
// call.
func (rs *RelocateStar) Apply(r1, r2 *Route) {
	if !rs.found {
		return
	}
	rs.exchange.Apply(rs.bestFrom, rs.bestTo)
}
