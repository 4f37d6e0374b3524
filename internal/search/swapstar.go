package search

import "github.com/vrpkit/routecore/internal/domain"

type insertCandidate struct {
	pos  int
	cost domain.Cost
}

// SwapStar is Vidal's SWAP* neighbourhood (spec.md §4.4.5): for two
// routes it exchanges one client from each, reinserting each at the best
// free position in the other route rather than at its counterpart's old
// slot. removalCosts and threeBest are caches keyed per route, each
// invalidated lazily by comparing the route's Version() against the
// version last seen when the cache was built — this is what scenario S5
// exercises (a mutation without an explicit UpdateRoute call is still
// caught on the next query because the version check runs every time).
type SwapStar struct {
	threeBest   map[*Route]map[int][3]insertCandidate
	removalCost map[*Route]map[int]domain.Cost
	versionSeen map[*Route]int

	bestDelta domain.Cost
	bestU     *Node
	bestV     *Node
	bestPosR1 int
	bestPosR2 int
	found     bool
}

func NewSwapStar() *SwapStar {
	return &SwapStar{
		threeBest:   make(map[*Route]map[int][3]insertCandidate),
		removalCost: make(map[*Route]map[int]domain.Cost),
		versionSeen: make(map[*Route]int),
	}
}

// Init marks every route's caches dirty at the start of a search pass.
func (s *SwapStar) Init(routes []*Route) {
	for _, r := range routes {
		s.versionSeen[r] = -1
	}
}

// UpdateRoute explicitly drops route r's caches; the next query rebuilds
// them. Called whenever r was mutated.
func (s *SwapStar) UpdateRoute(r *Route) {
	s.versionSeen[r] = -1
}

// Stale reports whether r's cache is not valid for r's current version:
// r was never queried, its cache was dropped by Init or UpdateRoute, or r
// has been updated since the cache was built. Every query below re-checks
// the version and rebuilds a stale cache before trusting it.
func (s *SwapStar) Stale(r *Route) bool {
	seen, ok := s.versionSeen[r]
	return !ok || seen != r.Version()
}

func (s *SwapStar) ensureFresh(r *Route) {
	if seen, ok := s.versionSeen[r]; ok && seen == r.Version() {
		return
	}
	delete(s.threeBest, r)
	delete(s.removalCost, r)
	s.versionSeen[r] = r.Version()
}

func (s *SwapStar) threeBestFor(r *Route, clientLoc int, ce *domain.CostEvaluator) [3]insertCandidate {
	s.ensureFresh(r)
	cache, ok := s.threeBest[r]
	if !ok {
		cache = make(map[int][3]insertCandidate)
		s.threeBest[r] = cache
	}
	if cand, ok := cache[clientLoc]; ok {
		return cand
	}

	ins := buildSingleSegment(r.data, clientLoc)
	best := [3]insertCandidate{
		{pos: -1, cost: domain.InfeasibleCost},
		{pos: -1, cost: domain.InfeasibleCost},
		{pos: -1, cost: domain.InfeasibleCost},
	}
	for p := 1; p <= r.Size()+1; p++ {
		seg := mergeSegments(r.data, []Segment{r.Before(p - 1), ins, r.After(p)})
		cost := routeContribution(ce, seg, r.vt, r.Size()+1)
		if cost < best[2].cost {
			best[2] = insertCandidate{pos: p, cost: cost}
			if best[2].cost < best[1].cost {
				best[1], best[2] = best[2], best[1]
			}
			if best[1].cost < best[0].cost {
				best[0], best[1] = best[1], best[0]
			}
		}
	}
	cache[clientLoc] = best
	return best
}

func (s *SwapStar) removalSavingsFor(r *Route, pos int, ce *domain.CostEvaluator) domain.Cost {
	s.ensureFresh(r)
	cache, ok := s.removalCost[r]
	if !ok {
		cache = make(map[int]domain.Cost)
		s.removalCost[r] = cache
	}
	loc := r.At(pos).loc
	if cost, ok := cache[loc]; ok {
		return cost
	}

	oldCost := routeContribution(ce, r.Before(r.Size()+1), r.vt, r.Size())
	without := mergeSegments(r.data, []Segment{r.Before(pos - 1), r.After(pos + 1)})
	newCost := routeContribution(ce, without, r.vt, r.Size()-1)

	savings := oldCost - newCost
	cache[loc] = savings
	return savings
}

// Evaluate tries every (U in R1, V in R2) pair and, for each, the
// product of their cached three-best insertion candidates in the other
// route, keeping the best exact delta found. Ties are broken by the
// lower client location index (spec.md §9).
func (s *SwapStar) Evaluate(r1, r2 *Route, ce *domain.CostEvaluator) domain.Cost {
	s.found = false
	s.bestDelta = 0

	oldCost := routeContribution(ce, r1.Before(r1.Size()+1), r1.vt, r1.Size()) +
		routeContribution(ce, r2.Before(r2.Size()+1), r2.vt, r2.Size())

	for vi := 1; vi <= r2.Size(); vi++ {
		vNode := r2.At(vi)
		s.removalSavingsFor(r2, vi, ce)
		candsR1 := s.threeBestFor(r1, vNode.loc, ce)

		for ui := 1; ui <= r1.Size(); ui++ {
			uNode := r1.At(ui)
			s.removalSavingsFor(r1, ui, ce)
			candsR2 := s.threeBestFor(r2, uNode.loc, ce)

			for _, cp := range candsR1 {
				if cp.pos < 0 {
					continue
				}
				newSegR1 := exactInsertRemoveSegment(r1, cp.pos, uNode.idx, vNode.loc)

				for _, cq := range candsR2 {
					if cq.pos < 0 {
						continue
					}
					newSegR2 := exactInsertRemoveSegment(r2, cq.pos, vNode.idx, uNode.loc)

					newCost := routeContribution(ce, newSegR1, r1.vt, r1.Size()) +
						routeContribution(ce, newSegR2, r2.vt, r2.Size())
					delta := newCost - oldCost

					if s.better(delta, uNode.loc, vNode.loc) {
						s.bestDelta = delta
						s.bestU = uNode
						s.bestV = vNode
						s.bestPosR1 = cp.pos
						s.bestPosR2 = cq.pos
						s.found = true
					}
				}
			}
		}
	}

	if !s.found || s.bestDelta >= 0 {
		return 0
	}
	return s.bestDelta
}

func (s *SwapStar) better(delta domain.Cost, uLoc, vLoc int) bool {
	if !s.found {
		return delta < 0
	}
	if delta != s.bestDelta {
		return delta < s.bestDelta
	}
	if uLoc != s.bestU.loc {
		return uLoc < s.bestU.loc
	}
	return vLoc < s.bestV.loc
}

// Apply performs the exchange found by the preceding Evaluate call.
func (s *SwapStar) Apply(r1, r2 *Route) {
	if !s.found || s.bestDelta >= 0 {
		return
	}

	v1 := r1.Visits()
	v2 := r2.Visits()
	uIdx, vIdx := s.bestU.idx, s.bestV.idx

	newV1 := spliceReplace(v1, uIdx, s.bestV.loc, s.bestPosR1)
	newV2 := spliceReplace(v2, vIdx, s.bestU.loc, s.bestPosR2)

	r1.ReplaceVisits(newV1)
	r2.ReplaceVisits(newV2)

	s.UpdateRoute(r1)
	s.UpdateRoute(r2)
	s.found = false
}

// spliceReplace removes the client at 1-indexed position removedPos from
// visits and inserts newLoc at 1-indexed position insertPos, both given
// in the original (pre-removal) indexing, matching
// exactInsertRemoveSegment's convention.
func spliceReplace(visits []int, removedPos int, newLoc int, insertPos int) []int {
	without := make([]int, 0, len(visits))
	without = append(without, visits[:removedPos-1]...)
	without = append(without, visits[removedPos:]...)

	pos := insertPos
	if insertPos > removedPos {
		pos--
	}
	out := make([]int, 0, len(without)+1)
	out = append(out, without[:pos-1]...)
	out = append(out, newLoc)
	out = append(out, without[pos-1:]...)
	return out
}

// exactInsertRemoveSegment computes the Segment for route r with the
// client at removedPos removed and clientLoc inserted before position p
// (p given in r's original, pre-removal indexing). Before(i) is
// unaffected by removing a node at a position > i, and After(i) is
// unaffected by removing a node at a position < i, so both the removal
// and the insertion are folded into one merge chain without rebuilding
// the whole route.
func exactInsertRemoveSegment(r *Route, p int, removedPos int, clientLoc int) Segment {
	ins := buildSingleSegment(r.data, clientLoc)

	if p <= removedPos {
		segs := []Segment{r.Before(p - 1), ins}
		if p <= removedPos-1 {
			segs = append(segs, r.Between(p, removedPos-1))
		}
		segs = append(segs, r.After(removedPos+1))
		return mergeSegments(r.data, segs)
	}

	segs := []Segment{r.Before(removedPos - 1)}
	if removedPos+1 <= p-1 {
		segs = append(segs, r.Between(removedPos+1, p-1))
	}
	segs = append(segs, ins, r.After(p))
	return mergeSegments(r.data, segs)
}

// buildSingleSegment constructs the Segment for a lone client location,
// independent of any particular route (a client's demand and time
// window don't depend on which vehicle visits it).
func buildSingleSegment(data *domain.ProblemData, loc int) Segment {
	c := data.Location(loc).Client
	if c == nil {
		panic("search: swap* candidate location is not a client")
	}
	return Segment{
		Dist: domain.NewDistanceSegment(loc),
		Load: domain.NewLoadSegment(c.Delivery, c.Pickup),
		Dur:  domain.NewDurationSegment(loc, c.ServiceDuration, c.TWEarly, c.TWLate, c.ReleaseTime),
	}
}
