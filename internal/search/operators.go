package search

import "github.com/vrpkit/routecore/internal/domain"

// NodeOperator evaluates and applies a move centered on a pair of client
// nodes, e.g. relocate, swap, 2-opt (spec.md §4.4).
type NodeOperator interface {
	Evaluate(u, v *Node, ce *domain.CostEvaluator) domain.Cost
	Apply(u, v *Node)
}

// RouteOperator evaluates and applies a move centered on a pair of
// routes, e.g. SwapStar, SwapRoutes.
type RouteOperator interface {
	Evaluate(r1, r2 *Route, ce *domain.CostEvaluator) domain.Cost
	Apply(r1, r2 *Route)
}

// Initializable is implemented by operators that hold caches spanning an
// entire search pass; Init marks every route's cache dirty at the start
// of a pass.
type Initializable interface {
	Init(routes []*Route)
}

// RouteUpdatable is implemented by operators whose caches must be told
// when a specific route was mutated, so they can be recomputed lazily on
// next use rather than eagerly for every route (spec.md §4.4.5).
type RouteUpdatable interface {
	UpdateRoute(r *Route)
}

// mergeSegments concatenates a non-empty ordered list of Segments. Every
// element but the first must be adjacent in the travel-matrix sense to
// its predecessor; the caller is responsible for only ever combining
// segments that actually sit next to each other in the resulting route.
func mergeSegments(data *domain.ProblemData, segs []Segment) Segment {
	dist := func(i, j int) domain.Distance { return data.Dist(i, j) }
	dur := func(i, j int) domain.Duration { return data.Dur(i, j) }

	result := segs[0]
	for _, s := range segs[1:] {
		result = Segment{
			Dist: domain.MergeDistanceSegments(dist, result.Dist, s.Dist),
			Load: domain.MergeLoadSegments(result.Load, s.Load),
			Dur:  domain.MergeDurationSegments(dur, result.Dur, s.Dur),
		}
	}
	return result
}

// routeContribution is a route's share of PenalisedCost given a
// hypothetical whole-route Segment and client count: distance + fixed
// cost (only if the route would carry at least one client) + load and
// time-warp penalties.
func routeContribution(ce *domain.CostEvaluator, seg Segment, vt domain.VehicleType, size int) domain.Cost {
	cost := domain.Cost(seg.Dist.Distance())
	if size > 0 {
		cost += vt.FixedCost
	}
	cost += ce.LoadPenalty(seg.Load.Load(), vt.Capacity)
	cost += ce.TWPenalty(seg.Dur.TimeWarp(vt.MaxDuration))
	return cost
}
