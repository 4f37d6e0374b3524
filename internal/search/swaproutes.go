package search

import "github.com/vrpkit/routecore/internal/domain"

// SwapRoutes exchanges the entire client sequence of two routes of
// different vehicle types, each keeping its own depot and capacity
// (spec.md §4.4.6). Delegating to TwoOpt's suffix-swap isn't valid here
// because the two routes may start and end at different depots; a plain
// 2-opt at the depot boundary would staple one route's clients to the
// other's depot. Evaluate therefore rebuilds each candidate route's
// segment from scratch against its own depot.
type SwapRoutes struct {
	bestDelta domain.Cost
	found     bool
}

func NewSwapRoutes() *SwapRoutes { return &SwapRoutes{} }

func (s *SwapRoutes) Evaluate(r1, r2 *Route, ce *domain.CostEvaluator) domain.Cost {
	s.found = false
	if r1.vehicleTypeIdx == r2.vehicleTypeIdx {
		return 0
	}

	v1 := r1.Visits()
	v2 := r2.Visits()

	oldCost := routeContribution(ce, r1.Before(r1.Size()+1), r1.vt, r1.Size()) +
		routeContribution(ce, r2.Before(r2.Size()+1), r2.vt, r2.Size())

	newR1 := routeCostForVisits(r1.data, r1.vt, v2, ce)
	newR2 := routeCostForVisits(r2.data, r2.vt, v1, ce)

	delta := (newR1 + newR2) - oldCost
	if delta < 0 {
		s.bestDelta = delta
		s.found = true
	}
	return delta
}

func (s *SwapRoutes) Apply(r1, r2 *Route) {
	if !s.found {
		return
	}
	v1 := r1.Visits()
	v2 := r2.Visits()
	r1.ReplaceVisits(v2)
	r2.ReplaceVisits(v1)
	s.found = false
}

// routeCostForVisits computes a route's penalised-cost contribution for
// an arbitrary client sequence against vt's own depot, independent of
// any cached route.
func routeCostForVisits(data *domain.ProblemData, vt domain.VehicleType, visits []int, ce *domain.CostEvaluator) domain.Cost {
	if len(visits) == 0 {
		return 0
	}

	depotSeg := Segment{
		Dist: domain.NewDistanceSegment(vt.DepotIndex),
		Load: domain.NewLoadSegment(0, 0),
		Dur:  domain.NewDurationSegment(vt.DepotIndex, 0, vt.TWEarly, vt.TWLate, 0),
	}

	segs := []Segment{depotSeg}
	for _, loc := range visits {
		segs = append(segs, buildSingleSegment(data, loc))
	}
	segs = append(segs, depotSeg)

	whole := mergeSegments(data, segs)
	return routeContribution(ce, whole, vt, len(visits))
}
