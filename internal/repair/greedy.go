// Package repair reinserts unvisited clients into a solution that a
// destroy operator, crossover, or infeasible construction left without a
// home (spec.md §4.6).
package repair

import (
	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/rng"
)

// GreedyRepair inserts every client in unvisited into solution, one at a
// time in an order drawn from rng, each at whichever (route, position) pair
// minimizes that route's delta cost. It never fails: if every route ties on
// cost, the client goes into the first route. No new route is created.
func GreedyRepair(solution *domain.Solution, unvisited []int, data *domain.ProblemData, ce *domain.CostEvaluator, r *rng.RNG) *domain.Solution {
	if len(unvisited) == 0 {
		return solution
	}
	if len(solution.Routes) == 0 {
		return solution
	}

	order := append([]int(nil), unvisited...)
	r.Shuffle(order)

	visits := make([][]int, len(solution.Routes))
	vehicleTypeIdx := make([]int, len(solution.Routes))
	for i, rt := range solution.Routes {
		visits[i] = append([]int(nil), rt.Visits...)
		vehicleTypeIdx[i] = rt.VehicleTypeIdx
	}

	for _, client := range order {
		bestRoute, bestPos, bestDelta := -1, -1, domain.Cost(0)
		found := false

		for i := range visits {
			baseline, err := domain.EvaluateRoute(data, vehicleTypeIdx[i], visits[i])
			if err != nil {
				continue
			}
			baseCost := ce.RouteCost(baseline)

			for pos := 0; pos <= len(visits[i]); pos++ {
				candidate := insertAt(visits[i], pos, client)
				route, err := domain.EvaluateRoute(data, vehicleTypeIdx[i], candidate)
				if err != nil {
					continue
				}
				delta := ce.RouteCost(route) - baseCost

				if !found || delta < bestDelta {
					bestRoute, bestPos, bestDelta = i, pos, delta
					found = true
				}
			}
		}

		if !found {
			bestRoute, bestPos = 0, 0
		}
		visits[bestRoute] = insertAt(visits[bestRoute], bestPos, client)
	}

	inputs := make([]domain.RouteInput, len(visits))
	for i := range visits {
		inputs[i] = domain.RouteInput{VehicleTypeIdx: vehicleTypeIdx[i], Visits: visits[i]}
	}
	out, err := domain.NewSolution(data, inputs)
	if err != nil {
		// Every candidate was already validated incrementally above; a
		// construction error here would mean unvisited contained a
		// duplicate or an already-visited client, which is a caller bug.
		panic("repair: greedy repair produced an invalid solution: " + err.Error())
	}
	out.RunID = solution.RunID
	return out
}

func insertAt(visits []int, pos int, client int) []int {
	out := make([]int, 0, len(visits)+1)
	out = append(out, visits[:pos]...)
	out = append(out, client)
	out = append(out, visits[pos:]...)
	return out
}
