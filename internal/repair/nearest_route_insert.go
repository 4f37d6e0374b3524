package repair

import "github.com/vrpkit/routecore/internal/domain"

// NearestRouteInsert appends each client in unvisited to the end of
// whichever route's last client (or depot, if the route is empty) is
// nearest to it by the distance matrix. It does no delta-cost scan, so it
// is cheaper than GreedyRepair and meant as a fast first pass before a full
// local search cleans up the result (spec.md §4.6).
func NearestRouteInsert(solution *domain.Solution, unvisited []int, data *domain.ProblemData, ce *domain.CostEvaluator) *domain.Solution {
	if len(unvisited) == 0 || len(solution.Routes) == 0 {
		return solution
	}

	visits := make([][]int, len(solution.Routes))
	vehicleTypeIdx := make([]int, len(solution.Routes))
	depotOf := make([]int, len(solution.Routes))
	for i, rt := range solution.Routes {
		visits[i] = append([]int(nil), rt.Visits...)
		vehicleTypeIdx[i] = rt.VehicleTypeIdx
		depotOf[i] = data.VehicleType(rt.VehicleTypeIdx).DepotIndex
	}

	for _, client := range unvisited {
		best, bestDist := -1, domain.Distance(0)
		for i := range visits {
			last := depotOf[i]
			if n := len(visits[i]); n > 0 {
				last = visits[i][n-1]
			}
			d := data.Dist(last, client)
			if best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}
		visits[best] = append(visits[best], client)
	}

	inputs := make([]domain.RouteInput, len(visits))
	for i := range visits {
		inputs[i] = domain.RouteInput{VehicleTypeIdx: vehicleTypeIdx[i], Visits: visits[i]}
	}
	out, err := domain.NewSolution(data, inputs)
	if err != nil {
		panic("repair: nearest route insert produced an invalid solution: " + err.Error())
	}
	out.RunID = solution.RunID
	return out
}
