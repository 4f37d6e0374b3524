package crossover

import (
	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/repair"
	"github.com/vrpkit/routecore/internal/rng"
)

// SelectiveRouteExchange (SREX) picks a random contiguous window of routes
// from each parent and swaps the windows wholesale between two offspring
// candidates, then repairs whichever clients became duplicated or missing
// as a result against the destination parent's remaining routes. It
// returns the better offspring: fewer uncollected-prize-and-distance cost
// wins, ties broken by fewer missing clients (spec.md §4.7).
func SelectiveRouteExchange(parents [2]*domain.Solution, data *domain.ProblemData, r *rng.RNG) *domain.Solution {
	p0, p1 := parents[0], parents[1]
	n := len(p0.Routes)
	if len(p1.Routes) < n {
		n = len(p1.Routes)
	}
	if n == 0 {
		return p0
	}

	windowLen := 1 + r.RandInt(n)
	start := r.RandInt(n - windowLen + 1)
	end := start + windowLen

	offspringA := exchangeWindow(p0, p1, start, end, data, r)
	offspringB := exchangeWindow(p1, p0, start, end, data, r)

	if betterOffspring(offspringA, offspringB) {
		return offspringA
	}
	return offspringB
}

// exchangeWindow builds base's routes with the [start,end) window replaced
// by donor's routes at the same index range, deduplicates clients that now
// appear twice, and reinserts whichever clients that left stranded.
func exchangeWindow(base, donor *domain.Solution, start, end int, data *domain.ProblemData, r *rng.RNG) *domain.Solution {
	inputs := make([]domain.RouteInput, len(base.Routes))
	for i, rt := range base.Routes {
		if i >= start && i < end && i < len(donor.Routes) {
			dr := donor.Routes[i]
			inputs[i] = domain.RouteInput{VehicleTypeIdx: dr.VehicleTypeIdx, Visits: append([]int(nil), dr.Visits...)}
		} else {
			inputs[i] = domain.RouteInput{VehicleTypeIdx: rt.VehicleTypeIdx, Visits: append([]int(nil), rt.Visits...)}
		}
	}

	seen := make(map[int]struct{})
	for i := range inputs {
		cleaned := make([]int, 0, len(inputs[i].Visits))
		for _, c := range inputs[i].Visits {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cleaned = append(cleaned, c)
		}
		inputs[i].Visits = cleaned
	}

	intermediate, err := domain.NewSolution(data, inputs)
	if err != nil {
		panic("crossover: selective route exchange produced an invalid intermediate solution: " + err.Error())
	}

	var missing []int
	for idx := data.NumDepots(); idx < data.NumLocations(); idx++ {
		if data.Location(idx).Client == nil {
			continue
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		if _, wasVisited := base.Neighbours[idx]; !wasVisited {
			if _, wasVisitedDonor := donor.Neighbours[idx]; !wasVisitedDonor {
				continue // not visited by either parent: leave it missing
			}
		}
		missing = append(missing, idx)
	}
	if len(missing) == 0 {
		return intermediate
	}

	var zero domain.CostEvaluator
	return repair.NearestRouteInsert(intermediate, missing, data, &zero)
}

func betterOffspring(a, b *domain.Solution) bool {
	costA := float64(a.Distance) + float64(a.UncollectedPrizes)
	costB := float64(b.Distance) + float64(b.UncollectedPrizes)
	if costA != costB {
		return costA < costB
	}
	return a.NumMissingClients < b.NumMissingClients
}
