package crossover

import (
	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/repair"
	"github.com/vrpkit/routecore/internal/rng"
)

// OrderedCrossover is the classic order crossover (OX) applied to the
// concatenated client visiting order of both parents: a random contiguous
// sub-sequence of parent 1's order is copied verbatim, the remainder is
// filled with parent 2's order skipping clients already placed, and the
// resulting order is reconstructed into routes bounded by vehicle
// availability (spec.md §4.7).
func OrderedCrossover(parents [2]*domain.Solution, data *domain.ProblemData, r *rng.RNG) *domain.Solution {
	order1 := flattenVisits(parents[0])
	order2 := flattenVisits(parents[1])

	if len(order1) == 0 {
		return buildFromOrder(order2, data)
	}

	lo := r.RandInt(len(order1))
	segLen := r.RandInt(len(order1) - lo + 1)
	hi := lo + segLen

	placed := make(map[int]struct{}, segLen)
	child := make([]int, 0, len(order1))
	for _, c := range order1[lo:hi] {
		child = append(child, c)
		placed[c] = struct{}{}
	}
	for _, c := range order2 {
		if _, ok := placed[c]; ok {
			continue
		}
		child = append(child, c)
		placed[c] = struct{}{}
	}
	// Clients present outside the copied segment in order1 but not in order2
	// (possible when the parents' visited sets differ) still need a home.
	for _, c := range order1 {
		if _, ok := placed[c]; ok {
			continue
		}
		child = append(child, c)
		placed[c] = struct{}{}
	}

	return buildFromOrder(child, data)
}

func buildFromOrder(order []int, data *domain.ProblemData) *domain.Solution {
	empty, err := domain.NewSolution(data, emptyRoutes(data))
	if err != nil {
		panic("crossover: failed to build empty reconstruction target: " + err.Error())
	}
	var zero domain.CostEvaluator
	return repair.NearestRouteInsert(empty, order, data, &zero)
}
