package domain

// CostEvaluator converts raw route statistics into a scalar penalised cost.
// It is a value-like object: its two coefficients are read many times and
// never mutated during an operator's Evaluate (spec.md §5).
type CostEvaluator struct {
	capacityPenalty Cost
	twPenalty       Cost
}

// NewCostEvaluator constructs a CostEvaluator with the given per-unit
// penalty coefficients for excess load and time warp.
func NewCostEvaluator(capacityPenalty, twPenalty Cost) CostEvaluator {
	return CostEvaluator{capacityPenalty: capacityPenalty, twPenalty: twPenalty}
}

// LoadPenalty is the cost charged for carrying load in excess of capacity.
func (ce CostEvaluator) LoadPenalty(load, capacity Load) Cost {
	if load <= capacity {
		return 0
	}
	return Cost(load-capacity) * ce.capacityPenalty
}

// TWPenalty is the cost charged for accumulated time warp.
func (ce CostEvaluator) TWPenalty(timeWarp Duration) Cost {
	if timeWarp <= 0 {
		return 0
	}
	return Cost(timeWarp) * ce.twPenalty
}

// RouteCost is one route's own contribution to PenalisedCost: its
// distance, fixed vehicle cost, and load/time-warp penalties. Repair and
// crossover utilities use it to score a single candidate route in
// isolation, without re-evaluating every other route in the solution.
func (ce CostEvaluator) RouteCost(r Route) Cost {
	return Cost(r.Distance) + r.FixedVehicleCost + ce.LoadPenalty(r.Load, r.Capacity) + ce.TWPenalty(r.TimeWarp)
}

// PenalisedCost is distance + fixed vehicle costs + load/time-warp
// penalties + uncollected prizes, regardless of feasibility.
func (ce CostEvaluator) PenalisedCost(sol *Solution) Cost {
	var total Cost
	for _, r := range sol.Routes {
		total += Cost(r.Distance)
		total += r.FixedVehicleCost
		total += ce.LoadPenalty(r.Load, r.Capacity)
		total += ce.TWPenalty(r.TimeWarp)
	}
	total += Cost(sol.UncollectedPrizes)
	return total
}

// Cost is PenalisedCost if the solution is feasible, else the documented
// InfeasibleCost sentinel (spec.md §9 Open Questions).
func (ce CostEvaluator) Cost(sol *Solution) Cost {
	if !sol.IsFeasible() {
		return InfeasibleCost
	}
	return ce.PenalisedCost(sol)
}
