package domain

// Distance, Duration and Load are travel/capacity measures along a route.
// Cost is the scalar objective the search minimizes. Coordinate is a single
// planar axis value used for client/depot positions.
//
// The concrete representation (integer vs floating point) is selected by a
// build tag: this file's sibling measure_float.go is compiled by default,
// measure_int.go is compiled with -tags intmeasure. Both define the same
// type names and constants so the rest of the package never branches on
// precision.

// InfeasibleCost is the sentinel returned by CostEvaluator.Cost for an
// infeasible solution. It is documented here rather than left to whatever a
// "very large" value happens to mean: strictly larger than any cost
// reachable by summing finite, non-negative distance, fixed-cost, penalty
// and prize terms over a bounded instance.
