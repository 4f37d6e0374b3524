package search

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/rng"
)

// MetricsRecorder is the ambient instrumentation hook the driver calls
// on every sweep and applied move; nil is a valid "no metrics" driver.
// internal/metrics implements this against Prometheus.
type MetricsRecorder interface {
	ObserveIteration()
	ObserveMove(operator string, delta domain.Cost)
}

// Driver orchestrates node and route operators over a granular
// neighbour list until a full sweep produces no improving move
// (spec.md §4.5).
type Driver struct {
	data       *domain.ProblemData
	neighbours *NeighbourList
	rng        *rng.RNG
	recorder   MetricsRecorder

	nodeOperators  []namedNodeOp
	routeOperators []namedRouteOp

	locRoute map[int]*Route
}

type namedNodeOp struct {
	name string
	op   NodeOperator
}

type namedRouteOp struct {
	name string
	op   RouteOperator
}

// NewDriver constructs a driver with the default operator set: Exchange
// variants, TwoOpt, MoveTwoClientsReversed as node operators;
// RelocateStar, SwapStar, SwapRoutes as route operators.
func NewDriver(data *domain.ProblemData, neighbours *NeighbourList, seed uint32) *Driver {
	return &Driver{
		data:       data,
		neighbours: neighbours,
		rng:        rng.New(seed),
		nodeOperators: []namedNodeOp{
			{"exchange<1,0>", NewExchange(1, 0)},
			{"exchange<1,1>", NewExchange(1, 1)},
			{"exchange<2,0>", NewExchange(2, 0)},
			{"exchange<2,1>", NewExchange(2, 1)},
			{"two_opt", NewTwoOpt()},
			{"move_two_clients_reversed", NewMoveTwoClientsReversed()},
		},
		routeOperators: []namedRouteOp{
			{"relocate_star", NewRelocateStar()},
			{"swap_star", NewSwapStar()},
			{"swap_routes", NewSwapRoutes()},
		},
	}
}

// WithMetrics attaches an ambient metrics recorder.
func (d *Driver) WithMetrics(r MetricsRecorder) *Driver {
	d.recorder = r
	return d
}

// Solve projects solution to mutable routes, runs local search to
// convergence, and exports an immutable Solution. The input solution is
// not mutated.
func (d *Driver) Solve(solution *domain.Solution, ce *domain.CostEvaluator) (*domain.Solution, error) {
	routes := d.project(solution)
	d.rebuildLocRoute(routes)

	for _, n := range d.nodeOperators {
		if init, ok := n.op.(Initializable); ok {
			init.Init(routes)
		}
	}
	for _, n := range d.routeOperators {
		if init, ok := n.op.(Initializable); ok {
			init.Init(routes)
		}
	}

	for {
		if d.recorder != nil {
			d.recorder.ObserveIteration()
		}
		nodeImproved := d.nodeSweep(routes, ce)
		routeImproved := d.routeSweep(routes, ce)
		if !nodeImproved && !routeImproved {
			break
		}
	}

	out, err := d.export(routes, solution.RunID)
	if err != nil {
		return nil, fmt.Errorf("solve: export result: %w", err)
	}
	return out, nil
}

func (d *Driver) project(solution *domain.Solution) []*Route {
	routes := make([]*Route, len(solution.Routes))
	for i, r := range solution.Routes {
		routes[i] = NewRouteFromVisits(d.data, r.VehicleTypeIdx, r.Visits)
	}
	return routes
}

func (d *Driver) export(routes []*Route, runID uuid.UUID) (*domain.Solution, error) {
	inputs := make([]domain.RouteInput, len(routes))
	for i, r := range routes {
		inputs[i] = domain.RouteInput{VehicleTypeIdx: r.vehicleTypeIdx, Visits: r.Visits()}
	}
	sol, err := domain.NewSolution(d.data, inputs)
	if err != nil {
		return nil, err
	}
	sol.RunID = runID
	return sol, nil
}

func (d *Driver) rebuildLocRoute(routes []*Route) {
	if d.locRoute == nil {
		d.locRoute = make(map[int]*Route)
	} else {
		for k := range d.locRoute {
			delete(d.locRoute, k)
		}
	}
	for _, r := range routes {
		for _, loc := range r.Visits() {
			d.locRoute[loc] = r
		}
	}
}

func (d *Driver) afterMutation(routes []*Route, affected ...*Route) {
	d.rebuildLocRoute(routes)
	for _, r := range affected {
		for _, n := range d.nodeOperators {
			if ru, ok := n.op.(RouteUpdatable); ok {
				ru.UpdateRoute(r)
			}
		}
		for _, n := range d.routeOperators {
			if ru, ok := n.op.(RouteUpdatable); ok {
				ru.UpdateRoute(r)
			}
		}
	}
}

// nodeSweep runs first-improvement node-operator search over every
// client, in randomized order, restarting each client's neighbour scan
// whenever an improving move is applied to it.
func (d *Driver) nodeSweep(routes []*Route, ce *domain.CostEvaluator) bool {
	locs := allClientLocations(routes)
	d.rng.Shuffle(locs)

	improvedAny := false
	for _, loc := range locs {
		for {
			route, ok := d.locRoute[loc]
			if !ok {
				break // this client was absorbed into a relocated segment elsewhere
			}
			u := route.NodeAt(loc)

			improved := false
			for _, vLoc := range d.neighbours.Of(loc) {
				vRoute, ok := d.locRoute[vLoc]
				if !ok {
					continue
				}
				v := vRoute.NodeAt(vLoc)

				for _, n := range d.nodeOperators {
					delta := n.op.Evaluate(u, v, ce)
					if delta < 0 {
						n.op.Apply(u, v)
						d.afterMutation(routes, u.route, v.route)
						if d.recorder != nil {
							d.recorder.ObserveMove(n.name, delta)
						}
						improved = true
						improvedAny = true
						break
					}
				}
				if improved {
					break
				}
			}
			if !improved {
				break
			}
		}
	}
	return improvedAny
}

// routeSweep runs first-improvement route-operator search over every
// pair of routes at least once.
func (d *Driver) routeSweep(routes []*Route, ce *domain.CostEvaluator) bool {
	improvedAny := false
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			for _, n := range d.routeOperators {
				delta := n.op.Evaluate(routes[i], routes[j], ce)
				if delta < 0 {
					n.op.Apply(routes[i], routes[j])
					d.afterMutation(routes, routes[i], routes[j])
					if d.recorder != nil {
						d.recorder.ObserveMove(n.name, delta)
					}
					improvedAny = true
				}
			}
		}
	}
	return improvedAny
}

func allClientLocations(routes []*Route) []int {
	var out []int
	for _, r := range routes {
		out = append(out, r.Visits()...)
	}
	return out
}
