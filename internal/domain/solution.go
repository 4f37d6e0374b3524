package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// NeighbourPair records the predecessor and successor of a client in one
// solution's visiting order, used by BrokenPairsDistance.
type NeighbourPair struct {
	Pred, Succ int
	Present    bool
}

// Route is one vehicle's immutable, already-evaluated sequence of client
// visits. It carries precomputed aggregates so the cost evaluator and
// diversity metrics never need to re-walk the distance/duration matrices.
// Grounded on the teacher's internal/domain/route.go (RoutePlan/RouteStop
// as immutable planning output), generalized with the segment aggregates
// spec.md §3 requires.
type Route struct {
	VehicleTypeIdx   int
	DepotIndex       int
	Visits           []int // client location indices, depot-to-depot implicit
	Distance         Distance
	Duration         Duration
	Load             Load
	Capacity         Load
	TimeWarp         Duration
	Prizes           Cost
	FixedVehicleCost Cost
	StartTime        Duration
	EndTime          Duration
	Slack            Duration
	CentroidX        Coordinate
	CentroidY        Coordinate
}

// Empty reports whether the route carries no clients.
func (r Route) Empty() bool { return len(r.Visits) == 0 }

// Solution is an immutable, hash-equatable collection of routes produced by
// the outer loop or exported by the search driver.
type Solution struct {
	Routes            []Route
	Neighbours        map[int]NeighbourPair
	UncollectedPrizes Cost
	NumClients        int
	NumMissingClients int
	TimeWarp          Duration
	ExcessLoad        Load
	Distance          Distance
	RunID             uuid.UUID // only used by the storage adapter; never read by search
}

// RouteInput is the unevaluated description of one route: a vehicle type
// and an ordered list of client location indices. NewSolution computes all
// of Route's aggregates from this plus ProblemData's matrices.
type RouteInput struct {
	VehicleTypeIdx int
	Visits         []int
}

// NewSolution validates and constructs a Solution from raw route inputs.
// Fails at construction (spec.md §7) if: a client index is out of range or
// is actually a depot, a client is visited by more than one route, a
// vehicle type index is out of range, or more routes are assigned to a
// vehicle type than it has vehicles available.
func NewSolution(data *ProblemData, inputs []RouteInput) (*Solution, error) {
	perTypeUsed := make(map[int]int)
	visited := make(map[int]struct{})

	routes := make([]Route, 0, len(inputs))
	for ri, in := range inputs {
		if in.VehicleTypeIdx < 0 || in.VehicleTypeIdx >= len(data.vehicles) {
			return nil, fmt.Errorf("new solution: route %d: vehicle type index %d out of range [0,%d)", ri, in.VehicleTypeIdx, len(data.vehicles))
		}
		vt := data.vehicles[in.VehicleTypeIdx]
		perTypeUsed[in.VehicleTypeIdx]++
		if perTypeUsed[in.VehicleTypeIdx] > vt.NumAvailable {
			return nil, fmt.Errorf("new solution: vehicle type %d (%q) used by %d routes but only %d available", in.VehicleTypeIdx, vt.Name, perTypeUsed[in.VehicleTypeIdx], vt.NumAvailable)
		}

		for _, c := range in.Visits {
			if c < data.numDepots || c >= len(data.locations) {
				return nil, fmt.Errorf("new solution: route %d: location index %d is not a client", ri, c)
			}
			if _, dup := visited[c]; dup {
				return nil, fmt.Errorf("new solution: client at location %d is visited by more than one route", c)
			}
			visited[c] = struct{}{}
		}

		route, err := evaluateRoute(data, vt, in.VehicleTypeIdx, in.Visits)
		if err != nil {
			return nil, fmt.Errorf("new solution: route %d: %w", ri, err)
		}
		routes = append(routes, route)
	}

	var uncollected Cost
	numMissing := 0
	for idx := data.numDepots; idx < len(data.locations); idx++ {
		if _, ok := visited[idx]; ok {
			continue
		}
		client := data.locations[idx].Client
		if client == nil {
			continue
		}
		numMissing++
		uncollected += client.Prize
	}

	neighbours := make(map[int]NeighbourPair, len(visited))
	for _, r := range routes {
		for i, c := range r.Visits {
			np := NeighbourPair{Present: true}
			if i > 0 {
				np.Pred = r.Visits[i-1]
			} else {
				np.Pred = -1
			}
			if i < len(r.Visits)-1 {
				np.Succ = r.Visits[i+1]
			} else {
				np.Succ = -1
			}
			neighbours[c] = np
		}
	}

	var totalTW Duration
	var totalExcess Load
	var totalDist Distance
	for _, r := range routes {
		totalTW += r.TimeWarp
		if r.Load > r.Capacity {
			totalExcess += r.Load - r.Capacity
		}
		totalDist += r.Distance
	}

	return &Solution{
		Routes:            routes,
		Neighbours:        neighbours,
		UncollectedPrizes: uncollected,
		NumClients:        len(visited),
		NumMissingClients: numMissing,
		TimeWarp:          totalTW,
		ExcessLoad:        totalExcess,
		Distance:          totalDist,
	}, nil
}

// EvaluateRoute computes one route's aggregates (distance, duration, load,
// time warp, ...) for a candidate vehicle type and visit order, without
// constructing a full Solution. Repair and crossover utilities use this to
// score a candidate insertion or route assignment in isolation rather than
// re-validating and re-evaluating every route in the solution.
func EvaluateRoute(data *ProblemData, vehicleTypeIdx int, visits []int) (Route, error) {
	if vehicleTypeIdx < 0 || vehicleTypeIdx >= len(data.vehicles) {
		return Route{}, fmt.Errorf("evaluate route: vehicle type index %d out of range [0,%d)", vehicleTypeIdx, len(data.vehicles))
	}
	return evaluateRoute(data, data.vehicles[vehicleTypeIdx], vehicleTypeIdx, visits)
}

func evaluateRoute(data *ProblemData, vt VehicleType, vtIdx int, visits []int) (Route, error) {
	depotIdx := vt.DepotIndex

	if len(visits) == 0 {
		return Route{
			VehicleTypeIdx:   vtIdx,
			DepotIndex:       depotIdx,
			Visits:           nil,
			Capacity:         vt.Capacity,
			FixedVehicleCost: 0,
		}, nil
	}

	dist := func(i, j int) Distance { return data.Dist(i, j) }
	dur := func(i, j int) Duration { return data.Dur(i, j) }

	chain := make([]int, 0, len(visits)+2)
	chain = append(chain, depotIdx)
	chain = append(chain, visits...)
	chain = append(chain, depotIdx)

	distSeg := NewDistanceSegment(chain[0])
	var loadSeg LoadSegment
	var durSeg DurationSegment

	depot := data.locations[depotIdx].Depot
	if depot == nil {
		return Route{}, fmt.Errorf("vehicle type %q depot index %d is not a depot", vt.Name, depotIdx)
	}
	durSeg = NewDurationSegment(chain[0], 0, vt.TWEarly, vt.TWLate, 0)
	loadSeg = NewLoadSegment(0, 0)

	var centroidX, centroidY Coordinate
	var numClients Coordinate

	for k := 1; k < len(chain); k++ {
		idx := chain[k]
		loc := data.locations[idx]

		var seg DistanceSegment
		var lseg LoadSegment
		var dseg DurationSegment

		if loc.Client != nil {
			c := loc.Client
			seg = NewDistanceSegment(idx)
			lseg = NewLoadSegment(c.Delivery, c.Pickup)
			dseg = NewDurationSegment(idx, c.ServiceDuration, c.TWEarly, c.TWLate, c.ReleaseTime)
			centroidX += c.X
			centroidY += c.Y
			numClients++
		} else {
			d := loc.Depot
			seg = NewDistanceSegment(idx)
			lseg = NewLoadSegment(0, 0)
			dseg = NewDurationSegment(idx, 0, d.TWEarly, d.TWLate, 0)
		}

		distSeg = MergeDistanceSegments(dist, distSeg, seg)
		loadSeg = MergeLoadSegments(loadSeg, lseg)
		durSeg = MergeDurationSegments(dur, durSeg, dseg)
	}

	var prizes Cost
	for _, c := range visits {
		if client := data.locations[c].Client; client != nil {
			prizes += client.Prize
		}
	}

	if numClients == 0 {
		numClients = 1
	}

	return Route{
		VehicleTypeIdx:   vtIdx,
		DepotIndex:       depotIdx,
		Visits:           append([]int(nil), visits...),
		Distance:         distSeg.Distance(),
		Duration:         durSeg.Duration(),
		Load:             loadSeg.Load(),
		Capacity:         vt.Capacity,
		TimeWarp:         durSeg.TimeWarp(vt.MaxDuration),
		Prizes:           prizes,
		FixedVehicleCost: vt.FixedCost,
		StartTime:        durSeg.TWEarly(),
		EndTime:          durSeg.TWLate(),
		Slack:            durSeg.TWLate() - durSeg.TWEarly(),
		CentroidX:        centroidX / numClients,
		CentroidY:        centroidY / numClients,
	}, nil
}

// IsFeasible reports whether every route respects capacity and time
// windows (spec.md §8, property 6).
func (s *Solution) IsFeasible() bool {
	return s.TimeWarp == 0 && s.ExcessLoad == 0
}

// SortedClientIndices returns the client location indices visited by this
// solution, in ascending order — used by diversity and repair utilities
// that need a stable iteration order.
func (s *Solution) SortedClientIndices() []int {
	out := make([]int, 0, len(s.Neighbours))
	for idx := range s.Neighbours {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
