package search

import (
	"fmt"

	"github.com/vrpkit/routecore/internal/domain"
)

// Segment bundles the three concatenable algebras so route queries return
// one value instead of three (spec.md §4.3 "segment summaries").
type Segment struct {
	Dist domain.DistanceSegment
	Load domain.LoadSegment
	Dur  domain.DurationSegment
}

// Route is a single vehicle's mutable sequence of visits: slot 0 and slot
// size+1 are always the same depot, clients occupy [1, size]. It caches a
// prefix and suffix Segment per index, refreshed by Update after any
// mutation (spec.md §4.3, §9 arena discipline).
type Route struct {
	data           *domain.ProblemData
	vehicleTypeIdx int
	vt             domain.VehicleType
	depotLoc       int

	nodes []*Node
	posOf map[int]int

	prefix []Segment
	suffix []Segment

	dirty     bool
	dirtyFrom int
	version   int
}

// NodeAt returns the node currently visiting loc. Panics if loc is not
// presently on this route.
func (r *Route) NodeAt(loc int) *Node {
	pos, ok := r.posOf[loc]
	if !ok {
		panic(fmt.Sprintf("search: location %d is not on this route", loc))
	}
	return r.nodes[pos]
}

// NewRoute constructs an empty route (depot-to-depot, no clients) for the
// given vehicle type.
func NewRoute(data *domain.ProblemData, vehicleTypeIdx int) *Route {
	vt := data.VehicleType(vehicleTypeIdx)
	r := &Route{
		data:           data,
		vehicleTypeIdx: vehicleTypeIdx,
		vt:             vt,
		depotLoc:       vt.DepotIndex,
	}
	start := &Node{route: r, idx: 0, loc: vt.DepotIndex}
	end := &Node{route: r, idx: 1, loc: vt.DepotIndex}
	r.nodes = []*Node{start, end}
	r.Update()
	return r
}

// NewRouteFromVisits builds a route already populated with the given
// client location indices, in order, and updates its caches.
func NewRouteFromVisits(data *domain.ProblemData, vehicleTypeIdx int, visits []int) *Route {
	r := NewRoute(data, vehicleTypeIdx)
	for i, loc := range visits {
		r.Insert(i+1, loc)
	}
	r.Update()
	return r
}

// Size returns the number of clients on the route (excluding the depot at
// both ends).
func (r *Route) Size() int { return len(r.nodes) - 2 }

// Empty reports whether the route carries no clients.
func (r *Route) Empty() bool { return r.Size() == 0 }

// At returns the node at position i, in [0, Size()+1]. Panics out of range.
func (r *Route) At(i int) *Node {
	if i < 0 || i >= len(r.nodes) {
		panic(fmt.Sprintf("search: route position %d out of range [0,%d]", i, len(r.nodes)-1))
	}
	return r.nodes[i]
}

// Capacity, FixedVehicleCost, MaxDuration, VehicleType, Depot are
// accessors onto the underlying vehicle type.
func (r *Route) Capacity() domain.Load         { return r.vt.Capacity }
func (r *Route) FixedVehicleCost() domain.Cost { return r.vt.FixedCost }
func (r *Route) MaxDuration() domain.Duration  { return r.vt.MaxDuration }
func (r *Route) VehicleType() domain.VehicleType { return r.vt }
func (r *Route) VehicleTypeIdx() int           { return r.vehicleTypeIdx }
func (r *Route) Depot() int                    { return r.depotLoc }

// Version increments every Update and is used by SwapStar to detect a
// stale cache query after an updated mutation that SwapStar was not told
// about through UpdateRoute (spec.md §8 scenario S5).
func (r *Route) Version() int { return r.version }

// Insert splices a new node visiting loc at position pos, pushing
// everything at or after pos one slot later. pos must be in [1, Size()+1].
// Marks caches dirty from pos onward.
func (r *Route) Insert(pos int, loc int) *Node {
	if pos < 1 || pos > len(r.nodes)-1 {
		panic(fmt.Sprintf("search: insert position %d out of range [1,%d]", pos, len(r.nodes)-1))
	}
	n := &Node{route: r, idx: pos, loc: loc}
	r.nodes = append(r.nodes, nil)
	copy(r.nodes[pos+1:], r.nodes[pos:])
	r.nodes[pos] = n
	r.reindexFrom(pos + 1)
	r.markDirty(pos)
	return n
}

// Remove deletes the node at position pos (must be a client, not a
// depot). Marks caches dirty from pos onward.
func (r *Route) Remove(pos int) {
	if pos < 1 || pos > len(r.nodes)-2 {
		panic(fmt.Sprintf("search: remove position %d is not a client position", pos))
	}
	r.nodes = append(r.nodes[:pos], r.nodes[pos+1:]...)
	r.reindexFrom(pos)
	r.markDirty(pos)
}

// Swap exchanges the locations visited at positions a and b (both must be
// client positions). Marks caches dirty from min(a,b) onward.
func (r *Route) Swap(a, b int) {
	if a < 1 || a > len(r.nodes)-2 || b < 1 || b > len(r.nodes)-2 {
		panic("search: swap positions must be client positions")
	}
	r.nodes[a].loc, r.nodes[b].loc = r.nodes[b].loc, r.nodes[a].loc
	from := a
	if b < from {
		from = b
	}
	r.markDirty(from)
}

func (r *Route) reindexFrom(start int) {
	for i := start; i < len(r.nodes); i++ {
		r.nodes[i].idx = i
	}
}

func (r *Route) markDirty(from int) {
	if !r.dirty || from < r.dirtyFrom {
		r.dirtyFrom = from
	}
	r.dirty = true
}

// Update recomputes dirty prefix/suffix caches in one forward and one
// backward pass. Must be called before any further segment queries after
// a mutation.
func (r *Route) Update() {
	n := len(r.nodes)
	r.prefix = make([]Segment, n)
	r.suffix = make([]Segment, n)

	dist := func(i, j int) domain.Distance { return r.data.Dist(i, j) }
	dur := func(i, j int) domain.Duration { return r.data.Dur(i, j) }

	r.prefix[0] = r.segmentFor(r.nodes[0].loc)
	for i := 1; i < n; i++ {
		cur := r.segmentFor(r.nodes[i].loc)
		prev := r.prefix[i-1]
		r.prefix[i] = Segment{
			Dist: domain.MergeDistanceSegments(dist, prev.Dist, cur.Dist),
			Load: domain.MergeLoadSegments(prev.Load, cur.Load),
			Dur:  domain.MergeDurationSegments(dur, prev.Dur, cur.Dur),
		}
	}

	r.suffix[n-1] = r.segmentFor(r.nodes[n-1].loc)
	for i := n - 2; i >= 0; i-- {
		cur := r.segmentFor(r.nodes[i].loc)
		next := r.suffix[i+1]
		r.suffix[i] = Segment{
			Dist: domain.MergeDistanceSegments(dist, cur.Dist, next.Dist),
			Load: domain.MergeLoadSegments(cur.Load, next.Load),
			Dur:  domain.MergeDurationSegments(dur, cur.Dur, next.Dur),
		}
	}

	r.posOf = make(map[int]int, n)
	for i, node := range r.nodes {
		r.posOf[node.loc] = i
	}

	r.dirty = false
	r.dirtyFrom = 0
	r.version++
}

// segmentFor builds the single-location Segment for a location index,
// honouring client demand/time-window fields where the location is a
// client, or the route's own depot time window when it is the depot.
func (r *Route) segmentFor(loc int) Segment {
	location := r.data.Location(loc)
	if location.Client != nil {
		c := location.Client
		return Segment{
			Dist: domain.NewDistanceSegment(loc),
			Load: domain.NewLoadSegment(c.Delivery, c.Pickup),
			Dur:  domain.NewDurationSegment(loc, c.ServiceDuration, c.TWEarly, c.TWLate, c.ReleaseTime),
		}
	}
	return Segment{
		Dist: domain.NewDistanceSegment(loc),
		Load: domain.NewLoadSegment(0, 0),
		Dur:  domain.NewDurationSegment(loc, 0, r.vt.TWEarly, r.vt.TWLate, 0),
	}
}

// Before returns the cached prefix segment [0, i].
func (r *Route) Before(i int) Segment { return r.prefix[i] }

// After returns the cached suffix segment [i, size+1].
func (r *Route) After(i int) Segment { return r.suffix[i] }

// Between synthesizes the inclusive sub-segment [i, j] on demand: the
// stored prefix when i == 0, otherwise by merging the single-location
// segments of positions i..j (spec.md §4.3).
func (r *Route) Between(i, j int) Segment {
	if i > j {
		panic("search: Between requires i <= j")
	}
	if i == 0 {
		return r.prefixUpTo(j)
	}
	dist := func(a, b int) domain.Distance { return r.data.Dist(a, b) }
	dur := func(a, b int) domain.Duration { return r.data.Dur(a, b) }

	seg := r.segmentFor(r.nodes[i].loc)
	for k := i + 1; k <= j; k++ {
		cur := r.segmentFor(r.nodes[k].loc)
		seg = Segment{
			Dist: domain.MergeDistanceSegments(dist, seg.Dist, cur.Dist),
			Load: domain.MergeLoadSegments(seg.Load, cur.Load),
			Dur:  domain.MergeDurationSegments(dur, seg.Dur, cur.Dur),
		}
	}
	return seg
}

func (r *Route) prefixUpTo(j int) Segment { return r.prefix[j] }

// ReplaceVisits discards the current client sequence and rebuilds the
// route from scratch with the given client location indices, then
// refreshes caches. Used by operators that find it simpler to compute a
// new visiting order as a plain slice than to splice nodes in place.
func (r *Route) ReplaceVisits(visits []int) {
	nodes := make([]*Node, 0, len(visits)+2)
	nodes = append(nodes, &Node{route: r, idx: 0, loc: r.depotLoc})
	for i, loc := range visits {
		nodes = append(nodes, &Node{route: r, idx: i + 1, loc: loc})
	}
	nodes = append(nodes, &Node{route: r, idx: len(visits) + 1, loc: r.depotLoc})
	r.nodes = nodes
	r.markDirty(0)
	r.Update()
}

// Distance, Duration, Load, TimeWarp, ExcessLoad are whole-route
// aggregates read off the final cached prefix.
func (r *Route) Distance() domain.Distance { return r.prefix[len(r.nodes)-1].Dist.Distance() }
func (r *Route) Duration() domain.Duration { return r.prefix[len(r.nodes)-1].Dur.Duration() }
func (r *Route) Load() domain.Load         { return r.prefix[len(r.nodes)-1].Load.Load() }

func (r *Route) TimeWarp(maxDuration domain.Duration) domain.Duration {
	return r.prefix[len(r.nodes)-1].Dur.TimeWarp(maxDuration)
}

func (r *Route) TimeWarpUnconstrained() domain.Duration {
	return r.prefix[len(r.nodes)-1].Dur.TimeWarpUnconstrained()
}

func (r *Route) ExcessLoad() domain.Load {
	load := r.Load()
	if load <= r.vt.Capacity {
		return 0
	}
	return load - r.vt.Capacity
}

// Visits returns the client location indices currently on the route, in
// order, excluding the depot at both ends.
func (r *Route) Visits() []int {
	out := make([]int, 0, r.Size())
	for i := 1; i < len(r.nodes)-1; i++ {
		out = append(out, r.nodes[i].loc)
	}
	return out
}

// ToImmutable exports this route's current state as a domain.Route,
// matching evaluateRoute's aggregate fields exactly.
func (r *Route) ToImmutable() domain.Route {
	seg := r.prefix[len(r.nodes)-1]
	var prizes domain.Cost
	var centroidX, centroidY domain.Coordinate
	n := domain.Coordinate(0)
	for i := 1; i < len(r.nodes)-1; i++ {
		c := r.data.Location(r.nodes[i].loc).Client
		if c != nil {
			prizes += c.Prize
			centroidX += c.X
			centroidY += c.Y
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return domain.Route{
		VehicleTypeIdx:   r.vehicleTypeIdx,
		DepotIndex:       r.depotLoc,
		Visits:           r.Visits(),
		Distance:         seg.Dist.Distance(),
		Duration:         seg.Dur.Duration(),
		Load:             seg.Load.Load(),
		Capacity:         r.vt.Capacity,
		TimeWarp:         seg.Dur.TimeWarp(r.vt.MaxDuration),
		Prizes:           prizes,
		FixedVehicleCost: r.vt.FixedCost,
		StartTime:        seg.Dur.TWEarly(),
		EndTime:          seg.Dur.TWLate(),
		Slack:            seg.Dur.TWLate() - seg.Dur.TWEarly(),
		CentroidX:        centroidX / n,
		CentroidY:        centroidY / n,
	}
}
