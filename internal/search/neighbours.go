package search

import (
	"sort"

	"github.com/vrpkit/routecore/internal/domain"
)

// NeighbourList holds, for every client location, the k nearest other
// client locations by a composite proximity measure (here: travel
// distance; duration is a reasonable alternative measure the driver could
// be configured with, but distance is what the teacher's own route
// planner sorts by in NearestNeighborRoute). Pruning the neighbourhood to
// k candidates per client is what keeps the driver's per-client inner
// loop bounded (spec.md §4.5).
type NeighbourList struct {
	k         int
	neighbors map[int][]int
}

// BuildNeighbourList computes the k nearest client neighbours of every
// client in data, by distance matrix lookup.
func BuildNeighbourList(data *domain.ProblemData, k int) *NeighbourList {
	if k < 0 {
		k = 0
	}
	nl := &NeighbourList{k: k, neighbors: make(map[int][]int, data.NumClients())}

	type candidate struct {
		loc  int
		dist domain.Distance
	}

	for i := data.NumDepots(); i < data.NumLocations(); i++ {
		cands := make([]candidate, 0, data.NumLocations()-data.NumDepots()-1)
		for j := data.NumDepots(); j < data.NumLocations(); j++ {
			if j == i {
				continue
			}
			cands = append(cands, candidate{loc: j, dist: data.Dist(i, j)})
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].dist != cands[b].dist {
				return cands[a].dist < cands[b].dist
			}
			return cands[a].loc < cands[b].loc
		})
		limit := k
		if limit > len(cands) {
			limit = len(cands)
		}
		out := make([]int, limit)
		for idx := 0; idx < limit; idx++ {
			out[idx] = cands[idx].loc
		}
		nl.neighbors[i] = out
	}

	return nl
}

// NewNeighbourListFromMap reconstructs a NeighbourList from a previously
// computed location→neighbours map, e.g. one loaded from
// internal/adapters/matrixcache rather than recomputed from a distance
// matrix.
func NewNeighbourListFromMap(k int, neighbours map[int][]int) *NeighbourList {
	return &NeighbourList{k: k, neighbors: neighbours}
}

// Of returns the (at most k) nearest client neighbours of loc, nearest
// first.
func (nl *NeighbourList) Of(loc int) []int { return nl.neighbors[loc] }

// All returns the full location→neighbours map, e.g. for persisting to
// internal/adapters/matrixcache.
func (nl *NeighbourList) All() map[int][]int { return nl.neighbors }

// K returns the configured neighbourhood size.
func (nl *NeighbourList) K() int { return nl.k }
