// Package diversity measures how different two solutions are, used by the
// outer population loop to keep a diverse pool instead of converging on
// near-duplicate solutions (spec.md §4.6).
package diversity

import "github.com/vrpkit/routecore/internal/domain"

// BrokenPairsDistance is the fraction of clients whose predecessor or
// successor differs between a and b's visiting order. A client present in
// one solution's neighbour map but missing from the other counts as one
// broken client. The result is in [0,1]; BrokenPairsDistance(x,x) == 0 and
// the measure is symmetric in its arguments (spec.md §8, property 7).
func BrokenPairsDistance(a, b *domain.Solution) float64 {
	clients := make(map[int]struct{}, len(a.Neighbours)+len(b.Neighbours))
	for c := range a.Neighbours {
		clients[c] = struct{}{}
	}
	for c := range b.Neighbours {
		clients[c] = struct{}{}
	}
	if len(clients) == 0 {
		return 0
	}

	broken := 0
	for c := range clients {
		pa, okA := a.Neighbours[c]
		pb, okB := b.Neighbours[c]
		if okA != okB || pa.Pred != pb.Pred || pa.Succ != pb.Succ {
			broken++
		}
	}
	return float64(broken) / float64(len(clients))
}
