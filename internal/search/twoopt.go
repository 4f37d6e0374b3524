package search

import "github.com/vrpkit/routecore/internal/domain"

// TwoOpt is the classic 2-opt exchange. Across two routes it swaps the
// suffixes after U and after V. Within one route it reverses the
// sub-sequence from U to V inclusive. Reversal changes the traversal
// direction of every node in the sub-sequence, so its DurationSegment
// cannot be read from the forward cache; it is rebuilt by re-merging
// single-location segments in reverse order (spec.md §4.4.2).
type TwoOpt struct{}

// NewTwoOpt constructs a TwoOpt operator. It holds no state.
func NewTwoOpt() *TwoOpt { return &TwoOpt{} }

func (t *TwoOpt) Evaluate(u, v *Node, ce *domain.CostEvaluator) domain.Cost {
	r1, r2 := u.route, v.route

	if r1 == r2 {
		return t.evaluateIntra(r1, u.idx, v.idx, ce)
	}
	return t.evaluateInter(r1, r2, u.idx, v.idx, ce)
}

func (t *TwoOpt) evaluateIntra(r *Route, i, j int, ce *domain.CostEvaluator) domain.Cost {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 1 || hi > r.Size() || lo >= hi {
		return 0
	}

	reversed := reverseSegment(r.data, r, lo, hi)
	newSeg := mergeSegments(r.data, []Segment{r.Before(lo - 1), reversed, r.After(hi + 1)})

	oldCost := routeContribution(ce, r.Before(r.Size()+1), r.vt, r.Size())
	newCost := routeContribution(ce, newSeg, r.vt, r.Size())
	return newCost - oldCost
}

func (t *TwoOpt) evaluateInter(r1, r2 *Route, i, j int, ce *domain.CostEvaluator) domain.Cost {
	if i < 0 || i > r1.Size() || j < 0 || j > r2.Size() {
		return 0
	}

	data := r1.data
	newR1 := mergeSegments(data, []Segment{r1.Before(i), r2.After(j + 1)})
	newR2 := mergeSegments(data, []Segment{r2.Before(j), r1.After(i + 1)})

	newR1Size := i + (r2.Size() - j)
	newR2Size := j + (r1.Size() - i)

	oldCost := routeContribution(ce, r1.Before(r1.Size()+1), r1.vt, r1.Size()) +
		routeContribution(ce, r2.Before(r2.Size()+1), r2.vt, r2.Size())
	newCost := routeContribution(ce, newR1, r1.vt, newR1Size) +
		routeContribution(ce, newR2, r2.vt, newR2Size)

	return newCost - oldCost
}

func (t *TwoOpt) Apply(u, v *Node) {
	r1, r2 := u.route, v.route

	if r1 == r2 {
		lo, hi := u.idx, v.idx
		if lo > hi {
			lo, hi = hi, lo
		}
		visits := r1.Visits()
		newVisits := make([]int, 0, len(visits))
		newVisits = append(newVisits, visits[:lo-1]...)
		for k := hi - 1; k >= lo-1; k-- {
			newVisits = append(newVisits, visits[k])
		}
		newVisits = append(newVisits, visits[hi:]...)
		r1.ReplaceVisits(newVisits)
		return
	}

	i, j := u.idx, v.idx
	v1 := r1.Visits()
	v2 := r2.Visits()

	newV1 := make([]int, 0, i+len(v2)-j)
	newV1 = append(newV1, v1[:i]...)
	newV1 = append(newV1, v2[j:]...)

	newV2 := make([]int, 0, j+len(v1)-i)
	newV2 = append(newV2, v2[:j]...)
	newV2 = append(newV2, v1[i:]...)

	r1.ReplaceVisits(newV1)
	r2.ReplaceVisits(newV2)
}

// reverseSegment builds the Segment for positions [lo,hi] of r traversed
// back to front.
func reverseSegment(data *domain.ProblemData, r *Route, lo, hi int) Segment {
	dist := func(a, b int) domain.Distance { return data.Dist(a, b) }
	dur := func(a, b int) domain.Duration { return data.Dur(a, b) }

	seg := r.segmentFor(r.nodes[hi].loc)
	for k := hi - 1; k >= lo; k-- {
		cur := r.segmentFor(r.nodes[k].loc)
		seg = Segment{
			Dist: domain.MergeDistanceSegments(dist, seg.Dist, cur.Dist),
			Load: domain.MergeLoadSegments(seg.Load, cur.Load),
			Dur:  domain.MergeDurationSegments(dur, seg.Dur, cur.Dur),
		}
	}
	return seg
}
