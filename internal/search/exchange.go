package search

import "github.com/vrpkit/routecore/internal/domain"

// Exchange swaps N consecutive clients starting at U with M consecutive
// clients starting at V. M=0 degenerates to Relocate(N): U's segment is
// spliced into V's route immediately after V's current position (V itself
// does not move) and nothing is removed from V's route. N=M=1 is the
// classic single-client swap. Within one route, when V precedes U, the
// move is evaluated and applied with the roles of U and V exchanged, so a
// relocated segment lands immediately before V instead; with V at the
// route's start depot that case evaluates to 0.
//
// The reference implementation monomorphises this over compile-time N,M;
// here N and M are constructor parameters and the evaluation body is
// driven by runtime loop bounds instead (spec.md §9).
type Exchange struct {
	n, m int
}

// NewExchange constructs an Exchange<n,m> operator. Panics if n and m are
// both zero (a no-op move).
func NewExchange(n, m int) *Exchange {
	if n == 0 && m == 0 {
		panic("search: Exchange requires n or m to be positive")
	}
	return &Exchange{n: n, m: m}
}

// Evaluate returns the signed change in penalised cost that Apply would
// cause. Returns 0 for any structurally invalid candidate (segment runs
// past a route's clients, segments overlap on the same route, or the
// trivial adjacent same-route case when N=M).
func (e *Exchange) Evaluate(u, v *Node, ce *domain.CostEvaluator) domain.Cost {
	r1, r2 := u.route, v.route

	if r1 == r2 && v.idx < u.idx {
		swapped := &Exchange{n: e.m, m: e.n}
		return swapped.Evaluate(v, u, ce)
	}

	uStart, uEnd := u.idx, u.idx+e.n-1
	vStart, vEnd := v.idx, v.idx+e.m-1

	if e.n > 0 && (uStart < 1 || uEnd > r1.Size()) {
		return 0
	}
	if e.n == 0 && (uStart < 1 || uStart > r1.Size()+1) {
		return 0
	}
	if e.m > 0 && (vStart < 1 || vEnd > r2.Size()) {
		return 0
	}
	if e.m == 0 && (vStart < 0 || vStart > r2.Size()) {
		return 0
	}

	if r1 == r2 {
		if uEnd >= vStart {
			return 0
		}
		if e.n == e.m && uEnd+1 == vStart {
			return 0
		}
	}

	data := r1.data

	if r1 == r2 {
		var segs []Segment
		if e.m == 0 {
			// Relocate: U's segment lands right after V, which keeps its
			// place (the uEnd >= vStart check above guarantees uEnd < vStart,
			// so Between(uEnd+1, vStart) is always a valid, non-empty call).
			segs = []Segment{
				r1.Before(uStart - 1),
				r1.Between(uEnd+1, vStart),
				r1.Between(uStart, uEnd),
				r1.After(vStart + 1),
			}
		} else {
			segs = []Segment{r1.Before(uStart - 1), r2.Between(vStart, vEnd)}
			if uEnd+1 <= vStart-1 {
				segs = append(segs, r1.Between(uEnd+1, vStart-1))
			}
			if e.n > 0 {
				segs = append(segs, r1.Between(uStart, uEnd))
			}
			segs = append(segs, r1.After(vEnd+1))
		}

		newSeg := mergeSegments(data, segs)
		newSize := r1.Size() - e.n + e.m

		oldCost := routeContribution(ce, r1.Before(r1.Size()+1), r1.vt, r1.Size())
		newCost := routeContribution(ce, newSeg, r1.vt, newSize)
		return newCost - oldCost
	}

	r1Segs := []Segment{r1.Before(uStart - 1)}
	if e.m > 0 {
		r1Segs = append(r1Segs, r2.Between(vStart, vEnd))
	}
	r1Segs = append(r1Segs, r1.After(uEnd+1))

	var r2Segs []Segment
	if e.m == 0 {
		// Relocate into another route: U's segment lands right after V.
		r2Segs = []Segment{r2.Before(vStart)}
		if e.n > 0 {
			r2Segs = append(r2Segs, r1.Between(uStart, uEnd))
		}
		r2Segs = append(r2Segs, r2.After(vStart+1))
	} else {
		r2Segs = []Segment{r2.Before(vStart - 1)}
		if e.n > 0 {
			r2Segs = append(r2Segs, r1.Between(uStart, uEnd))
		}
		r2Segs = append(r2Segs, r2.After(vEnd+1))
	}

	newR1 := mergeSegments(data, r1Segs)
	newR2 := mergeSegments(data, r2Segs)

	newR1Size := r1.Size() - e.n + e.m
	newR2Size := r2.Size() - e.m + e.n

	oldCost := routeContribution(ce, r1.Before(r1.Size()+1), r1.vt, r1.Size()) +
		routeContribution(ce, r2.Before(r2.Size()+1), r2.vt, r2.Size())
	newCost := routeContribution(ce, newR1, r1.vt, newR1Size) +
		routeContribution(ce, newR2, r2.vt, newR2Size)

	return newCost - oldCost
}

// Apply performs the exchange described by the last successful Evaluate
// call. Recomputes both routes' visit lists directly rather than
// splicing nodes in place; simpler to get right than in-place node
// surgery, at the cost of an O(size) rebuild.
func (e *Exchange) Apply(u, v *Node) {
	r1, r2 := u.route, v.route

	if r1 == r2 && v.idx < u.idx {
		swapped := &Exchange{n: e.m, m: e.n}
		swapped.Apply(v, u)
		return
	}

	uStart, uEnd := u.idx, u.idx+e.n-1
	vStart, vEnd := v.idx, v.idx+e.m-1

	if r1 == r2 {
		visits := r1.Visits()
		uSeg := append([]int(nil), visits[uStart-1:uEnd]...)

		newVisits := make([]int, 0, len(visits))
		if e.m == 0 {
			// Relocate: splice U's segment in right after V.
			mid := append([]int(nil), visits[uEnd:vStart]...)
			newVisits = append(newVisits, visits[:uStart-1]...)
			newVisits = append(newVisits, mid...)
			newVisits = append(newVisits, uSeg...)
			newVisits = append(newVisits, visits[vStart:]...)
		} else {
			vSeg := append([]int(nil), visits[vStart-1:vEnd]...)
			mid := append([]int(nil), visits[uEnd:vStart-1]...)
			newVisits = append(newVisits, visits[:uStart-1]...)
			newVisits = append(newVisits, vSeg...)
			newVisits = append(newVisits, mid...)
			newVisits = append(newVisits, uSeg...)
			newVisits = append(newVisits, visits[vEnd:]...)
		}
		r1.ReplaceVisits(newVisits)
		return
	}

	v1 := r1.Visits()
	v2 := r2.Visits()
	uSeg := append([]int(nil), v1[uStart-1:uEnd]...)

	newV1 := make([]int, 0, len(v1)-e.n+e.m)
	newV1 = append(newV1, v1[:uStart-1]...)
	if e.m > 0 {
		newV1 = append(newV1, v2[vStart-1:vEnd]...)
	}
	newV1 = append(newV1, v1[uEnd:]...)

	newV2 := make([]int, 0, len(v2)-e.m+e.n)
	if e.m == 0 {
		// Relocate into another route: splice U's segment in right after V.
		newV2 = append(newV2, v2[:vStart]...)
		newV2 = append(newV2, uSeg...)
		newV2 = append(newV2, v2[vStart:]...)
	} else {
		newV2 = append(newV2, v2[:vStart-1]...)
		newV2 = append(newV2, uSeg...)
		newV2 = append(newV2, v2[vEnd:]...)
	}

	r1.ReplaceVisits(newV1)
	r2.ReplaceVisits(newV2)
}
