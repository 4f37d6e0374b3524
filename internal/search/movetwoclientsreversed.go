package search

import "github.com/vrpkit/routecore/internal/domain"

// MoveTwoClientsReversed relocates two consecutive clients starting at U
// so they land immediately after V's current position, reversing their
// order (V itself does not move). It is Exchange<2,0> with the moved
// pair's segment built back-to-front instead of forward.
type MoveTwoClientsReversed struct{}

func NewMoveTwoClientsReversed() *MoveTwoClientsReversed { return &MoveTwoClientsReversed{} }

func (m *MoveTwoClientsReversed) Evaluate(u, v *Node, ce *domain.CostEvaluator) domain.Cost {
	r1, r2 := u.route, v.route
	uStart, uEnd := u.idx, u.idx+1
	if uStart < 1 || uEnd > r1.Size() {
		return 0
	}

	vStart := v.idx
	if vStart < 0 || vStart > r2.Size() {
		return 0
	}

	data := r1.data

	if r1 == r2 {
		if vStart >= uStart && vStart <= uEnd {
			return 0 // V is one of the two clients being moved
		}

		reversed := reverseSegment(data, r1, uStart, uEnd)

		var segs []Segment
		if vStart < uStart {
			segs = []Segment{r1.Before(vStart), reversed}
			if vStart+1 <= uStart-1 {
				segs = append(segs, r1.Between(vStart+1, uStart-1))
			}
			segs = append(segs, r1.After(uEnd+1))
		} else {
			segs = []Segment{r1.Before(uStart - 1), r1.Between(uEnd+1, vStart), reversed, r1.After(vStart + 1)}
		}

		newSeg := mergeSegments(data, segs)
		oldCost := routeContribution(ce, r1.Before(r1.Size()+1), r1.vt, r1.Size())
		newCost := routeContribution(ce, newSeg, r1.vt, r1.Size())
		return newCost - oldCost
	}

	reversed := reverseSegment(data, r1, uStart, uEnd)

	newR1 := mergeSegments(data, []Segment{r1.Before(uStart - 1), r1.After(uEnd + 1)})
	newR2 := mergeSegments(data, []Segment{r2.Before(vStart), reversed, r2.After(vStart + 1)})

	newR1Size := r1.Size() - 2
	newR2Size := r2.Size() + 2

	oldCost := routeContribution(ce, r1.Before(r1.Size()+1), r1.vt, r1.Size()) +
		routeContribution(ce, r2.Before(r2.Size()+1), r2.vt, r2.Size())
	newCost := routeContribution(ce, newR1, r1.vt, newR1Size) +
		routeContribution(ce, newR2, r2.vt, newR2Size)

	return newCost - oldCost
}

func (m *MoveTwoClientsReversed) Apply(u, v *Node) {
	r1, r2 := u.route, v.route
	uStart, uEnd := u.idx, u.idx+1
	pair := []int{r1.At(uEnd).loc, r1.At(uStart).loc} // reversed order

	if r1 == r2 {
		visits := r1.Visits()
		vStart := v.idx

		newVisits := make([]int, 0, len(visits))
		if vStart < uStart {
			newVisits = append(newVisits, visits[:vStart]...)
			newVisits = append(newVisits, pair...)
			newVisits = append(newVisits, visits[vStart:uStart-1]...)
			newVisits = append(newVisits, visits[uEnd:]...)
		} else {
			newVisits = append(newVisits, visits[:uStart-1]...)
			newVisits = append(newVisits, visits[uEnd:vStart]...)
			newVisits = append(newVisits, pair...)
			newVisits = append(newVisits, visits[vStart:]...)
		}
		r1.ReplaceVisits(newVisits)
		return
	}

	v1 := r1.Visits()
	v2 := r2.Visits()
	vStart := v.idx

	newV1 := make([]int, 0, len(v1)-2)
	newV1 = append(newV1, v1[:uStart-1]...)
	newV1 = append(newV1, v1[uEnd:]...)

	newV2 := make([]int, 0, len(v2)+2)
	newV2 = append(newV2, v2[:vStart]...)
	newV2 = append(newV2, pair...)
	newV2 = append(newV2, v2[vStart:]...)

	r1.ReplaceVisits(newV1)
	r2.ReplaceVisits(newV2)
}
