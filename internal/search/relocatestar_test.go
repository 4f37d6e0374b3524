package search

import (
	"testing"

	"github.com/vrpkit/routecore/internal/domain"
)

func TestRelocateStarFindsBestSingleClientMove(t *testing.T) {
	// build test data: same fixture and routes as the S4 relocate scenario
	// in exchange_test.go, but scanned exhaustively in both directions
	// instead of pointed at a single (u,v) pair.
	data := newRelocateFixture(t)
	r1 := NewRouteFromVisits(data, 0, []int{1, 2, 3})
	r2 := NewRouteFromVisits(data, 0, []int{4, 5, 6})
	ce := domain.NewCostEvaluator(100, 100)

	// call the method under test
	rs := NewRelocateStar()
	delta := rs.Evaluate(r1, r2, &ce)

	// verify behavior: the best single relocation is client 3 (x=20) moving
	// out of the (1,2) cluster and into the (4,5,6) cluster, before client 6.
	const wantDelta = domain.Cost(-36)
	if delta != wantDelta {
		t.Fatalf("Evaluate delta = %v, want %v", delta, wantDelta)
	}

	rs.Apply(r1, r2)
	if got := r1.Visits(); !equalInts(got, []int{1, 2}) {
		t.Errorf("route 1 visits = %v, want [1 2]", got)
	}
	if got := r2.Visits(); !equalInts(got, []int{4, 5, 3, 6}) {
		t.Errorf("route 2 visits = %v, want [4 5 3 6]", got)
	}
}

func TestRelocateStarEmptiesLoneRouteAndKeepsEarlierTiedSlot(t *testing.T) {
	// Relocating a lone client empties its source route. On this line
	// metric the slot after client 5 and the very end of r2 tie, so the
	// result also shows which of two equal-delta slots the scan keeps.
	data := newRelocateFixture(t)
	r1 := NewRouteFromVisits(data, 0, []int{3}) // x=20, stranded alone
	r2 := NewRouteFromVisits(data, 0, []int{4, 5, 6})
	ce := domain.NewCostEvaluator(100, 100)

	rs := NewRelocateStar()
	delta := rs.Evaluate(r1, r2, &ce)

	// removing client 3 from its lone route saves d(depot,3)+d(3,depot)=40;
	// inserting it into r2 right after client 5 costs 0 (ties with
	// inserting at the very end, but the tie is broken by iteration order,
	// which visits "after client 5" first).
	const wantDelta = domain.Cost(-40)
	if delta != wantDelta {
		t.Fatalf("Evaluate delta = %v, want %v", delta, wantDelta)
	}

	rs.Apply(r1, r2)
	if got := r1.Visits(); len(got) != 0 {
		t.Errorf("route 1 visits = %v, want empty", got)
	}
	if got := r2.Visits(); !equalInts(got, []int{4, 5, 3, 6}) {
		t.Errorf("route 2 visits = %v, want [4 5 3 6]", got)
	}
}

func TestRelocateStarNoImprovementReturnsZero(t *testing.T) {
	data := newRelocateFixture(t)
	r1 := NewRouteFromVisits(data, 0, []int{1, 2})
	r2 := NewRouteFromVisits(data, 0, nil)
	ce := domain.NewCostEvaluator(100, 100)

	rs := NewRelocateStar()
	delta := rs.Evaluate(r1, r2, &ce)

	if delta != 0 {
		t.Errorf("Evaluate delta = %v, want 0 (clients 1 and 2 are already adjacent on one route and the other route is empty)", delta)
	}
}
