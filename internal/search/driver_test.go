package search

import (
	"testing"

	"github.com/vrpkit/routecore/internal/domain"
)

func TestDriverSolveUntanglesACrossingRoute(t *testing.T) {
	// build test data: reuse the 2-opt fixture, whose crossing route
	// [1,2,3,4] has a known improving reversal to [1,3,2,4] (distance 33
	// down to 15, see TestTwoOptIntraReversalImprovesCrossing).
	data := newTwoOptFixture(t)
	in, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 2, 3, 4}}})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}
	if in.Distance != 33 {
		t.Fatalf("input distance = %v, want 33", in.Distance)
	}

	neighbours := BuildNeighbourList(data, 10)
	driver := NewDriver(data, neighbours, 1)
	ce := domain.NewCostEvaluator(100, 100)

	// call the method under test
	out, err := driver.Solve(in, &ce)

	// verify behavior
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if out.NumMissingClients != 0 {
		t.Errorf("NumMissingClients = %d, want 0", out.NumMissingClients)
	}
	if out.TimeWarp != 0 || out.ExcessLoad != 0 {
		t.Errorf("solved route should be feasible, got TimeWarp=%v ExcessLoad=%v", out.TimeWarp, out.ExcessLoad)
	}
	if out.Distance > in.Distance {
		t.Errorf("Distance = %v, should never regress past the input's %v", out.Distance, in.Distance)
	}
	if out.Distance != 15 {
		t.Errorf("Distance = %v, want 15 (the fully untangled route)", out.Distance)
	}
	if out.RunID != in.RunID {
		t.Errorf("RunID = %v, want it preserved from the input solution %v", out.RunID, in.RunID)
	}
}

func TestDriverSolveIsDeterministicForAFixedSeed(t *testing.T) {
	data := newTwoOptFixture(t)
	in, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 2, 3, 4}}})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}
	ce := domain.NewCostEvaluator(100, 100)
	neighbours := BuildNeighbourList(data, 10)

	out1, err := NewDriver(data, neighbours, 42).Solve(in, &ce)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	out2, err := NewDriver(data, neighbours, 42).Solve(in, &ce)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if out1.Distance != out2.Distance {
		t.Errorf("two runs with the same seed diverged: %v vs %v", out1.Distance, out2.Distance)
	}
	if !equalInts(out1.Routes[0].Visits, out2.Routes[0].Visits) {
		t.Errorf("two runs with the same seed produced different routes: %v vs %v",
			out1.Routes[0].Visits, out2.Routes[0].Visits)
	}
}

func TestDriverSolveDoesNotMutateTheInputSolution(t *testing.T) {
	data := newTwoOptFixture(t)
	in, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 2, 3, 4}}})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}
	wantVisits := append([]int(nil), in.Routes[0].Visits...)

	ce := domain.NewCostEvaluator(100, 100)
	neighbours := BuildNeighbourList(data, 10)
	if _, err := NewDriver(data, neighbours, 7).Solve(in, &ce); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if !equalInts(in.Routes[0].Visits, wantVisits) {
		t.Errorf("input solution was mutated: got %v, want %v", in.Routes[0].Visits, wantVisits)
	}
}
