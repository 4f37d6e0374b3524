package diversity

import (
	"testing"

	"github.com/vrpkit/routecore/internal/domain"
)

func newFixtureData(t *testing.T) *domain.ProblemData {
	t.Helper()

	depot, err := domain.NewDepot(0, 0, 0, 1000, "depot")
	if err != nil {
		t.Fatalf("new depot: %v", err)
	}
	var clients []domain.Client
	for i := 1; i <= 4; i++ {
		c, err := domain.NewClient(domain.Coordinate(i), 0, 1, 0, 0, 0, 1000, 0, 0, true, "c")
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		clients = append(clients, c)
	}

	n := 5
	dist := make([][]domain.Distance, n)
	dur := make([][]domain.Duration, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]domain.Distance, n)
		dur[i] = make([]domain.Duration, n)
		for j := 0; j < n; j++ {
			d := i - j
			if d < 0 {
				d = -d
			}
			dist[i][j] = domain.Distance(d)
			dur[i][j] = domain.Duration(d)
		}
	}

	vt, err := domain.NewVehicleType(2, 10, 0, 0, 0, 1000, 1000, "van")
	if err != nil {
		t.Fatalf("new vehicle type: %v", err)
	}

	data, err := domain.NewProblemData([]domain.Depot{depot}, clients, dist, dur, []domain.VehicleType{vt})
	if err != nil {
		t.Fatalf("new problem data: %v", err)
	}
	return data
}

func TestBrokenPairsDistanceZeroForIdenticalOrder(t *testing.T) {
	// build test data
	data := newFixtureData(t)
	sol, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 2, 3, 4}}})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}

	// call the method under test
	d := BrokenPairsDistance(sol, sol)

	// verify behavior
	if d != 0 {
		t.Errorf("BrokenPairsDistance(x,x) = %v, want 0", d)
	}
}

func TestBrokenPairsDistanceIsSymmetric(t *testing.T) {
	data := newFixtureData(t)
	a, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 2, 3, 4}}})
	if err != nil {
		t.Fatalf("new solution a: %v", err)
	}
	b, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 3, 2, 4}}})
	if err != nil {
		t.Fatalf("new solution b: %v", err)
	}

	if BrokenPairsDistance(a, b) != BrokenPairsDistance(b, a) {
		t.Error("BrokenPairsDistance should be symmetric")
	}
}

func TestBrokenPairsDistanceIsBoundedAndPositiveOnDifference(t *testing.T) {
	data := newFixtureData(t)
	a, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 2, 3, 4}}})
	if err != nil {
		t.Fatalf("new solution a: %v", err)
	}
	b, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{4, 3, 2, 1}}})
	if err != nil {
		t.Fatalf("new solution b: %v", err)
	}

	d := BrokenPairsDistance(a, b)
	if d <= 0 || d > 1 {
		t.Errorf("BrokenPairsDistance(a,b) = %v, want a value in (0,1]", d)
	}
}
