package search

import (
	"testing"

	"github.com/vrpkit/routecore/internal/domain"
)

// newSwapRoutesFixture builds two depots 100 apart, each with a vehicle type
// of its own, and two clients close to each depot. Locations: 0=depot near
// x=0, 1=depot near x=100, 2,3=clients near x=1,2, 4,5=clients near x=101,102.
func newSwapRoutesFixture(t *testing.T) (*domain.ProblemData, domain.VehicleType, domain.VehicleType) {
	t.Helper()

	depotA, err := domain.NewDepot(0, 0, 0, 1000, "depotA")
	if err != nil {
		t.Fatalf("new depot: %v", err)
	}
	depotB, err := domain.NewDepot(100, 0, 0, 1000, "depotB")
	if err != nil {
		t.Fatalf("new depot: %v", err)
	}

	coords := []float64{1, 2, 101, 102}
	var clients []domain.Client
	for _, x := range coords {
		c, cerr := domain.NewClient(x, 0, 1, 0, 0, 0, 1000, 0, 0, true, "c")
		if cerr != nil {
			t.Fatalf("new client: %v", cerr)
		}
		clients = append(clients, c)
	}

	all := []float64{0, 100, 1, 2, 101, 102}
	n := len(all)
	dist := make([][]domain.Distance, n)
	dur := make([][]domain.Duration, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]domain.Distance, n)
		dur[i] = make([]domain.Duration, n)
		for j := 0; j < n; j++ {
			d := all[i] - all[j]
			if d < 0 {
				d = -d
			}
			dist[i][j] = domain.Distance(d)
			dur[i][j] = domain.Duration(d)
		}
	}

	vtA, err := domain.NewVehicleType(2, 10, 0, 0, 0, 1000, 1000, "vanA")
	if err != nil {
		t.Fatalf("new vehicle type: %v", err)
	}
	vtB, err := domain.NewVehicleType(2, 10, 1, 0, 0, 1000, 1000, "vanB")
	if err != nil {
		t.Fatalf("new vehicle type: %v", err)
	}

	data, err := domain.NewProblemData([]domain.Depot{depotA, depotB}, clients, dist, dur, []domain.VehicleType{vtA, vtB})
	if err != nil {
		t.Fatalf("new problem data: %v", err)
	}
	return data, vtA, vtB
}

func TestSwapRoutesExchangesMisplacedRoutes(t *testing.T) {
	// build test data: route 1 (depot A at x=0) visits the clients near
	// depot B, and route 2 (depot B at x=100) visits the clients near
	// depot A, so swapping their client sequences is a large improvement.
	data, _, _ := newSwapRoutesFixture(t)
	r1 := NewRouteFromVisits(data, 0, []int{4, 5}) // vehicle type 0 -> depot A
	r2 := NewRouteFromVisits(data, 1, []int{2, 3}) // vehicle type 1 -> depot B
	ce := domain.NewCostEvaluator(100, 100)

	// call the method under test
	s := NewSwapRoutes()
	delta := s.Evaluate(r1, r2, &ce)

	// verify behavior
	const wantDelta = domain.Cost(-394)
	if delta != wantDelta {
		t.Fatalf("Evaluate delta = %v, want %v", delta, wantDelta)
	}

	s.Apply(r1, r2)
	if got := r1.Visits(); !equalInts(got, []int{2, 3}) {
		t.Errorf("route 1 visits = %v, want [2 3]", got)
	}
	if got := r2.Visits(); !equalInts(got, []int{4, 5}) {
		t.Errorf("route 2 visits = %v, want [4 5]", got)
	}
}

func TestSwapRoutesRejectsSameVehicleType(t *testing.T) {
	data, _, _ := newSwapRoutesFixture(t)
	r1 := NewRouteFromVisits(data, 0, []int{4})
	r2 := NewRouteFromVisits(data, 0, []int{2})
	ce := domain.NewCostEvaluator(100, 100)

	s := NewSwapRoutes()
	delta := s.Evaluate(r1, r2, &ce)

	if delta != 0 {
		t.Errorf("Evaluate delta = %v, want 0 for two routes of the same vehicle type", delta)
	}

	s.Apply(r1, r2)
	if got := r1.Visits(); !equalInts(got, []int{4}) {
		t.Errorf("route 1 should be untouched, got %v", got)
	}
}
