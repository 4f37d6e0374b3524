package repair

import (
	"testing"

	"github.com/vrpkit/routecore/internal/domain"
	"github.com/vrpkit/routecore/internal/rng"
)

// newFixture builds one depot (index 0) and five clients (indices 1-5) on a
// line at x=1..5, one vehicle type with two vehicles available, capacity 10.
func newFixture(t *testing.T) *domain.ProblemData {
	t.Helper()

	depot, err := domain.NewDepot(0, 0, 0, 1000, "depot")
	if err != nil {
		t.Fatalf("new depot: %v", err)
	}
	var clients []domain.Client
	for i := 1; i <= 5; i++ {
		c, err := domain.NewClient(domain.Coordinate(i), 0, 1, 0, 0, 0, 1000, 0, 0, true, "c")
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		clients = append(clients, c)
	}

	n := 6
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

func TestGreedyRepairPlacesEveryUnvisitedClient(t *testing.T) {
	// build test data
	data := newFixture(t)
	sol, err := domain.NewSolution(data, []domain.RouteInput{
		{VehicleTypeIdx: 0, Visits: []int{1, 2}},
		{VehicleTypeIdx: 0, Visits: nil},
	})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}
	ce := domain.NewCostEvaluator(10, 10)
	r := rng.New(1)

	// call the method under test
	out := GreedyRepair(sol, []int{3, 4, 5}, data, &ce, r)

	// verify behavior
	if out.NumMissingClients != 0 {
		t.Fatalf("got %d missing clients after repair, want 0", out.NumMissingClients)
	}
	for _, c := range []int{3, 4, 5} {
		if _, ok := out.Neighbours[c]; !ok {
			t.Errorf("client %d was not placed by GreedyRepair", c)
		}
	}
}

func TestGreedyRepairInsertsCheaperThanAppendingToFarRoute(t *testing.T) {
	// build test data: depot at 0; clients 1,2 nearby at x=1,2; client 3 at
	// x=3 (to be inserted); client 4 stranded far away at x=-1000, on the
	// other side of the depot, alone on its own route. Inserting 3 into
	// route B costs 6 more distance; inserting it into route A costs 2.
	depot, err := domain.NewDepot(0, 0, 0, 1e6, "depot")
	if err != nil {
		t.Fatalf("new depot: %v", err)
	}
	coords := []domain.Coordinate{1, 2, 3, -1000}
	var clients []domain.Client
	for _, x := range coords {
		c, cerr := domain.NewClient(x, 0, 1, 0, 0, 0, 1e6, 0, 0, true, "c")
		if cerr != nil {
			t.Fatalf("new client: %v", cerr)
		}
		clients = append(clients, c)
	}
	allCoords := append([]domain.Coordinate{0}, coords...)
	n := len(allCoords)
	dist := make([][]domain.Distance, n)
	dur := make([][]domain.Duration, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]domain.Distance, n)
		dur[i] = make([]domain.Duration, n)
		for j := 0; j < n; j++ {
			d := allCoords[i] - allCoords[j]
			if d < 0 {
				d = -d
			}
			dist[i][j] = domain.Distance(d)
			dur[i][j] = domain.Duration(d)
		}
	}
	vt, err := domain.NewVehicleType(2, 10, 0, 0, 0, 1e6, 1e6, "van")
	if err != nil {
		t.Fatalf("new vehicle type: %v", err)
	}
	data, err := domain.NewProblemData([]domain.Depot{depot}, clients, dist, dur, []domain.VehicleType{vt})
	if err != nil {
		t.Fatalf("new problem data: %v", err)
	}

	// locations: 0=depot, 1,2,3,4 = the four clients above, in order.
	sol, err := domain.NewSolution(data, []domain.RouteInput{
		{VehicleTypeIdx: 0, Visits: []int{1, 2}},
		{VehicleTypeIdx: 0, Visits: []int{4}},
	})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}
	ce := domain.NewCostEvaluator(10, 10)

	// call the method under test: insert client 3 (location 3)
	out := GreedyRepair(sol, []int{3}, data, &ce, rng.New(1))

	// verify behavior
	found := false
	for _, rt := range out.Routes {
		for _, v := range rt.Visits {
			if v == 3 {
				found = true
				if len(rt.Visits) == 0 || rt.Visits[0] != 1 {
					t.Errorf("expected client 3 in the route starting at client 1, got route %+v", rt.Visits)
				}
			}
		}
	}
	if !found {
		t.Fatal("client 3 was not inserted anywhere")
	}
}

func TestGreedyRepairNoOpOnEmptyUnvisited(t *testing.T) {
	data := newFixture(t)
	sol, err := domain.NewSolution(data, []domain.RouteInput{{VehicleTypeIdx: 0, Visits: []int{1, 2}}})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}
	ce := domain.NewCostEvaluator(10, 10)

	out := GreedyRepair(sol, nil, data, &ce, rng.New(1))
	if out != sol {
		t.Error("GreedyRepair with no unvisited clients should return the input solution unchanged")
	}
}

func TestNearestRouteInsertAppendsToClosestRoute(t *testing.T) {
	data := newFixture(t)
	sol, err := domain.NewSolution(data, []domain.RouteInput{
		{VehicleTypeIdx: 0, Visits: []int{1}},
		{VehicleTypeIdx: 0, Visits: []int{5}},
	})
	if err != nil {
		t.Fatalf("new solution: %v", err)
	}
	ce := domain.NewCostEvaluator(10, 10)

	out := NearestRouteInsert(sol, []int{2}, data, &ce)

	for _, rt := range out.Routes {
		for _, v := range rt.Visits {
			if v == 2 {
				if rt.Visits[0] != 1 {
					t.Errorf("client 2 should join the route ending at client 1, landed in %+v", rt.Visits)
				}
			}
		}
	}
}
