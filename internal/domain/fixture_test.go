package domain

import "testing"

// newFixture builds a tiny two-route-capable instance: one depot, three
// clients on a line, one vehicle type with two vehicles available. Distances
// and durations are equal to keep the arithmetic easy to check by hand.
func newFixture(t *testing.T) *ProblemData {
	t.Helper()

	depot, err := NewDepot(0, 0, 0, 1000, "depot")
	if err != nil {
		t.Fatalf("new depot: %v", err)
	}

	c1, err := NewClient(1, 0, 1, 0, 5, 0, 1000, 0, 0, true, "c1")
	if err != nil {
		t.Fatalf("new client c1: %v", err)
	}
	c2, err := NewClient(2, 0, 1, 0, 5, 0, 1000, 0, 0, true, "c2")
	if err != nil {
		t.Fatalf("new client c2: %v", err)
	}
	c3, err := NewClient(3, 0, 1, 0, 5, 0, 1000, 0, 0, true, "c3")
	if err != nil {
		t.Fatalf("new client c3: %v", err)
	}

	// locations: [depot, c1, c2, c3], coordinates 0,1,2,3 on a line.
	coords := []Coordinate{0, 1, 2, 3}
	n := len(coords)
	dist := make([][]Distance, n)
	dur := make([][]Duration, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]Distance, n)
		dur[i] = make([]Duration, n)
		for j := 0; j < n; j++ {
			d := coords[i] - coords[j]
			if d < 0 {
				d = -d
			}
			dist[i][j] = Distance(d)
			dur[i][j] = Duration(d)
		}
	}

	vt, err := NewVehicleType(2, 10, 0, 0, 0, 1000, 1000, "van")
	if err != nil {
		t.Fatalf("new vehicle type: %v", err)
	}

	data, err := NewProblemData([]Depot{depot}, []Client{c1, c2, c3}, dist, dur, []VehicleType{vt})
	if err != nil {
		t.Fatalf("new problem data: %v", err)
	}
	return data
}
