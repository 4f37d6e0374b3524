package search

import "testing"

func TestBuildNeighbourListOrdersByDistance(t *testing.T) {
	// build test data: depot@0, clients at x=1,2,20,18,19,22 (locations 1-6)
	data := newRelocateFixture(t)

	// call the method under test
	nl := BuildNeighbourList(data, 2)

	// verify behavior: client 1 (x=1)'s two nearest other clients are
	// client 2 (x=2, dist 1) then client 4 (x=18, dist 17)
	got := nl.Of(1)
	want := []int{2, 4}
	if !equalInts(got, want) {
		t.Errorf("NeighbourList.Of(1) = %v, want %v", got, want)
	}
}

func TestBuildNeighbourListTruncatesAtK(t *testing.T) {
	data := newRelocateFixture(t)
	nl := BuildNeighbourList(data, 2)

	for loc := data.NumDepots(); loc < data.NumLocations(); loc++ {
		if len(nl.Of(loc)) > 2 {
			t.Errorf("location %d has %d neighbours, want at most 2", loc, len(nl.Of(loc)))
		}
	}
}

func TestBuildNeighbourListKLargerThanClientCount(t *testing.T) {
	data := newRelocateFixture(t)
	nl := BuildNeighbourList(data, 1000)

	// 6 clients total, so every client has at most 5 other clients as neighbours
	for loc := data.NumDepots(); loc < data.NumLocations(); loc++ {
		if len(nl.Of(loc)) != 5 {
			t.Errorf("location %d has %d neighbours, want 5", loc, len(nl.Of(loc)))
		}
	}
}

func TestBuildNeighbourListExcludesDepotsAndSelf(t *testing.T) {
	data := newRelocateFixture(t)
	nl := BuildNeighbourList(data, 1000)

	for _, loc := range nl.Of(3) {
		if loc == 3 {
			t.Error("NeighbourList included the client itself")
		}
		if data.Location(loc).Client == nil {
			t.Errorf("NeighbourList included a depot location %d", loc)
		}
	}
}
