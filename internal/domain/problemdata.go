package domain

import "fmt"

// Location is either a Depot or a Client. Depots occupy indices
// [0, numDepots) of ProblemData; clients occupy the remainder.
type Location struct {
	Depot  *Depot
	Client *Client
}

// IsDepot reports whether this location is a depot (no demand, no prize).
func (l Location) IsDepot() bool { return l.Depot != nil }

// ProblemData is the immutable description of one VRP instance: locations,
// pairwise distance/duration matrices, and the available vehicle types.
// It is constructed once and never mutated (matching the teacher's
// "construction validates, nothing mutates afterward" discipline applied
// to internal/domain/package.go and truck.go, generalized here).
type ProblemData struct {
	numDepots  int
	locations  []Location
	distance   []Distance // numLocations x numLocations, row-major
	duration   []Duration // numLocations x numLocations, row-major
	vehicles   []VehicleType
	numVehicle int
}

// NewProblemData validates and constructs a ProblemData. Fails fatally
// (returns error) on: non-square matrices, negative distances/durations,
// a vehicle type referencing an out-of-range depot index.
func NewProblemData(depots []Depot, clients []Client, distance, duration [][]Distance, vehicles []VehicleType) (*ProblemData, error) {
	numDepots := len(depots)
	numLocations := numDepots + len(clients)

	if numLocations == 0 {
		return nil, fmt.Errorf("new problem data: at least one location is required")
	}

	if len(distance) != numLocations || len(duration) != numLocations {
		return nil, fmt.Errorf("new problem data: distance/duration matrices must have %d rows, got %d/%d", numLocations, len(distance), len(duration))
	}

	flatDist := make([]Distance, numLocations*numLocations)
	flatDur := make([]Duration, numLocations*numLocations)
	for i := 0; i < numLocations; i++ {
		if len(distance[i]) != numLocations {
			return nil, fmt.Errorf("new problem data: distance matrix row %d has %d columns, want %d", i, len(distance[i]), numLocations)
		}
		if len(duration[i]) != numLocations {
			return nil, fmt.Errorf("new problem data: duration matrix row %d has %d columns, want %d", i, len(duration[i]), numLocations)
		}
		for j := 0; j < numLocations; j++ {
			if distance[i][j] < 0 {
				return nil, fmt.Errorf("new problem data: distance[%d][%d] must not be negative, got %v", i, j, distance[i][j])
			}
			if duration[i][j] < 0 {
				return nil, fmt.Errorf("new problem data: duration[%d][%d] must not be negative, got %v", i, j, duration[i][j])
			}
			flatDist[i*numLocations+j] = distance[i][j]
			flatDur[i*numLocations+j] = duration[i][j]
		}
	}

	locations := make([]Location, 0, numLocations)
	for i := range depots {
		d := depots[i]
		locations = append(locations, Location{Depot: &d})
	}
	for i := range clients {
		c := clients[i]
		locations = append(locations, Location{Client: &c})
	}

	numVehicle := 0
	for i, vt := range vehicles {
		if vt.DepotIndex < 0 || vt.DepotIndex >= numDepots {
			return nil, fmt.Errorf("new problem data: vehicle type %d (%q) references depot index %d out of range [0,%d)", i, vt.Name, vt.DepotIndex, numDepots)
		}
		numVehicle += vt.NumAvailable
	}

	return &ProblemData{
		numDepots:  numDepots,
		locations:  locations,
		distance:   flatDist,
		duration:   flatDur,
		vehicles:   append([]VehicleType(nil), vehicles...),
		numVehicle: numVehicle,
	}, nil
}

// NumLocations returns the total number of depots plus clients.
func (p *ProblemData) NumLocations() int { return len(p.locations) }

// NumDepots returns the number of depot locations (indices [0, NumDepots)).
func (p *ProblemData) NumDepots() int { return p.numDepots }

// NumClients returns the number of client locations.
func (p *ProblemData) NumClients() int { return len(p.locations) - p.numDepots }

// NumVehicles returns the total number of available vehicles across types.
func (p *ProblemData) NumVehicles() int { return p.numVehicle }

// VehicleTypes returns the problem's vehicle type definitions.
func (p *ProblemData) VehicleTypes() []VehicleType { return p.vehicles }

// VehicleType returns the vehicle type at the given index. Panics on an
// out-of-range index: this is a programmer error, not a recoverable input
// condition (see spec.md §7 and the teacher's index-access discipline).
func (p *ProblemData) VehicleType(idx int) VehicleType {
	if idx < 0 || idx >= len(p.vehicles) {
		panic(fmt.Sprintf("problem data: vehicle type index %d out of range [0,%d)", idx, len(p.vehicles)))
	}
	return p.vehicles[idx]
}

// Location returns the location at the given index. Panics out of range.
func (p *ProblemData) Location(idx int) Location {
	if idx < 0 || idx >= len(p.locations) {
		panic(fmt.Sprintf("problem data: location index %d out of range [0,%d)", idx, len(p.locations)))
	}
	return p.locations[idx]
}

// Dist returns the travel distance from location i to location j. O(1).
func (p *ProblemData) Dist(i, j int) Distance {
	n := len(p.locations)
	if i < 0 || i >= n || j < 0 || j >= n {
		panic(fmt.Sprintf("problem data: distance index (%d,%d) out of range [0,%d)", i, j, n))
	}
	return p.distance[i*n+j]
}

// Dur returns the travel duration from location i to location j. O(1).
func (p *ProblemData) Dur(i, j int) Duration {
	n := len(p.locations)
	if i < 0 || i >= n || j < 0 || j >= n {
		panic(fmt.Sprintf("problem data: duration index (%d,%d) out of range [0,%d)", i, j, n))
	}
	return p.duration[i*n+j]
}
