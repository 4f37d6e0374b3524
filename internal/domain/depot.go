package domain

import "fmt"

// Depot is a start/end location for vehicle routes. It carries a time
// window but no demand.
type Depot struct {
	X, Y    Coordinate
	TWEarly Duration
	TWLate  Duration
	Name    string
}

func NewDepot(x, y Coordinate, twEarly, twLate Duration, name string) (Depot, error) {
	if twEarly > twLate {
		return Depot{}, fmt.Errorf("new depot %q: tw_early (%v) must not exceed tw_late (%v)", name, twEarly, twLate)
	}
	return Depot{X: x, Y: y, TWEarly: twEarly, TWLate: twLate, Name: name}, nil
}
