package domain

import "fmt"

// Client is a single delivery/pickup location to be visited by exactly one
// vehicle (unless Required is false and the solver chooses to forfeit its
// Prize instead).
type Client struct {
	X, Y            Coordinate
	Delivery        Load
	Pickup          Load
	ServiceDuration Duration
	TWEarly         Duration
	TWLate          Duration
	ReleaseTime     Duration
	Prize           Cost
	Required        bool
	Name            string
}

// NewClient validates and constructs a Client. Matching the teacher's
// construction-time validation style (internal/domain/package.go,
// truck.go), invalid attributes fail here rather than being silently
// clamped later.
func NewClient(x, y Coordinate, delivery, pickup, service Load, twEarly, twLate, release Duration, prize Cost, required bool, name string) (Client, error) {
	if twEarly > twLate {
		return Client{}, fmt.Errorf("new client %q: tw_early (%v) must not exceed tw_late (%v)", name, twEarly, twLate)
	}
	if release > twLate {
		return Client{}, fmt.Errorf("new client %q: release_time (%v) must not exceed tw_late (%v)", name, release, twLate)
	}
	return Client{
		X:               x,
		Y:               y,
		Delivery:        delivery,
		Pickup:          pickup,
		ServiceDuration: service,
		TWEarly:         twEarly,
		TWLate:          twLate,
		ReleaseTime:     release,
		Prize:           prize,
		Required:        required,
		Name:            name,
	}, nil
}
