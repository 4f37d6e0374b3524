package domain

import "fmt"

// VehicleType describes a homogeneous group of vehicles sharing a depot,
// capacity, shift window and fixed deployment cost.
type VehicleType struct {
	NumAvailable int
	Capacity     Load
	DepotIndex   int
	FixedCost    Cost
	TWEarly      Duration
	TWLate       Duration
	MaxDuration  Duration
	Name         string
}

func NewVehicleType(numAvailable int, capacity Load, depotIndex int, fixedCost Cost, twEarly, twLate, maxDuration Duration, name string) (VehicleType, error) {
	if numAvailable < 0 {
		return VehicleType{}, fmt.Errorf("new vehicle type %q: num_available must not be negative, got %d", name, numAvailable)
	}
	if twEarly > twLate {
		return VehicleType{}, fmt.Errorf("new vehicle type %q: tw_early (%v) must not exceed tw_late (%v)", name, twEarly, twLate)
	}
	if depotIndex < 0 {
		return VehicleType{}, fmt.Errorf("new vehicle type %q: depot_index must not be negative, got %d", name, depotIndex)
	}
	return VehicleType{
		NumAvailable: numAvailable,
		Capacity:     capacity,
		DepotIndex:   depotIndex,
		FixedCost:    fixedCost,
		TWEarly:      twEarly,
		TWLate:       twLate,
		MaxDuration:  maxDuration,
		Name:         name,
	}, nil
}
