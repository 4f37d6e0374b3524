//go:build !intmeasure

package domain

import "math"

type (
	Distance   = float64
	Duration   = float64
	Load       = float64
	Cost       = float64
	Coordinate = float64
)

// InfeasibleCost is strictly larger than any cost a bounded instance can
// legitimately reach.
var InfeasibleCost Cost = math.Inf(1)
