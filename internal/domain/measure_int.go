//go:build intmeasure

package domain

import "math"

type (
	Distance   = int64
	Duration   = int64
	Load       = int64
	Cost       = int64
	Coordinate = int64
)

// InfeasibleCost is strictly larger than any cost a bounded instance can
// legitimately reach.
const InfeasibleCost Cost = math.MaxInt64 / 2
