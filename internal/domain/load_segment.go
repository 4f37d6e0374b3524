package domain

// LoadSegment tracks delivery/pickup demand and the peak instantaneous
// vehicle load along a chain of locations. Mixed pickup-and-delivery loads
// don't simply add: the peak load on the merged chain can occur either
// while still carrying the first segment's undelivered demand plus the
// second segment's pickups picked up so far, or the other way around,
// hence the max() in Merge.
type LoadSegment struct {
	delivery Load
	pickup   Load
	load     Load
}

// NewLoadSegment constructs the segment for a single location's demand.
func NewLoadSegment(delivery, pickup Load) LoadSegment {
	load := delivery
	if pickup > load {
		load = pickup
	}
	return LoadSegment{delivery: delivery, pickup: pickup, load: load}
}

func (s LoadSegment) Delivery() Load { return s.delivery }
func (s LoadSegment) Pickup() Load   { return s.pickup }
func (s LoadSegment) Load() Load     { return s.load }

// MergeLoadSegments concatenates two or more load segments, in order.
// Associative.
func MergeLoadSegments(first, second LoadSegment, rest ...LoadSegment) LoadSegment {
	merged := mergeTwoLoadSegments(first, second)
	for _, s := range rest {
		merged = mergeTwoLoadSegments(merged, s)
	}
	return merged
}

func mergeTwoLoadSegments(a, b LoadSegment) LoadSegment {
	loadA := a.load + b.delivery
	loadB := a.pickup + b.load
	load := loadA
	if loadB > load {
		load = loadB
	}

	return LoadSegment{
		delivery: a.delivery + b.delivery,
		pickup:   a.pickup + b.pickup,
		load:     load,
	}
}
