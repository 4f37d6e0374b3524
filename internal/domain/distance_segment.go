package domain

// DistanceSegment is the cumulative travel distance along a chain of
// locations from idx_first to idx_last. Two segments concatenate in O(1)
// given the travel distance between the first segment's last location and
// the second segment's first location.
type DistanceSegment struct {
	idxFirst int
	idxLast  int
	distance Distance
}

// NewDistanceSegment constructs the segment for a single location.
func NewDistanceSegment(idx int) DistanceSegment {
	return DistanceSegment{idxFirst: idx, idxLast: idx, distance: 0}
}

// NewDistanceSegmentRaw constructs a segment from explicit fields; used by
// the search route cache and by tests.
func NewDistanceSegmentRaw(idxFirst, idxLast int, distance Distance) DistanceSegment {
	return DistanceSegment{idxFirst: idxFirst, idxLast: idxLast, distance: distance}
}

func (s DistanceSegment) IdxFirst() int      { return s.idxFirst }
func (s DistanceSegment) IdxLast() int       { return s.idxLast }
func (s DistanceSegment) Distance() Distance { return s.distance }

// MergeDistanceSegments concatenates two or more distance segments, in
// order, via a distance matrix lookup between each adjacent pair of
// segments' last/first locations. Associative: Merge(Merge(a,b),c) ==
// Merge(a,Merge(b,c)).
func MergeDistanceSegments(dist func(i, j int) Distance, first, second DistanceSegment, rest ...DistanceSegment) DistanceSegment {
	merged := mergeTwoDistanceSegments(dist, first, second)
	for _, s := range rest {
		merged = mergeTwoDistanceSegments(dist, merged, s)
	}
	return merged
}

func mergeTwoDistanceSegments(dist func(i, j int) Distance, a, b DistanceSegment) DistanceSegment {
	return DistanceSegment{
		idxFirst: a.idxFirst,
		idxLast:  b.idxLast,
		distance: a.distance + dist(a.idxLast, b.idxFirst) + b.distance,
	}
}
