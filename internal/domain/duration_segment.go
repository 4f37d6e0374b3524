//go:build !notimewindows

package domain

import "math"

// DurationSegment is the canonical Vidal representation of a partial
// route's time-feasibility projection: total duration (including waiting),
// accumulated time warp, the feasible window of earliest-departure times
// from the segment's first location, and the earliest moment the segment
// may start (release time).
//
// Merge's arithmetic is translated directly from
// original_source/pyvrp/cpp/DurationSegment.h. In Merge below, atOther is
// the offset at which the second segment is reached, diffTw the added
// time warp (excess lateness) and diffWait the added wait.
type DurationSegment struct {
	idxFirst    int
	idxLast     int
	duration    Duration
	timeWarp    Duration
	twEarly     Duration
	twLate      Duration
	releaseTime Duration
}

// NewDurationSegment constructs the segment for a single location with the
// given time window and release time; service duration is folded into
// duration by the caller (the client's own service time belongs to the
// segment that contains it, not to the travel edge into it).
func NewDurationSegment(idx int, duration, twEarly, twLate, releaseTime Duration) DurationSegment {
	return DurationSegment{
		idxFirst:    idx,
		idxLast:     idx,
		duration:    duration,
		timeWarp:    0,
		twEarly:     twEarly,
		twLate:      twLate,
		releaseTime: releaseTime,
	}
}

// NewDurationSegmentRaw constructs a segment from explicit fields; used by
// the search route cache and by tests.
func NewDurationSegmentRaw(idxFirst, idxLast int, duration, timeWarp, twEarly, twLate, releaseTime Duration) DurationSegment {
	return DurationSegment{
		idxFirst:    idxFirst,
		idxLast:     idxLast,
		duration:    duration,
		timeWarp:    timeWarp,
		twEarly:     twEarly,
		twLate:      twLate,
		releaseTime: releaseTime,
	}
}

func (s DurationSegment) IdxFirst() int         { return s.idxFirst }
func (s DurationSegment) IdxLast() int          { return s.idxLast }
func (s DurationSegment) Duration() Duration    { return s.duration }
func (s DurationSegment) TWEarly() Duration     { return s.twEarly }
func (s DurationSegment) TWLate() Duration      { return s.twLate }
func (s DurationSegment) ReleaseTime() Duration { return s.releaseTime }

// TimeWarp returns the total time warp on this segment, including any
// warp incurred by violating maxDuration and by a release time later than
// the feasible departure window. maxDuration is applied only here, at read
// time — never inside Merge (spec.md §9 Open Questions).
func (s DurationSegment) TimeWarp(maxDuration Duration) Duration {
	tw := s.timeWarp
	tw += maxFloat(0, s.releaseTime-s.twLate)
	tw += maxFloat(0, s.duration-maxDuration)
	return tw
}

// unconstrainedMaxDuration is large enough to never bind as a maximum
// duration constraint, under either measure build.
const unconstrainedMaxDuration Duration = math.MaxInt64 / 2

// TimeWarpUnconstrained is TimeWarp with no maximum duration constraint.
func (s DurationSegment) TimeWarpUnconstrained() Duration {
	return s.TimeWarp(unconstrainedMaxDuration)
}

func maxFloat(a, b Duration) Duration {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b Duration) Duration {
	if a < b {
		return a
	}
	return b
}

// MergeDurationSegments concatenates two or more duration segments, in
// order, via a duration-matrix lookup between each adjacent pair.
// Associative.
func MergeDurationSegments(dur func(i, j int) Duration, first, second DurationSegment, rest ...DurationSegment) DurationSegment {
	merged := mergeTwoDurationSegments(dur, first, second)
	for _, s := range rest {
		merged = mergeTwoDurationSegments(dur, merged, s)
	}
	return merged
}

func mergeTwoDurationSegments(dur func(i, j int) Duration, a, b DurationSegment) DurationSegment {
	edgeDuration := dur(a.idxLast, b.idxFirst)

	// atOther is the time, measured from a's start, at which we arrive at
	// b's first location, having already shed a's own time warp.
	atOther := a.duration - a.timeWarp + edgeDuration

	diffTw := maxFloat(a.twEarly+atOther-b.twLate, 0)

	var diffWait Duration
	if b.twEarly-atOther > a.twLate {
		diffWait = b.twEarly - atOther - a.twLate
	} else {
		diffWait = 0
	}

	return DurationSegment{
		idxFirst:    a.idxFirst,
		idxLast:     b.idxLast,
		duration:    a.duration + b.duration + edgeDuration + diffWait,
		timeWarp:    a.timeWarp + b.timeWarp + diffTw,
		twEarly:     maxFloat(b.twEarly-atOther, a.twEarly) - diffWait,
		twLate:      minFloat(b.twLate-atOther, a.twLate) + diffTw,
		releaseTime: maxFloat(a.releaseTime, b.releaseTime),
	}
}
