//go:build notimewindows

package domain

// DurationSegment, built with the notimewindows tag, carries only travel
// duration: time windows, time warp and release time are compiled out
// entirely rather than merely left unused, so a CVRP-only build pays no
// runtime cost for arithmetic whose result is always zero (spec.md §4.1).
type DurationSegment struct {
	idxFirst int
	idxLast  int
	duration Duration
}

func NewDurationSegment(idx int, duration, twEarly, twLate, releaseTime Duration) DurationSegment {
	return DurationSegment{idxFirst: idx, idxLast: idx, duration: duration}
}

func NewDurationSegmentRaw(idxFirst, idxLast int, duration, timeWarp, twEarly, twLate, releaseTime Duration) DurationSegment {
	return DurationSegment{idxFirst: idxFirst, idxLast: idxLast, duration: duration}
}

func (s DurationSegment) IdxFirst() int         { return s.idxFirst }
func (s DurationSegment) IdxLast() int          { return s.idxLast }
func (s DurationSegment) Duration() Duration    { return s.duration }
func (s DurationSegment) TWEarly() Duration     { return 0 }
func (s DurationSegment) TWLate() Duration      { return unconstrainedMaxDuration }
func (s DurationSegment) ReleaseTime() Duration { return 0 }

func (s DurationSegment) TimeWarp(maxDuration Duration) Duration {
	if s.duration > maxDuration {
		return s.duration - maxDuration
	}
	return 0
}

func (s DurationSegment) TimeWarpUnconstrained() Duration { return 0 }

const unconstrainedMaxDuration Duration = 1 << 62

func MergeDurationSegments(dur func(i, j int) Duration, first, second DurationSegment, rest ...DurationSegment) DurationSegment {
	merged := mergeTwoDurationSegments(dur, first, second)
	for _, s := range rest {
		merged = mergeTwoDurationSegments(dur, merged, s)
	}
	return merged
}

func mergeTwoDurationSegments(dur func(i, j int) Duration, a, b DurationSegment) DurationSegment {
	return DurationSegment{
		idxFirst: a.idxFirst,
		idxLast:  b.idxLast,
		duration: a.duration + dur(a.idxLast, b.idxFirst) + b.duration,
	}
}
