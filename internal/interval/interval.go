package interval

import "time"

// Interval represents a half-open time range [Start, End).
// An interval is well formed when End is strictly after Start.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsValid reports whether the interval has positive duration.
func (iv Interval) IsValid() bool {
	return iv.End.After(iv.Start)
}

// Overlaps reports whether the interval overlaps other.
// Touching boundaries do not count as overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Clamp intersects iv with window. The second return value is false when the
// intersection is empty or has non-positive duration.
func Clamp(iv, window Interval) (Interval, bool) {
	s := iv.Start
	if window.Start.After(s) {
		s = window.Start
	}
	e := iv.End
	if window.End.Before(e) {
		e = window.End
	}
	if !e.After(s) {
		return Interval{}, false
	}
	return Interval{Start: s, End: e}, true
}

// Subtract removes each obstacle from iv and returns the remaining free
// segments in chronological order. Obstacles are applied in index order so
// intermediate states are deterministic; the final free set does not depend
// on obstacle order. Degenerate obstacles (non-positive duration) are ignored
// and never appear in the output.
func Subtract(iv Interval, obstacles []Interval) []Interval {
	if !iv.IsValid() {
		return nil
	}

	segments := []Interval{iv}
	for _, ob := range obstacles {
		if !ob.IsValid() {
			continue
		}
		var next []Interval
		for _, seg := range segments {
			if !seg.Overlaps(ob) {
				next = append(next, seg)
				continue
			}
			// Keep the left remainder before the obstacle.
			if seg.Start.Before(ob.Start) {
				next = append(next, Interval{Start: seg.Start, End: ob.Start})
			}
			// Keep the right remainder after the obstacle.
			if ob.End.Before(seg.End) {
				next = append(next, Interval{Start: ob.End, End: seg.End})
			}
		}
		segments = next
	}

	return segments
}
