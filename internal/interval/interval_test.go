package interval

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestClamp(t *testing.T) {
	window := iv(t, "2025-06-02T09:00:00Z", "2025-06-02T17:00:00Z")

	tests := []struct {
		name     string
		interval Interval
		want     Interval
		ok       bool
	}{
		{
			name:     "fully inside window",
			interval: iv(t, "2025-06-02T10:00:00Z", "2025-06-02T11:00:00Z"),
			want:     iv(t, "2025-06-02T10:00:00Z", "2025-06-02T11:00:00Z"),
			ok:       true,
		},
		{
			name:     "overlaps window start",
			interval: iv(t, "2025-06-02T08:00:00Z", "2025-06-02T10:00:00Z"),
			want:     iv(t, "2025-06-02T09:00:00Z", "2025-06-02T10:00:00Z"),
			ok:       true,
		},
		{
			name:     "overlaps window end",
			interval: iv(t, "2025-06-02T16:00:00Z", "2025-06-02T18:00:00Z"),
			want:     iv(t, "2025-06-02T16:00:00Z", "2025-06-02T17:00:00Z"),
			ok:       true,
		},
		{
			name:     "entirely before window",
			interval: iv(t, "2025-06-02T06:00:00Z", "2025-06-02T08:00:00Z"),
			ok:       false,
		},
		{
			name:     "entirely after window",
			interval: iv(t, "2025-06-02T18:00:00Z", "2025-06-02T19:00:00Z"),
			ok:       false,
		},
		{
			name:     "touches window start only",
			interval: iv(t, "2025-06-02T08:00:00Z", "2025-06-02T09:00:00Z"),
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clamp(tt.interval, window)
			if ok != tt.ok {
				t.Fatalf("Clamp() ok = %v, expected %v", ok, tt.ok)
			}
			if ok && (got != tt.want) {
				t.Errorf("Clamp() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	free := iv(t, "2025-06-02T09:00:00Z", "2025-06-02T17:00:00Z")

	tests := []struct {
		name      string
		obstacles []Interval
		want      []Interval
	}{
		{
			name:      "no obstacles",
			obstacles: nil,
			want:      []Interval{free},
		},
		{
			name:      "obstacle in the middle splits the segment",
			obstacles: []Interval{iv(t, "2025-06-02T12:00:00Z", "2025-06-02T13:00:00Z")},
			want: []Interval{
				iv(t, "2025-06-02T09:00:00Z", "2025-06-02T12:00:00Z"),
				iv(t, "2025-06-02T13:00:00Z", "2025-06-02T17:00:00Z"),
			},
		},
		{
			name:      "obstacle covering everything",
			obstacles: []Interval{iv(t, "2025-06-02T08:00:00Z", "2025-06-02T18:00:00Z")},
			want:      nil,
		},
		{
			name:      "obstacle overlapping the start",
			obstacles: []Interval{iv(t, "2025-06-02T08:00:00Z", "2025-06-02T10:00:00Z")},
			want:      []Interval{iv(t, "2025-06-02T10:00:00Z", "2025-06-02T17:00:00Z")},
		},
		{
			name:      "obstacle overlapping the end",
			obstacles: []Interval{iv(t, "2025-06-02T16:00:00Z", "2025-06-02T18:00:00Z")},
			want:      []Interval{iv(t, "2025-06-02T09:00:00Z", "2025-06-02T16:00:00Z")},
		},
		{
			name:      "disjoint obstacle leaves segment unchanged",
			obstacles: []Interval{iv(t, "2025-06-02T18:00:00Z", "2025-06-02T19:00:00Z")},
			want:      []Interval{free},
		},
		{
			name: "multiple obstacles applied in order",
			obstacles: []Interval{
				iv(t, "2025-06-02T10:00:00Z", "2025-06-02T11:00:00Z"),
				iv(t, "2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z"),
			},
			want: []Interval{
				iv(t, "2025-06-02T09:00:00Z", "2025-06-02T10:00:00Z"),
				iv(t, "2025-06-02T11:00:00Z", "2025-06-02T14:00:00Z"),
				iv(t, "2025-06-02T15:00:00Z", "2025-06-02T17:00:00Z"),
			},
		},
		{
			name: "degenerate obstacle is ignored",
			obstacles: []Interval{
				iv(t, "2025-06-02T12:00:00Z", "2025-06-02T12:00:00Z"),
			},
			want: []Interval{free},
		},
		{
			name: "touching obstacle does not split",
			obstacles: []Interval{
				iv(t, "2025-06-02T08:00:00Z", "2025-06-02T09:00:00Z"),
			},
			want: []Interval{free},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(free, tt.obstacles)
			if len(got) != len(tt.want) {
				t.Fatalf("Subtract() returned %d segments, expected %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %v, expected %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestSubtractConservation verifies that subtraction never produces segments
// overlapping an obstacle, and that free segments plus overlapped obstacle
// portions add back up to the original interval.
func TestSubtractConservation(t *testing.T) {
	free := iv(t, "2025-06-02T09:00:00Z", "2025-06-02T17:00:00Z")
	obstacles := []Interval{
		iv(t, "2025-06-02T08:30:00Z", "2025-06-02T09:30:00Z"),
		iv(t, "2025-06-02T11:00:00Z", "2025-06-02T12:15:00Z"),
		iv(t, "2025-06-02T12:00:00Z", "2025-06-02T13:00:00Z"), // overlaps previous
		iv(t, "2025-06-02T16:45:00Z", "2025-06-02T18:00:00Z"),
	}

	segments := Subtract(free, obstacles)

	var freeTotal time.Duration
	for _, seg := range segments {
		if !seg.IsValid() {
			t.Errorf("invalid segment in output: %v", seg)
		}
		for _, ob := range obstacles {
			if seg.Overlaps(ob) {
				t.Errorf("segment %v overlaps obstacle %v", seg, ob)
			}
		}
		freeTotal += seg.Duration()
	}

	// Compute total busy time inside the original interval, merging overlaps
	// by re-subtracting from the free interval.
	busyTotal := free.Duration() - freeTotal
	if busyTotal < 0 {
		t.Fatalf("free segments exceed original interval: free=%v total=%v", freeTotal, free.Duration())
	}

	// Expected busy inside window: 09:00-09:30 (30m) + 11:00-13:00 (2h) + 16:45-17:00 (15m)
	want := 30*time.Minute + 2*time.Hour + 15*time.Minute
	if busyTotal != want {
		t.Errorf("busy mass inside window = %v, expected %v", busyTotal, want)
	}
}

func TestIntervalValidity(t *testing.T) {
	valid := iv(t, "2025-06-02T09:00:00Z", "2025-06-02T10:00:00Z")
	if !valid.IsValid() {
		t.Error("expected positive-duration interval to be valid")
	}

	zero := iv(t, "2025-06-02T09:00:00Z", "2025-06-02T09:00:00Z")
	if zero.IsValid() {
		t.Error("expected zero-duration interval to be invalid")
	}

	negative := iv(t, "2025-06-02T10:00:00Z", "2025-06-02T09:00:00Z")
	if negative.IsValid() {
		t.Error("expected negative-duration interval to be invalid")
	}
}
