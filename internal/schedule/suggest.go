package schedule

import (
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
)

// MaxSlots bounds the number of candidates returned per request.
const MaxSlots = 3

// Slot is a proposed meeting time of exactly the requested duration.
type Slot struct {
	Start time.Time
	End   time.Time
	Score float64
}

// Scorer assigns a confidence score to a candidate slot cut from a free
// segment. Ranking never reorders the output; slots stay chronological.
type Scorer func(segment, slot interval.Interval) float64

// ConstantScore is the default scorer: a fixed confidence placeholder.
func ConstantScore(confidence float64) Scorer {
	return func(interval.Interval, interval.Interval) float64 {
		return confidence
	}
}

const defaultConfidence = 0.8

// Suggest proposes up to MaxSlots meeting slots inside the window using the
// default constant scorer.
func Suggest(w Window, prefs Preferences) []Slot {
	return SuggestWithScorer(w, prefs, ConstantScore(defaultConfidence))
}

// SuggestWithScorer walks each calendar day inside the window, builds the
// work-hour block for that day, clamps it to the window, filters restricted
// weekdays, subtracts busy intervals and emits one slot per free segment long
// enough to hold the requested duration. Output is chronological and an empty
// result means "no availability", not an error.
func SuggestWithScorer(w Window, prefs Preferences, score Scorer) []Slot {
	if score == nil {
		score = ConstantScore(defaultConfidence)
	}

	var slots []Slot
	for _, block := range workHourBlocks(w, prefs) {
		for _, seg := range interval.Subtract(block, w.Busy) {
			if seg.Duration() < prefs.Duration {
				continue
			}
			slot := interval.Interval{Start: seg.Start, End: seg.Start.Add(prefs.Duration)}
			slots = append(slots, Slot{
				Start: slot.Start,
				End:   slot.End,
				Score: score(seg, slot),
			})
			if len(slots) == MaxSlots {
				return slots
			}
		}
	}
	return slots
}

// workHourBlocks returns the per-day work-hour blocks that survive clamping
// to the window and the weekday restriction, in day-ascending order.
func workHourBlocks(w Window, prefs Preferences) []interval.Interval {
	var blocks []interval.Interval

	day := prefs.WorkHours.Start.On(w.Start.In(w.Location))
	for day.Before(w.End) {
		block := interval.Interval{
			Start: day,
			End:   prefs.WorkHours.End.On(day),
		}
		day = prefs.WorkHours.Start.On(day.AddDate(0, 0, 1))

		if !block.IsValid() {
			continue
		}
		clamped, ok := interval.Clamp(block, interval.Interval{Start: w.Start, End: w.End})
		if !ok {
			continue
		}
		// Weekday restriction matches on the block's local start date.
		if len(prefs.Days) > 0 && !prefs.Days[clamped.Start.In(w.Location).Weekday()] {
			continue
		}
		blocks = append(blocks, clamped)
	}

	return blocks
}
