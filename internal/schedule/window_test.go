package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
)

func TestParseTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	t.Run("offset-less timestamp assigned the organizer zone", func(t *testing.T) {
		got, err := ParseTime("window_start", "2025-10-07T15:00:00", loc)
		require.NoError(t, err)
		assert.Equal(t, loc, got.Location())
		assert.Equal(t, 15, got.Hour())
	})

	t.Run("explicit offset converted to the organizer zone", func(t *testing.T) {
		got, err := ParseTime("window_start", "2025-10-07T15:00:00Z", loc)
		require.NoError(t, err)
		assert.Equal(t, loc, got.Location())
		// 15:00 UTC is 11:00 in New York during DST.
		assert.Equal(t, 11, got.Hour())
	})

	t.Run("minute precision accepted", func(t *testing.T) {
		got, err := ParseTime("window_start", "2025-10-07T15:00", loc)
		require.NoError(t, err)
		assert.Equal(t, 15, got.Hour())
	})

	t.Run("malformed timestamp yields ParseError", func(t *testing.T) {
		_, err := ParseTime("window_start", "next tuesday", loc)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "window_start", parseErr.Field)
	})
}

func TestResolveWindowKeepsFutureWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	w, err := ResolveWindow("2025-06-02T09:00:00Z", "2025-06-06T18:00:00Z", nil, now, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC), w.End)
}

func TestResolveWindowRollsForwardElapsedWindow(t *testing.T) {
	// Window ended yesterday; one week forward puts it in the future.
	now := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)

	w, err := ResolveWindow("2025-06-02T09:00:00Z", "2025-06-06T18:00:00Z", nil, now, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 6, 13, 18, 0, 0, 0, time.UTC), w.End)
	assert.True(t, w.End.After(now), "window_end must be strictly after now")
	// Weekday and time-of-day are preserved.
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, 9, w.Start.Hour())
}

func TestResolveWindowRollsForwardMultipleWeeks(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	w, err := ResolveWindow("2025-06-02T09:00:00Z", "2025-06-06T18:00:00Z", nil, now, time.UTC)
	require.NoError(t, err)

	assert.True(t, w.End.After(now))
	// Minimal number of whole weeks: the previous shift would still be in the past.
	assert.False(t, w.End.AddDate(0, 0, -7).After(now))
	assert.Equal(t, time.Friday, w.End.Weekday())
}

func TestResolveWindowBoundaryExactlyNow(t *testing.T) {
	now := time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)

	// window_end == now still counts as elapsed.
	w, err := ResolveWindow("2025-06-02T09:00:00Z", "2025-06-06T18:00:00Z", nil, now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 13, 18, 0, 0, 0, time.UTC), w.End)
}

func TestResolveWindowDropsDegenerateBusy(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2025, 6, 3, 13, 0, 0, 0, time.UTC)
	busy := []interval.Interval{
		{Start: at, End: at},                    // zero length
		{Start: at.Add(time.Hour), End: at},     // negative
		{Start: at, End: at.Add(2 * time.Hour)}, // valid
	}

	w, err := ResolveWindow("2025-06-02T09:00:00Z", "2025-06-06T18:00:00Z", busy, now, time.UTC)
	require.NoError(t, err)
	require.Len(t, w.Busy, 1)
	assert.Equal(t, at, w.Busy[0].Start)
}

func TestResolveWindowParseFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := ResolveWindow("not-a-date", "2025-06-06T18:00:00Z", nil, now, time.UTC)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))

	_, err = ResolveWindow("2025-06-02T09:00:00Z", "soonish", nil, now, time.UTC)
	assert.True(t, errors.As(err, &parseErr))
}
