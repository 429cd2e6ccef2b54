package schedule_tools

import (
	"context"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/calendar"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/logging"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/schedule"
)

// handleGetAvailability resolves the requested window (rolling past windows
// forward week by week) and reports the organizer's busy blocks inside it.
func handleGetAvailability(ctx context.Context, deps Deps, args map[string]any) (map[string]any, error) {
	identity, err := requireString(args, "organizer_identity")
	if err != nil {
		return nil, err
	}

	_, loc, err := timeZoneArg(args)
	if err != nil {
		return nil, err
	}

	windowStart, err := requireString(args, "window_start")
	if err != nil {
		return nil, err
	}
	windowEnd, err := requireString(args, "window_end")
	if err != nil {
		return nil, err
	}

	w, err := schedule.ResolveWindow(windowStart, windowEnd, nil, deps.now(), loc)
	if err != nil {
		return nil, err
	}

	calendarID := stringArg(args, "calendar_id", calendar.DefaultCalendarID)

	start := time.Now()
	busy, err := deps.Calendars.QueryFreeBusy(ctx, identity, w.Start, w.End, calendarID)
	if err != nil {
		return nil, err
	}
	deps.logger().Info("queried availability",
		logging.Tool(ToolGetAvailability),
		logging.UserHash(identity),
		logging.Duration(time.Since(start)),
		"busy_blocks", len(busy),
	)

	busyBlocks := make([]map[string]any, 0, len(busy))
	for _, b := range busy {
		busyBlocks = append(busyBlocks, map[string]any{
			"start": iso(b.Start.In(loc)),
			"end":   iso(b.End.In(loc)),
		})
	}

	participants := make([]map[string]any, 0)
	for _, email := range schedule.NormalizeAttendees(args["participants"]) {
		participants = append(participants, map[string]any{"email": email})
	}

	return map[string]any{
		"window_start":     iso(w.Start),
		"window_end":       iso(w.End),
		"busy":             busyBlocks,
		"participants":     participants,
		"duration_minutes": intArg(args, "duration_minutes", schedule.DefaultDurationMinutes),
	}, nil
}
