package schedule_tools

import (
	"context"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/calendar"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/logging"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/schedule"
)

// handleCreateEvent normalizes the requested times (rolling past slots
// forward to the next matching week) and commits the event to the
// organizer's calendar.
func handleCreateEvent(ctx context.Context, deps Deps, args map[string]any) (map[string]any, error) {
	identity, err := requireString(args, "organizer_identity")
	if err != nil {
		return nil, err
	}

	startStr, err := requireString(args, "start_time")
	if err != nil {
		return nil, err
	}
	endStr, err := requireString(args, "end_time")
	if err != nil {
		return nil, err
	}

	tzName, loc, err := timeZoneArg(args)
	if err != nil {
		return nil, err
	}

	attendees := schedule.NormalizeAttendees(args["attendees"])
	title := stringArg(args, "title", "")
	if title == "" {
		title = "Meeting"
		if len(attendees) > 0 {
			title = "Meeting with " + attendees[0]
		}
	}

	iv, err := schedule.NormalizeEvent(startStr, endStr, loc, deps.now())
	if err != nil {
		return nil, err
	}

	input := calendar.EventInput{
		Title:        title,
		Start:        iv.Start,
		End:          iv.End,
		TimeZone:     tzName,
		Attendees:    attendees,
		Conferencing: stringArg(args, "conferencing", calendar.ConferencingGoogleMeet),
	}

	start := time.Now()
	created, err := deps.Calendars.CreateEvent(ctx, identity, input)
	if err != nil {
		return nil, err
	}
	deps.logger().Info("created event",
		logging.Tool(ToolCreateEvent),
		logging.UserHash(identity),
		logging.Duration(time.Since(start)),
		"event_id", created.EventID,
	)

	return map[string]any{
		"event_id":      created.EventID,
		"join_link":     created.JoinLink,
		"calendar_link": created.CalendarLink,
		"title":         title,
		"start_time":    iso(iv.Start),
		"end_time":      iso(iv.End),
		"attendees":     attendees,
	}, nil
}
