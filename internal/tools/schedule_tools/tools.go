package schedule_tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/agent"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/calendar"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
)

// Tool names as the model produces them.
const (
	ToolGetAvailability = "get_availability"
	ToolSuggestTimes    = "suggest_times"
	ToolCreateEvent     = "create_event"
)

// defaultTimeZone is assumed when the model omits the organizer's timezone.
const defaultTimeZone = "America/New_York"

// CalendarService is the calendar surface the tools need. The server
// context implements it with per-identity Google Calendar clients.
type CalendarService interface {
	QueryFreeBusy(ctx context.Context, identity string, timeMin, timeMax time.Time, calendarID string) ([]interval.Interval, error)
	CreateEvent(ctx context.Context, identity string, input calendar.EventInput) (*calendar.CreatedEvent, error)
}

// Deps carries the collaborators shared by all tool handlers.
type Deps struct {
	Calendars CalendarService
	Logger    *slog.Logger

	// Now overrides the clock for tests. Nil means time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Register installs the scheduling tools on the chat loop's registry.
func Register(reg *agent.Registry, deps Deps) {
	reg.Register(ToolGetAvailability, func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return handleGetAvailability(ctx, deps, args)
	})
	reg.Register(ToolSuggestTimes, func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return handleSuggestTimes(ctx, deps, args)
	})
	reg.Register(ToolCreateEvent, func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return handleCreateEvent(ctx, deps, args)
	})
}

// iso renders a timestamp the way tool results report times.
func iso(t time.Time) string {
	return t.Truncate(time.Second).Format(time.RFC3339)
}

// stringArg returns args[key] if it is a non-empty string, else fallback.
func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// requireString returns args[key] as a string or an error naming the key.
func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// intArg coerces args[key] to an int. JSON numbers decode as float64, but
// models occasionally quote them, so strings of digits are accepted too.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

// timeZoneArg resolves the organizer timezone from args, accepting the
// short organizer_tz alias some prompts produce.
func timeZoneArg(args map[string]any) (string, *time.Location, error) {
	name := stringArg(args, "organizer_timezone", stringArg(args, "organizer_tz", defaultTimeZone))
	loc, err := time.LoadLocation(name)
	if err != nil {
		return "", nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return name, loc, nil
}
