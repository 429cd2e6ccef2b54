package calendar

import (
	"fmt"
	"time"
)

// DefaultCalendarID is the organizer's primary calendar.
const DefaultCalendarID = "primary"

// Conferencing modes accepted by EventInput.
const (
	ConferencingGoogleMeet = "google_meet"
	ConferencingNone       = "none"
)

// EventInput describes the event to commit. Start and End must already be
// normalized (timezone-aware, end after start); the client does not
// re-validate scheduling semantics.
type EventInput struct {
	Title        string
	Start        time.Time
	End          time.Time
	TimeZone     string
	Attendees    []string
	Conferencing string
}

// CreatedEvent is the backend's confirmation of a committed event.
type CreatedEvent struct {
	EventID      string
	JoinLink     string
	CalendarLink string
}

// BackendError indicates a credential or calendar-backend failure. The core
// never retries these; they surface to the caller as-is.
type BackendError struct {
	Op       string
	Identity string
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("calendar %s failed for identity %s: %v", e.Op, e.Identity, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
