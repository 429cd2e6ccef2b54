package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/google"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
)

// Client wraps the Google Calendar service for one organizer identity.
type Client struct {
	svc      *calendar.Service
	identity string
}

// Identity returns the organizer identity this client acts for.
func (c *Client) Identity() string {
	return c.identity
}

// HasToken reports whether stored credentials exist for the identity.
func HasToken(identity string) bool {
	return google.HasTokenForIdentity(identity)
}

// NewClientForIdentity creates a Calendar client authenticated as the given
// identity, using tokens from the provided token provider.
func NewClientForIdentity(ctx context.Context, identity string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForIdentity(ctx, identity)
	if err != nil {
		return nil, &BackendError{Op: "authorize", Identity: identity, Err: err}
	}

	conf := google.GetOAuthConfig()
	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, &BackendError{Op: "connect", Identity: identity, Err: err}
	}

	return &Client{svc: svc, identity: identity}, nil
}

// newClientWithService wires a prebuilt service, for tests against a fake
// Calendar API endpoint.
func newClientWithService(identity string, svc *calendar.Service) *Client {
	return &Client{svc: svc, identity: identity}
}

// QueryFreeBusy returns the busy intervals on one calendar between timeMin
// and timeMax, in the order the backend reports them.
func (c *Client) QueryFreeBusy(timeMin, timeMax time.Time, calendarID string) ([]interval.Interval, error) {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	query := &calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}

	result, err := c.svc.Freebusy.Query(query).Do()
	if err != nil {
		return nil, &BackendError{Op: "freebusy", Identity: c.identity, Err: err}
	}

	cal, ok := result.Calendars[calendarID]
	if !ok {
		return nil, nil
	}

	var busy []interval.Interval
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			continue
		}
		busy = append(busy, interval.Interval{Start: start, End: end})
	}

	return busy, nil
}

// CreateEvent inserts an event on the organizer's primary calendar and
// invites the attendees. With Google Meet conferencing requested, the join
// link is taken from the conference entry points, falling back to the
// legacy hangout link.
func (c *Client) CreateEvent(input EventInput) (*CreatedEvent, error) {
	event := &calendar.Event{
		Summary: input.Title,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	call := c.svc.Events.Insert(DefaultCalendarID, event).SendUpdates("all")
	if input.Conferencing == ConferencingGoogleMeet {
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: "meet-" + uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, &BackendError{Op: "create_event", Identity: c.identity, Err: err}
	}

	return &CreatedEvent{
		EventID:      created.Id,
		JoinLink:     joinLink(created),
		CalendarLink: created.HtmlLink,
	}, nil
}

// joinLink prefers a video conference entry point over the hangout link.
func joinLink(event *calendar.Event) string {
	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" && ep.Uri != "" {
				return ep.Uri
			}
		}
	}
	return event.HangoutLink
}
