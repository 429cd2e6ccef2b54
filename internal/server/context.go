package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/calendar"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/google"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/instrumentation"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/interval"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/llm"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/logging"
)

// ServerContext holds the dependencies shared by the chat loop, the tools
// and the HTTP handlers.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	model           *llm.Client
	tokenProvider   google.TokenProvider
	metrics         *instrumentation.Metrics
	logger          *slog.Logger
	calendarClients map[string]*calendar.Client

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a server context. Calendar clients are built
// lazily per identity on first use, since identities only gain tokens
// after completing the OAuth flow.
func NewServerContext(ctx context.Context, model *llm.Client, tokenProvider google.TokenProvider, metrics *instrumentation.Metrics, logger *slog.Logger) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		model:           model,
		tokenProvider:   tokenProvider,
		metrics:         metrics,
		logger:          logger,
		calendarClients: make(map[string]*calendar.Client),
	}
}

// Context returns the server-scoped context, canceled on shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Model returns the LLM client.
func (sc *ServerContext) Model() *llm.Client {
	return sc.model
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// CalendarClientForIdentity returns the calendar client for an identity,
// creating and caching it on first use. Fails when the identity has not
// completed the OAuth flow yet.
func (sc *ServerContext) CalendarClientForIdentity(identity string) (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[identity]; ok {
		return client, nil
	}

	client, err := calendar.NewClientForIdentity(sc.ctx, identity, sc.tokenProvider)
	if err != nil {
		return nil, err
	}

	sc.calendarClients[identity] = client
	return client, nil
}

// SetCalendarClientForIdentity seeds the client cache. Used by tests and
// after a fresh OAuth connect.
func (sc *ServerContext) SetCalendarClientForIdentity(identity string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[identity] = client
}

// QueryFreeBusy queries busy intervals for the identity's calendar. This
// satisfies the calendar surface the scheduling tools consume.
func (sc *ServerContext) QueryFreeBusy(_ context.Context, identity string, timeMin, timeMax time.Time, calendarID string) ([]interval.Interval, error) {
	client, err := sc.CalendarClientForIdentity(identity)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	busy, err := client.QueryFreeBusy(timeMin, timeMax, calendarID)
	sc.recordCalendarOperation("freebusy", identity, start, err)
	return busy, err
}

// CreateEvent commits an event to the identity's calendar.
func (sc *ServerContext) CreateEvent(_ context.Context, identity string, input calendar.EventInput) (*calendar.CreatedEvent, error) {
	client, err := sc.CalendarClientForIdentity(identity)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	created, err := client.CreateEvent(input)
	sc.recordCalendarOperation("insert_event", identity, start, err)
	return created, err
}

func (sc *ServerContext) recordCalendarOperation(operation, identity string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		sc.logger.Error("calendar operation failed",
			logging.Operation(operation),
			logging.UserHash(identity),
			logging.Err(err),
		)
	}
	sc.metrics.RecordCalendarOperation(sc.ctx, operation, status, time.Since(start))
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
