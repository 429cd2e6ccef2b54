package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// DefaultAddr is the default listen address for the chat API.
const DefaultAddr = ":8000"

// HTTPServer is the user-facing listener: POST /chat, the OAuth connect
// flow and the health endpoints.
type HTTPServer struct {
	sc         *ServerContext
	states     *StateStore
	health     *HealthChecker
	httpServer *http.Server
}

// NewHTTPServer assembles the routes around the given chat service.
func NewHTTPServer(addr string, sc *ServerContext, chat ChatService) *HTTPServer {
	if addr == "" {
		addr = DefaultAddr
	}

	states := NewStateStore(DefaultStateTTL)

	var prober ModelProber
	if sc.Model() != nil {
		prober = sc.Model()
	}
	health := NewHealthChecker(sc, prober)

	mux := http.NewServeMux()
	mux.Handle("/chat", NewChatHandler(chat, sc.Metrics(), sc.logger))
	health.RegisterHealthEndpoints(mux)
	NewOAuthHandler(sc, states).RegisterOAuthEndpoints(mux)

	return &HTTPServer{
		sc:     sc,
		states: states,
		health: health,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			// Chat requests wait on the model, which can take minutes on
			// cold starts; the write timeout must outlast the model timeout.
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Health returns the health checker so callers can flip readiness.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.httpServer.Addr
}

// Start serves until the listener fails or Shutdown is called.
func (s *HTTPServer) Start() error {
	slog.Info("starting chat server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests, stops the state store and cancels
// the server context.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	s.states.Stop()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.sc.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
