package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/google"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/instrumentation"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/logging"
)

// OAuthHandler serves the Google account connect flow: /auth/google/start
// hands out an authorization URL bound to a one-time state token,
// /auth/google/callback redeems the state and stores the token for the
// identity that started the flow.
type OAuthHandler struct {
	sc     *ServerContext
	states *StateStore
}

// NewOAuthHandler creates the handler. The state store is owned by the
// caller so its lifecycle matches the HTTP server's.
func NewOAuthHandler(sc *ServerContext, states *StateStore) *OAuthHandler {
	return &OAuthHandler{sc: sc, states: states}
}

// RegisterOAuthEndpoints registers the connect flow on the mux.
func (h *OAuthHandler) RegisterOAuthEndpoints(mux *http.ServeMux) {
	mux.HandleFunc("/auth/google/start", h.handleStart)
	mux.HandleFunc("/auth/google/start/redirect", h.handleStartRedirect)
	mux.HandleFunc("/auth/google/callback", h.handleCallback)
}

// startFlow validates config, mints a state token for the identity and
// returns the Google authorization URL.
func (h *OAuthHandler) startFlow(w http.ResponseWriter, r *http.Request) (authURL, state string, ok bool) {
	if err := google.ValidateOAuthConfig(); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return "", "", false
	}

	identity := r.URL.Query().Get("user_id")
	if identity == "" {
		writeJSONError(w, http.StatusBadRequest, "user_id query parameter is required")
		return "", "", false
	}

	state = uuid.NewString()
	h.states.Put(state, identity)

	return google.AuthCodeURL(state), state, true
}

func (h *OAuthHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	authURL, state, ok := h.startFlow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"auth_url": authURL,
		"state":    state,
	})
}

func (h *OAuthHandler) handleStartRedirect(w http.ResponseWriter, r *http.Request) {
	authURL, _, ok := h.startFlow(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	state := query.Get("state")
	if state == "" {
		writeJSONError(w, http.StatusBadRequest, "missing state")
		return
	}

	identity, ok := h.states.Consume(state)
	if !ok {
		h.sc.Metrics().RecordOAuthAuth(r.Context(), instrumentation.OAuthResultFailure)
		writeJSONError(w, http.StatusBadRequest, "unknown or expired state")
		return
	}

	code := query.Get("code")
	if code == "" {
		h.sc.Metrics().RecordOAuthAuth(r.Context(), instrumentation.OAuthResultFailure)
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf(
			"OAuth error: %s %s", query.Get("error"), query.Get("error_description")))
		return
	}

	if err := google.ExchangeAndSaveToken(r.Context(), identity, code); err != nil {
		h.sc.Metrics().RecordOAuthAuth(r.Context(), instrumentation.OAuthResultFailure)
		h.sc.logger.Error("token exchange failed",
			logging.Operation("oauth_callback"),
			logging.UserHash(identity),
			logging.Err(err),
		)
		writeJSONError(w, http.StatusInternalServerError, "token exchange failed")
		return
	}

	h.sc.Metrics().RecordOAuthAuth(r.Context(), instrumentation.OAuthResultSuccess)
	h.sc.logger.Info("google account connected",
		logging.Operation("oauth_callback"),
		logging.UserHash(identity),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": fmt.Sprintf("Google connected for %s", identity),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
