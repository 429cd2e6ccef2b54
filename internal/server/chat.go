package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/agent"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/instrumentation"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/llm"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/logging"
)

// ChatService is the request/response contract the chat endpoint fronts.
type ChatService interface {
	HandleChat(ctx context.Context, identity, message string) (string, error)
}

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse is the POST /chat reply body.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatHandler serves POST /chat.
type ChatHandler struct {
	chat    ChatService
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

func NewChatHandler(chat ChatService, metrics *instrumentation.Metrics, logger *slog.Logger) *ChatHandler {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{chat: chat, metrics: metrics, logger: logger}
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.serve(w, r)
	h.metrics.RecordHTTPRequest(r.Context(), r.Method, "/chat", status, time.Since(start))
}

func (h *ChatHandler) serve(w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return http.StatusMethodNotAllowed
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return http.StatusBadRequest
	}
	if req.UserID == "" || req.Message == "" {
		writeJSONError(w, http.StatusBadRequest, "user_id and message are required")
		return http.StatusBadRequest
	}

	reply, err := h.chat.HandleChat(r.Context(), req.UserID, req.Message)
	if err != nil {
		status, detail := mapChatError(err)
		h.metrics.RecordChatRequest(r.Context(), chatStatusLabel(err))
		h.logger.Error("chat request failed",
			logging.Operation("chat"),
			logging.UserHash(req.UserID),
			"http_status", status,
			logging.Err(err),
		)
		writeJSONError(w, status, detail)
		return status
	}

	h.metrics.RecordChatRequest(r.Context(), instrumentation.StatusSuccess)
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
	return http.StatusOK
}

// mapChatError translates the loop's typed errors to HTTP statuses: an
// unknown tool is the model's malformed request (400), a failing tool is a
// server fault (500), and model unavailability maps to the gateway codes
// (504 on timeout, 502 otherwise).
func mapChatError(err error) (int, string) {
	var unknownTool *agent.UnknownToolError
	if errors.As(err, &unknownTool) {
		return http.StatusBadRequest, "Unknown tool: " + unknownTool.Name
	}

	var execErr *agent.ToolExecutionError
	if errors.As(err, &execErr) {
		return http.StatusInternalServerError, "Tool " + execErr.Tool + " error: " + execErr.Err.Error()
	}

	var unavailable *llm.ModelUnavailableError
	if errors.As(err, &unavailable) {
		if unavailable.Timeout {
			return http.StatusGatewayTimeout, "model call timed out"
		}
		return http.StatusBadGateway, "model call failed"
	}

	return http.StatusInternalServerError, "internal error"
}

func chatStatusLabel(err error) string {
	var unavailable *llm.ModelUnavailableError
	if errors.As(err, &unavailable) && unavailable.Timeout {
		return instrumentation.StatusTimeout
	}
	return instrumentation.StatusError
}
