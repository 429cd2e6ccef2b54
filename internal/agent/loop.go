package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/llm"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/logging"
)

// organizerIdentityArg is injected into tool args before dispatch so tools
// never depend on the model to relay the caller's identity correctly.
const organizerIdentityArg = "organizer_identity"

// noResponsePlaceholder is returned when the model answers a tool result
// with an empty reply.
const noResponsePlaceholder = "(no response)"

// ModelClient is the slice of the LLM client the loop needs.
type ModelClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
	Model() string
}

// Agent runs the chat loop for a single request: at most one model call to
// produce a reply or tool call, one tool dispatch, and at most one more
// model call to phrase the tool result.
type Agent struct {
	model    ModelClient
	registry *Registry
	logger   *slog.Logger
}

func New(model ModelClient, registry *Registry, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{model: model, registry: registry, logger: logger}
}

// HandleChat processes one user message on behalf of identity and returns
// the assistant's reply text.
//
// Errors are typed: *UnknownToolError when the model names an unregistered
// tool, *ToolExecutionError when a registered tool fails, and the model
// client's own errors (such as *llm.ModelUnavailableError) when a model
// call fails.
func (a *Agent) HandleChat(ctx context.Context, identity, message string) (string, error) {
	log := a.logger.With(
		logging.Operation("handle_chat"),
		logging.Model(a.model.Model()),
		logging.UserHash(identity),
	)

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: message},
	}

	first, err := a.model.Complete(ctx, messages)
	if err != nil {
		return "", err
	}

	call, ok := ParseToolCall(first)
	if !ok {
		log.Debug("reply without tool call")
		return first, nil
	}

	fn, ok := a.registry.Lookup(call.Tool)
	if !ok {
		log.Warn("model requested unregistered tool", logging.Tool(call.Tool))
		return "", &UnknownToolError{Name: call.Tool}
	}

	if _, present := call.Args[organizerIdentityArg]; !present {
		call.Args[organizerIdentityArg] = identity
	}

	start := time.Now()
	result, err := fn(ctx, call.Args)
	if err != nil {
		log.Error("tool dispatch failed",
			logging.Tool(call.Tool),
			logging.Duration(time.Since(start)),
			logging.Err(err),
		)
		return "", &ToolExecutionError{Tool: call.Tool, Err: err}
	}
	log.Info("tool dispatched",
		logging.Tool(call.Tool),
		logging.Duration(time.Since(start)),
		logging.Status(logging.StatusSuccess),
	)

	messages = append(messages,
		llm.Message{Role: llm.RoleAssistant, Content: encodeToolResult(call.Tool, result)},
	)

	final, err := a.model.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	if final == "" {
		return noResponsePlaceholder, nil
	}
	return final, nil
}

// encodeToolResult wraps a tool result as the synthetic assistant turn the
// model sees before producing its final reply.
func encodeToolResult(name string, result map[string]any) string {
	payload := map[string]any{
		"tool_result": map[string]any{
			"name":   name,
			"result": result,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		// Tool results are built from JSON-safe values; this only fires
		// if a tool returns something unmarshalable.
		return `{"tool_result":{"name":"` + name + `","result":null}}`
	}
	return string(data)
}
