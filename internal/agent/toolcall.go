package agent

import (
	"encoding/json"
	"strings"
)

// ToolCall is a structured tool request emitted by the model as its entire
// reply: a JSON object with a string "tool" and an object "args".
type ToolCall struct {
	Tool string
	Args map[string]any
}

// ParseToolCall decides whether a model reply is a tool call. The reply is
// a tool call only when, after trimming whitespace, it starts with "{",
// parses as a JSON object, and carries a string "tool" field together with
// an object "args" field. Anything else is treated as plain text for the
// user, including JSON that merely mentions a tool name.
func ParseToolCall(reply string) (*ToolCall, bool) {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, false
	}

	name, ok := raw["tool"].(string)
	if !ok || name == "" {
		return nil, false
	}
	args, ok := raw["args"].(map[string]any)
	if !ok {
		return nil, false
	}

	return &ToolCall{Tool: name, Args: args}, true
}
