package llm

import "fmt"

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the Ollama /api/chat request body.
type chatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  chatOptions `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

// chatResponse is the non-streaming Ollama /api/chat response body.
type chatResponse struct {
	Message Message `json:"message"`
}

// ModelUnavailableError indicates the inference call failed or timed out.
// Timeout distinguishes "model is slow or loading" from other transport
// failures so the HTTP layer can map them to different status codes.
type ModelUnavailableError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *ModelUnavailableError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("model %s timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("model %s failed: %v", e.Op, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}
