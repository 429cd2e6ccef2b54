package agent

import "fmt"

// UnknownToolError indicates the model asked for a tool that is not
// registered. Callers treat this as a bad request rather than a server
// fault, since the reply itself was well formed.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ToolExecutionError wraps a failure inside a registered tool. The tool
// name is retained so handlers can log and surface which step failed.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}
