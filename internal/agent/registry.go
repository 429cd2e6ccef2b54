package agent

import (
	"context"
	"sort"
)

// ToolFunc executes a single tool invocation. Args arrive exactly as the
// model produced them, plus any fields the loop injects (such as the
// organizer identity). The returned map is serialized back to the model.
type ToolFunc func(ctx context.Context, args map[string]any) (map[string]any, error)

// Registry maps tool names to implementations. It is populated once at
// startup and read-only afterwards, so no locking is needed.
type Registry struct {
	tools map[string]ToolFunc
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]ToolFunc)}
}

// Register adds a tool under the given name, replacing any previous
// registration.
func (r *Registry) Register(name string, fn ToolFunc) {
	r.tools[name] = fn
}

// Lookup returns the registered implementation for name.
func (r *Registry) Lookup(name string) (ToolFunc, bool) {
	fn, ok := r.tools[name]
	return fn, ok
}

// Names lists the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
