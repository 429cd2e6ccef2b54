// Package schedule_tools implements the three scheduling tools the
// assistant can dispatch: get_availability, suggest_times and create_event.
//
// The same handlers back both surfaces: the chat loop's registry and the
// MCP server. Handlers take the model-produced argument map, validate and
// coerce it, and return a JSON-safe result map.
package schedule_tools
