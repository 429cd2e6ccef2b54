// Package agent drives the tool orchestration loop: it sends the
// conversation to the model, detects an optional single tool call in the
// reply, dispatches it against a fixed registry, feeds the tool result back
// and returns the model's final natural-language answer.
//
// The loop makes at most two model calls per request and never retries a
// failed tool dispatch.
package agent
