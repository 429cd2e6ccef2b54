// Package llm provides a client for chat completion against an Ollama
// server. The orchestration loop calls it twice per request at most: once
// with the user's message and once with a tool result appended.
package llm
