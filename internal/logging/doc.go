// Package logging provides slog attribute helpers and shared attribute keys
// so log output stays consistent across the assistant's packages.
package logging
