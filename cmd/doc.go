// Package cmd implements the command-line interface for schedbot.
//
// This package provides the following commands:
//   - serve: Start the HTTP chat API with the OAuth connect flow
//   - mcp: Expose the scheduling tools over MCP stdio for AI assistants
//   - version: Display version information
//
// The serve command is the default when no subcommand is specified.
package cmd
