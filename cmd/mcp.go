package cmd

import (
	"context"
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/google"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/llm"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/server"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/tools/schedule_tools"
)

func newMCPCmd() *cobra.Command {
	var ollamaHost, ollamaModel string
	var ollamaTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Long: `Expose the scheduling tools (get_availability, suggest_times,
create_event) over the Model Context Protocol on stdio, so AI assistants
can call them directly without going through the chat loop.

Google Calendar access requires tokens created via the serve command's
/auth/google flow; identities without a token fail per call.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(ollamaHost, ollamaModel, ollamaTimeout)
		},
	}

	cmd.Flags().StringVar(&ollamaHost, "ollama-host", "", "Ollama base URL. Can also use OLLAMA_HOST env var.")
	cmd.Flags().StringVar(&ollamaModel, "ollama-model", "", "Ollama model name. Can also use OLLAMA_MODEL env var.")
	cmd.Flags().DurationVar(&ollamaTimeout, "ollama-timeout", 0, "Timeout for a single model call. Default: 180s")

	return cmd
}

func runMCP(ollamaHost, ollamaModel string, ollamaTimeout time.Duration) error {
	ctx := context.Background()

	var modelOpts []llm.Option
	if ollamaTimeout > 0 {
		modelOpts = append(modelOpts, llm.WithTimeout(ollamaTimeout))
	}
	model := llm.NewClient(ollamaHost, ollamaModel, modelOpts...)

	sc := server.NewServerContext(ctx, model, google.NewFileTokenProvider(), nil, nil)
	defer func() { _ = sc.Shutdown() }()

	s := mcpserver.NewMCPServer(
		"schedbot",
		version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := schedule_tools.RegisterMCP(s, schedule_tools.Deps{Calendars: sc}); err != nil {
		return fmt.Errorf("failed to register scheduling tools: %w", err)
	}

	return mcpserver.ServeStdio(s)
}
