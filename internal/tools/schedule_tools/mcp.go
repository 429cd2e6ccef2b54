package schedule_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterMCP exposes the scheduling tools over MCP. The handlers are the
// same ones the chat loop dispatches; results are returned as JSON text so
// MCP clients see exactly what the model would.
func RegisterMCP(s *mcpserver.MCPServer, deps Deps) error {
	getAvailabilityTool := mcp.NewTool(ToolGetAvailability,
		mcp.WithDescription("Check the organizer's busy blocks in a time window. Past windows are rolled forward week by week until they end in the future."),
		mcp.WithString("organizer_identity",
			mcp.Required(),
			mcp.Description("Identity whose calendar is queried (email address)"),
		),
		mcp.WithString("window_start",
			mcp.Required(),
			mcp.Description("Window start (ISO 8601, e.g. '2026-09-07T09:00:00'; naive timestamps use the organizer timezone)"),
		),
		mcp.WithString("window_end",
			mcp.Required(),
			mcp.Description("Window end (ISO 8601)"),
		),
		mcp.WithString("organizer_timezone",
			mcp.Description("IANA timezone for naive timestamps (default: 'America/New_York')"),
		),
		mcp.WithString("participants",
			mcp.Description("Comma-separated participant email addresses"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Intended meeting duration in minutes (default: 30)"),
		),
	)
	s.AddTool(getAvailabilityTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return dispatchMCP(ctx, deps, ToolGetAvailability, handleGetAvailability, request)
	})

	suggestTimesTool := mcp.NewTool(ToolSuggestTimes,
		mcp.WithDescription("Propose up to 3 open slots inside an availability window, honoring work-hour and weekday preferences."),
		mcp.WithObject("availability_blocks",
			mcp.Required(),
			mcp.Description("Result of get_availability: {window_start, window_end, busy: [{start, end}]}"),
		),
		mcp.WithString("organizer_timezone",
			mcp.Description("IANA timezone for naive timestamps (default: 'America/New_York')"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Slot duration in minutes (default: 30)"),
		),
		mcp.WithObject("preferences",
			mcp.Description("Optional {hours: {start: 'HH:MM', end: 'HH:MM'}, days: ['Mon', ...]}"),
		),
	)
	s.AddTool(suggestTimesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return dispatchMCP(ctx, deps, ToolSuggestTimes, handleSuggestTimes, request)
	})

	createEventTool := mcp.NewTool(ToolCreateEvent,
		mcp.WithDescription("Create a calendar event with optional Google Meet conferencing. Past slots are rolled forward to the next matching week."),
		mcp.WithString("organizer_identity",
			mcp.Required(),
			mcp.Description("Identity on whose calendar the event is created (email address)"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Event start (ISO 8601)"),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("Event end (ISO 8601, must be after start_time)"),
		),
		mcp.WithString("title",
			mcp.Description("Event title (default: 'Meeting with <first attendee>')"),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated attendee email addresses"),
		),
		mcp.WithString("organizer_timezone",
			mcp.Description("IANA timezone for naive timestamps (default: 'America/New_York')"),
		),
		mcp.WithString("conferencing",
			mcp.Description("Conferencing mode: 'google_meet' (default) or 'none'"),
		),
	)
	s.AddTool(createEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return dispatchMCP(ctx, deps, ToolCreateEvent, handleCreateEvent, request)
	})

	return nil
}

type toolHandler func(ctx context.Context, deps Deps, args map[string]any) (map[string]any, error)

func dispatchMCP(ctx context.Context, deps Deps, name string, handler toolHandler, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := handler(ctx, deps, request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", name, err)), nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode %s result: %v", name, err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
