package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dohr-michael/memoryd/internal/tools"
)

// ServerName is the implementation name advertised during the MCP handshake.
const ServerName = "Memory Manager"

// Version is the advertised server version.
const Version = "0.1.0"

// NewServer creates an MCP server exposing the five memory tools through the
// dispatcher. Tool listing is static metadata; only calls touch the store.
func NewServer(dispatcher *tools.Dispatcher) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    ServerName,
		Version: Version,
	}, nil)

	for _, spec := range tools.Specs() {
		mcpTool := toolSpecToMCPTool(&spec)

		// Capture name in closure
		toolName := spec.Name

		server.AddTool(mcpTool, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
			args, err := decodeArguments(req.Params.Arguments)
			if err != nil {
				slog.Debug("malformed tool arguments", "tool", toolName, "error", err)
				return &mcpsdk.CallToolResult{
					IsError: true,
					Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
				}, nil
			}

			text, err := dispatcher.Invoke(ctx, toolName, args)
			if err != nil {
				slog.Debug("tool call rejected", "tool", toolName, "error", err)
				return &mcpsdk.CallToolResult{
					IsError: true,
					Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
				}, nil
			}
			return &mcpsdk.CallToolResult{
				Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
			}, nil
		})

		slog.Debug("mcp tool registered", "tool", spec.Name)
	}

	return server
}

// decodeArguments unmarshals the raw argument payload. An absent payload
// yields a nil map, which the dispatcher treats differently from an empty one.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}
