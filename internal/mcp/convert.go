// Package mcp exposes the memory tools as an MCP server.
package mcp

import (
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dohr-michael/memoryd/internal/tools"
)

// toolSpecToMCPTool converts a tools.ToolSpec to an mcp.Tool with JSON Schema.
func toolSpecToMCPTool(spec *tools.ToolSpec) *mcpsdk.Tool {
	props := make(map[string]any, len(spec.Parameters))
	var required []string

	for name, p := range spec.Parameters {
		props[name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, name)
		}
	}

	// Sort required for deterministic output
	sort.Strings(required)

	inputSchema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		inputSchema["required"] = required
	}

	return &mcpsdk.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		InputSchema: inputSchema,
	}
}
