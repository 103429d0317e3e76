// Package tools maps named tool invocations to store calls and formatted
// text responses.
package tools

// ParamSpec describes a single tool parameter.
type ParamSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// ToolSpec describes a tool: its name, description, and parameters.
type ToolSpec struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ParamSpec `json:"parameters,omitempty"`
}

// Tool names handled by the dispatcher.
const (
	ToolRemember     = "remember"
	ToolGetMemory    = "get_memory"
	ToolListMemories = "list_memories"
	ToolUpdateMemory = "update_memory"
	ToolDeleteMemory = "delete_memory"
)

// Specs returns the static descriptors for the five memory tools, in a fixed
// order. The listing is pure metadata and never touches the store.
func Specs() []ToolSpec {
	return []ToolSpec{
		{
			Name:        ToolRemember,
			Description: "Store a new memory.",
			Parameters: map[string]ParamSpec{
				"title": {
					Type:        "string",
					Description: "A concise title for the memory",
					Required:    true,
				},
				"content": {
					Type:        "string",
					Description: "The full content of the memory to store",
					Required:    true,
				},
			},
		},
		{
			Name:        ToolGetMemory,
			Description: "Retrieve a specific memory by ID or title.",
			Parameters: map[string]ParamSpec{
				"memory_id": {
					Type:        "integer",
					Description: "The ID of the memory to retrieve",
				},
				"title": {
					Type:        "string",
					Description: "The title of the memory to retrieve",
				},
			},
		},
		{
			Name:        ToolListMemories,
			Description: "List all stored memories.",
		},
		{
			Name:        ToolUpdateMemory,
			Description: "Update an existing memory.",
			Parameters: map[string]ParamSpec{
				"memory_id": {
					Type:        "integer",
					Description: "The ID of the memory to update",
					Required:    true,
				},
				"title": {
					Type:        "string",
					Description: "Optional new title for the memory",
				},
				"content": {
					Type:        "string",
					Description: "Optional new content for the memory",
				},
			},
		},
		{
			Name:        ToolDeleteMemory,
			Description: "Delete a memory.",
			Parameters: map[string]ParamSpec{
				"memory_id": {
					Type:        "integer",
					Description: "The ID of the memory to delete",
					Required:    true,
				},
			},
		},
	}
}
