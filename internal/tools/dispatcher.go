package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dohr-michael/memoryd/internal/store"
)

// Dispatcher translates tool invocations into store calls.
//
// Invoke returns an error only for malformed invocations (unknown tool,
// missing required arguments); the transport surfaces those with its error
// flag. Everything else, including "not found" and storage failures, comes
// back as ordinary response text.
type Dispatcher struct {
	store *store.Store
}

// NewDispatcher creates a Dispatcher backed by s.
func NewDispatcher(s *store.Store) *Dispatcher {
	return &Dispatcher{store: s}
}

// Invoke runs the named tool with the given arguments. A nil args map means
// the caller sent no arguments at all.
func (d *Dispatcher) Invoke(_ context.Context, name string, args map[string]any) (string, error) {
	slog.Debug("tool invoked", "id", invocationID(), "tool", name)

	switch name {
	case ToolRemember:
		return d.remember(args)
	case ToolGetMemory:
		return d.getMemory(args), nil
	case ToolListMemories:
		return d.listMemories(), nil
	case ToolUpdateMemory:
		return d.updateMemory(args)
	case ToolDeleteMemory:
		return d.deleteMemory(args)
	default:
		return "", fmt.Errorf("Unknown tool: %s", name)
	}
}

func (d *Dispatcher) remember(args map[string]any) (string, error) {
	title, okTitle := stringArg(args, "title")
	content, okContent := stringArg(args, "content")
	if !okTitle || !okContent {
		return "", fmt.Errorf("Missing title or content arguments")
	}

	id, err := d.store.Add(title, content)
	if err != nil {
		return fmt.Sprintf("Error storing memory: %v", err), nil
	}
	return fmt.Sprintf("Memory stored successfully with ID: %d.", id), nil
}

func (d *Dispatcher) getMemory(args map[string]any) string {
	var (
		m   *store.Memory
		err error
	)

	switch {
	case hasArg(args, "memory_id"):
		id, ok := intArg(args, "memory_id")
		if !ok {
			return fmt.Sprintf("Error retrieving memory: invalid memory_id: %v", args["memory_id"])
		}
		m, err = d.store.GetByID(id)
	case hasArg(args, "title"):
		title, ok := stringArg(args, "title")
		if !ok {
			return fmt.Sprintf("Error retrieving memory: invalid title: %v", args["title"])
		}
		m, err = d.store.GetByTitle(title)
	default:
		return "Error: Please provide either a memory_id or title."
	}

	if err != nil {
		return fmt.Sprintf("Error retrieving memory: %v", err)
	}
	if m == nil {
		return "Memory not found."
	}
	return fmt.Sprintf("Title: %s\n\nContent: %s", m.Title, m.Content)
}

func (d *Dispatcher) listMemories() string {
	refs, err := d.store.List()
	if err != nil {
		return fmt.Sprintf("Error listing memories: %v", err)
	}
	if len(refs) == 0 {
		return "No memories stored yet."
	}

	var b strings.Builder
	b.WriteString("Stored Memories:\n\n")
	for _, ref := range refs {
		fmt.Fprintf(&b, "ID: %d - %s\n", ref.ID, ref.Title)
	}
	return b.String()
}

func (d *Dispatcher) updateMemory(args map[string]any) (string, error) {
	id, err := requiredID(args)
	if err != nil {
		return "", err
	}

	var patch store.Patch
	if title, ok := stringArg(args, "title"); ok {
		patch.Title = &title
	}
	if content, ok := stringArg(args, "content"); ok {
		patch.Content = &content
	}
	if patch.Empty() {
		return "Error: Please provide at least one field to update (title or content).", nil
	}

	ok, err := d.store.Update(id, patch)
	if err != nil {
		return fmt.Sprintf("Error updating memory: %v", err), nil
	}
	if !ok {
		return fmt.Sprintf("Memory with ID %d not found.", id), nil
	}
	return fmt.Sprintf("Memory %d updated successfully.", id), nil
}

func (d *Dispatcher) deleteMemory(args map[string]any) (string, error) {
	id, err := requiredID(args)
	if err != nil {
		return "", err
	}

	ok, err := d.store.Delete(id)
	if err != nil {
		return fmt.Sprintf("Error deleting memory: %v", err), nil
	}
	if !ok {
		return fmt.Sprintf("Memory with ID %d not found.", id), nil
	}
	return fmt.Sprintf("Memory %d deleted successfully.", id), nil
}

// requiredID extracts the mandatory memory_id argument. Absence or a
// non-numeric value is a malformed invocation.
func requiredID(args map[string]any) (int64, error) {
	if !hasArg(args, "memory_id") {
		return 0, fmt.Errorf("Missing memory_id argument")
	}
	id, ok := intArg(args, "memory_id")
	if !ok {
		return 0, fmt.Errorf("Invalid memory_id argument: %v", args["memory_id"])
	}
	return id, nil
}

func hasArg(args map[string]any, key string) bool {
	if args == nil {
		return false
	}
	v, ok := args[key]
	return ok && v != nil
}

func stringArg(args map[string]any, key string) (string, bool) {
	if !hasArg(args, key) {
		return "", false
	}
	s, ok := args[key].(string)
	return s, ok
}

// intArg accepts any JSON number form plus numeric strings, mirroring the
// loose typing of the protocol's argument mapping.
func intArg(args map[string]any, key string) (int64, bool) {
	if !hasArg(args, key) {
		return 0, false
	}
	switch v := args[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// invocationID generates a short correlation id for debug logging.
func invocationID() string {
	u := uuid.New().String()
	return "inv_" + strings.ReplaceAll(u[:8], "-", "")
}
