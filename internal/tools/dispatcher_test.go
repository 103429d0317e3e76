package tools

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/dohr-michael/memoryd/internal/store"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "memories.db"))
	t.Cleanup(func() { _ = s.Close() })
	return NewDispatcher(s)
}

func invoke(t *testing.T, d *Dispatcher, name string, args map[string]any) string {
	t.Helper()
	text, err := d.Invoke(context.Background(), name, args)
	if err != nil {
		t.Fatalf("invoke %s: %v", name, err)
	}
	return text
}

var storedIDRe = regexp.MustCompile(`ID: (\d+)\.`)

func rememberOne(t *testing.T, d *Dispatcher, title, content string) string {
	t.Helper()
	text := invoke(t, d, ToolRemember, map[string]any{"title": title, "content": content})
	m := storedIDRe.FindStringSubmatch(text)
	if m == nil {
		t.Fatalf("no id in response %q", text)
	}
	return m[1]
}

func TestRemember(t *testing.T) {
	d := newTestDispatcher(t)

	text := invoke(t, d, ToolRemember, map[string]any{"title": "T", "content": "C"})
	if !strings.HasPrefix(text, "Memory stored successfully with ID: ") {
		t.Errorf("unexpected response %q", text)
	}
	if !storedIDRe.MatchString(text) {
		t.Errorf("response %q does not contain a numeric id", text)
	}
}

func TestRemember_MissingArguments(t *testing.T) {
	d := newTestDispatcher(t)

	cases := []map[string]any{
		nil,
		{},
		{"title": "only title"},
		{"content": "only content"},
		{"title": 42, "content": "C"},
	}
	for _, args := range cases {
		if _, err := d.Invoke(context.Background(), ToolRemember, args); err == nil {
			t.Errorf("args %v: expected protocol error", args)
		}
	}
}

func TestGetMemory_ByID(t *testing.T) {
	d := newTestDispatcher(t)
	id := rememberOne(t, d, "T", "C")

	text := invoke(t, d, ToolGetMemory, map[string]any{"memory_id": mustFloat(t, id)})
	want := "Title: T\n\nContent: C"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestGetMemory_ByTitle(t *testing.T) {
	d := newTestDispatcher(t)
	rememberOne(t, d, "Named", "Body")

	text := invoke(t, d, ToolGetMemory, map[string]any{"title": "Named"})
	want := "Title: Named\n\nContent: Body"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestGetMemory_NotFound(t *testing.T) {
	d := newTestDispatcher(t)

	text := invoke(t, d, ToolGetMemory, map[string]any{"memory_id": float64(999)})
	if text != "Memory not found." {
		t.Errorf("got %q, want %q", text, "Memory not found.")
	}

	text = invoke(t, d, ToolGetMemory, map[string]any{"title": "never stored"})
	if text != "Memory not found." {
		t.Errorf("got %q, want %q", text, "Memory not found.")
	}
}

func TestGetMemory_NoIdentifier(t *testing.T) {
	d := newTestDispatcher(t)

	want := "Error: Please provide either a memory_id or title."
	for _, args := range []map[string]any{nil, {}} {
		text := invoke(t, d, ToolGetMemory, args)
		if text != want {
			t.Errorf("args %v: got %q, want %q", args, text, want)
		}
	}
}

func TestListMemories_Empty(t *testing.T) {
	d := newTestDispatcher(t)

	text := invoke(t, d, ToolListMemories, nil)
	if text != "No memories stored yet." {
		t.Errorf("got %q, want %q", text, "No memories stored yet.")
	}
}

func TestListMemories(t *testing.T) {
	d := newTestDispatcher(t)
	rememberOne(t, d, "first", "a")
	rememberOne(t, d, "second", "b")

	text := invoke(t, d, ToolListMemories, nil)
	if !strings.HasPrefix(text, "Stored Memories:\n\n") {
		t.Errorf("unexpected header in %q", text)
	}
	if !strings.Contains(text, "- first\n") || !strings.Contains(text, "- second\n") {
		t.Errorf("listing %q missing titles", text)
	}
}

func TestUpdateMemory(t *testing.T) {
	d := newTestDispatcher(t)
	id := rememberOne(t, d, "old", "body")

	text := invoke(t, d, ToolUpdateMemory, map[string]any{
		"memory_id": mustFloat(t, id),
		"title":     "new",
	})
	want := "Memory " + id + " updated successfully."
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}

	text = invoke(t, d, ToolGetMemory, map[string]any{"memory_id": mustFloat(t, id)})
	if text != "Title: new\n\nContent: body" {
		t.Errorf("update not applied, got %q", text)
	}
}

func TestUpdateMemory_NotFound(t *testing.T) {
	d := newTestDispatcher(t)

	text := invoke(t, d, ToolUpdateMemory, map[string]any{
		"memory_id": float64(999),
		"title":     "anything",
	})
	if text != "Memory with ID 999 not found." {
		t.Errorf("got %q, want %q", text, "Memory with ID 999 not found.")
	}
}

func TestUpdateMemory_NoFields(t *testing.T) {
	d := newTestDispatcher(t)
	id := rememberOne(t, d, "T", "C")

	text := invoke(t, d, ToolUpdateMemory, map[string]any{"memory_id": mustFloat(t, id)})
	want := "Error: Please provide at least one field to update (title or content)."
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestUpdateMemory_MissingID(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Invoke(context.Background(), ToolUpdateMemory, map[string]any{"title": "x"})
	if err == nil {
		t.Fatal("expected protocol error")
	}
	if !strings.Contains(err.Error(), "memory_id") {
		t.Errorf("diagnostic %q does not mention memory_id", err)
	}
}

func TestDeleteMemory(t *testing.T) {
	d := newTestDispatcher(t)
	id := rememberOne(t, d, "doomed", "bye")

	text := invoke(t, d, ToolDeleteMemory, map[string]any{"memory_id": mustFloat(t, id)})
	want := "Memory " + id + " deleted successfully."
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}

	text = invoke(t, d, ToolDeleteMemory, map[string]any{"memory_id": mustFloat(t, id)})
	want = "Memory with ID " + id + " not found."
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestDeleteMemory_MissingID(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Invoke(context.Background(), ToolDeleteMemory, map[string]any{})
	if err == nil {
		t.Fatal("expected protocol error")
	}
	if !strings.Contains(err.Error(), "memory_id") {
		t.Errorf("diagnostic %q does not mention memory_id", err)
	}
}

func TestUnknownTool(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Invoke(context.Background(), "bogus_tool", map[string]any{})
	if err == nil {
		t.Fatal("expected protocol error")
	}
	if err.Error() != "Unknown tool: bogus_tool" {
		t.Errorf("diagnostic = %q, want %q", err.Error(), "Unknown tool: bogus_tool")
	}
}

func TestMemoryIDCoercion(t *testing.T) {
	d := newTestDispatcher(t)
	id := rememberOne(t, d, "T", "C")

	// JSON numbers arrive as float64, but clients also send strings.
	for _, v := range []any{mustFloat(t, id), id} {
		text := invoke(t, d, ToolGetMemory, map[string]any{"memory_id": v})
		if text != "Title: T\n\nContent: C" {
			t.Errorf("memory_id %v (%T): got %q", v, v, text)
		}
	}
}

// TestWorkflow exercises the full remember/get/list/update/delete cycle
// through the dispatcher.
func TestWorkflow(t *testing.T) {
	d := newTestDispatcher(t)

	id := rememberOne(t, d, "Meeting notes", "Discussed roadmap")

	text := invoke(t, d, ToolGetMemory, map[string]any{"memory_id": mustFloat(t, id)})
	if text != "Title: Meeting notes\n\nContent: Discussed roadmap" {
		t.Fatalf("get: %q", text)
	}

	text = invoke(t, d, ToolListMemories, nil)
	if !strings.Contains(text, "ID: "+id+" - Meeting notes") {
		t.Fatalf("list: %q", text)
	}

	invoke(t, d, ToolUpdateMemory, map[string]any{
		"memory_id": mustFloat(t, id),
		"content":   "Roadmap approved",
	})
	text = invoke(t, d, ToolGetMemory, map[string]any{"memory_id": mustFloat(t, id)})
	if text != "Title: Meeting notes\n\nContent: Roadmap approved" {
		t.Fatalf("get after update: %q", text)
	}

	invoke(t, d, ToolDeleteMemory, map[string]any{"memory_id": mustFloat(t, id)})
	text = invoke(t, d, ToolListMemories, nil)
	if text != "No memories stored yet." {
		t.Fatalf("list after delete: %q", text)
	}
}

func TestSpecs(t *testing.T) {
	specs := Specs()
	if len(specs) != 5 {
		t.Fatalf("expected 5 tool specs, got %d", len(specs))
	}

	byName := map[string]ToolSpec{}
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	remember, ok := byName[ToolRemember]
	if !ok {
		t.Fatal("remember spec missing")
	}
	if !remember.Parameters["title"].Required || !remember.Parameters["content"].Required {
		t.Error("remember: title and content must be required")
	}

	get, ok := byName[ToolGetMemory]
	if !ok {
		t.Fatal("get_memory spec missing")
	}
	for _, p := range get.Parameters {
		if p.Required {
			t.Error("get_memory: no parameter may be required")
		}
	}

	if len(byName[ToolListMemories].Parameters) != 0 {
		t.Error("list_memories: expected no parameters")
	}
	if !byName[ToolUpdateMemory].Parameters["memory_id"].Required {
		t.Error("update_memory: memory_id must be required")
	}
	if !byName[ToolDeleteMemory].Parameters["memory_id"].Required {
		t.Error("delete_memory: memory_id must be required")
	}
}

func mustFloat(t *testing.T, s string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return f
}
