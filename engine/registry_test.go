package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/recallhq/recall-go-sdk/core"
)

type stubExecutor struct{}

func (stubExecutor) ExecuteTool(context.Context, string, json.RawMessage) (*core.ToolResult, error) {
	return &core.ToolResult{Success: true}, nil
}

func stubTool(name string) core.Tool {
	return core.NewExecutorTool(core.ToolDefinition{
		ToolName:        name,
		ToolDescription: "stub",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}, stubExecutor{})
}

func TestRegistryPreservesOrder(t *testing.T) {
	r := NewToolRegistry()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		r.Register(stubTool(name))
	}

	names := r.Names()
	want := []string{"charlie", "alpha", "bravo"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if r.Len() != 3 {
		t.Errorf("len = %d", r.Len())
	}
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	r := NewToolRegistry()
	r.Register(stubTool("alpha"))
	r.Register(stubTool("bravo"))
	r.Register(stubTool("alpha"))

	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}
	if names := r.Names(); names[0] != "alpha" || names[1] != "bravo" {
		t.Errorf("names = %v", names)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewToolRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Error("Get returned a tool for an unregistered name")
	}
}

func TestToAPITools(t *testing.T) {
	r := NewToolRegistry()
	r.Register(stubTool("alpha"))
	r.Register(stubTool("bravo"))

	apiTools := r.ToAPITools()
	if len(apiTools) != 2 {
		t.Fatalf("api tools = %d, want 2", len(apiTools))
	}
	if apiTools[0].OfTool == nil || apiTools[0].OfTool.Name != "alpha" {
		t.Errorf("first tool = %+v", apiTools[0])
	}
}

func TestToAPIToolsFiltered(t *testing.T) {
	r := NewToolRegistry()
	for _, name := range []string{"alpha", "bravo", "charlie"} {
		r.Register(stubTool(name))
	}

	filtered := r.ToAPIToolsFiltered("charlie", "alpha", "missing")
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(filtered))
	}
	// Registration order wins over argument order.
	if filtered[0].OfTool.Name != "alpha" || filtered[1].OfTool.Name != "charlie" {
		t.Errorf("filtered order: %q, %q", filtered[0].OfTool.Name, filtered[1].OfTool.Name)
	}
}
