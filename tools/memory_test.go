package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/recallhq/recall-go-sdk/core"
)

func TestDefinitionsCoverMemorySurface(t *testing.T) {
	defs := Definitions()
	if len(defs) != 8 {
		t.Fatalf("definitions = %d, want 8", len(defs))
	}

	want := []string{
		ListAvailableVideos, GetVideoInfo, GetMemoryContext,
		QueryMemoryByTopic, AnalyzeHypothesis, GetFocusedMemoryInsights,
		SemanticSearchSTM, CompareVideos,
	}
	for i, def := range defs {
		if def.ToolName != want[i] {
			t.Errorf("defs[%d] = %q, want %q", i, def.ToolName, want[i])
		}
		if def.ToolDescription == "" {
			t.Errorf("%s has no description", def.ToolName)
		}
	}
}

func TestDefinitionsRequireKeyParams(t *testing.T) {
	required := map[string][]string{
		ListAvailableVideos:      nil,
		GetVideoInfo:             {"video_id"},
		GetMemoryContext:         nil,
		QueryMemoryByTopic:       {"topic"},
		AnalyzeHypothesis:        {"hypothesis"},
		GetFocusedMemoryInsights: {"aspect"},
		SemanticSearchSTM:        {"query"},
		CompareVideos:            {"video_id_1", "video_id_2"},
	}

	for _, def := range Definitions() {
		want := required[def.ToolName]
		got, _ := def.InputSchema["required"].([]string)
		if len(got) != len(want) {
			t.Errorf("%s required = %v, want %v", def.ToolName, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s required = %v, want %v", def.ToolName, got, want)
			}
		}
	}
}

func TestEveryDefinitionAcceptsThought(t *testing.T) {
	for _, def := range Definitions() {
		props, ok := def.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Fatalf("%s schema has no properties map", def.ToolName)
		}
		if _, ok := props["thought"]; !ok {
			t.Errorf("%s missing thought property", def.ToolName)
		}
		required, _ := def.InputSchema["required"].([]string)
		for _, field := range required {
			if field == "thought" {
				t.Errorf("%s requires thought; it must stay optional", def.ToolName)
			}
		}
	}
}

func TestWithThoughtDoesNotMutateInput(t *testing.T) {
	base := ObjectSchema(map[string]interface{}{
		"topic": StringProperty("topic"),
	}, "topic")

	decorated := WithThought(base)

	baseProps := base["properties"].(map[string]interface{})
	if _, leaked := baseProps["thought"]; leaked {
		t.Error("WithThought mutated the input schema")
	}
	decoratedProps := decorated["properties"].(map[string]interface{})
	if _, ok := decoratedProps["thought"]; !ok {
		t.Error("decorated schema missing thought")
	}
}

type echoExecutor struct {
	lastName string
}

func (e *echoExecutor) ExecuteTool(_ context.Context, name string, _ json.RawMessage) (*core.ToolResult, error) {
	e.lastName = name
	return &core.ToolResult{Success: true}, nil
}

func TestAllBindsEveryDefinition(t *testing.T) {
	exec := &echoExecutor{}
	bound := All(exec)
	if len(bound) != len(Definitions()) {
		t.Fatalf("bound %d tools, want %d", len(bound), len(Definitions()))
	}

	result, err := bound[0].Execute(context.Background(), &core.ToolParams{})
	if err != nil || !result.Success {
		t.Fatalf("Execute = %+v, %v", result, err)
	}
	if exec.lastName != ListAvailableVideos {
		t.Errorf("executor called with %q, want %q", exec.lastName, ListAvailableVideos)
	}
}
