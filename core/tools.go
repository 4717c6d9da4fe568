package core

import (
	"context"
	"encoding/json"
)

// ToolDefinition describes a tool exposed to the model.
type ToolDefinition struct {
	// ToolName is the wire name the model calls the tool by.
	ToolName string

	// ToolDescription tells the model what the tool does.
	ToolDescription string

	// InputSchema is the JSON Schema for the tool's input.
	InputSchema map[string]interface{}
}

// ToolParams carries the input for one tool execution.
type ToolParams struct {
	// Input is the raw JSON input from the model.
	Input json.RawMessage

	// RequestID identifies the session or request for logging.
	RequestID string
}

// ToolResult is the outcome of one tool execution.
// On failure Success is false and Error holds a message the
// conversational layer can surface to the end user verbatim.
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ToolExecution records one tool invocation for the run output.
type ToolExecution struct {
	Tool       string          `json:"tool"`
	Input      json.RawMessage `json:"input,omitempty"`
	Result     interface{}     `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	DurationMs int64           `json:"duration_ms"`
}

// TokenUsage tracks model API token consumption.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Tool is a single executable tool.
type Tool interface {
	Name() string
	Definition() ToolDefinition
	Execute(ctx context.Context, params *ToolParams) (*ToolResult, error)
}

// ToolExecutor dispatches a named tool call to its implementation.
// Implementations can execute locally or proxy to a remote service.
type ToolExecutor interface {
	ExecuteTool(ctx context.Context, name string, input json.RawMessage) (*ToolResult, error)
}

// ExecutorTool adapts a ToolDefinition plus a ToolExecutor into a Tool.
type ExecutorTool struct {
	def      ToolDefinition
	executor ToolExecutor
}

// NewExecutorTool creates a Tool backed by the given executor.
func NewExecutorTool(def ToolDefinition, executor ToolExecutor) *ExecutorTool {
	return &ExecutorTool{def: def, executor: executor}
}

func (t *ExecutorTool) Name() string {
	return t.def.ToolName
}

func (t *ExecutorTool) Definition() ToolDefinition {
	return t.def
}

func (t *ExecutorTool) Execute(ctx context.Context, params *ToolParams) (*ToolResult, error) {
	return t.executor.ExecuteTool(ctx, t.def.ToolName, params.Input)
}
