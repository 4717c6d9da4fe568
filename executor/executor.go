// Package executor dispatches tool calls from the agent loop to the
// memory manager. It is the local core.ToolExecutor implementation;
// a remote deployment could substitute an HTTP-backed one without
// touching the engine or tool definitions.
package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/recallhq/recall-go-sdk/core"
	"github.com/recallhq/recall-go-sdk/memory"
	"github.com/recallhq/recall-go-sdk/tools"
)

// MemoryExecutor executes the memory tool surface against a Manager.
type MemoryExecutor struct {
	manager *memory.Manager
}

// New creates a MemoryExecutor over the given manager.
func New(manager *memory.Manager) *MemoryExecutor {
	return &MemoryExecutor{manager: manager}
}

// ExecuteTool implements core.ToolExecutor. Malformed input fields
// fall back to their defaults rather than failing the call; lookup
// failures and unknown aspects come back as unsuccessful results the
// model can read and recover from.
func (e *MemoryExecutor) ExecuteTool(ctx context.Context, name string, input json.RawMessage) (*core.ToolResult, error) {
	var base core.BaseInput
	decode(input, &base)
	if base.Thought != "" {
		log.Printf("[EXECUTOR] %s thought: %s", name, base.Thought)
	}

	switch name {
	case tools.ListAvailableVideos:
		return success(e.manager.ListVideos()), nil

	case tools.GetVideoInfo:
		var params struct {
			VideoID int `json:"video_id"`
		}
		decode(input, &params)
		info, err := e.manager.VideoInfo(params.VideoID)
		if err != nil {
			return failure(err), nil
		}
		return success(info), nil

	case tools.GetMemoryContext:
		return success(e.manager.Context()), nil

	case tools.QueryMemoryByTopic:
		var params struct {
			Topic      string `json:"topic"`
			MemoryType string `json:"memory_type"`
		}
		decode(input, &params)
		return success(e.manager.QueryByTopic(params.Topic, params.MemoryType)), nil

	case tools.AnalyzeHypothesis:
		var params struct {
			Hypothesis string `json:"hypothesis"`
		}
		decode(input, &params)
		return success(e.manager.AnalyzeHypothesis(params.Hypothesis)), nil

	case tools.GetFocusedMemoryInsights:
		var params struct {
			Aspect      string `json:"aspect"`
			DetailLevel string `json:"detail_level"`
		}
		decode(input, &params)
		report, err := e.manager.FocusedInsights(params.Aspect, params.DetailLevel)
		if err != nil {
			return failure(err), nil
		}
		return success(report), nil

	case tools.SemanticSearchSTM:
		var params struct {
			Query      string `json:"query"`
			MaxResults int    `json:"max_results"`
		}
		decode(input, &params)
		return success(e.manager.SemanticSearchSTM(ctx, params.Query, params.MaxResults)), nil

	case tools.CompareVideos:
		var params struct {
			VideoID1 int `json:"video_id_1"`
			VideoID2 int `json:"video_id_2"`
		}
		decode(input, &params)
		comparison, err := e.manager.CompareVideos(params.VideoID1, params.VideoID2)
		if err != nil {
			return failure(err), nil
		}
		return success(comparison), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// decode fills params from input, leaving zero values on malformed
// JSON so each tool falls back to its documented defaults.
func decode(input json.RawMessage, params interface{}) {
	if len(input) == 0 {
		return
	}
	_ = json.Unmarshal(input, params)
}

func success(data interface{}) *core.ToolResult {
	return &core.ToolResult{Success: true, Data: data}
}

func failure(err error) *core.ToolResult {
	var notFound *core.NotFoundError
	if errors.As(err, &notFound) {
		return &core.ToolResult{Success: false, Error: notFound.Message}
	}
	return &core.ToolResult{Success: false, Error: err.Error()}
}
