package tools

import (
	"github.com/recallhq/recall-go-sdk/core"
)

// Tool names the model calls the memory surface by.
const (
	ListAvailableVideos      = "listAvailableVideos"
	GetVideoInfo             = "getVideoInfo"
	GetMemoryContext         = "getMemoryContext"
	QueryMemoryByTopic       = "queryMemoryByTopic"
	AnalyzeHypothesis        = "analyzeHypothesis"
	GetFocusedMemoryInsights = "getFocusedMemoryInsights"
	SemanticSearchSTM        = "semanticSearchSTM"
	CompareVideos            = "compareVideos"
)

// Definitions returns the tool definitions for the memory surface.
func Definitions() []core.ToolDefinition {
	return []core.ToolDefinition{
		{
			ToolName:        ListAvailableVideos,
			ToolDescription: "List all available recorded videos",
			InputSchema:     WithThought(ObjectSchema(map[string]interface{}{})),
		},
		{
			ToolName:        GetVideoInfo,
			ToolDescription: "Get detailed information about a specific video",
			InputSchema: WithThought(ObjectSchema(map[string]interface{}{
				"video_id": IntegerProperty("ID of the video to get info for"),
			}, "video_id")),
		},
		{
			ToolName:        GetMemoryContext,
			ToolDescription: "Get the current memory context about the user's patterns and preferences",
			InputSchema:     WithThought(ObjectSchema(map[string]interface{}{})),
		},
		{
			ToolName:        QueryMemoryByTopic,
			ToolDescription: "Query the memory system for information related to a specific topic or keyword",
			InputSchema: WithThought(ObjectSchema(map[string]interface{}{
				"topic": StringProperty("Topic or keyword to search for in memory"),
				"memory_type": StringEnumProperty(
					"Type of memory to search: 'short_term', 'working', 'long_term', or 'all'",
					"short_term", "working", "long_term", "all",
				),
			}, "topic")),
		},
		{
			ToolName:        AnalyzeHypothesis,
			ToolDescription: "Analyze a hypothesis about the user and check if it can be corroborated by memory evidence",
			InputSchema: WithThought(ObjectSchema(map[string]interface{}{
				"hypothesis": StringProperty("The hypothesis about the user to analyze"),
			}, "hypothesis")),
		},
		{
			ToolName:        GetFocusedMemoryInsights,
			ToolDescription: "Get focused insights from memory about specific user patterns or behaviors",
			InputSchema: WithThought(ObjectSchema(map[string]interface{}{
				"aspect": StringEnumProperty(
					"The aspect to focus on: 'skills', 'preferences', 'challenges', 'goals', 'workflows', or 'traits'",
					"skills", "preferences", "challenges", "goals", "workflows", "traits",
				),
				"detail_level": StringEnumProperty(
					"Level of detail: 'summary' or 'detailed'",
					"summary", "detailed",
				),
			}, "aspect")),
		},
		{
			ToolName:        SemanticSearchSTM,
			ToolDescription: "Perform a semantic search across short-term memory for related concepts",
			InputSchema: WithThought(ObjectSchema(map[string]interface{}{
				"query":       StringProperty("The query to semantically search for in short-term memory"),
				"max_results": IntegerProperty("Maximum number of results to return"),
			}, "query")),
		},
		{
			ToolName:        CompareVideos,
			ToolDescription: "Compare two videos and identify similarities, differences, and patterns",
			InputSchema: WithThought(ObjectSchema(map[string]interface{}{
				"video_id_1": IntegerProperty("ID of the first video to compare"),
				"video_id_2": IntegerProperty("ID of the second video to compare"),
			}, "video_id_1", "video_id_2")),
		},
	}
}

// All binds every memory tool definition to the given executor.
func All(executor core.ToolExecutor) []core.Tool {
	defs := Definitions()
	out := make([]core.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, core.NewExecutorTool(def, executor))
	}
	return out
}
