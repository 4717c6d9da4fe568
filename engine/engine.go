// Package engine runs the agent loop: it sends the conversation to
// the Anthropic API, executes the tool calls the model makes through
// a ToolRegistry, and feeds the results back until the model answers
// in plain text or the turn limit is hit.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/recallhq/recall-go-sdk/core"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4096
	defaultMaxTurns  = 20
)

// ContextProvider supplies the personalized memory block appended to
// the system prompt before each run. *memory.Manager implements it.
type ContextProvider interface {
	PromptEnrichment() string
}

// Engine is the agent runner.
type Engine struct {
	client   *anthropic.Client
	registry *ToolRegistry
	provider ContextProvider
}

// Option configures the engine.
type Option func(*Engine)

// WithContextProvider enriches the system prompt with memory context
// on every run.
func WithContextProvider(p ContextProvider) Option {
	return func(e *Engine) {
		e.provider = p
	}
}

// NewEngine creates an engine with the given Anthropic client and
// tool registry.
func NewEngine(client *anthropic.Client, registry *ToolRegistry, opts ...Option) *Engine {
	e := &Engine{client: client, registry: registry}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's tool registry.
func (e *Engine) Registry() *ToolRegistry {
	return e.registry
}

// Input is one agent run request.
type Input struct {
	// UserMessage is the user's message to process.
	UserMessage string

	// History contains previous messages in the conversation.
	History []anthropic.MessageParam

	// SystemPrompt overrides DefaultSystemPrompt.
	SystemPrompt string

	// Model overrides the default Claude model.
	Model string

	// MaxTokens is the maximum response tokens. Default 4096.
	MaxTokens int64

	// MaxTurns bounds the tool-call loop. Default 20.
	MaxTurns int

	// StreamCallback receives text deltas as they arrive. Called with
	// done=true once the run completes.
	StreamCallback func(chunk string, done bool)
}

// Output is the result of an agent run.
type Output struct {
	// Text is the agent's final text response.
	Text string

	// ToolsUsed records all tools invoked during this run.
	ToolsUsed []core.ToolExecution

	// TokensUsed accumulates API token consumption across turns.
	TokensUsed core.TokenUsage

	// History is the full message list after the run, suitable for
	// passing back as Input.History on the next run.
	History []anthropic.MessageParam
}

// Run executes the agent loop until the model responds without tool
// calls or a limit is hit.
func (e *Engine) Run(ctx context.Context, input *Input) (*Output, error) {
	model := input.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := input.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	maxTurns := input.MaxTurns
	if maxTurns == 0 {
		maxTurns = defaultMaxTurns
	}
	systemPrompt := input.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if e.provider != nil {
		if enrichment := e.provider.PromptEnrichment(); enrichment != "" {
			systemPrompt += "\n\n" + enrichment
		}
	}

	session := NewSession()
	session.RestoreHistory(input.History)
	if input.UserMessage != "" {
		session.AddUserMessage(input.UserMessage)
	}

	apiTools := e.registry.ToAPITools()

	var totalTokens core.TokenUsage
	var toolsUsed []core.ToolExecution

	for {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("run canceled: %w", ctx.Err())
		}
		if session.TurnCount >= maxTurns {
			return nil, fmt.Errorf("exceeded maximum turns (%d)", maxTurns)
		}
		session.IncrementTurnCount()

		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(model),
			MaxTokens: maxTokens,
			Messages:  session.Messages(),
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
		}
		if len(apiTools) > 0 {
			params.Tools = apiTools
		}

		var resp *anthropic.Message
		var err error
		if input.StreamCallback != nil {
			resp, err = e.createMessageStreaming(ctx, params, input.StreamCallback)
		} else {
			resp, err = e.client.Messages.New(ctx, params)
		}
		if err != nil {
			return nil, fmt.Errorf("claude API error: %w", err)
		}

		totalTokens.InputTokens += int(resp.Usage.InputTokens)
		totalTokens.OutputTokens += int(resp.Usage.OutputTokens)

		var toolResults []anthropic.ContentBlockParamUnion
		var textResponse string

		for _, block := range resp.Content {
			switch block.Type {
			case "text":
				textResponse += block.Text

			case "tool_use":
				result, execution := e.executeToolBlock(ctx, session, block)
				toolResults = append(toolResults, result)
				toolsUsed = append(toolsUsed, execution)
			}
		}

		if len(toolResults) == 0 {
			session.AddAssistantResponse(resp)
			if input.StreamCallback != nil {
				input.StreamCallback("", true)
			}
			return &Output{
				Text:       textResponse,
				ToolsUsed:  toolsUsed,
				TokensUsed: totalTokens,
				History:    session.Messages(),
			}, nil
		}

		session.AddAssistantResponse(resp)
		session.AddToolResults(toolResults)
	}
}

// executeToolBlock runs one tool_use block and formats the result for
// the model. Tool failures become error tool results, not run errors,
// so the model can recover.
func (e *Engine) executeToolBlock(ctx context.Context, session *Session, block anthropic.ContentBlockUnion) (anthropic.ContentBlockParamUnion, core.ToolExecution) {
	toolName := block.Name
	inputBytes, _ := json.Marshal(block.Input)

	execution := core.ToolExecution{
		Tool:  toolName,
		Input: block.Input,
	}

	tool, ok := e.registry.Get(toolName)
	if !ok {
		execution.Error = fmt.Sprintf("unknown tool: %s", toolName)
		log.Printf("[ENGINE] Unknown tool requested: %s", toolName)
		return anthropic.NewToolResultBlock(block.ID, execution.Error, true), execution
	}

	start := time.Now()
	result, err := tool.Execute(ctx, &core.ToolParams{
		Input:     inputBytes,
		RequestID: session.ID,
	})
	execution.DurationMs = time.Since(start).Milliseconds()

	switch {
	case err != nil:
		execution.Error = err.Error()
		log.Printf("[ENGINE] Tool %s failed: %v", toolName, err)
		return anthropic.NewToolResultBlock(block.ID, err.Error(), true), execution

	case result != nil && !result.Success:
		execution.Error = result.Error
		log.Printf("[ENGINE] Tool %s returned error: %s", toolName, result.Error)
		return anthropic.NewToolResultBlock(block.ID, result.Error, true), execution

	default:
		var data interface{}
		if result != nil {
			data = result.Data
			execution.Result = result.Data
		}
		resultBytes, _ := json.Marshal(data)
		log.Printf("[ENGINE] Tool %s completed in %dms", toolName, execution.DurationMs)
		return anthropic.NewToolResultBlock(block.ID, string(resultBytes), false), execution
	}
}

// createMessageStreaming handles streaming API calls, accumulating
// the full message while forwarding text deltas to the callback.
func (e *Engine) createMessageStreaming(ctx context.Context, params anthropic.MessageNewParams, callback func(string, bool)) (*anthropic.Message, error) {
	stream := e.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			log.Printf("[ENGINE] Stream accumulation error: %v", err)
		}

		switch evt := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch delta := evt.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				callback(delta.Text, false)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return &message, nil
}
