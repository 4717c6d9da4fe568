package engine

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
)

// Session tracks one agent run: the accumulated message list and the
// turn count against the run's limit. The session ID doubles as the
// request ID passed to tools.
type Session struct {
	ID        string
	TurnCount int

	messages []anthropic.MessageParam
}

// NewSession creates a session with a fresh ID.
func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// RestoreHistory seeds the session with prior conversation messages.
func (s *Session) RestoreHistory(history []anthropic.MessageParam) {
	s.messages = append(s.messages, history...)
}

// AddUserMessage appends a user text message.
func (s *Session) AddUserMessage(text string) {
	s.messages = append(s.messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
}

// AddAssistantResponse appends a full assistant response, including
// any tool_use blocks.
func (s *Session) AddAssistantResponse(resp *anthropic.Message) {
	s.messages = append(s.messages, resp.ToParam())
}

// AddToolResults appends tool result blocks as a user message.
func (s *Session) AddToolResults(results []anthropic.ContentBlockParamUnion) {
	s.messages = append(s.messages, anthropic.NewUserMessage(results...))
}

// Messages returns the accumulated message list.
func (s *Session) Messages() []anthropic.MessageParam {
	return s.messages
}

// IncrementTurnCount advances the turn counter.
func (s *Session) IncrementTurnCount() {
	s.TurnCount++
}
