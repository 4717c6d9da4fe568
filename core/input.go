package core

// BaseInput holds the fields every tool input may carry. Executors
// decode it alongside the tool-specific parameters.
type BaseInput struct {
	// Thought contains the agent's reasoning about why it's using this tool.
	// Optional for the read-only memory tools.
	Thought string `json:"thought,omitempty"`
}
