package memory

import "fmt"

// PromptEnrichment renders the personalized memory block appended to
// the agent's system prompt. It exposes only the profile summary and
// current focus; the tools give the model everything deeper on demand.
func (m *Manager) PromptEnrichment() string {
	ctx := m.Context()
	return fmt.Sprintf(`You have built a memory of the user over time.

USER PROFILE: %s

CURRENT FOCUS: %s

When responding to the user, personalize your response based on this memory.
Refer to their established patterns, preferences, and goals when relevant.
Be conversational and helpful while maintaining appropriate context awareness.

CRITICAL: Use your memory tools actively to enhance your understanding and provide more valuable insights.
When faced with uncertainty, explore the memory system before stating you don't know.
If appropriate, form and test hypotheses about the user based on observed patterns.`,
		ctx.Profile, ctx.CurrentFocus)
}
