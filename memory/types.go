package memory

import "github.com/recallhq/recall-go-sdk/core"

// EntryTypeVideoAnalysis is the only entry type the pipeline produces
// today; the field is kept explicit so other observation sources can
// share the log later.
const EntryTypeVideoAnalysis = "video_analysis"

// MemoryEntry is one normalized observation in short-term memory.
// Immutable once appended; it only leaves the log through eviction.
type MemoryEntry struct {
	Type              string             `json:"type"`
	Timestamp         string             `json:"timestamp"`
	Summary           string             `json:"summary"`
	Topics            []string           `json:"topics"`
	Tags              []string           `json:"tags"`
	Actions           string             `json:"actions"`
	ScreenContent     string             `json:"screenContent"`
	TranscriptExcerpt *TranscriptExcerpt `json:"transcript_excerpt,omitempty"`
}

// TranscriptExcerpt is the lossy compaction of a transcript.
// Exactly one form is populated:
//   - Lines: the whole transcript (10 lines or fewer)
//   - Start/End: first 3 and last 3 lines of a longer transcript
//   - Text: a string transcript truncated to 500 characters
type TranscriptExcerpt struct {
	Lines []core.TranscriptLine `json:"lines,omitempty"`
	Start []core.TranscriptLine `json:"start,omitempty"`
	End   []core.TranscriptLine `json:"end,omitempty"`
	Text  string                `json:"text,omitempty"`
}

// texts returns every searchable text fragment of the excerpt.
func (t *TranscriptExcerpt) texts() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, line := range t.Lines {
		out = append(out, line.Text)
	}
	for _, line := range t.Start {
		out = append(out, line.Text)
	}
	for _, line := range t.End {
		out = append(out, line.Text)
	}
	if t.Text != "" {
		out = append(out, t.Text)
	}
	return out
}

// Hypothesis is a graded observation about the user. Identity is the
// Insight string: two hypotheses with identical text are the same
// entity, and an insight lives in exactly one working-memory bucket.
type Hypothesis struct {
	Insight   string `json:"insight"`
	Evidence  string `json:"evidence"`
	Relevance string `json:"relevance"`
}

// WorkingMemory holds hypotheses in three evidence-graded buckets.
// Promotion moves a hypothesis to the next bucket; nothing is demoted
// or pruned.
type WorkingMemory struct {
	Untested     []Hypothesis `json:"untested_hypotheses"`
	Corroborated []Hypothesis `json:"corroborated_hypotheses"`
	Established  []Hypothesis `json:"established_facts"`
}

// NewWorkingMemory returns empty buckets.
func NewWorkingMemory() WorkingMemory {
	return WorkingMemory{
		Untested:     []Hypothesis{},
		Corroborated: []Hypothesis{},
		Established:  []Hypothesis{},
	}
}

// DefaultProfileSummary is the profile summary of a fresh store.
const DefaultProfileSummary = "New user profile - limited information available"

// LongTermProfile is the persistent categorized user profile.
// Category lists grow monotonically and hold no duplicates.
type LongTermProfile struct {
	ProfileSummary string            `json:"profile_summary"`
	Skills         SkillsKnowledge   `json:"skills_and_knowledge"`
	Preferences    PreferencesHabits `json:"preferences_and_habits"`
	Workflows      Workflows         `json:"workflows"`
	Challenges     Challenges        `json:"challenges"`
	Goals          GoalsMotivations  `json:"goals_and_motivations"`
	Traits         TraitsAttitudes   `json:"traits_and_attitudes"`
}

type SkillsKnowledge struct {
	ConfirmedSkills []string `json:"confirmed_skills"`
	InferredSkills  []string `json:"inferred_skills"`
	KnowledgeGaps   []string `json:"knowledge_gaps"`
}

type PreferencesHabits struct {
	UIPreferences   []string `json:"ui_preferences"`
	WorkflowHabits  []string `json:"workflow_habits"`
	ToolPreferences []string `json:"tool_preferences"`
}

type Workflows struct {
	CommonTasks       []string `json:"common_tasks"`
	Approaches        []string `json:"approaches"`
	FrequencyPatterns []string `json:"frequency_patterns"`
}

type Challenges struct {
	RecurringFrustrations []string `json:"recurring_frustrations"`
	Difficulties          []string `json:"difficulties"`
	Blockers              []string `json:"blockers"`
}

type GoalsMotivations struct {
	StatedGoals   []string `json:"stated_goals"`
	InferredGoals []string `json:"inferred_goals"`
	Motivations   []string `json:"motivations"`
}

type TraitsAttitudes struct {
	CommunicationStyle []string `json:"communication_style"`
	DecisionMaking     []string `json:"decision_making"`
	LearningApproach   []string `json:"learning_approach"`
}

// NewLongTermProfile returns the documented default profile: empty
// category lists and the default summary.
func NewLongTermProfile() LongTermProfile {
	return LongTermProfile{
		ProfileSummary: DefaultProfileSummary,
		Skills: SkillsKnowledge{
			ConfirmedSkills: []string{},
			InferredSkills:  []string{},
			KnowledgeGaps:   []string{},
		},
		Preferences: PreferencesHabits{
			UIPreferences:   []string{},
			WorkflowHabits:  []string{},
			ToolPreferences: []string{},
		},
		Workflows: Workflows{
			CommonTasks:       []string{},
			Approaches:        []string{},
			FrequencyPatterns: []string{},
		},
		Challenges: Challenges{
			RecurringFrustrations: []string{},
			Difficulties:          []string{},
			Blockers:              []string{},
		},
		Goals: GoalsMotivations{
			StatedGoals:   []string{},
			InferredGoals: []string{},
			Motivations:   []string{},
		},
		Traits: TraitsAttitudes{
			CommunicationStyle: []string{},
			DecisionMaking:     []string{},
			LearningApproach:   []string{},
		},
	}
}

// Activity is a projection of a recent STM entry for the context view.
type Activity struct {
	Timestamp string   `json:"timestamp"`
	Summary   string   `json:"summary"`
	Topics    []string `json:"topics"`
}

// MemoryContext is the derived read-only snapshot handed to the
// conversational layer. Recomputed on every request, never stored.
type MemoryContext struct {
	Profile          string       `json:"profile"`
	CurrentFocus     string       `json:"current_focus"`
	EstablishedFacts []Hypothesis `json:"established_facts"`
	RecentActivities []Activity   `json:"recent_activities"`
	Skills           []string     `json:"skills"`
	Preferences      []string     `json:"preferences"`
	Challenges       []string     `json:"challenges"`
	Goals            []string     `json:"goals"`
}

// EntryDigest is a sanitized projection of a MemoryEntry for query
// responses: no actions, screen content, or transcript.
type EntryDigest struct {
	Type      string   `json:"type"`
	Timestamp string   `json:"timestamp"`
	Summary   string   `json:"summary"`
	Topics    []string `json:"topics"`
	Tags      []string `json:"tags"`
}

func digest(e MemoryEntry) EntryDigest {
	return EntryDigest{
		Type:      e.Type,
		Timestamp: e.Timestamp,
		Summary:   e.Summary,
		Topics:    e.Topics,
		Tags:      e.Tags,
	}
}

func cloneHypotheses(in []Hypothesis) []Hypothesis {
	out := make([]Hypothesis, len(in))
	copy(out, in)
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
