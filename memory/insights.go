package memory

import (
	"fmt"
	"strings"

	"github.com/recallhq/recall-go-sdk/core"
)

// Focused-insight aspects.
const (
	AspectSkills      = "skills"
	AspectPreferences = "preferences"
	AspectChallenges  = "challenges"
	AspectGoals       = "goals"
	AspectWorkflows   = "workflows"
	AspectTraits      = "traits"
)

// Detail levels for focused insights.
const (
	DetailSummary  = "summary"
	DetailDetailed = "detailed"
)

var validAspects = []string{
	AspectSkills, AspectPreferences, AspectChallenges,
	AspectGoals, AspectWorkflows, AspectTraits,
}

// InsightReport is the response to a focused-insight request.
type InsightReport struct {
	Aspect                 string              `json:"aspect"`
	DetailLevel            string              `json:"detail_level"`
	Data                   map[string][]string `json:"data"`
	RelatedHypotheses      []Hypothesis        `json:"related_hypotheses,omitempty"`
	RecentChallengeEntries []EntryDigest       `json:"recent_challenge_entries,omitempty"`
	Summary                string              `json:"summary"`
}

// FocusedInsights returns the long-term profile slice for one aspect.
// In detailed mode it additionally scans working memory (or, for
// challenges, the short-term log) for aspect-related material. An
// unknown aspect fails with UnrecognizedAspectError listing the valid
// set.
func (m *Manager) FocusedInsights(aspect, detail string) (*InsightReport, error) {
	aspect = strings.ToLower(aspect)
	if detail == "" {
		detail = DetailSummary
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	report := &InsightReport{Aspect: aspect, DetailLevel: detail}

	switch aspect {
	case AspectSkills:
		report.Data = map[string][]string{
			"confirmed_skills": m.ltm.Skills.ConfirmedSkills,
			"inferred_skills":  m.ltm.Skills.InferredSkills,
		}
		if detail == DetailDetailed {
			report.RelatedHypotheses = m.relatedHypothesesLocked(
				[]string{"skill", "know", "can", "able", "proficient"})
		}

	case AspectPreferences:
		report.Data = map[string][]string{
			"ui_preferences":   m.ltm.Preferences.UIPreferences,
			"workflow_habits":  m.ltm.Preferences.WorkflowHabits,
			"tool_preferences": m.ltm.Preferences.ToolPreferences,
		}
		if detail == DetailDetailed {
			report.RelatedHypotheses = m.relatedHypothesesLocked(
				[]string{"prefer", "like", "enjoy", "favorite"})
		}

	case AspectChallenges:
		report.Data = map[string][]string{
			"recurring_frustrations": m.ltm.Challenges.RecurringFrustrations,
			"difficulties":           m.ltm.Challenges.Difficulties,
			"blockers":               m.ltm.Challenges.Blockers,
		}
		if detail == DetailDetailed {
			var entries []EntryDigest
			keywords := []string{"error", "problem", "issue", "difficult", "challenge", "struggle"}
			for _, entry := range m.stm.All() {
				if entry.Type == EntryTypeVideoAnalysis && containsAny(entry.Summary, keywords) {
					entries = append(entries, digest(entry))
				}
			}
			report.RecentChallengeEntries = entries
		}

	case AspectGoals:
		report.Data = map[string][]string{
			"stated_goals":   m.ltm.Goals.StatedGoals,
			"inferred_goals": m.ltm.Goals.InferredGoals,
			"motivations":    m.ltm.Goals.Motivations,
		}

	case AspectWorkflows:
		report.Data = map[string][]string{
			"common_tasks":       m.ltm.Workflows.CommonTasks,
			"approaches":         m.ltm.Workflows.Approaches,
			"frequency_patterns": m.ltm.Workflows.FrequencyPatterns,
		}
		if detail == DetailDetailed {
			report.RelatedHypotheses = m.relatedHypothesesLocked([]string{"workflow"})
		}

	case AspectTraits:
		report.Data = map[string][]string{
			"communication_style": m.ltm.Traits.CommunicationStyle,
			"decision_making":     m.ltm.Traits.DecisionMaking,
			"learning_approach":   m.ltm.Traits.LearningApproach,
		}

	default:
		return nil, &core.UnrecognizedAspectError{Aspect: aspect, Valid: validAspects}
	}

	report.Summary = insightSummary(aspect, report.Data)
	return report, nil
}

// relatedHypothesesLocked collects established facts and corroborated
// hypotheses whose insight mentions any of the given keywords.
func (m *Manager) relatedHypothesesLocked(keywords []string) []Hypothesis {
	var related []Hypothesis
	for _, bucket := range [][]Hypothesis{m.wm.Established, m.wm.Corroborated} {
		for _, h := range bucket {
			if containsAny(h.Insight, keywords) {
				related = append(related, h)
			}
		}
	}
	return related
}

// insightSummary builds the one-line textual summary from category
// item counts.
func insightSummary(aspect string, data map[string][]string) string {
	switch aspect {
	case AspectSkills:
		confirmed := len(data["confirmed_skills"])
		inferred := len(data["inferred_skills"])
		if confirmed == 0 && inferred == 0 {
			return "No skills identified yet."
		}
		skillStr := "none confirmed yet"
		if top := firstN(data["confirmed_skills"], 3); len(top) > 0 {
			skillStr = strings.Join(top, ", ")
		}
		return fmt.Sprintf("User has %d confirmed skills (top: %s) and %d inferred skills.",
			confirmed, skillStr, inferred)

	case AspectPreferences:
		workflow := len(data["workflow_habits"])
		tool := len(data["tool_preferences"])
		if workflow == 0 && tool == 0 {
			return "No preferences identified yet."
		}
		return fmt.Sprintf("User has %d workflow preferences and %d tool preferences.", workflow, tool)

	case AspectChallenges:
		difficulties := len(data["difficulties"])
		blockers := len(data["blockers"])
		if difficulties == 0 && blockers == 0 {
			return "No challenges identified yet."
		}
		return fmt.Sprintf("User has experienced %d difficulties and %d blockers.", difficulties, blockers)

	case AspectGoals:
		stated := len(data["stated_goals"])
		inferred := len(data["inferred_goals"])
		if stated == 0 && inferred == 0 {
			return "No goals identified yet."
		}
		return fmt.Sprintf("User has %d stated goals and %d inferred goals.", stated, inferred)

	case AspectWorkflows:
		tasks := len(data["common_tasks"])
		approaches := len(data["approaches"])
		if tasks == 0 && approaches == 0 {
			return "No workflow patterns identified yet."
		}
		return fmt.Sprintf("User has %d common tasks and %d approach patterns.", tasks, approaches)

	case AspectTraits:
		comm := len(data["communication_style"])
		decision := len(data["decision_making"])
		learning := len(data["learning_approach"])
		if comm == 0 && decision == 0 && learning == 0 {
			return "No traits identified yet."
		}
		return fmt.Sprintf("User has %d communication style traits, %d decision-making traits, and %d learning approach traits.",
			comm, decision, learning)
	}
	return "No summary available."
}
