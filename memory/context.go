package memory

import (
	"fmt"
	"strings"
)

// focusPhrase is the insight fragment that identifies a current-focus
// hypothesis during context composition.
const focusPhrase = "currently focused on"

// defaultRecentActivities is how many recent entries the context view
// projects when the caller does not say.
const defaultRecentActivities = 3

// ComposeContext merges the three tiers into the read-only snapshot
// handed to the conversational layer. Pure and recomputed per call.
func ComposeContext(stm []MemoryEntry, wm WorkingMemory, ltm LongTermProfile) MemoryContext {
	goals := make([]string, 0, len(ltm.Goals.InferredGoals)+len(ltm.Goals.StatedGoals))
	goals = append(goals, ltm.Goals.InferredGoals...)
	goals = append(goals, ltm.Goals.StatedGoals...)

	return MemoryContext{
		Profile:          ltm.ProfileSummary,
		CurrentFocus:     extractCurrentFocus(stm, wm),
		EstablishedFacts: cloneHypotheses(wm.Established),
		RecentActivities: recentActivities(stm, defaultRecentActivities),
		Skills:           cloneStrings(ltm.Skills.ConfirmedSkills),
		Preferences:      cloneStrings(ltm.Preferences.WorkflowHabits),
		Challenges:       cloneStrings(ltm.Challenges.Difficulties),
		Goals:            goals,
	}
}

// extractCurrentFocus resolves the user's current focus, preferring
// established facts, then corroborated hypotheses, then the latest
// short-term entry.
func extractCurrentFocus(stm []MemoryEntry, wm WorkingMemory) string {
	for _, fact := range wm.Established {
		if strings.Contains(fact.Insight, focusPhrase) {
			return fact.Insight
		}
	}
	for _, hypo := range wm.Corroborated {
		if strings.Contains(hypo.Insight, focusPhrase) {
			return hypo.Insight
		}
	}
	if len(stm) > 0 {
		latest := stm[len(stm)-1]
		if latest.Type == EntryTypeVideoAnalysis {
			return fmt.Sprintf("Recently recorded video about %s", latest.Summary)
		}
	}
	return "No clear current focus"
}

// recentActivities projects the last count entries, most recent first.
func recentActivities(stm []MemoryEntry, count int) []Activity {
	if count > len(stm) {
		count = len(stm)
	}
	activities := make([]Activity, 0, count)
	for i := len(stm) - 1; i >= len(stm)-count; i-- {
		entry := stm[i]
		if entry.Type != EntryTypeVideoAnalysis {
			continue
		}
		activities = append(activities, Activity{
			Timestamp: entry.Timestamp,
			Summary:   entry.Summary,
			Topics:    entry.Topics,
		})
	}
	return activities
}
