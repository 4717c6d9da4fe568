package memory

import (
	"fmt"
	"strings"
)

// Keyword sets for profile extraction. Matching is case-insensitive
// substring over the whole topic, actions, or summary string.
var (
	skillKeywords     = []string{"programming", "coding", "development", "python", "javascript", "ai"}
	prefKeywords      = []string{"preferred", "likes"}
	challengeKeywords = []string{"difficult", "challenging", "struggle", "error", "problem", "issue"}
	goalKeywords      = []string{"goal", "aim", "objective", "trying to", "want to"}
)

// UpdateLongTermProfile integrates patterns from the short-term log
// into a new profile. Pure function: prev is not mutated. Every pass
// re-scans the entire log; the only incremental step is
// append-if-absent into the already deduplicated category lists, so
// the call is idempotent for an unchanged log.
//
// When the pass finds anything, the profile summary is rebuilt from
// this pass's local findings (up to 3 skills, up to 2 preferences),
// not from the accumulated lists.
func UpdateLongTermProfile(stm []MemoryEntry, prev LongTermProfile) LongTermProfile {
	next := prev
	next.Skills.ConfirmedSkills = cloneStrings(prev.Skills.ConfirmedSkills)
	next.Preferences.WorkflowHabits = cloneStrings(prev.Preferences.WorkflowHabits)
	next.Challenges.Difficulties = cloneStrings(prev.Challenges.Difficulties)
	next.Goals.InferredGoals = cloneStrings(prev.Goals.InferredGoals)

	var skills, prefs, challenges, goals orderedSet
	for _, entry := range stm {
		if entry.Type != EntryTypeVideoAnalysis {
			continue
		}
		for _, topic := range entry.Topics {
			if containsAny(topic, skillKeywords) {
				skills.add(topic)
			}
		}
		if containsAny(entry.Actions, prefKeywords) {
			prefs.add(entry.Actions)
		}
		if containsAny(entry.Summary, challengeKeywords) {
			challenges.add(entry.Summary)
		}
		if containsAny(entry.Summary, goalKeywords) {
			goals.add(entry.Summary)
		}
	}

	next.Skills.ConfirmedSkills = appendMissing(next.Skills.ConfirmedSkills, skills.items)
	next.Preferences.WorkflowHabits = appendMissing(next.Preferences.WorkflowHabits, prefs.items)
	next.Challenges.Difficulties = appendMissing(next.Challenges.Difficulties, challenges.items)
	next.Goals.InferredGoals = appendMissing(next.Goals.InferredGoals, goals.items)

	if len(skills.items)+len(prefs.items)+len(challenges.items)+len(goals.items) > 0 {
		next.ProfileSummary = summarizeProfile(skills.items, prefs.items)
	}
	return next
}

func summarizeProfile(skills, prefs []string) string {
	skillStr := "unknown skills"
	if len(skills) > 0 {
		skillStr = strings.Join(firstN(skills, 3), ", ")
	}
	prefStr := "unknown preferences"
	if len(prefs) > 0 {
		prefStr = strings.Join(firstN(prefs, 2), ", ")
	}
	return fmt.Sprintf("User profile with focus on %s, with %s", skillStr, prefStr)
}

// orderedSet is a string set that remembers insertion order, so
// profile output is deterministic.
type orderedSet struct {
	items []string
	index map[string]bool
}

func (s *orderedSet) add(v string) {
	if s.index == nil {
		s.index = make(map[string]bool)
	}
	if s.index[v] {
		return
	}
	s.index[v] = true
	s.items = append(s.items, v)
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func appendMissing(dst []string, items []string) []string {
	existing := make(map[string]bool, len(dst))
	for _, v := range dst {
		existing[v] = true
	}
	for _, v := range items {
		if !existing[v] {
			existing[v] = true
			dst = append(dst, v)
		}
	}
	return dst
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
