package memory

import (
	"fmt"
	"strings"
)

// Promotion thresholds: observations of an insight across the whole
// short-term log needed to advance a hypothesis one bucket.
const (
	corroborationThreshold = 2
	establishmentThreshold = 3
)

// candidateWindow is how many of the most recent entries seed new
// hypotheses on each pass.
const candidateWindow = 5

// UpdateWorkingMemory consolidates the short-term log into a new
// working-memory state. Pure function of its inputs: prev is not
// mutated, and the returned buckets share no slices with it.
//
// Passes, in order:
//  1. Derive candidate hypotheses from the most recent entries: one
//     focus hypothesis per topic, one workflow hypothesis per
//     non-empty actions field.
//  2. Merge candidates into untested, skipping any insight already
//     present in any bucket (the bucket union stays insight-unique).
//  3. Count, over the entire log, entries whose summary+actions
//     contain the insight as a case-insensitive substring; promote
//     untested hypotheses with 2+ observations to corroborated.
//  4. Re-count for everything now corroborated; 3+ observations
//     promotes to established.
//
// The insight text itself is the substring needle, so short or common
// phrases can self-match unrelated content. That imprecision is an
// accepted part of the contract, kept for compatibility.
func UpdateWorkingMemory(stm []MemoryEntry, prev WorkingMemory) WorkingMemory {
	untested := cloneHypotheses(prev.Untested)
	corroborated := cloneHypotheses(prev.Corroborated)
	established := cloneHypotheses(prev.Established)

	seen := make(map[string]bool)
	for _, h := range untested {
		seen[h.Insight] = true
	}
	for _, h := range corroborated {
		seen[h.Insight] = true
	}
	for _, h := range established {
		seen[h.Insight] = true
	}

	for _, candidate := range deriveCandidates(stm) {
		if seen[candidate.Insight] {
			continue
		}
		seen[candidate.Insight] = true
		untested = append(untested, candidate)
	}

	remaining := untested[:0:0]
	for _, h := range untested {
		count := evidenceCount(stm, h.Insight)
		if count >= corroborationThreshold {
			h.Evidence = fmt.Sprintf("%s + %d more observations", h.Evidence, count-1)
			corroborated = append(corroborated, h)
			continue
		}
		remaining = append(remaining, h)
	}
	untested = remaining

	keep := corroborated[:0:0]
	for _, h := range corroborated {
		count := evidenceCount(stm, h.Insight)
		if count >= establishmentThreshold {
			h.Evidence = fmt.Sprintf("Consistently observed across %d interactions", count)
			established = append(established, h)
			continue
		}
		keep = append(keep, h)
	}
	corroborated = keep

	if untested == nil {
		untested = []Hypothesis{}
	}
	if corroborated == nil {
		corroborated = []Hypothesis{}
	}
	return WorkingMemory{
		Untested:     untested,
		Corroborated: corroborated,
		Established:  established,
	}
}

// deriveCandidates extracts hypothesis candidates from the tail of the
// short-term log.
func deriveCandidates(stm []MemoryEntry) []Hypothesis {
	recent := stm
	if len(recent) > candidateWindow {
		recent = recent[len(recent)-candidateWindow:]
	}

	var candidates []Hypothesis
	for _, entry := range recent {
		if entry.Type != EntryTypeVideoAnalysis {
			continue
		}
		for _, topic := range entry.Topics {
			candidates = append(candidates, Hypothesis{
				Insight:   fmt.Sprintf("User is currently focused on %s", topic),
				Evidence:  fmt.Sprintf("[Topic in recent video: %s]", entry.Summary),
				Relevance: "Current focus area",
			})
		}
		if entry.Actions != "" {
			candidates = append(candidates, Hypothesis{
				Insight:   fmt.Sprintf("User workflow involves: %s", entry.Actions),
				Evidence:  "[Actions in recent video]",
				Relevance: "Current workflow pattern",
			})
		}
	}
	return candidates
}

// evidenceCount counts entries whose summary+actions contain the
// insight as a case-insensitive substring.
func evidenceCount(stm []MemoryEntry, insight string) int {
	needle := strings.ToLower(insight)
	count := 0
	for _, entry := range stm {
		if entry.Type != EntryTypeVideoAnalysis {
			continue
		}
		content := strings.ToLower(entry.Summary + " " + entry.Actions)
		if strings.Contains(content, needle) {
			count++
		}
	}
	return count
}
