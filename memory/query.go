package memory

import (
	"math"
	"strings"
)

// Query scopes accepted by QueryByTopic.
const (
	ScopeShortTerm = "short_term"
	ScopeWorking   = "working"
	ScopeLongTerm  = "long_term"
	ScopeAll       = "all"
)

// WorkingMatch is a working-memory hit in a topic query.
type WorkingMatch struct {
	Kind       string     `json:"type"`
	Hypothesis Hypothesis `json:"data"`
}

// ProfileMatch is a long-term-profile hit in a topic query.
type ProfileMatch struct {
	Category string `json:"category"`
	Value    string `json:"data"`
}

// TopicQueryResult groups topic-query hits by memory tier.
type TopicQueryResult struct {
	Topic        string         `json:"topic"`
	Scope        string         `json:"memory_type"`
	ShortTerm    []EntryDigest  `json:"short_term,omitempty"`
	Working      []WorkingMatch `json:"working,omitempty"`
	LongTerm     []ProfileMatch `json:"long_term,omitempty"`
	TotalMatches int            `json:"total_matches"`
}

// QueryByTopic finds memory related to a topic or keyword via
// case-insensitive substring matching: against entry text in the
// short-term log, insight text in the working-memory buckets, and
// category strings in the long-term profile. An unknown scope yields
// zero matches rather than an error, matching the forgiving tool
// surface.
func (m *Manager) QueryByTopic(topic, scope string) *TopicQueryResult {
	if scope == "" {
		scope = ScopeAll
	}
	term := strings.ToLower(topic)

	m.mu.Lock()
	defer m.mu.Unlock()

	result := &TopicQueryResult{Topic: topic, Scope: scope}

	if scope == ScopeShortTerm || scope == ScopeAll {
		for _, entry := range m.stm.All() {
			if entryMatches(entry, term) {
				result.ShortTerm = append(result.ShortTerm, digest(entry))
			}
		}
	}

	if scope == ScopeWorking || scope == ScopeAll {
		buckets := []struct {
			kind       string
			hypotheses []Hypothesis
		}{
			{"untested_hypothesis", m.wm.Untested},
			{"corroborated_hypothesis", m.wm.Corroborated},
			{"established_fact", m.wm.Established},
		}
		for _, bucket := range buckets {
			for _, h := range bucket.hypotheses {
				if strings.Contains(strings.ToLower(h.Insight), term) {
					result.Working = append(result.Working, WorkingMatch{Kind: bucket.kind, Hypothesis: h})
				}
			}
		}
	}

	if scope == ScopeLongTerm || scope == ScopeAll {
		categories := []struct {
			name   string
			values []string
		}{
			{"skill", m.ltm.Skills.ConfirmedSkills},
			{"preference", m.ltm.Preferences.WorkflowHabits},
			{"challenge", m.ltm.Challenges.Difficulties},
			{"goal", m.ltm.Goals.InferredGoals},
		}
		for _, cat := range categories {
			for _, v := range cat.values {
				if strings.Contains(strings.ToLower(v), term) {
					result.LongTerm = append(result.LongTerm, ProfileMatch{Category: cat.name, Value: v})
				}
			}
		}
	}

	result.TotalMatches = len(result.ShortTerm) + len(result.Working) + len(result.LongTerm)
	return result
}

// entryMatches checks a short-term entry against a lowercased search
// term: summary, topics, tags, actions, and transcript excerpt text.
func entryMatches(entry MemoryEntry, term string) bool {
	if entry.Type != EntryTypeVideoAnalysis {
		return false
	}
	if strings.Contains(strings.ToLower(entry.Summary), term) {
		return true
	}
	for _, topic := range entry.Topics {
		if strings.Contains(strings.ToLower(topic), term) {
			return true
		}
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(entry.Actions), term) {
		return true
	}
	for _, text := range entry.TranscriptExcerpt.texts() {
		if strings.Contains(strings.ToLower(text), term) {
			return true
		}
	}
	return false
}

// EvidenceItem is one piece of evidence for or against a hypothesis.
type EvidenceItem struct {
	Source           string `json:"source"`
	EntryType        string `json:"entry_type,omitempty"`
	Category         string `json:"category,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
	Content          string `json:"content"`
	OriginalEvidence string `json:"original_evidence,omitempty"`
}

// HypothesisAnalysis is the verdict on a user hypothesis.
type HypothesisAnalysis struct {
	Hypothesis           string         `json:"hypothesis"`
	Status               string         `json:"status"`
	Confidence           float64        `json:"confidence"`
	Evidence             []EvidenceItem `json:"evidence"`
	CounterEvidence      []EvidenceItem `json:"counter_evidence"`
	EvidenceCount        int            `json:"evidence_count"`
	CounterEvidenceCount int            `json:"counter_evidence_count"`
}

// Hypothesis status labels, derived deterministically from the
// evidence / counter-evidence / profile-hit combination.
const (
	StatusUnverified        = "unverified"
	StatusSupported         = "supported"
	StatusStronglySupported = "strongly_supported"
	StatusConflicting       = "conflicting_evidence"
	StatusContradicted      = "contradicted"
	StatusSupportedByLTM    = "supported_by_ltm"
)

// AnalyzeHypothesis checks a free-text hypothesis about the user
// against all three memory tiers. Token overlap of the hypothesis
// against stored text counts as evidence; an established fact that
// matches the hypothesis's negation counts against it. Long-term
// profile checks are gated on trigger words in the hypothesis itself.
//
// Confidence starts at 0.3 + 0.15 per evidence item (capped at 0.9),
// drops 0.2 per counter item (floored at 0.1), and profile hits add a
// flat 0.1 capped at 0.95.
func (m *Manager) AnalyzeHypothesis(hypothesis string) *HypothesisAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()

	text := strings.ToLower(hypothesis)
	terms := strings.Fields(text)

	var evidence, counter []EvidenceItem

	for _, entry := range m.stm.All() {
		if entry.Type != EntryTypeVideoAnalysis {
			continue
		}
		summary := strings.ToLower(entry.Summary)
		actions := strings.ToLower(entry.Actions)
		if anyTermIn(terms, summary) || anyTermIn(terms, actions) {
			evidence = append(evidence, EvidenceItem{
				Source:    "short_term_memory",
				EntryType: EntryTypeVideoAnalysis,
				Timestamp: entry.Timestamp,
				Content:   entry.Summary,
			})
		}
	}

	for _, fact := range m.wm.Established {
		factText := strings.ToLower(fact.Insight)
		switch {
		case anyTermIn(terms, factText):
			evidence = append(evidence, EvidenceItem{
				Source:           "working_memory",
				EntryType:        "established_fact",
				Content:          fact.Insight,
				OriginalEvidence: fact.Evidence,
			})
		case strings.Contains(factText, "not "+text) ||
			strings.Contains(factText, strings.ReplaceAll(text, "not ", "")):
			counter = append(counter, EvidenceItem{
				Source:           "working_memory",
				EntryType:        "established_fact",
				Content:          fact.Insight,
				OriginalEvidence: fact.Evidence,
			})
		}
	}

	for _, hyp := range m.wm.Corroborated {
		if anyTermIn(terms, strings.ToLower(hyp.Insight)) {
			evidence = append(evidence, EvidenceItem{
				Source:           "working_memory",
				EntryType:        "corroborated_hypothesis",
				Content:          hyp.Insight,
				OriginalEvidence: hyp.Evidence,
			})
		}
	}

	var ltmEvidence []EvidenceItem
	if containsAny(text, []string{"skill", "know", "able", "can"}) {
		for _, skill := range m.ltm.Skills.ConfirmedSkills {
			if anyTermIn(terms, strings.ToLower(skill)) {
				ltmEvidence = append(ltmEvidence, EvidenceItem{
					Source:   "long_term_memory",
					Category: "skill",
					Content:  skill,
				})
			}
		}
	}
	if containsAny(text, []string{"prefer", "like", "enjoy", "favorite"}) {
		for _, pref := range m.ltm.Preferences.WorkflowHabits {
			if anyTermIn(terms, strings.ToLower(pref)) {
				ltmEvidence = append(ltmEvidence, EvidenceItem{
					Source:   "long_term_memory",
					Category: "preference",
					Content:  pref,
				})
			}
		}
	}

	status := StatusUnverified
	confidence := 0.0
	if len(evidence) > 0 {
		confidence = math.Min(0.9, 0.3+float64(len(evidence))*0.15)
		if len(counter) > 0 {
			confidence = math.Max(0.1, confidence-float64(len(counter))*0.2)
			status = StatusConflicting
		} else if len(evidence) >= 3 {
			status = StatusStronglySupported
		} else {
			status = StatusSupported
		}
	} else if len(counter) > 0 {
		status = StatusContradicted
		confidence = 0.1
	}

	if len(ltmEvidence) > 0 {
		evidence = append(evidence, ltmEvidence...)
		confidence = math.Min(0.95, confidence+0.1)
		if status == StatusUnverified {
			status = StatusSupportedByLTM
		}
	}

	if evidence == nil {
		evidence = []EvidenceItem{}
	}
	if counter == nil {
		counter = []EvidenceItem{}
	}
	return &HypothesisAnalysis{
		Hypothesis:           hypothesis,
		Status:               status,
		Confidence:           math.Round(confidence*100) / 100,
		Evidence:             evidence,
		CounterEvidence:      counter,
		EvidenceCount:        len(evidence),
		CounterEvidenceCount: len(counter),
	}
}

// anyTermIn reports whether any term appears as a substring of s.
func anyTermIn(terms []string, s string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
