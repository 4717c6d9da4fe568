package memory

import (
	"context"
	"sort"
	"strings"
)

// ScoredEntry is one relevance-scored search hit.
type ScoredEntry struct {
	Score float64     `json:"score"`
	Entry EntryDigest `json:"entry"`
}

// Lexical scoring weights: topic hits count most, then summary, then
// actions.
const (
	summaryWeight = 2
	topicWeight   = 3
	actionWeight  = 1
)

// LexicalSearcher is the default search strategy: a naive keyword
// scorer that stands in for real semantic search. Each whitespace
// term of the query scores every entry it appears in, weighted by
// where it appears; zero-score entries are excluded and ties keep
// log order.
type LexicalSearcher struct{}

// Search implements Searcher. The second return is the total number
// of matching entries before truncation to maxResults.
func (LexicalSearcher) Search(_ context.Context, entries []MemoryEntry, query string, maxResults int) ([]ScoredEntry, int, error) {
	terms := strings.Fields(strings.ToLower(query))

	var scored []ScoredEntry
	for _, entry := range entries {
		if entry.Type != EntryTypeVideoAnalysis {
			continue
		}
		score := scoreEntry(entry, terms)
		if score > 0 {
			scored = append(scored, ScoredEntry{Score: float64(score), Entry: digest(entry)})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	total := len(scored)
	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored, total, nil
}

func scoreEntry(entry MemoryEntry, terms []string) int {
	score := 0
	summary := strings.ToLower(entry.Summary)
	for _, term := range terms {
		if strings.Contains(summary, term) {
			score += summaryWeight
		}
	}
	for _, topic := range entry.Topics {
		lowered := strings.ToLower(topic)
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				score += topicWeight
			}
		}
	}
	actions := strings.ToLower(entry.Actions)
	for _, term := range terms {
		if strings.Contains(actions, term) {
			score += actionWeight
		}
	}
	return score
}
