package memory

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// SearchResult is the response to a short-term memory search.
type SearchResult struct {
	Query        string        `json:"query"`
	TotalMatches int           `json:"total_matches"`
	Results      []ScoredEntry `json:"results"`
}

// defaultMaxSearchResults applies when the caller does not bound the
// search.
const defaultMaxSearchResults = 3

// SemanticSearchSTM ranks short-term entries against a query using
// the configured search strategy (lexical by default). TotalMatches
// counts every entry with a positive score, before truncation. A
// failing custom strategy falls back to the lexical scorer so the
// tool surface keeps answering.
func (m *Manager) SemanticSearchSTM(ctx context.Context, query string, maxResults int) *SearchResult {
	if maxResults <= 0 {
		maxResults = defaultMaxSearchResults
	}

	m.mu.Lock()
	entries := m.stm.All()
	searcher := m.searcher
	m.mu.Unlock()

	if searcher == nil {
		searcher = LexicalSearcher{}
	}
	results, total, err := searcher.Search(ctx, entries, query, maxResults)
	if err != nil {
		log.Printf("[MEMORY] Search strategy failed, falling back to lexical: %v", err)
		results, total, _ = LexicalSearcher{}.Search(ctx, entries, query, maxResults)
	}
	if results == nil {
		results = []ScoredEntry{}
	}
	return &SearchResult{Query: query, TotalMatches: total, Results: results}
}

// VideoRef identifies one side of a comparison.
type VideoRef struct {
	ID        int    `json:"id"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
}

// TopicOverlap is the topic set arithmetic of a comparison.
type TopicOverlap struct {
	CommonTopics       []string `json:"common_topics"`
	UniqueTopicsVideo1 []string `json:"unique_topics_video1"`
	UniqueTopicsVideo2 []string `json:"unique_topics_video2"`
	TimeDifference     string   `json:"time_difference"`
}

// ComparisonAnalysis is the heuristic verdict of a comparison.
type ComparisonAnalysis struct {
	Similarity         string `json:"similarity"`
	Progression        string `json:"progression"`
	PatternObservation string `json:"pattern_observation"`
}

// VideoComparison is the full result of comparing two videos.
type VideoComparison struct {
	Video1     VideoRef           `json:"video1"`
	Video2     VideoRef           `json:"video2"`
	Comparison TopicOverlap       `json:"comparison"`
	Analysis   ComparisonAnalysis `json:"analysis"`
}

// continuationWords suggest that the second video picks up where the
// first left off.
var continuationWords = []string{"continue", "next", "further", "again", "progress", "more"}

// CompareVideos compares two catalog entries by ID: topic overlap, a
// similarity label, and a progression heuristic. Similarity is "High"
// only when the common-topic count strictly exceeds
// max(1, smaller-topic-set/2) -- the literal comparison, so one shared
// topic out of two never rates High. Fails with NotFoundError when
// either ID is out of range or names a skip placeholder.
func (m *Manager) CompareVideos(id1, id2 int) (*VideoComparison, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	video1, err := m.videoInfoLocked(id1)
	if err != nil {
		return nil, fmt.Errorf("could not compare videos: %w", err)
	}
	video2, err := m.videoInfoLocked(id2)
	if err != nil {
		return nil, fmt.Errorf("could not compare videos: %w", err)
	}

	common, unique1, unique2 := topicOverlap(video1.Topics, video2.Topics)

	threshold := min(len(video1.Topics), len(video2.Topics)) / 2
	if threshold < 1 {
		threshold = 1
	}
	similarity := "Low"
	if len(common) > threshold {
		similarity = "High"
	}

	return &VideoComparison{
		Video1: VideoRef{ID: id1, Summary: summaryOrDefault(video1.Summary), Timestamp: timestampOrDefault(video1.Timestamp)},
		Video2: VideoRef{ID: id2, Summary: summaryOrDefault(video2.Summary), Timestamp: timestampOrDefault(video2.Timestamp)},
		Comparison: TopicOverlap{
			CommonTopics:       common,
			UniqueTopicsVideo1: unique1,
			UniqueTopicsVideo2: unique2,
			TimeDifference:     "Unknown",
		},
		Analysis: ComparisonAnalysis{
			Similarity:         similarity,
			Progression:        analyzeProgression(video1.Timestamp, video2.Timestamp, video2.Summary),
			PatternObservation: "The videos appear to be independent",
		},
	}, nil
}

// topicOverlap computes intersection and differences, preserving the
// order topics appear in each list.
func topicOverlap(topics1, topics2 []string) (common, unique1, unique2 []string) {
	set1 := make(map[string]bool, len(topics1))
	for _, t := range topics1 {
		set1[t] = true
	}
	set2 := make(map[string]bool, len(topics2))
	for _, t := range topics2 {
		set2[t] = true
	}

	common = []string{}
	unique1 = []string{}
	unique2 = []string{}
	seen := make(map[string]bool)
	for _, t := range topics1 {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set2[t] {
			common = append(common, t)
		} else {
			unique1 = append(unique1, t)
		}
	}
	seen = make(map[string]bool)
	for _, t := range topics2 {
		if seen[t] || set1[t] {
			continue
		}
		seen[t] = true
		unique2 = append(unique2, t)
	}
	return common, unique1, unique2
}

// analyzeProgression checks for a continuation between two videos:
// continuation keywords in the second summary first, then timestamp
// ordering.
func analyzeProgression(time1, time2, summary2 string) string {
	lowered := strings.ToLower(summary2)
	for _, word := range continuationWords {
		if strings.Contains(lowered, word) {
			return "Video 2 appears to be a continuation of Video 1"
		}
	}
	if time1 != "" && time2 != "" && time1 < time2 {
		return "Video 2 was recorded after Video 1"
	}
	return "No clear progression detected"
}

func summaryOrDefault(s string) string {
	if s == "" {
		return "No summary available"
	}
	return s
}

func timestampOrDefault(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
