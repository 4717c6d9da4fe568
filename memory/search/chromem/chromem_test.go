package chromem

import (
	"context"
	"testing"

	"github.com/recallhq/recall-go-sdk/memory"
	"github.com/recallhq/recall-go-sdk/memory/embedder/mock"
)

func testSearcher(t *testing.T) *Searcher {
	t.Helper()
	s, err := New(mock.New())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func entry(summary string, topics ...string) memory.MemoryEntry {
	return memory.MemoryEntry{
		Type:      memory.EntryTypeVideoAnalysis,
		Timestamp: "2025-03-01T12:00:00Z",
		Summary:   summary,
		Topics:    topics,
	}
}

func TestSearchEmptyLog(t *testing.T) {
	s := testSearcher(t)

	results, total, err := s.Search(context.Background(), nil, "anything", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if results != nil || total != 0 {
		t.Errorf("Search = %v, %d; want nil, 0", results, total)
	}
}

func TestExactTextRanksFirst(t *testing.T) {
	s := testSearcher(t)
	entries := []memory.MemoryEntry{
		entry("Debugging a python scraper", "python"),
		entry("Watching a cooking video", "cooking"),
		entry("Reviewing pull requests", "code review"),
	}
	for _, e := range entries {
		if err := s.Index(context.Background(), e); err != nil {
			t.Fatalf("Index failed: %v", err)
		}
	}

	// The mock embedder is deterministic, so querying with an entry's
	// own embedding text yields similarity 1 for that entry.
	query := embeddingText(entries[1])
	results, total, err := s.Search(context.Background(), entries, query, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(results) == 0 || results[0].Entry.Summary != "Watching a cooking video" {
		t.Fatalf("top result = %+v", results)
	}
	if results[0].Score < 0.99 {
		t.Errorf("exact match score = %v", results[0].Score)
	}
}

func TestEvictedEntriesDoNotResurface(t *testing.T) {
	s := testSearcher(t)
	kept := entry("Recent session", "go")
	evicted := entry("Ancient session", "fortran")
	for _, e := range []memory.MemoryEntry{kept, evicted} {
		if err := s.Index(context.Background(), e); err != nil {
			t.Fatalf("Index failed: %v", err)
		}
	}

	// Only the kept entry is still in the short-term snapshot.
	results, total, err := s.Search(context.Background(), []memory.MemoryEntry{kept}, "session", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	for _, r := range results {
		if r.Entry.Summary == "Ancient session" {
			t.Error("evicted entry resurfaced in results")
		}
	}
}

func TestTruncationKeepsTotal(t *testing.T) {
	s := testSearcher(t)
	var entries []memory.MemoryEntry
	for _, summary := range []string{"one", "two", "three", "four"} {
		e := entry(summary, "topic")
		entries = append(entries, e)
		if err := s.Index(context.Background(), e); err != nil {
			t.Fatalf("Index failed: %v", err)
		}
	}

	results, total, err := s.Search(context.Background(), entries, "topic", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("results = %d, want 2", len(results))
	}
	if total != 4 {
		t.Errorf("total = %d, want 4 (counted before truncation)", total)
	}
}
