// Package chromem implements an alternate vector-backed search
// strategy on chromem-go, an embedded pure-Go vector database.
//
// It exists behind the memory.Searcher interface so callers can opt
// into real semantic similarity; the default lexical strategy stays
// untouched, because swapping it silently would change observable
// scores.
package chromem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/recallhq/recall-go-sdk/memory"
)

const collectionName = "short_term_entries"

// Searcher indexes normalized entries as they are ingested and ranks
// them by cosine similarity at query time. Results are filtered to
// the short-term snapshot passed to Search, so entries evicted from
// the log never resurface.
type Searcher struct {
	embedder memory.Embedder
	db       *chromemgo.DB
	col      *chromemgo.Collection
	mu       sync.Mutex
	indexed  int
}

// New creates a Searcher over an in-memory chromem collection.
func New(embedder memory.Embedder) (*Searcher, error) {
	db := chromemgo.NewDB()
	col, err := db.CreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &Searcher{embedder: embedder, db: db, col: col}, nil
}

// Index implements memory.Indexer.
func (s *Searcher) Index(ctx context.Context, entry memory.MemoryEntry) error {
	embedding, err := s.embedder.Embed(ctx, embeddingText(entry))
	if err != nil {
		return fmt.Errorf("embed entry: %w", err)
	}

	doc := chromemgo.Document{
		ID:        entryID(entry),
		Content:   entry.Summary,
		Embedding: embedding,
		Metadata:  map[string]string{"timestamp": entry.Timestamp},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	s.indexed++
	log.Printf("[CHROMEM] Indexed entry %s (%d total)", doc.ID, s.indexed)
	return nil
}

// Search implements memory.Searcher. Scores are cosine similarities
// in [0,1].
func (s *Searcher) Search(ctx context.Context, entries []memory.MemoryEntry, query string, maxResults int) ([]memory.ScoredEntry, int, error) {
	if len(entries) == 0 {
		return nil, 0, nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("embed query: %w", err)
	}

	live := make(map[string]memory.MemoryEntry, len(entries))
	for _, entry := range entries {
		live[entryID(entry)] = entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Evicted documents are filtered out below, so query the whole
	// collection. chromem-go rejects nResults larger than the
	// collection, so back off until the query fits.
	var results []chromemgo.Result
	for limit := s.col.Count(); limit >= 1; limit-- {
		results, err = s.col.QueryEmbedding(ctx, embedding, limit, nil, nil)
		if err == nil {
			break
		}
		if limit == 1 {
			return nil, 0, fmt.Errorf("chromem query: %w", err)
		}
	}

	var scored []memory.ScoredEntry
	for _, result := range results {
		entry, ok := live[result.ID]
		if !ok {
			continue // evicted from the short-term log
		}
		scored = append(scored, memory.ScoredEntry{
			Score: float64(result.Similarity),
			Entry: memory.EntryDigest{
				Type:      entry.Type,
				Timestamp: entry.Timestamp,
				Summary:   entry.Summary,
				Topics:    entry.Topics,
				Tags:      entry.Tags,
			},
		})
	}

	total := len(scored)
	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored, total, nil
}

// entryID derives a stable document ID from the entry content.
func entryID(entry memory.MemoryEntry) string {
	b, _ := json.Marshal(entry)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

// embeddingText is the text representation handed to the embedder.
func embeddingText(entry memory.MemoryEntry) string {
	return fmt.Sprintf("Summary: %s\nTopics: %s\nActions: %s",
		entry.Summary, strings.Join(entry.Topics, ", "), entry.Actions)
}
