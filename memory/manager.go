package memory

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/recallhq/recall-go-sdk/core"
)

// Config holds Manager configuration.
type Config struct {
	// TokenBudget bounds the short-term log size in approximate
	// tokens. Default: DefaultTokenBudget.
	TokenBudget int

	// Now supplies timestamps for entries that arrive without one.
	// Default: time.Now. Inject a fixed clock in tests.
	Now func() time.Time

	// Searcher overrides the lexical semantic-search strategy.
	// Default: nil (literal lexical scoring).
	Searcher Searcher
}

// DefaultConfig returns sensible defaults.
var DefaultConfig = &Config{
	TokenBudget: DefaultTokenBudget,
}

// Manager owns the three memory tiers and the video catalog, and
// serializes every read-modify-write sequence behind one mutex.
// Ingests are processed one at a time, in arrival order; queries see
// either the state before or after a full consolidation pass, never a
// half-promoted one.
type Manager struct {
	mu sync.Mutex

	norm     Normalizer
	stm      *ShortTermLog
	wm       WorkingMemory
	ltm      LongTermProfile
	catalog  []core.AnalysisRecord
	store    Store
	searcher Searcher
}

// NewManager creates a Manager on the given store, loading any
// persisted documents. A document that is missing or unreadable
// initializes to its documented default; load failures are logged,
// never fatal.
func NewManager(store Store, config *Config) *Manager {
	if config == nil {
		config = DefaultConfig
	}
	m := &Manager{
		norm:     Normalizer{Now: config.Now},
		stm:      NewShortTermLog(config.TokenBudget),
		wm:       NewWorkingMemory(),
		ltm:      NewLongTermProfile(),
		store:    store,
		searcher: config.Searcher,
	}

	if entries, err := store.LoadShortTerm(); err != nil {
		log.Printf("[MEMORY] Error loading short-term memory: %v", err)
	} else if entries != nil {
		m.stm.Restore(entries)
	}
	if wm, err := store.LoadWorking(); err != nil {
		log.Printf("[MEMORY] Error loading working memory: %v", err)
	} else if wm != nil {
		m.wm = *wm
	}
	if ltm, err := store.LoadProfile(); err != nil {
		log.Printf("[MEMORY] Error loading long-term memory: %v", err)
	} else if ltm != nil {
		m.ltm = *ltm
	}
	return m
}

// AddVideoAnalysis ingests one analysis record: it joins the video
// catalog, is normalized into the short-term log, and both the
// long-term profile and working memory are reconsolidated from the
// updated log. Each tier is persisted as it changes; persistence
// failures are logged and the in-memory update proceeds.
//
// A record carrying the skip marker still joins the catalog (so video
// IDs stay stable) but mutates no memory tier.
func (m *Manager) AddVideoAnalysis(ctx context.Context, raw *core.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.catalog = append(m.catalog, *raw)

	entry, err := m.norm.Normalize(raw)
	if err != nil {
		// Skip notification, not actual analysis.
		log.Printf("[MEMORY] Skipping already processed video in memory update")
		return nil
	}

	m.stm.Append(entry)
	if err := m.store.SaveShortTerm(m.stm.All()); err != nil {
		log.Printf("[MEMORY] Error saving short-term memory: %v", err)
	}

	stm := m.stm.All()

	m.ltm = UpdateLongTermProfile(stm, m.ltm)
	if err := m.store.SaveProfile(m.ltm); err != nil {
		log.Printf("[MEMORY] Error saving long-term memory: %v", err)
	}

	m.wm = UpdateWorkingMemory(stm, m.wm)
	if err := m.store.SaveWorking(m.wm); err != nil {
		log.Printf("[MEMORY] Error saving working memory: %v", err)
	}

	if indexer, ok := m.searcher.(Indexer); ok {
		if err := indexer.Index(ctx, entry); err != nil {
			log.Printf("[MEMORY] Error indexing entry: %v", err)
		}
	}

	log.Printf("[MEMORY] Ingested entry: %d in short-term log, %d untested / %d corroborated / %d established",
		m.stm.Len(), len(m.wm.Untested), len(m.wm.Corroborated), len(m.wm.Established))
	return nil
}

// Context composes the current memory snapshot for prompt injection.
func (m *Manager) Context() MemoryContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ComposeContext(m.stm.All(), m.wm, m.ltm)
}

// ShortTerm returns a copy of the short-term log, oldest first.
func (m *Manager) ShortTerm() []MemoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stm.All()
}

// Working returns a copy of the working-memory buckets.
func (m *Manager) Working() WorkingMemory {
	m.mu.Lock()
	defer m.mu.Unlock()
	return WorkingMemory{
		Untested:     cloneHypotheses(m.wm.Untested),
		Corroborated: cloneHypotheses(m.wm.Corroborated),
		Established:  cloneHypotheses(m.wm.Established),
	}
}

// Profile returns a copy of the long-term profile.
func (m *Manager) Profile() LongTermProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ltm
}

// VideoSummary is one catalog row for listing.
type VideoSummary struct {
	ID        int    `json:"id"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
}

// VideoList is the result of listing the catalog.
type VideoList struct {
	Videos []VideoSummary `json:"videos"`
	Count  int            `json:"count"`
}

// ListVideos lists every ingested video, skipping skip placeholders.
// IDs are positions in the catalog and stay stable across calls.
func (m *Manager) ListVideos() VideoList {
	m.mu.Lock()
	defer m.mu.Unlock()

	videos := []VideoSummary{}
	for i := range m.catalog {
		rec := &m.catalog[i]
		if rec.Skipped() {
			continue
		}
		summary := rec.Summary
		if summary == "" {
			summary = "No summary available"
		}
		timestamp := rec.Timestamp
		if timestamp == "" {
			timestamp = "Unknown"
		}
		videos = append(videos, VideoSummary{ID: i, Summary: summary, Timestamp: timestamp})
	}
	return VideoList{Videos: videos, Count: len(videos)}
}

// VideoInfo returns the full analysis record for a catalog position.
// Out-of-range IDs and skip placeholders fail with a NotFoundError.
func (m *Manager) VideoInfo(id int) (*core.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.videoInfoLocked(id)
}

func (m *Manager) videoInfoLocked(id int) (*core.AnalysisRecord, error) {
	if id < 0 || id >= len(m.catalog) {
		return nil, core.NotFound("Video with ID %d not found", id)
	}
	rec := m.catalog[id]
	if rec.Skipped() {
		return nil, core.NotFound("This video was already processed. Please request a different video.")
	}
	return &rec, nil
}
