package memory

import "context"

// Store is the durability backend for the three memory documents.
// Each Save must leave a complete, atomically visible snapshot on
// disk (write-new-then-replace, never partial in-place edits) so a
// concurrent reader of the backing file never observes a torn
// structure. A Load of a document that does not exist yet returns
// (nil, nil); the manager then starts from the documented defaults.
//
// Implementations: jsonfile.Store (default), sqlite.Store.
type Store interface {
	LoadShortTerm() ([]MemoryEntry, error)
	SaveShortTerm(entries []MemoryEntry) error

	LoadWorking() (*WorkingMemory, error)
	SaveWorking(wm WorkingMemory) error

	LoadProfile() (*LongTermProfile, error)
	SaveProfile(profile LongTermProfile) error
}

// NopStore keeps everything in process memory only. Useful for tests
// and throwaway sessions.
type NopStore struct{}

func (NopStore) LoadShortTerm() ([]MemoryEntry, error)  { return nil, nil }
func (NopStore) SaveShortTerm([]MemoryEntry) error      { return nil }
func (NopStore) LoadWorking() (*WorkingMemory, error)   { return nil, nil }
func (NopStore) SaveWorking(WorkingMemory) error        { return nil }
func (NopStore) LoadProfile() (*LongTermProfile, error) { return nil, nil }
func (NopStore) SaveProfile(LongTermProfile) error      { return nil }

// Searcher ranks short-term entries against a free-text query.
// The default implementation is the literal lexical scorer; a vector
// implementation (memory/search/chromem) can be swapped in through
// ManagerConfig without changing the tool surface.
type Searcher interface {
	// Search scores the given entries and returns at most maxResults
	// matches, best first, plus the total number of matches before
	// truncation. Entries that do not match are excluded.
	Search(ctx context.Context, entries []MemoryEntry, query string, maxResults int) ([]ScoredEntry, int, error)
}

// Indexer is optionally implemented by Searchers that maintain their
// own index; the manager notifies it on every ingest.
type Indexer interface {
	Index(ctx context.Context, entry MemoryEntry) error
}

// Embedder converts text to vector embeddings for the chromem search
// strategy. Implementations: mock (testing), onnx (local models).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
