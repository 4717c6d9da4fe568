package memory

import "encoding/json"

// DefaultTokenBudget bounds the serialized size of the short-term log,
// in approximate tokens (serialized bytes / 4).
const DefaultTokenBudget = 8000

// ShortTermLog is the append-only, size-bounded ordered log of
// normalized entries. It owns its entries exclusively; accessors
// return copies of the slice header so callers cannot reorder it.
type ShortTermLog struct {
	entries []MemoryEntry
	budget  int
}

// NewShortTermLog creates a log with the given token budget.
// A budget <= 0 selects DefaultTokenBudget.
func NewShortTermLog(budget int) *ShortTermLog {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	return &ShortTermLog{budget: budget}
}

// Restore replaces the log contents with a loaded snapshot.
func (l *ShortTermLog) Restore(entries []MemoryEntry) {
	l.entries = append([]MemoryEntry(nil), entries...)
}

// Append adds an entry, then evicts oldest-first while the token
// estimate exceeds the budget. Eviction is strict FIFO, one entry at
// a time, re-checking the bound after each removal, and never drops
// the last remaining entry.
func (l *ShortTermLog) Append(entry MemoryEntry) {
	l.entries = append(l.entries, entry)
	for l.EstimatedTokens() > l.budget && len(l.entries) > 1 {
		l.entries = append([]MemoryEntry(nil), l.entries[1:]...)
	}
}

// All returns the entries in order, oldest first.
func (l *ShortTermLog) All() []MemoryEntry {
	return append([]MemoryEntry(nil), l.entries...)
}

// Tail returns the last n entries in log order. n larger than the log
// returns everything.
func (l *ShortTermLog) Tail(n int) []MemoryEntry {
	if n <= 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return append([]MemoryEntry(nil), l.entries[len(l.entries)-n:]...)
}

// Len returns the number of entries.
func (l *ShortTermLog) Len() int {
	return len(l.entries)
}

// EstimatedTokens approximates the token count of the serialized log:
// one token per 4 bytes of JSON.
func (l *ShortTermLog) EstimatedTokens() int {
	return estimateTokens(l.entries)
}

// estimateTokens is the rough 4-characters-per-token estimate used to
// bound memory documents.
func estimateTokens(v interface{}) int {
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(b) / 4
}
