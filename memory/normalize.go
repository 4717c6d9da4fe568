package memory

import (
	"time"

	"github.com/recallhq/recall-go-sdk/core"
)

// Transcript compaction bounds. Longer transcripts keep only the first
// and last transcriptEdgeLines lines; string transcripts are cut at
// transcriptTextLimit characters.
const (
	transcriptFullLimit = 10
	transcriptEdgeLines = 3
	transcriptTextLimit = 500
)

// Normalizer converts raw analysis payloads into canonical memory
// entries. Now is injectable so normalization is deterministic under
// test; the zero value uses the wall clock.
type Normalizer struct {
	Now func() time.Time
}

// Normalize builds a MemoryEntry from a raw analysis record.
// Returns core.ErrSkipped when the record carries the skip marker;
// the caller must not add anything to memory in that case.
//
// Missing fields get sane defaults instead of being rejected. The
// transcript compaction is lossy and irreversible, applied exactly
// once here.
func (n *Normalizer) Normalize(raw *core.AnalysisRecord) (MemoryEntry, error) {
	if raw.Skipped() {
		return MemoryEntry{}, core.ErrSkipped
	}

	entry := MemoryEntry{
		Type:          EntryTypeVideoAnalysis,
		Timestamp:     raw.Timestamp,
		Summary:       raw.Summary,
		Topics:        raw.Topics,
		Tags:          raw.Tags,
		Actions:       raw.Actions,
		ScreenContent: raw.ScreenContent,
	}
	if entry.Timestamp == "" {
		now := n.Now
		if now == nil {
			now = time.Now
		}
		entry.Timestamp = now().Format(time.RFC3339)
	}
	if entry.Summary == "" {
		entry.Summary = "No summary available"
	}
	if entry.Topics == nil {
		entry.Topics = []string{}
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	entry.TranscriptExcerpt = compactTranscript(raw)
	return entry, nil
}

func compactTranscript(raw *core.AnalysisRecord) *TranscriptExcerpt {
	if lines, ok := raw.TranscriptLines(); ok {
		if len(lines) == 0 {
			return nil
		}
		if len(lines) > transcriptFullLimit {
			return &TranscriptExcerpt{
				Start: lines[:transcriptEdgeLines],
				End:   lines[len(lines)-transcriptEdgeLines:],
			}
		}
		return &TranscriptExcerpt{Lines: lines}
	}
	if text, ok := raw.TranscriptText(); ok && text != "" {
		if len(text) > transcriptTextLimit {
			text = text[:transcriptTextLimit] + "..."
		}
		return &TranscriptExcerpt{Text: text}
	}
	return nil
}
