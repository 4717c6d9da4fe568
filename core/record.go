package core

import "encoding/json"

// StatusSkipped marks an analysis payload that must not mutate memory.
// The analyzer emits it when a media artifact was already processed.
const StatusSkipped = "skipped"

// TranscriptLine is a single timestamped line of spoken content.
type TranscriptLine struct {
	TimeStamp string `json:"time_stamp"`
	Text      string `json:"text"`
}

// AnalysisRecord is the structured result of analyzing one recording.
// It is produced by an Analyzer (an external multimodal model call)
// and consumed by the memory subsystem.
//
// Transcript is either an array of TranscriptLine objects or a plain
// string, depending on what the model returned; it stays raw until the
// normalizer compacts it.
type AnalysisRecord struct {
	Status        string          `json:"status,omitempty"`
	Timestamp     string          `json:"timestamp,omitempty"`
	Summary       string          `json:"summary,omitempty"`
	Topics        []string        `json:"topics,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Actions       string          `json:"actions,omitempty"`
	ScreenContent string          `json:"screenContent,omitempty"`
	Transcript    json.RawMessage `json:"transcript,omitempty"`
}

// Skipped reports whether this record is a skip notification rather
// than an actual analysis.
func (r *AnalysisRecord) Skipped() bool {
	return r.Status == StatusSkipped
}

// TranscriptLines decodes the transcript as a line array.
// Returns nil, false when the transcript is absent or a plain string.
func (r *AnalysisRecord) TranscriptLines() ([]TranscriptLine, bool) {
	if len(r.Transcript) == 0 {
		return nil, false
	}
	var lines []TranscriptLine
	if err := json.Unmarshal(r.Transcript, &lines); err != nil {
		return nil, false
	}
	return lines, true
}

// TranscriptText decodes the transcript as a plain string.
// Returns "", false when the transcript is absent or a line array.
func (r *AnalysisRecord) TranscriptText() (string, bool) {
	if len(r.Transcript) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(r.Transcript, &text); err != nil {
		return "", false
	}
	return text, true
}
