// Package ingest turns finished screen/webcam recordings into memory.
// An Orchestrator watches the recordings directory for completed
// capture pairs, runs each new video through an Analyzer, persists
// the analysis JSON next to the recording, and feeds the result to
// the memory manager in arrival order.
package ingest

import (
	"context"

	"github.com/recallhq/recall-go-sdk/core"
)

// Analyzer produces a structured analysis of one video file.
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, videoPath string) (*core.AnalysisRecord, error)
}

// DefaultPrompt is the analysis prompt sent alongside the video.
const DefaultPrompt = `Analyze this video recording and provide a detailed description of:
1. The content visible on the screen
2. Any actions or activities being performed
3. Key topics discussed or shown
4. Transcribe any spoken content with timestamps.

Structure your response as a JSON object with the following fields:
{
  "summary": "Detailed summary of the video",
  "screenContent": "Description of what's visible on the screen",
  "actions": "Description of actions performed",
  "topics": ["topic1", "topic2"],
  "transcript": [{"time_stamp": "HH:MM:SS", "text": "Transcription of spoken content"}],
  "tags": ["tag1", "tag2"]
}`
