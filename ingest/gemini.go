package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/recallhq/recall-go-sdk/core"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	filePollInterval   = 5 * time.Second
)

// GeminiConfig configures the Gemini analyzer.
type GeminiConfig struct {
	// APIKey for the Gemini API. Falls back to GEMINI_API_KEY.
	APIKey string

	// Model name. Default: gemini-2.0-flash.
	Model string

	// Prompt overrides DefaultPrompt.
	Prompt string
}

// GeminiAnalyzer analyzes videos with the Gemini API: the file is
// uploaded, and once the service finishes processing it the analysis
// prompt runs against it with a JSON response type.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
	prompt string
}

// NewGeminiAnalyzer creates an analyzer from the given config.
func NewGeminiAnalyzer(ctx context.Context, cfg GeminiConfig) (*GeminiAnalyzer, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set and no APIKey provided")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &GeminiAnalyzer{client: client, model: model, prompt: prompt}, nil
}

// AnalyzeVideo implements Analyzer.
func (g *GeminiAnalyzer) AnalyzeVideo(ctx context.Context, videoPath string) (*core.AnalysisRecord, error) {
	file, err := g.client.Files.UploadFromPath(ctx, videoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	for file.State == genai.FileStateProcessing {
		log.Printf("[INGEST] Waiting for video to be processed: %s", videoPath)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(filePollInterval):
		}
		file, err = g.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("poll uploaded video: %w", err)
		}
	}
	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("video processing failed for %s", videoPath)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromURI(file.URI, file.MIMEType)},
		},
		{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromText(g.prompt)},
		},
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate analysis: %w", err)
	}

	var record core.AnalysisRecord
	if err := json.Unmarshal([]byte(resp.Text()), &record); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &record, nil
}
