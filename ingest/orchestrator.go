package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/recallhq/recall-go-sdk/core"
	"github.com/recallhq/recall-go-sdk/memory"
)

const (
	videoSuffix    = ".mp4"
	screenSuffix   = "_screen.mp4"
	analysisSuffix = "_analysis.json"
)

// Config configures the Orchestrator.
type Config struct {
	// RecordingsDir is where the recorder drops capture pairs.
	// Default: "recordings".
	RecordingsDir string

	// ProcessedFile tracks which videos have been ingested, one path
	// per line. Default: "processed_videos.txt".
	ProcessedFile string

	// PollInterval is how often the directory is rescanned.
	// Default: 2s.
	PollInterval time.Duration
}

func (c *Config) withDefaults() Config {
	out := Config{
		RecordingsDir: "recordings",
		ProcessedFile: "processed_videos.txt",
		PollInterval:  2 * time.Second,
	}
	if c == nil {
		return out
	}
	if c.RecordingsDir != "" {
		out.RecordingsDir = c.RecordingsDir
	}
	if c.ProcessedFile != "" {
		out.ProcessedFile = c.ProcessedFile
	}
	if c.PollInterval > 0 {
		out.PollInterval = c.PollInterval
	}
	return out
}

// Orchestrator polls the recordings directory for completed capture
// pairs (recording_*.mp4 plus its _screen.mp4 companion), analyzes
// new videos, and feeds the results to the memory manager in arrival
// order. Parsed analyses are cached so replays after a restart do not
// re-read every JSON file from disk.
type Orchestrator struct {
	cfg       Config
	manager   *memory.Manager
	analyzer  Analyzer
	processed map[string]bool
	order     []string
	cache     *ristretto.Cache
}

// NewOrchestrator creates an orchestrator and loads the processed-set
// file if it exists.
func NewOrchestrator(manager *memory.Manager, analyzer Analyzer, cfg *Config) (*Orchestrator, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 12,
		MaxCost:     1 << 8,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}

	o := &Orchestrator{
		cfg:       cfg.withDefaults(),
		manager:   manager,
		analyzer:  analyzer,
		processed: make(map[string]bool),
		cache:     cache,
	}
	if err := o.loadProcessed(); err != nil {
		return nil, err
	}
	return o, nil
}

// Replay re-ingests the analyses of already processed videos, in the
// order they were first processed. The video catalog is in-memory
// only, so this rebuilds it after a restart.
func (o *Orchestrator) Replay(ctx context.Context) error {
	for _, video := range o.order {
		record, err := o.loadAnalysis(video)
		if err != nil {
			log.Printf("[INGEST] Error replaying analysis for %s: %v", video, err)
			continue
		}
		if err := o.manager.AddVideoAnalysis(ctx, record); err != nil {
			return fmt.Errorf("replay %s: %w", video, err)
		}
	}
	if len(o.order) > 0 {
		log.Printf("[INGEST] Replayed %d processed videos", len(o.order))
	}
	return nil
}

// Run polls until the context is canceled.
func (o *Orchestrator) Run(ctx context.Context) error {
	log.Printf("[INGEST] Watching %s for new recordings", o.cfg.RecordingsDir)
	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := o.Scan(ctx); err != nil {
			log.Printf("[INGEST] Scan error: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Scan processes every completed, not yet processed capture pair.
// A recording without its screen companion is left for a later scan.
func (o *Orchestrator) Scan(ctx context.Context) error {
	videos, err := filepath.Glob(filepath.Join(o.cfg.RecordingsDir, "recording_*"+videoSuffix))
	if err != nil {
		return fmt.Errorf("glob recordings: %w", err)
	}
	sort.Strings(videos)

	for _, video := range videos {
		if strings.HasSuffix(video, screenSuffix) {
			continue
		}
		if o.processed[video] {
			continue
		}
		base := strings.TrimSuffix(video, videoSuffix)
		if _, err := os.Stat(base + screenSuffix); err != nil {
			continue // screen capture still being written
		}

		if err := o.process(ctx, video); err != nil {
			log.Printf("[INGEST] Error processing %s: %v", video, err)
		}
	}
	return nil
}

// process analyzes one video (or loads its persisted analysis), feeds
// it to the manager, and marks it processed.
func (o *Orchestrator) process(ctx context.Context, video string) error {
	log.Printf("[INGEST] Found new video: %s", video)

	record, err := o.loadAnalysis(video)
	if err != nil {
		record, err = o.analyzer.AnalyzeVideo(ctx, video)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		if err := o.saveAnalysis(video, record); err != nil {
			log.Printf("[INGEST] Error saving analysis for %s: %v", video, err)
		}
	}

	if err := o.manager.AddVideoAnalysis(ctx, record); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	return o.markProcessed(video)
}

func analysisPath(video string) string {
	return strings.TrimSuffix(video, videoSuffix) + analysisSuffix
}

// loadAnalysis returns the persisted analysis for a video, consulting
// the cache before disk.
func (o *Orchestrator) loadAnalysis(video string) (*core.AnalysisRecord, error) {
	if cached, ok := o.cache.Get(video); ok {
		if record, ok := cached.(*core.AnalysisRecord); ok {
			return record, nil
		}
	}

	data, err := os.ReadFile(analysisPath(video))
	if err != nil {
		return nil, err
	}
	var record core.AnalysisRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	o.cache.Set(video, &record, 1)
	return &record, nil
}

func (o *Orchestrator) saveAnalysis(video string, record *core.AnalysisRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(analysisPath(video), data, 0o644); err != nil {
		return err
	}
	o.cache.Set(video, record, 1)
	return nil
}

func (o *Orchestrator) loadProcessed() error {
	f, err := os.Open(o.cfg.ProcessedFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open processed file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !o.processed[line] {
			o.processed[line] = true
			o.order = append(o.order, line)
		}
	}
	return scanner.Err()
}

func (o *Orchestrator) markProcessed(video string) error {
	o.processed[video] = true
	o.order = append(o.order, video)

	f, err := os.OpenFile(o.cfg.ProcessedFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open processed file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, video); err != nil {
		return fmt.Errorf("record processed video: %w", err)
	}
	return nil
}
