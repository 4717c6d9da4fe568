package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/recallhq/recall-go-sdk/core"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(NopStore{}, &Config{
		Now: func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func ingest(t *testing.T, m *Manager, records ...*core.AnalysisRecord) {
	t.Helper()
	for _, rec := range records {
		if err := m.AddVideoAnalysis(context.Background(), rec); err != nil {
			t.Fatalf("AddVideoAnalysis failed: %v", err)
		}
	}
}

func TestIngestUpdatesAllTiers(t *testing.T) {
	m := testManager(t)
	ingest(t, m, &core.AnalysisRecord{
		Summary: "User writing python code",
		Topics:  []string{"python"},
		Actions: "Editing files",
	})

	if got := len(m.ShortTerm()); got != 1 {
		t.Fatalf("short-term entries = %d, want 1", got)
	}
	if got := len(m.Working().Untested); got == 0 {
		t.Error("expected untested hypotheses after first ingest")
	}
	profile := m.Profile()
	if len(profile.Skills.ConfirmedSkills) != 1 || profile.Skills.ConfirmedSkills[0] != "python" {
		t.Errorf("skills = %v", profile.Skills.ConfirmedSkills)
	}
}

func TestSkippedRecordJoinsCatalogOnly(t *testing.T) {
	m := testManager(t)
	ingest(t, m,
		&core.AnalysisRecord{Summary: "Real analysis", Topics: []string{"go"}},
		&core.AnalysisRecord{Status: core.StatusSkipped},
		&core.AnalysisRecord{Summary: "Another analysis", Topics: []string{"go"}},
	)

	if got := len(m.ShortTerm()); got != 2 {
		t.Errorf("skip placeholder leaked into short-term memory: %d entries", got)
	}

	list := m.ListVideos()
	if list.Count != 2 {
		t.Errorf("listed count = %d, want 2", list.Count)
	}
	// IDs are catalog positions, so the placeholder keeps later IDs stable.
	if list.Videos[1].ID != 2 {
		t.Errorf("second listed video ID = %d, want 2", list.Videos[1].ID)
	}

	if _, err := m.VideoInfo(1); err == nil || !strings.Contains(err.Error(), "already processed") {
		t.Errorf("expected already-processed error, got %v", err)
	}
}

func TestVideoInfoOutOfRange(t *testing.T) {
	m := testManager(t)

	_, err := m.VideoInfo(5)
	var notFound *core.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Message != "Video with ID 5 not found" {
		t.Errorf("message = %q", notFound.Message)
	}
}

func TestListVideosDefaults(t *testing.T) {
	m := testManager(t)
	ingest(t, m, &core.AnalysisRecord{})

	list := m.ListVideos()
	if list.Count != 1 {
		t.Fatalf("count = %d", list.Count)
	}
	if list.Videos[0].Summary != "No summary available" {
		t.Errorf("summary = %q", list.Videos[0].Summary)
	}
	// The catalog keeps the raw record; its missing timestamp reads as
	// Unknown even though the normalized entry got a clock value.
	if list.Videos[0].Timestamp != "Unknown" {
		t.Errorf("timestamp = %q", list.Videos[0].Timestamp)
	}
}

// failingStore errors on every operation; ingest must still succeed.
type failingStore struct{}

func (failingStore) LoadShortTerm() ([]MemoryEntry, error)  { return nil, errors.New("disk gone") }
func (failingStore) SaveShortTerm([]MemoryEntry) error      { return errors.New("disk gone") }
func (failingStore) LoadWorking() (*WorkingMemory, error)   { return nil, errors.New("disk gone") }
func (failingStore) SaveWorking(WorkingMemory) error        { return errors.New("disk gone") }
func (failingStore) LoadProfile() (*LongTermProfile, error) { return nil, errors.New("disk gone") }
func (failingStore) SaveProfile(LongTermProfile) error      { return errors.New("disk gone") }

func TestPersistenceFailuresDoNotBlockIngest(t *testing.T) {
	m := NewManager(failingStore{}, nil)

	err := m.AddVideoAnalysis(context.Background(), &core.AnalysisRecord{
		Summary: "Session with a broken disk",
	})
	if err != nil {
		t.Fatalf("ingest failed on persistence error: %v", err)
	}
	if len(m.ShortTerm()) != 1 {
		t.Error("in-memory update lost on persistence error")
	}
}

// recordingStore tracks which documents were saved.
type recordingStore struct {
	NopStore
	savedShortTerm int
	savedWorking   int
	savedProfile   int
}

func (s *recordingStore) SaveShortTerm([]MemoryEntry) error { s.savedShortTerm++; return nil }
func (s *recordingStore) SaveWorking(WorkingMemory) error   { s.savedWorking++; return nil }
func (s *recordingStore) SaveProfile(LongTermProfile) error { s.savedProfile++; return nil }

func TestIngestPersistsEachTier(t *testing.T) {
	store := &recordingStore{}
	m := NewManager(store, nil)

	ingest(t, m, &core.AnalysisRecord{Summary: "Session"})

	if store.savedShortTerm != 1 || store.savedWorking != 1 || store.savedProfile != 1 {
		t.Errorf("saves = %d/%d/%d, want 1 each",
			store.savedShortTerm, store.savedWorking, store.savedProfile)
	}
}

func TestPromptEnrichmentIncludesProfileAndFocus(t *testing.T) {
	m := testManager(t)
	ingest(t, m, &core.AnalysisRecord{Summary: "Debugging a scraper", Topics: []string{"python"}})

	enrichment := m.PromptEnrichment()
	if !strings.Contains(enrichment, "USER PROFILE:") {
		t.Error("enrichment missing profile section")
	}
	if !strings.Contains(enrichment, "Recently recorded video about Debugging a scraper") {
		t.Errorf("enrichment missing current focus: %q", enrichment)
	}
}
