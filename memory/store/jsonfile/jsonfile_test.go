package jsonfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/recallhq/recall-go-sdk/memory"
)

func TestMissingDocumentsLoadAsNil(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	entries, err := store.LoadShortTerm()
	if err != nil || entries != nil {
		t.Errorf("LoadShortTerm = %v, %v; want nil, nil", entries, err)
	}
	wm, err := store.LoadWorking()
	if err != nil || wm != nil {
		t.Errorf("LoadWorking = %v, %v; want nil, nil", wm, err)
	}
	profile, err := store.LoadProfile()
	if err != nil || profile != nil {
		t.Errorf("LoadProfile = %v, %v; want nil, nil", profile, err)
	}
}

func TestShortTermRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	saved := []memory.MemoryEntry{
		{
			Type:      memory.EntryTypeVideoAnalysis,
			Timestamp: "2025-03-01T12:00:00Z",
			Summary:   "Editing configuration files",
			Topics:    []string{"devops"},
		},
	}
	if err := store.SaveShortTerm(saved); err != nil {
		t.Fatalf("SaveShortTerm failed: %v", err)
	}

	loaded, err := store.LoadShortTerm()
	if err != nil {
		t.Fatalf("LoadShortTerm failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, saved) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, saved)
	}
}

func TestWorkingAndProfileRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	wm := memory.NewWorkingMemory()
	wm.Corroborated = []memory.Hypothesis{{
		Insight:  "User is currently focused on go",
		Evidence: "[Topic in recent video: go] + 1 more observations",
	}}
	if err := store.SaveWorking(wm); err != nil {
		t.Fatalf("SaveWorking failed: %v", err)
	}
	loadedWM, err := store.LoadWorking()
	if err != nil {
		t.Fatalf("LoadWorking failed: %v", err)
	}
	if !reflect.DeepEqual(loadedWM.Corroborated, wm.Corroborated) {
		t.Errorf("working memory mismatch: %+v", loadedWM.Corroborated)
	}

	profile := memory.NewLongTermProfile()
	profile.Skills.ConfirmedSkills = []string{"go", "python"}
	profile.ProfileSummary = "User profile with focus on go, python, with unknown preferences"
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	loadedProfile, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if !reflect.DeepEqual(loadedProfile.Skills.ConfirmedSkills, profile.Skills.ConfirmedSkills) {
		t.Errorf("profile skills mismatch: %v", loadedProfile.Skills.ConfirmedSkills)
	}
	if loadedProfile.ProfileSummary != profile.ProfileSummary {
		t.Errorf("profile summary mismatch: %q", loadedProfile.ProfileSummary)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.SaveShortTerm([]memory.MemoryEntry{{Summary: "one"}}); err != nil {
		t.Fatalf("SaveShortTerm failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
	if _, err := os.Stat(filepath.Join(dir, "short_term_memory.json")); err != nil {
		t.Errorf("document not written: %v", err)
	}
}

func TestLatestSaveWins(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := store.SaveShortTerm([]memory.MemoryEntry{{Summary: "first"}}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.SaveShortTerm([]memory.MemoryEntry{{Summary: "second"}}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := store.LoadShortTerm()
	if err != nil {
		t.Fatalf("LoadShortTerm failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Summary != "second" {
		t.Errorf("loaded = %+v, want the second snapshot", loaded)
	}
}
