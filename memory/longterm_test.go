package memory

import (
	"reflect"
	"testing"
)

func TestProfileExtraction(t *testing.T) {
	stm := []MemoryEntry{
		{
			Type:    EntryTypeVideoAnalysis,
			Summary: "User trying to build a web scraper, hit an error in the parser",
			Topics:  []string{"python development", "parsing"},
			Actions: "User preferred the terminal over the GUI",
		},
	}

	profile := UpdateLongTermProfile(stm, NewLongTermProfile())

	if !reflect.DeepEqual(profile.Skills.ConfirmedSkills, []string{"python development"}) {
		t.Errorf("unexpected skills: %v", profile.Skills.ConfirmedSkills)
	}
	if !reflect.DeepEqual(profile.Preferences.WorkflowHabits, []string{"User preferred the terminal over the GUI"}) {
		t.Errorf("unexpected preferences: %v", profile.Preferences.WorkflowHabits)
	}
	if len(profile.Challenges.Difficulties) != 1 {
		t.Errorf("summary with 'error' should record a difficulty: %v", profile.Challenges.Difficulties)
	}
	if len(profile.Goals.InferredGoals) != 1 {
		t.Errorf("summary with 'trying to' should record a goal: %v", profile.Goals.InferredGoals)
	}

	want := "User profile with focus on python development, with User preferred the terminal over the GUI"
	if profile.ProfileSummary != want {
		t.Errorf("profile summary = %q, want %q", profile.ProfileSummary, want)
	}
}

func TestProfileSummaryWhenOnlySkills(t *testing.T) {
	stm := []MemoryEntry{
		{Type: EntryTypeVideoAnalysis, Summary: "Writing code", Topics: []string{"javascript"}},
	}

	profile := UpdateLongTermProfile(stm, NewLongTermProfile())

	want := "User profile with focus on javascript, with unknown preferences"
	if profile.ProfileSummary != want {
		t.Errorf("profile summary = %q, want %q", profile.ProfileSummary, want)
	}
}

func TestProfileUnchangedWithoutKeywordHits(t *testing.T) {
	stm := []MemoryEntry{
		{Type: EntryTypeVideoAnalysis, Summary: "Watching a cooking video", Topics: []string{"cooking"}},
	}

	profile := UpdateLongTermProfile(stm, NewLongTermProfile())

	if profile.ProfileSummary != DefaultProfileSummary {
		t.Errorf("summary should stay default, got %q", profile.ProfileSummary)
	}
	if len(profile.Skills.ConfirmedSkills) != 0 {
		t.Errorf("no skills expected, got %v", profile.Skills.ConfirmedSkills)
	}
}

func TestProfileUpdateIsIdempotent(t *testing.T) {
	stm := []MemoryEntry{
		{Type: EntryTypeVideoAnalysis, Summary: "Coding session", Topics: []string{"python"}},
	}

	once := UpdateLongTermProfile(stm, NewLongTermProfile())
	twice := UpdateLongTermProfile(stm, once)

	if !reflect.DeepEqual(once.Skills.ConfirmedSkills, twice.Skills.ConfirmedSkills) {
		t.Errorf("repeat pass changed skills: %v vs %v",
			once.Skills.ConfirmedSkills, twice.Skills.ConfirmedSkills)
	}
}

func TestProfileDoesNotMutatePrev(t *testing.T) {
	prev := NewLongTermProfile()
	prev.Skills.ConfirmedSkills = []string{"go"}

	UpdateLongTermProfile([]MemoryEntry{
		{Type: EntryTypeVideoAnalysis, Summary: "Session", Topics: []string{"python"}},
	}, prev)

	if !reflect.DeepEqual(prev.Skills.ConfirmedSkills, []string{"go"}) {
		t.Errorf("prev mutated: %v", prev.Skills.ConfirmedSkills)
	}
}
