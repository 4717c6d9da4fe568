package memory

import (
	"strings"
	"testing"
)

func focusEntry(topic string) MemoryEntry {
	// The summary restates the derived insight so evidence counting
	// can observe it across entries.
	return MemoryEntry{
		Type:    EntryTypeVideoAnalysis,
		Summary: "User is currently focused on " + topic + " in this session",
		Topics:  []string{topic},
	}
}

func TestNewHypothesesStartUntested(t *testing.T) {
	stm := []MemoryEntry{
		{
			Type:    EntryTypeVideoAnalysis,
			Summary: "Browsing documentation",
			Topics:  []string{"rust"},
			Actions: "Reading docs in the browser",
		},
	}

	wm := UpdateWorkingMemory(stm, NewWorkingMemory())

	if len(wm.Untested) != 2 {
		t.Fatalf("expected 2 untested hypotheses, got %d: %+v", len(wm.Untested), wm.Untested)
	}
	if wm.Untested[0].Insight != "User is currently focused on rust" {
		t.Errorf("unexpected focus insight: %q", wm.Untested[0].Insight)
	}
	if wm.Untested[1].Insight != "User workflow involves: Reading docs in the browser" {
		t.Errorf("unexpected workflow insight: %q", wm.Untested[1].Insight)
	}
	if len(wm.Corroborated) != 0 || len(wm.Established) != 0 {
		t.Error("nothing should be promoted on first sight")
	}
}

func TestPromotionToCorroborated(t *testing.T) {
	stm := []MemoryEntry{focusEntry("python"), focusEntry("python")}

	wm := UpdateWorkingMemory(stm, NewWorkingMemory())

	var hypo *Hypothesis
	for i := range wm.Corroborated {
		if wm.Corroborated[i].Insight == "User is currently focused on python" {
			hypo = &wm.Corroborated[i]
		}
	}
	if hypo == nil {
		t.Fatalf("focus hypothesis not corroborated: %+v", wm)
	}
	if !strings.HasSuffix(hypo.Evidence, "+ 1 more observations") {
		t.Errorf("evidence not extended: %q", hypo.Evidence)
	}
	for _, h := range wm.Untested {
		if h.Insight == hypo.Insight {
			t.Error("promoted hypothesis still present in untested")
		}
	}
}

func TestPromotionToEstablished(t *testing.T) {
	stm := []MemoryEntry{focusEntry("python"), focusEntry("python"), focusEntry("python")}

	wm := UpdateWorkingMemory(stm, NewWorkingMemory())

	var fact *Hypothesis
	for i := range wm.Established {
		if wm.Established[i].Insight == "User is currently focused on python" {
			fact = &wm.Established[i]
		}
	}
	if fact == nil {
		t.Fatalf("focus hypothesis not established: %+v", wm)
	}
	if fact.Evidence != "Consistently observed across 3 interactions" {
		t.Errorf("unexpected established evidence: %q", fact.Evidence)
	}
}

func TestInsightsStayUnique(t *testing.T) {
	prev := NewWorkingMemory()
	prev.Established = []Hypothesis{{
		Insight:  "User is currently focused on python",
		Evidence: "Consistently observed across 3 interactions",
	}}

	wm := UpdateWorkingMemory([]MemoryEntry{focusEntry("python")}, prev)

	total := 0
	for _, bucket := range [][]Hypothesis{wm.Untested, wm.Corroborated, wm.Established} {
		for _, h := range bucket {
			if h.Insight == "User is currently focused on python" {
				total++
			}
		}
	}
	if total != 1 {
		t.Errorf("insight duplicated across buckets: %d occurrences", total)
	}
}

func TestUpdateDoesNotMutatePrev(t *testing.T) {
	prev := NewWorkingMemory()
	prev.Untested = []Hypothesis{{Insight: "User is currently focused on python", Evidence: "[seed]"}}

	UpdateWorkingMemory([]MemoryEntry{focusEntry("python"), focusEntry("python")}, prev)

	if len(prev.Untested) != 1 || prev.Untested[0].Evidence != "[seed]" {
		t.Errorf("prev mutated: %+v", prev.Untested)
	}
}

func TestCandidateWindowLimitsSeeding(t *testing.T) {
	var stm []MemoryEntry
	for _, topic := range []string{"a", "b", "c", "d", "e", "f"} {
		stm = append(stm, MemoryEntry{
			Type:    EntryTypeVideoAnalysis,
			Summary: "Working on " + topic,
			Topics:  []string{topic},
		})
	}

	wm := UpdateWorkingMemory(stm, NewWorkingMemory())

	for _, h := range wm.Untested {
		if h.Insight == "User is currently focused on a" {
			t.Error("entry outside the candidate window seeded a hypothesis")
		}
	}
	found := false
	for _, h := range wm.Untested {
		if h.Insight == "User is currently focused on f" {
			found = true
		}
	}
	if !found {
		t.Error("most recent entry did not seed a hypothesis")
	}
}
