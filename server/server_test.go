package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recallhq/recall-go-sdk/memory"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	manager := memory.NewManager(memory.NopStore{}, nil)
	ts := httptest.NewServer(New(manager, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestIngestThenInspect(t *testing.T) {
	ts := testServer(t)

	body := `{"summary": "Editing python files", "topics": ["python"]}`
	resp, err := http.Post(ts.URL+"/api/ingest", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/ingest: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ingest status = %d", resp.StatusCode)
	}

	var status struct {
		ProcessedVideoCount int `json:"processed_video_count"`
	}
	getJSON(t, ts.URL+"/api/status", &status)
	if status.ProcessedVideoCount != 1 {
		t.Errorf("processed count = %d, want 1", status.ProcessedVideoCount)
	}

	var snapshot struct {
		ShortTerm []memory.MemoryEntry  `json:"short_term_memory"`
		Context   *memory.MemoryContext `json:"memory_context"`
	}
	getJSON(t, ts.URL+"/api/memory", &snapshot)
	if len(snapshot.ShortTerm) != 1 || snapshot.ShortTerm[0].Summary != "Editing python files" {
		t.Errorf("short-term snapshot = %+v", snapshot.ShortTerm)
	}
	if snapshot.Context == nil || snapshot.Context.CurrentFocus == "" {
		t.Errorf("memory context missing: %+v", snapshot.Context)
	}

	var videos memory.VideoList
	getJSON(t, ts.URL+"/api/videos", &videos)
	if videos.Count != 1 {
		t.Errorf("video count = %d, want 1", videos.Count)
	}
}

func TestIngestRejectsBadJSON(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/ingest", "application/json", strings.NewReader(`{"summary":`))
	if err != nil {
		t.Fatalf("POST /api/ingest: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestQueryWithoutEngine(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/agent_query", "application/json", strings.NewReader(`{"query":"hi"}`))
	if err != nil {
		t.Fatalf("POST /api/agent_query: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestMethodRouting(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/ingest")
	if err != nil {
		t.Fatalf("GET /api/ingest: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
