package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// writeBoltConfig configures the mock provider with the persistent
// bolt backend so state survives across command invocations.
func writeBoltConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := `
store:
  backend: bolt
  index_name: rfp_context
embedding:
  provider: mock
  dimension: 8
`
	if err := os.WriteFile(filepath.Join(dir, "docsearch.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestIndexSearchStats_BoltBackend(t *testing.T) {
	dir := writeBoltConfig(t)

	withStdin(t, `[
		{"id": "d1", "content": "pricing and payment details", "source": "rfp.pdf", "pageNumber": 2},
		{"id": "d2", "content": "vendor security requirements", "source": "rfp.pdf", "pageNumber": 9}
	]`)
	out, err := runCommand(t, "index", "--dir", dir)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	var indexed map[string]bool
	if err := json.Unmarshal([]byte(out), &indexed); err != nil || !indexed["success"] {
		t.Fatalf("expected successful index, got %q", out)
	}

	// Separate invocation: the persistent backend serves the search.
	out, err = runCommand(t, "search", "pricing and payment details", "-k", "1", "--dir", dir)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var searched struct {
		Results []struct {
			ID       string         `json:"id"`
			Score    float64        `json:"score"`
			Metadata map[string]any `json:"metadata"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &searched); err != nil {
		t.Fatalf("expected JSON results, got %q: %v", out, err)
	}
	if len(searched.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(searched.Results))
	}
	if searched.Results[0].ID != "d1" {
		t.Errorf("expected best match d1, got %s", searched.Results[0].ID)
	}
	if searched.Results[0].Metadata["source"] != "rfp.pdf" {
		t.Errorf("expected metadata from indexed document, got %v", searched.Results[0].Metadata)
	}

	out, err = runCommand(t, "stats", "--dir", dir)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	var stats struct {
		Status    string `json:"status"`
		IndexName string `json:"index_name"`
		Documents int    `json:"documents"`
	}
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("expected JSON stats, got %q: %v", out, err)
	}
	if stats.Status != "connected" {
		t.Errorf("expected connected status, got %q", stats.Status)
	}
	if stats.IndexName != "rfp_context" {
		t.Errorf("expected configured index name, got %q", stats.IndexName)
	}
	if stats.Documents != 2 {
		t.Errorf("expected 2 documents, got %d", stats.Documents)
	}
}

func TestIndex_ReplacesPreviousIndex(t *testing.T) {
	dir := writeBoltConfig(t)

	withStdin(t, `[{"id": "old", "content": "old content"}]`)
	if _, err := runCommand(t, "index", "--dir", dir); err != nil {
		t.Fatalf("first index failed: %v", err)
	}

	withStdin(t, `[{"id": "new", "content": "new content"}]`)
	if _, err := runCommand(t, "index", "--dir", dir); err != nil {
		t.Fatalf("second index failed: %v", err)
	}

	out, err := runCommand(t, "search", "old content", "-k", "5", "--dir", dir)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var searched struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &searched); err != nil {
		t.Fatalf("expected JSON results, got %q: %v", out, err)
	}
	for _, r := range searched.Results {
		if r.ID == "old" {
			t.Error("expected previous index content to be gone after rebuild")
		}
	}
}
