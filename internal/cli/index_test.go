package cli

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// withStdin replaces stdin with the given content for one command run.
func withStdin(t *testing.T, content string) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatal(err)
	}
	w.Close()

	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = old })
}

func TestIndex_ValidDocuments(t *testing.T) {
	dir := writeMockConfig(t)
	withStdin(t, `[
		{"id": "d1", "content": "alpha", "source": "a.pdf", "section": "1", "pageNumber": 1},
		{"id": "d2", "content": "beta"}
	]`)

	out, err := runCommand(t, "index", "--dir", dir)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}

	var parsed map[string]bool
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", out, err)
	}
	if !parsed["success"] {
		t.Error("expected index to report success")
	}
}

func TestIndex_CoercesIncompleteRecords(t *testing.T) {
	dir := writeMockConfig(t)
	withStdin(t, `[{"id": "d1"}, {"source": "only-source.pdf"}]`)

	out, err := runCommand(t, "index", "--dir", dir)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if !strings.Contains(out, `"success":true`) {
		t.Errorf("expected success for incomplete records, got %q", out)
	}
}

func TestIndex_MalformedJSON(t *testing.T) {
	dir := writeMockConfig(t)
	withStdin(t, `not json at all`)

	out, err := runCommand(t, "index", "--dir", dir)
	if err != nil {
		t.Fatalf("index must not be an error exit, got %v", err)
	}
	if !strings.Contains(out, `"success":false`) {
		t.Errorf("expected failure report for malformed input, got %q", out)
	}
}
