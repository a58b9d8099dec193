package store

import (
	"testing"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

func TestMemoryStore_PutAndGet(t *testing.T) {
	s := NewMemoryStore()

	docs := []domain.Document{
		{ID: "d1", Content: "first", Source: "a.pdf", Section: "intro", PageNumber: 1},
		{ID: "d2", Content: "second", Source: "b.pdf"},
	}
	if err := s.PutDocs(docs); err != nil {
		t.Fatalf("PutDocs failed: %v", err)
	}

	doc, err := s.GetDoc("d1")
	if err != nil {
		t.Fatalf("GetDoc failed: %v", err)
	}
	if doc.Content != "first" || doc.PageNumber != 1 {
		t.Errorf("unexpected doc: %+v", doc)
	}

	if _, err := s.GetDoc("missing"); err == nil {
		t.Error("expected error for missing doc")
	}

	listed, err := s.ListDocs()
	if err != nil {
		t.Fatalf("ListDocs failed: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("expected 2 docs, got %d", len(listed))
	}
	if listed[0].ID != "d1" {
		t.Errorf("expected insertion order preserved, got %s first", listed[0].ID)
	}
}

func TestMemoryStore_SearchRanking(t *testing.T) {
	s := NewMemoryStore()

	err := s.Upsert([]port.VectorItem{
		{ID: "d1", Vector: []float32{1, 0, 0}},
		{ID: "d2", Vector: []float32{0, 1, 0}},
		{ID: "d3", Vector: []float32{0.9, 0.1, 0}},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	results, err := s.Search([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "d1" {
		t.Errorf("expected d1 as best match, got %s", results[0].ID)
	}
	if results[1].ID != "d3" {
		t.Errorf("expected d3 as second match, got %s", results[1].ID)
	}
	if results[0].Score < results[1].Score {
		t.Error("expected results ordered by descending score")
	}
}

func TestMemoryStore_SearchEmpty(t *testing.T) {
	s := NewMemoryStore()

	results, err := s.Search([]float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results from empty store, got %d", len(results))
	}
}

func TestMemoryStore_KLargerThanN(t *testing.T) {
	s := NewMemoryStore()
	s.Upsert([]port.VectorItem{{ID: "d1", Vector: []float32{1, 0}}})

	results, err := s.Search([]float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore()
	s.PutDocs([]domain.Document{{ID: "d1", Content: "x"}})
	s.Upsert([]port.VectorItem{{ID: "d1", Vector: []float32{1}}})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	docs, vectors, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if docs != 0 || vectors != 0 {
		t.Errorf("expected empty store after Clear, got %d docs, %d vectors", docs, vectors)
	}
}

func TestMemoryStore_NotPersistent(t *testing.T) {
	if NewMemoryStore().Persistent() {
		t.Error("memory store must report non-persistent")
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("identical vectors should score ~1, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors should score 0, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 0}); got != 0 {
		t.Errorf("zero vector should score 0, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{1}); got != 0 {
		t.Errorf("mismatched dimensions should score 0, got %f", got)
	}
}
