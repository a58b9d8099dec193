package usecase

import (
	"errors"
	"path/filepath"
	"testing"

	"docsearch/internal/adapter/embedding"
	"docsearch/internal/adapter/store"
	"docsearch/internal/domain"
)

func TestStats_MemoryBackendNotConnected(t *testing.T) {
	uc := NewStatsUseCase(store.NewMemoryStore(), "docsearch", "")

	_, err := uc.Stats()
	if err == nil {
		t.Fatal("expected ErrNotConnected for memory backend")
	}
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
	if domain.KindOf(err) != domain.KindStore {
		t.Errorf("expected store error kind, got %s", domain.KindOf(err))
	}
}

func TestStats_PersistentBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	st, err := store.NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	docs := []domain.Document{
		{ID: "d1", Content: "alpha"},
		{ID: "d2", Content: "beta"},
	}
	if _, err := NewIndexUseCase(st, embedding.NewMockEmbedder(4), 100).Index(docs, nil); err != nil {
		t.Fatal(err)
	}

	stats, err := NewStatsUseCase(st, "rfp_context", path).Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Status != "connected" {
		t.Errorf("expected status connected, got %s", stats.Status)
	}
	if stats.IndexName != "rfp_context" {
		t.Errorf("expected index name rfp_context, got %s", stats.IndexName)
	}
	if stats.StorePath != path {
		t.Errorf("expected store path %s, got %s", path, stats.StorePath)
	}
	if stats.Documents != 2 || stats.Vectors != 2 {
		t.Errorf("expected 2 docs and 2 vectors, got %d/%d", stats.Documents, stats.Vectors)
	}
}
