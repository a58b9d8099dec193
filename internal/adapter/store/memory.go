package store

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// MemoryStore is the transient index backend. It holds documents and
// vectors for the lifetime of the process only.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string]domain.Document
	order   []string
	vectors map[string][]float32
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:    make(map[string]domain.Document),
		vectors: make(map[string][]float32),
	}
}

func (s *MemoryStore) PutDocs(docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		if _, ok := s.docs[doc.ID]; !ok {
			s.order = append(s.order, doc.ID)
		}
		s.docs[doc.ID] = doc
	}
	return nil
}

func (s *MemoryStore) GetDoc(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return doc, nil
}

func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.docs[id])
	}
	return docs, nil
}

func (s *MemoryStore) Upsert(items []port.VectorItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.vectors[item.ID] = item.Vector
	}
	return nil
}

// Search finds the k nearest vectors using brute-force cosine similarity.
func (s *MemoryStore) Search(query []float32, k int) ([]port.VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 {
		return nil, nil
	}

	scores := make([]port.VectorResult, 0, len(s.vectors))
	for id, vec := range s.vectors {
		scores = append(scores, port.VectorResult{
			ID:    id,
			Score: cosineSimilarity(query, vec),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if k > len(scores) {
		k = len(scores)
	}
	return scores[:k], nil
}

func (s *MemoryStore) Counts() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), len(s.vectors), nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]domain.Document)
	s.order = nil
	s.vectors = make(map[string][]float32)
	return nil
}

func (s *MemoryStore) Persistent() bool {
	return false
}

func (s *MemoryStore) Close() error {
	return nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
