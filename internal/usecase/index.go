package usecase

import (
	"github.com/google/uuid"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// ProgressFunc reports embedding progress: done out of total documents.
type ProgressFunc func(done, total int)

// IndexResult summarizes a completed index build.
type IndexResult struct {
	Documents int
	Vectors   int
}

// IndexUseCase builds the searchable index: it normalizes caller
// records, requests embeddings from the provider, and stores documents
// with their vectors. Every invocation replaces the previous index.
type IndexUseCase struct {
	store     port.IndexStore
	embedder  port.Embedder
	batchSize int
}

func NewIndexUseCase(store port.IndexStore, embedder port.Embedder, batchSize int) *IndexUseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &IndexUseCase{
		store:     store,
		embedder:  embedder,
		batchSize: batchSize,
	}
}

// Normalize maps raw caller records into Documents. Missing or
// mistyped fields coerce to zero values rather than failing; a record
// without an id gets a generated one.
func Normalize(records []map[string]any) []domain.Document {
	docs := make([]domain.Document, 0, len(records))
	for _, rec := range records {
		doc := domain.Document{
			ID:         asString(rec["id"]),
			Content:    asString(rec["content"]),
			Source:     asString(rec["source"]),
			Section:    asString(rec["section"]),
			PageNumber: asInt(rec["pageNumber"]),
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		docs = append(docs, doc)
	}
	return docs
}

// Index rebuilds the index from the given documents. The previous
// index content is cleared first, never merged.
func (u *IndexUseCase) Index(docs []domain.Document, progress ProgressFunc) (IndexResult, error) {
	if err := u.store.Clear(); err != nil {
		return IndexResult{}, domain.E(domain.KindStore, "index", err)
	}

	if len(docs) == 0 {
		return IndexResult{}, nil
	}

	if err := u.store.PutDocs(docs); err != nil {
		return IndexResult{}, domain.E(domain.KindStore, "index", err)
	}

	var vectors int
	for i := 0; i < len(docs); i += u.batchSize {
		end := i + u.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[i:end]

		texts := make([]string, len(batch))
		for j, d := range batch {
			texts[j] = d.Content
		}

		embeddings, err := u.embedder.Embed(texts)
		if err != nil {
			return IndexResult{}, domain.E(domain.KindProvider, "index", err)
		}

		items := make([]port.VectorItem, len(batch))
		for j, d := range batch {
			items[j] = port.VectorItem{ID: d.ID, Vector: embeddings[j]}
		}
		if err := u.store.Upsert(items); err != nil {
			return IndexResult{}, domain.E(domain.KindStore, "index", err)
		}

		vectors += len(batch)
		if progress != nil {
			progress(vectors, len(docs))
		}
	}

	return IndexResult{Documents: len(docs), Vectors: vectors}, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64: // JSON numbers decode as float64
		return int(n)
	default:
		return 0
	}
}
