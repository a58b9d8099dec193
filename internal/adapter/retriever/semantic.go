package retriever

import (
	"fmt"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// SemanticRetriever answers queries by embedding them and running a
// nearest-neighbor search over the index store.
type SemanticRetriever struct {
	store    port.IndexStore
	embedder port.Embedder
}

func NewSemanticRetriever(store port.IndexStore, embedder port.Embedder) *SemanticRetriever {
	return &SemanticRetriever{
		store:    store,
		embedder: embedder,
	}
}

func (r *SemanticRetriever) Search(query string, k int) ([]domain.SearchResult, error) {
	embeddings, err := r.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	matches, err := r.store.Search(embeddings[0], k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		doc, err := r.store.GetDoc(m.ID)
		if err != nil {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:       doc.ID,
			Content:  doc.Content,
			Score:    m.Score,
			Metadata: doc.Metadata(),
		})
	}

	return results, nil
}
