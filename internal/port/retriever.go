package port

import "docsearch/internal/domain"

// Retriever finds documents relevant to a query.
type Retriever interface {
	// Search returns up to k results ordered by relevance.
	Search(query string, k int) ([]domain.SearchResult, error)
}
