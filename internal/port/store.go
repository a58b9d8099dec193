package port

import "docsearch/internal/domain"

// IndexStore holds documents and their embedding vectors. An index is
// rebuilt as a whole: Clear followed by PutDocs/Upsert, never merged.
type IndexStore interface {
	// PutDocs stores a batch of documents.
	PutDocs(docs []domain.Document) error

	// GetDoc retrieves a document by ID.
	GetDoc(id string) (domain.Document, error)

	// ListDocs returns all stored documents.
	ListDocs() ([]domain.Document, error)

	// Upsert adds or updates vectors in the store.
	Upsert(items []VectorItem) error

	// Search finds the k nearest vectors to the query.
	Search(query []float32, k int) ([]VectorResult, error)

	// Counts returns the number of stored documents and vectors.
	Counts() (docs int, vectors int, err error)

	// Clear removes all documents and vectors.
	Clear() error

	// Persistent reports whether the store survives the process.
	Persistent() bool

	Close() error
}

// VectorItem represents a vector to be stored.
type VectorItem struct {
	ID     string    // Document ID
	Vector []float32 // Embedding vector
}

// VectorResult represents a nearest-neighbor match.
type VectorResult struct {
	ID    string  // Document ID
	Score float64 // Similarity score (higher is better)
}
