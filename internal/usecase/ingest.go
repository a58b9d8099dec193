package usecase

import (
	"fmt"
	"os"

	"docsearch/internal/adapter/splitter"
	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// IngestUseCase builds the index from files on disk: it walks a
// directory, splits each file into section documents, and hands the
// batch to the index use case.
type IngestUseCase struct {
	walker   port.Walker
	splitter *splitter.Splitter
	index    *IndexUseCase
}

func NewIngestUseCase(walker port.Walker, split *splitter.Splitter, index *IndexUseCase) *IngestUseCase {
	return &IngestUseCase{
		walker:   walker,
		splitter: split,
		index:    index,
	}
}

// Ingest indexes all matching files under root. Unreadable files are
// skipped and reported in the result errors.
func (u *IngestUseCase) Ingest(root string, progress ProgressFunc) (IndexResult, []string, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return IndexResult{}, nil, domain.E(domain.KindInput, "ingest", err)
	}

	var docs []domain.Document
	var warnings []string
	for _, f := range files {
		content, err := os.ReadFile(f.Path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", f.Path, err))
			continue
		}
		docs = append(docs, u.splitter.Split(f.Path, string(content))...)
	}

	result, err := u.index.Index(docs, progress)
	return result, warnings, err
}
