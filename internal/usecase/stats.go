package usecase

import (
	"errors"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// ErrNotConnected is returned by Stats when no persistent store
// backend is configured.
var ErrNotConnected = errors.New("Not connected")

// StatsUseCase reports the state of the persistent index.
type StatsUseCase struct {
	store     port.IndexStore
	indexName string
	storePath string
}

func NewStatsUseCase(store port.IndexStore, indexName, storePath string) *StatsUseCase {
	return &StatsUseCase{
		store:     store,
		indexName: indexName,
		storePath: storePath,
	}
}

// Stats describes the persistent index. A transient (memory) backend
// has no stats to report and yields ErrNotConnected.
func (u *StatsUseCase) Stats() (domain.Stats, error) {
	if !u.store.Persistent() {
		return domain.Stats{}, domain.E(domain.KindStore, "stats", ErrNotConnected)
	}

	docs, vectors, err := u.store.Counts()
	if err != nil {
		return domain.Stats{}, domain.E(domain.KindStore, "stats", err)
	}

	return domain.Stats{
		Status:    "connected",
		IndexName: u.indexName,
		StorePath: u.storePath,
		Documents: docs,
		Vectors:   vectors,
	}, nil
}
