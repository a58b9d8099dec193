package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"docsearch/internal/domain"
	"docsearch/internal/port"
)

// CurrentSchemaVersion is the storage format version. Increment on
// breaking changes; a mismatch forces an index rebuild.
const CurrentSchemaVersion = 1

var (
	bucketDocs    = []byte("docs")
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")

	keySchemaVersion = []byte("schema_version")
	keyEmbedModel    = []byte("embed_model")
)

// BoltStore is the persistent index backend. Vectors are mirrored into
// memory on open so search never touches disk.
type BoltStore struct {
	db   *bbolt.DB
	path string

	mu      sync.RWMutex
	vectors map[string][]float32
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDocs, bucketVectors, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &BoltStore{
		db:      db,
		path:    path,
		vectors: make(map[string][]float32),
	}

	if err := s.loadVectors(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load vectors: %w", err)
	}

	return s, nil
}

func (s *BoltStore) loadVectors() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketVectors).ForEach(func(k, v []byte) error {
			var vec []float32
			if err := json.Unmarshal(v, &vec); err != nil {
				return nil // skip corrupted entries
			}
			s.vectors[string(k)] = vec
			return nil
		})
	})
}

func (s *BoltStore) Path() string {
	return s.path
}

func (s *BoltStore) PutDocs(docs []domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocs)
		for _, doc := range docs {
			data, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(doc.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		return json.Unmarshal(data, &doc)
	})
	return doc, err
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			var doc domain.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) Upsert(items []port.VectorItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVectors)
		for _, item := range items {
			data, err := json.Marshal(item.Vector)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(item.ID), data); err != nil {
				return err
			}
			s.vectors[item.ID] = item.Vector
		}
		return nil
	})
}

// Search finds the k nearest vectors using brute-force cosine
// similarity over the in-memory mirror.
func (s *BoltStore) Search(query []float32, k int) ([]port.VectorResult, error) {
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

func (s *BoltStore) Counts() (int, int, error) {
	var docCount int
	err := s.db.View(func(tx *bbolt.Tx) error {
		docCount = tx.Bucket(bucketDocs).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return docCount, len(s.vectors), nil
}

func (s *BoltStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketDocs, bucketVectors} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.vectors = make(map[string][]float32)
	return nil
}

func (s *BoltStore) Persistent() bool {
	return true
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// SchemaInfo stores the storage format version and the embedding model
// the vectors were produced with.
type SchemaInfo struct {
	Version    int
	EmbedModel string
}

// GetSchemaInfo retrieves the stored schema info.
func (s *BoltStore) GetSchemaInfo() (SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if data := b.Get(keySchemaVersion); data != nil {
			json.Unmarshal(data, &info.Version)
		}
		if data := b.Get(keyEmbedModel); data != nil {
			info.EmbedModel = string(data)
		}
		return nil
	})
	return info, err
}

// SetSchemaInfo stores the schema info.
func (s *BoltStore) SetSchemaInfo(info SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		data, err := json.Marshal(info.Version)
		if err != nil {
			return err
		}
		if err := b.Put(keySchemaVersion, data); err != nil {
			return err
		}
		return b.Put(keyEmbedModel, []byte(info.EmbedModel))
	})
}

// NeedsRebuild reports whether the stored index is unusable with the
// given embedding model. Vectors from different models or schema
// versions cannot be compared.
func (s *BoltStore) NeedsRebuild(embedModel string) (bool, string, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return false, "", err
	}

	if info.Version != 0 && info.Version != CurrentSchemaVersion {
		return true, fmt.Sprintf("schema version changed (v%d -> v%d)", info.Version, CurrentSchemaVersion), nil
	}
	if info.EmbedModel != "" && info.EmbedModel != embedModel {
		return true, fmt.Sprintf("embedding model changed (%s -> %s)", info.EmbedModel, embedModel), nil
	}
	return false, "", nil
}
