package vectorstore

import "reviewrag/internal/domain"

// Storage persists document vectors and supports similarity search.
// A handle is opened at startup, injected into the indexer and retriever,
// and closed at shutdown.
type Storage interface {
	// Exists reports whether a persisted collection is already present.
	// Its result is the sole signal consulted by the skip-reindex check.
	Exists() (bool, error)
	Init(dimension int) error
	Upsert(docs []domain.Document, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Close() error
}
