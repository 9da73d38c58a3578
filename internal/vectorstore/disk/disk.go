package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"reviewrag/internal/domain"
)

// Storage is an on-disk vector store using brute-force cosine similarity.
// A collection lives in a single JSON file inside the store directory;
// presence of that file marks the collection as already built.
type Storage struct {
	mu         sync.RWMutex
	dir        string
	collection string
	dimension  int
	docs       []domain.Document
	vectors    [][]float64
	loaded     bool
}

// Config configures the on-disk store.
type Config struct {
	Dir        string
	Collection string
}

type collectionFile struct {
	Dimension int               `json:"dimension"`
	Documents []domain.Document `json:"documents"`
	Vectors   [][]float64       `json:"vectors"`
}

func NewStorage(cfg Config) *Storage {
	return &Storage{dir: cfg.Dir, collection: cfg.Collection}
}

func (s *Storage) path() string {
	return filepath.Join(s.dir, s.collection+".json")
}

// Exists reports whether the persisted collection file is present.
func (s *Storage) Exists() (bool, error) {
	_, err := os.Stat(s.path())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat %s: %v", domain.ErrStore, s.path(), err)
}

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", domain.ErrStore, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.docs = nil
	s.vectors = nil
	s.loaded = true
	return nil
}

func (s *Storage) Upsert(docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("%w: documents and vectors length mismatch", domain.ErrStore)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("%w: vector dimension %d, want %d", domain.ErrStore, len(v), s.dimension)
		}
	}
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return s.flushLocked()
}

func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = cosine(s.vectors[i], vector)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.SearchResult{Document: s.docs[j], Score: scores[j]})
	}
	return results, nil
}

// Close flushes the collection to disk.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil
	}
	return s.flushLocked()
}

// load reads the persisted collection on first use. Searching a store that
// was never built and never persisted is a store error.
func (s *Storage) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path())
	if err != nil {
		return fmt.Errorf("%w: read collection %s: %v", domain.ErrStore, s.path(), err)
	}
	var cf collectionFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("%w: collection %s is corrupt: %v", domain.ErrStore, s.path(), err)
	}
	if cf.Dimension <= 0 || len(cf.Documents) != len(cf.Vectors) {
		return fmt.Errorf("%w: collection %s is corrupt", domain.ErrStore, s.path())
	}
	s.dimension = cf.Dimension
	s.docs = cf.Documents
	s.vectors = cf.Vectors
	s.loaded = true
	return nil
}

// flushLocked writes the collection atomically: temp file, then rename.
func (s *Storage) flushLocked() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create store dir %s: %v", domain.ErrStore, s.dir, err)
	}
	cf := collectionFile{Dimension: s.dimension, Documents: s.docs, Vectors: s.vectors}
	data, err := json.Marshal(cf)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %v", domain.ErrStore, err)
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write collection: %v", domain.ErrStore, err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("%w: write collection: %v", domain.ErrStore, err)
	}
	return nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
