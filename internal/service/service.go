package service

import (
	"context"
	"fmt"

	"reviewrag/internal/dataset"
	"reviewrag/internal/domain"
	"reviewrag/internal/prompt"
	"reviewrag/internal/vectorstore"
)

// QAService orchestrates ingestion, retrieval and answer generation over
// the review dataset. All calls are synchronous and blocking.
type QAService struct {
	datasetPath string
	embedder    domain.Embedder
	store       vectorstore.Storage
	generator   domain.Generator
	topK        int
}

// Answer is the model's reply together with the reviews it was given.
type Answer struct {
	Text    string
	Sources []domain.SearchResult
}

func New(datasetPath string, embedder domain.Embedder, store vectorstore.Storage, generator domain.Generator, topK int) *QAService {
	if topK <= 0 {
		topK = 5
	}
	return &QAService{
		datasetPath: datasetPath,
		embedder:    embedder,
		store:       store,
		generator:   generator,
		topK:        topK,
	}
}

// Ingest builds the index: one document per review row, embedded and
// upserted into the store. If a persisted collection already exists the
// whole step is skipped without a single embedding call; staleness is the
// accepted tradeoff for not re-paying the embedding cost.
// Returns the number of newly indexed documents, 0 when skipped.
func (s *QAService) Ingest(ctx context.Context) (int, error) {
	exists, err := s.store.Exists()
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	reviews, err := dataset.Load(s.datasetPath)
	if err != nil {
		return 0, err
	}
	docs := dataset.Documents(reviews)
	if len(docs) == 0 {
		return 0, fmt.Errorf("%w: dataset %s has no review rows", domain.ErrBadInput, s.datasetPath)
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec, err := s.embedder.Embed(ctx, docs[i].Text)
		if err != nil {
			return 0, fmt.Errorf("embed review %s: %w", docs[i].ID, err)
		}
		vectors[i] = vec
	}
	if err := s.store.Init(s.embedder.Dimension()); err != nil {
		return 0, err
	}
	if err := s.store.Upsert(docs, vectors); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// Retrieve returns at most topK stored reviews ranked by similarity to the
// question. No reranking, no metadata filtering.
func (s *QAService) Retrieve(ctx context.Context, question string) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return s.store.Search(vec, s.topK)
}

// Ask retrieves relevant reviews, fills the prompt template and asks the
// generative model. The model output is returned verbatim.
func (s *QAService) Ask(ctx context.Context, question string) (Answer, error) {
	results, err := s.Retrieve(ctx, question)
	if err != nil {
		return Answer{}, err
	}
	text, err := s.generator.Generate(ctx, prompt.Build(question, results))
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: text, Sources: results}, nil
}
