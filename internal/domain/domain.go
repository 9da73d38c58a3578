package domain

import "context"

// Review is a single restaurant review row loaded from the dataset.
// Reviews are immutable after load.
type Review struct {
	Title  string
	Body   string
	Rating int
	Date   string
}

// Metadata carries the non-text fields kept alongside an indexed document.
// Keys are canonical lowercase on every backend.
type Metadata struct {
	Rating int    `json:"rating"`
	Date   string `json:"date"`
	Row    int    `json:"row"`
}

// Document is an indexed review: the embedded text plus its metadata.
// The ID is the dataset row index, so identity is stable across runs
// as long as the dataset is unchanged.
type Document struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// SearchResult is a matching document with a similarity score.
type SearchResult struct {
	Document Document
	Score    float64
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}

// Generator produces a text completion for a fully-formed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
