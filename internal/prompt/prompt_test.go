package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewrag/internal/domain"
)

func result(text string, rating int) domain.SearchResult {
	return domain.SearchResult{
		Document: domain.Document{Text: text, Metadata: domain.Metadata{Rating: rating, Date: "2024-05-10"}},
		Score:    0.9,
	}
}

func TestBuildContainsQuestionAndReviews(t *testing.T) {
	results := []domain.SearchResult{
		result("Great Pizza Loved the crust", 5),
		result("Meh Cold fries", 2),
	}

	p := Build("How is the pizza?", results)

	assert.Contains(t, p, "How is the pizza?")
	assert.Contains(t, p, "Great Pizza Loved the crust")
	assert.Contains(t, p, "Meh Cold fries")
	assert.Contains(t, p, "Review #1")
	assert.Contains(t, p, "Review #2")
}

func TestFormatReviewsEmpty(t *testing.T) {
	assert.Equal(t, "No matching reviews were found for this question.", FormatReviews(nil))
}

func TestFormatReviewsSnippetCap(t *testing.T) {
	long := strings.Repeat("tasty ", 200) // well past the per-snippet cap
	block := FormatReviews([]domain.SearchResult{result(long, 4)})

	assert.Less(t, len(block), len(long))
	assert.Contains(t, block, "…")
}

func TestFormatReviewsBlockCap(t *testing.T) {
	var results []domain.SearchResult
	for i := 0; i < 10; i++ {
		results = append(results, result(strings.Repeat("crust ", 80), 3))
	}

	block := FormatReviews(results)
	assert.Contains(t, block, "… (truncated)")
}

func TestFormatReviewsCollapsesWhitespace(t *testing.T) {
	block := FormatReviews([]domain.SearchResult{result("line one\nline   two", 3)})
	assert.Contains(t, block, "line one line two")
}
