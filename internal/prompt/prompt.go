package prompt

import (
	"fmt"
	"strings"

	"reviewrag/internal/domain"
)

// Template is the fixed prompt filled for every question.
const Template = `You are an expert in answering questions about a pizza restaurant.

Use only the information from the provided reviews and do not invent facts.
If the reviews are not sufficient, say what is missing.

Here are some relevant reviews:
%s

Here is the question to answer:
%s`

const (
	maxSnippetChars = 400
	maxBlockChars   = 1800
)

// Build fills the template with the retrieved reviews and the user question.
func Build(question string, results []domain.SearchResult) string {
	return fmt.Sprintf(Template, FormatReviews(results), question)
}

// FormatReviews renders retrieved documents as a compact numbered block.
// Each snippet is capped so a long review cannot blow up the prompt.
func FormatReviews(results []domain.SearchResult) string {
	if len(results) == 0 {
		return "No matching reviews were found for this question."
	}
	var lines []string
	for i, r := range results {
		snippet := strings.Join(strings.Fields(r.Document.Text), " ")
		if len(snippet) > maxSnippetChars {
			snippet = strings.TrimRight(snippet[:maxSnippetChars], " ") + "…"
		}
		lines = append(lines, fmt.Sprintf("- Review #%d (rating %d/5, %s): %s",
			i+1, r.Document.Metadata.Rating, r.Document.Metadata.Date, snippet))
	}
	joined := strings.Join(lines, "\n")
	if len(joined) > maxBlockChars {
		joined = strings.TrimRight(joined[:maxBlockChars], " ") + "\n… (truncated)"
	}
	return joined
}
