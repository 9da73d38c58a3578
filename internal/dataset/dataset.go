package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"reviewrag/internal/domain"
)

// Required header names, exact match. Header order is not significant.
var requiredColumns = []string{"Title", "Review", "Rating", "Date"}

// Load reads the review CSV and validates its schema. Every returned review
// corresponds to one data row; a malformed row aborts the whole load.
func Load(path string) ([]domain.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open dataset %s: %v", domain.ErrBadInput, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", domain.ErrBadInput, path, err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var reviews []domain.Review
	row := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d of %s: %v", domain.ErrBadInput, row+1, path, err)
		}
		rev, err := parseRow(record, cols, row)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
		row++
	}
	return reviews, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: dataset is missing required columns: %s",
			domain.ErrBadInput, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, row int) (domain.Review, error) {
	get := func(name string) (string, bool) {
		idx := cols[name]
		if idx >= len(record) {
			return "", false
		}
		return record[idx], true
	}
	title, ok1 := get("Title")
	body, ok2 := get("Review")
	ratingRaw, ok3 := get("Rating")
	date, ok4 := get("Date")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return domain.Review{}, fmt.Errorf("%w: row %d has fewer fields than the header", domain.ErrBadInput, row+1)
	}
	rating, err := strconv.Atoi(strings.TrimSpace(ratingRaw))
	if err != nil {
		return domain.Review{}, fmt.Errorf("%w: row %d: rating %q is not an integer", domain.ErrBadInput, row+1, ratingRaw)
	}
	if rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("%w: row %d: rating %d is outside 1-5", domain.ErrBadInput, row+1, rating)
	}
	return domain.Review{
		Title:  strings.TrimSpace(title),
		Body:   strings.TrimSpace(body),
		Rating: rating,
		Date:   strings.TrimSpace(date),
	}, nil
}

// Documents builds one indexed document per review. The document text is the
// title and body joined with a space; the ID is the row index as a string.
func Documents(reviews []domain.Review) []domain.Document {
	docs := make([]domain.Document, len(reviews))
	for i, rev := range reviews {
		docs[i] = domain.Document{
			ID:   strconv.Itoa(i),
			Text: strings.TrimSpace(rev.Title + " " + rev.Body),
			Metadata: domain.Metadata{
				Rating: rev.Rating,
				Date:   rev.Date,
				Row:    i,
			},
		}
	}
	return docs
}
