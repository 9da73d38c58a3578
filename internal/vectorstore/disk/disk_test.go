package disk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewrag/internal/domain"
)

func doc(id string, rating int) domain.Document {
	return domain.Document{ID: id, Text: "review " + id, Metadata: domain.Metadata{Rating: rating, Date: "2024-05-10"}}
}

func TestExistsBeforeAndAfterBuild(t *testing.T) {
	s := NewStorage(Config{Dir: t.TempDir(), Collection: "reviews"})

	exists, err := s.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.Document{doc("0", 5)}, [][]float64{{1, 0}}))

	exists, err = s.Exists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSearchOrderAndTopK(t *testing.T) {
	s := NewStorage(Config{Dir: t.TempDir(), Collection: "reviews"})
	require.NoError(t, s.Init(2))
	docs := []domain.Document{doc("0", 5), doc("1", 3), doc("2", 1)}
	vectors := [][]float64{
		{1, 0}, // identical direction to the query
		{1, 1}, // 45 degrees off
		{0, 1}, // orthogonal
	}
	require.NoError(t, s.Upsert(docs, vectors))

	results, err := s.Search([]float64{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "0", results[0].Document.ID)
	assert.Equal(t, "1", results[1].Document.ID)
	assert.Greater(t, results[0].Score, results[1].Score)

	// topK larger than the collection returns everything, still ordered
	all, err := s.Search([]float64{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2", all[2].Document.ID)
}

func TestPersistenceAcrossHandles(t *testing.T) {
	dir := t.TempDir()

	s := NewStorage(Config{Dir: dir, Collection: "reviews"})
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.Document{doc("0", 5)}, [][]float64{{0.6, 0.8}}))
	require.NoError(t, s.Close())

	reopened := NewStorage(Config{Dir: dir, Collection: "reviews"})
	exists, err := reopened.Exists()
	require.NoError(t, err)
	require.True(t, exists)

	results, err := reopened.Search([]float64{0.6, 0.8}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "0", results[0].Document.ID)
	assert.Equal(t, 5, results[0].Document.Metadata.Rating)
	assert.Equal(t, "2024-05-10", results[0].Document.Metadata.Date)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestSearchUnbuiltStoreFails(t *testing.T) {
	s := NewStorage(Config{Dir: t.TempDir(), Collection: "reviews"})
	_, err := s.Search([]float64{1, 0}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestCorruptCollectionFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reviews.json"), []byte("not json"), 0o644))

	s := NewStorage(Config{Dir: dir, Collection: "reviews"})
	_, err := s.Search([]float64{1, 0}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s := NewStorage(Config{Dir: t.TempDir(), Collection: "reviews"})
	require.NoError(t, s.Init(3))

	err := s.Upsert([]domain.Document{doc("0", 5)}, [][]float64{{1, 0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStore)
}
