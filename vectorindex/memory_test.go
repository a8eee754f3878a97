package vectorindex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellsense/knowbase/ai/mock"
	"github.com/sellsense/knowbase/core"
)

// axisEmbedder maps known phrases onto fixed vectors so similarity ordering
// is predictable by inspection.
func axisEmbedder() *mock.MockEmbedder {
	vectors := map[string][]float32{
		"red apple":   {1, 0, 0},
		"green apple": {0.9, 0.1, 0},
		"blue car":    {0, 0, 1},
		"apple":       {1, 0, 0},
	}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		return []float32{0, 1, 0}, nil
	}
	return embedder
}

func seedMemory(t *testing.T) *Memory {
	t.Helper()
	m, err := NewMemory(axisEmbedder())
	require.NoError(t, err)

	_, err = m.Add(context.Background(), []Document{
		{Text: "red apple", Metadata: core.ChunkMetadata{Filename: "fruit.txt"}},
		{Text: "green apple", Metadata: core.ChunkMetadata{Filename: "fruit.txt"}},
		{Text: "blue car", Metadata: core.ChunkMetadata{Filename: "cars.txt"}},
	})
	require.NoError(t, err)
	return m
}

func TestMemory_SearchOrdersBySimilarity(t *testing.T) {
	m := seedMemory(t)

	results, err := m.Search(context.Background(), "apple", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "red apple", results[0].Text)
	assert.Equal(t, "green apple", results[1].Text)
	assert.Equal(t, "blue car", results[2].Text)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
	assert.Greater(t, results[1].Similarity, results[2].Similarity)
	assert.InDelta(t, 0.0, results[2].Similarity, 1e-6, "orthogonal vectors score zero")
}

func TestMemory_SearchLimitsK(t *testing.T) {
	m := seedMemory(t)

	results, err := m.Search(context.Background(), "apple", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "red apple", results[0].Text)

	none, err := m.Search(context.Background(), "apple", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemory_UnembeddableQueryReturnsNothing(t *testing.T) {
	m := seedMemory(t)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}
	m.embedder = embedder

	results, err := m.Search(context.Background(), "apple", 3)
	require.NoError(t, err, "embedding outage must not surface as a search error")
	assert.Empty(t, results)
}

func TestMemory_EmbeddingFailureOnAddStillStores(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}
	m, err := NewMemory(embedder)
	require.NoError(t, err)

	ids, err := m.Add(context.Background(), []Document{{Text: "unreachable text"}})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	stats, err := m.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentCount, "degraded entry is stored, just unfindable")
}

func TestMemory_Update(t *testing.T) {
	m := seedMemory(t)

	ids, err := m.Add(context.Background(), []Document{{Text: "blue car"}})
	require.NoError(t, err)

	err = m.Update(context.Background(), ids[0], "red apple", core.ChunkMetadata{Filename: "updated.txt"})
	require.NoError(t, err)

	results, err := m.Search(context.Background(), "apple", 10)
	require.NoError(t, err)
	var found bool
	for _, r := range results {
		if r.ID == ids[0] {
			found = true
			assert.Equal(t, "red apple", r.Text)
			assert.Equal(t, "updated.txt", r.Metadata.Filename)
		}
	}
	assert.True(t, found)

	err = m.Update(context.Background(), "missing-id", "text", core.ChunkMetadata{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Delete(t *testing.T) {
	m, err := NewMemory(axisEmbedder())
	require.NoError(t, err)

	ids, err := m.Add(context.Background(), []Document{
		{Text: "red apple"},
		{Text: "blue car"},
	})
	require.NoError(t, err)

	require.NoError(t, m.Delete(context.Background(), []string{ids[0], "unknown-id"}))

	stats, err := m.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentCount)
}

func TestMemory_ClearAndStats(t *testing.T) {
	m := seedMemory(t)

	stats, err := m.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.DocumentCount)
	assert.Equal(t, ModeMemory, stats.Mode)

	require.NoError(t, m.Clear(context.Background()))

	stats, err = m.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.DocumentCount)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero left", []float32{0, 0}, []float32{1, 1}, 0},
		{"zero right", []float32{1, 1}, []float32{0, 0}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}
