package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
)

// vecEmbedder returns a fixed vector per input text so similarity ordering
// is fully controlled by the test.
type vecEmbedder struct {
	vectors map[string][]float32
}

var _ driven.Embedder = (*vecEmbedder)(nil)

func (v *vecEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if text == initText {
		return []float32{0, 0, 1}, nil
	}
	vec, ok := v.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return vec, nil
}

func (v *vecEmbedder) Dimensions() int            { return 3 }
func (v *vecEmbedder) ModelName() string          { return "vec-stub" }
func (v *vecEmbedder) Ping(_ context.Context) error { return nil }
func (v *vecEmbedder) Close() error               { return nil }

// brokenStore fails every read.
type brokenStore struct {
	driven.ChunkStore
}

func (b *brokenStore) GetAll(_ context.Context) ([]domain.Chunk, error) {
	return nil, errors.New("database is locked")
}

func seedChunks(t *testing.T, store driven.ChunkStore, vectors ...[]float32) {
	t.Helper()
	for i, vec := range vectors {
		_, err := store.Put(context.Background(), domain.Chunk{
			Text:      fmt.Sprintf("chunk number %d with some portfolio text", i),
			Source:    "about",
			Embedding: vec,
		})
		require.NoError(t, err)
	}
}

func TestFindSimilar_RanksByDescendingScore(t *testing.T) {
	store := memory.NewChunkStore()
	// Scores against query (1,0,0): 1.0, ~0.707, 0, per insertion order 1, 0, 2.
	seedChunks(t, store,
		[]float32{1, 1, 0},
		[]float32{1, 0, 0},
		[]float32{0, 1, 0},
	)

	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "query", 3)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Contains(t, results[0].Chunk.Text, "chunk number 1")
	assert.InDelta(t, 0.7071, results[1].Score, 1e-3)
	assert.InDelta(t, 0.0, results[2].Score, 1e-6)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestFindSimilar_TruncatesToK(t *testing.T) {
	store := memory.NewChunkStore()
	vectors := make([][]float32, 10)
	for i := range vectors {
		vectors[i] = []float32{1, float32(i) * 0.1, 0}
	}
	seedChunks(t, store, vectors...)

	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "query", 3)

	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestFindSimilar_KLargerThanStore(t *testing.T) {
	store := memory.NewChunkStore()
	seedChunks(t, store, []float32{1, 0, 0}, []float32{0, 1, 0})

	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "query", 50)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFindSimilar_DefaultK(t *testing.T) {
	store := memory.NewChunkStore()
	vectors := make([][]float32, 8)
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	seedChunks(t, store, vectors...)

	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "query", 0)

	require.NoError(t, err)
	assert.Len(t, results, DefaultTopK)
}

func TestFindSimilar_TiesKeepInsertionOrder(t *testing.T) {
	store := memory.NewChunkStore()
	// All chunks score identically against the query.
	seedChunks(t, store, []float32{1, 0, 0}, []float32{1, 0, 0}, []float32{1, 0, 0})

	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "query", 3)

	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Contains(t, r.Chunk.Text, fmt.Sprintf("chunk number %d", i))
	}
}

func TestFindSimilar_EmptyStore(t *testing.T) {
	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), memory.NewChunkStore())

	results, err := svc.FindSimilar(context.Background(), "query", 5)

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_UnembeddableQuery(t *testing.T) {
	store := memory.NewChunkStore()
	seedChunks(t, store, []float32{1, 0, 0})

	// No vector registered for the query text: the model errors.
	emb := &vecEmbedder{vectors: map[string][]float32{}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "query", 5)

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_BlankQuery(t *testing.T) {
	store := memory.NewChunkStore()
	seedChunks(t, store, []float32{1, 0, 0})

	emb := &vecEmbedder{vectors: map[string][]float32{}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "   ", 5)

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_StoreFailure(t *testing.T) {
	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), &brokenStore{ChunkStore: memory.NewChunkStore()})

	results, err := svc.FindSimilar(context.Background(), "query", 5)

	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestFindSimilar_MismatchedStoredVectorScoresZero(t *testing.T) {
	store := memory.NewChunkStore()
	// One stored vector has the wrong dimensionality.
	seedChunks(t, store, []float32{1, 0, 0}, []float32{1, 0})

	emb := &vecEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := NewRetrievalService(NewGateway(emb), store)

	results, err := svc.FindSimilar(context.Background(), "query", 5)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Zero(t, results[1].Score)
}
