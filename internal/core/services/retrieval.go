package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the number of chunks returned when the caller passes
// k <= 0.
const DefaultTopK = 5

// RetrievalService ranks stored chunks against a query by cosine
// similarity over a full store scan.
type RetrievalService struct {
	gateway *Gateway
	store   driven.ChunkStore
}

// NewRetrievalService creates the retriever.
func NewRetrievalService(gateway *Gateway, store driven.ChunkStore) *RetrievalService {
	return &RetrievalService{
		gateway: gateway,
		store:   store,
	}
}

// FindSimilar embeds the query, scores every stored chunk and returns the
// top k by descending score. The sort is stable, so equal scores keep the
// store's insertion order and results stay deterministic. A query the
// model cannot embed yields an empty result, not an error.
func (s *RetrievalService) FindSimilar(ctx context.Context, query string, k int) ([]domain.SimilarityResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	logger.Section("Retrieval")
	logger.Debug("query: %q, k=%d", query, k)

	queryVec, err := s.gateway.Embed(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A model failure degrades to "nothing relevant found" for this query.
		logger.Warn("query embedding failed: %v", err)
		return nil, nil
	}
	if queryVec == nil {
		logger.Warn("query produced no embedding")
		return nil, nil
	}

	chunks, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	if len(chunks) == 0 {
		logger.Debug("store is empty")
		return nil, nil
	}

	results := make([]domain.SimilarityResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, domain.SimilarityResult{
			Chunk: chunk,
			Score: CosineSimilarity(queryVec, chunk.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}

	for i, r := range results {
		logger.Debug("  [%d] %s (%.3f)", i+1, r.Chunk.Source, r.Score)
	}
	return results, nil
}
