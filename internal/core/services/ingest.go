package services

import (
	"context"
	"fmt"

	"github.com/folio-labs/folio-cli/internal/chunker"
	"github.com/folio-labs/folio-cli/internal/content"
	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService orchestrates chunker, embedding gateway and chunk store to
// turn a content bundle into persisted, embedded chunks.
type IngestService struct {
	chunker *chunker.Chunker
	gateway *Gateway
	store   driven.ChunkStore
}

// NewIngestService creates the ingestion pipeline.
func NewIngestService(c *chunker.Chunker, gateway *Gateway, store driven.ChunkStore) *IngestService {
	return &IngestService{
		chunker: c,
		gateway: gateway,
		store:   store,
	}
}

// Ingest processes every usable source of the bundle in deterministic
// order: documents first, then the fixed scalar fields, then repository
// and video metadata. A chunk whose embedding fails is skipped and
// counted; a model-load failure or store failure aborts the run.
func (s *IngestService) Ingest(ctx context.Context, bundle *domain.ContentBundle) (*driving.IngestReport, error) {
	if bundle == nil {
		return nil, domain.ErrInvalidInput
	}

	// No model means no chunk can be embedded: fail the whole call up
	// front instead of skipping every chunk one by one.
	if err := s.gateway.Init(ctx); err != nil {
		return nil, err
	}

	logger.Section("Ingestion")
	report := &driving.IngestReport{}

	for _, src := range content.Sources(bundle) {
		texts := s.chunker.Split(src.Text)
		if len(texts) == 0 {
			continue
		}
		report.FieldsProcessed++
		logger.Debug("source %s: %d chunks", src.Name, len(texts))

		for _, text := range texts {
			vec, err := s.gateway.Embed(ctx, text)
			if err != nil {
				if ctx.Err() != nil {
					return report, ctx.Err()
				}
				// Per-chunk inference failure: skip the chunk, keep the
				// rest of the source. Only store failures and the
				// up-front model load abort the run.
				logger.Warn("source %s: embedding failed, skipping chunk: %v", src.Name, err)
				report.ChunksSkipped++
				continue
			}
			if vec == nil {
				logger.Warn("source %s: skipping chunk without embedding", src.Name)
				report.ChunksSkipped++
				continue
			}
			// All chunks in a store share one dimensionality.
			if len(vec) != s.gateway.Dimensions() {
				logger.Warn("source %s: %v: got %d, want %d",
					src.Name, domain.ErrDimensionMismatch, len(vec), s.gateway.Dimensions())
				report.ChunksSkipped++
				continue
			}

			metadata := make(map[string]any, len(src.Metadata))
			for k, v := range src.Metadata {
				metadata[k] = v
			}

			id, err := s.store.Put(ctx, domain.Chunk{
				Text:      text,
				Source:    src.Name,
				Metadata:  metadata,
				Embedding: vec,
			})
			if err != nil {
				return report, fmt.Errorf("store chunk from %s: %w", src.Name, err)
			}
			logger.Debug("stored chunk %s (%d chars)", id, len(text))
			report.ChunksStored++
		}
	}

	logger.Info("ingestion complete: %d stored, %d skipped across %d sources",
		report.ChunksStored, report.ChunksSkipped, report.FieldsProcessed)
	return report, nil
}

// Reset clears the chunk store for a fresh ingestion.
func (s *IngestService) Reset(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear chunk store: %w", err)
	}
	return nil
}
