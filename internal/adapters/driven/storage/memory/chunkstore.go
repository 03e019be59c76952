// Package memory provides in-memory adapter implementations used by tests
// and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore. Chunks
// keep insertion order.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// Put stores one chunk and returns its assigned id.
func (s *ChunkStore) Put(_ context.Context, chunk domain.Chunk) (string, error) {
	if chunk.Text == "" || chunk.Source == "" {
		return "", fmt.Errorf("%w: chunk needs text and source", domain.ErrInvalidInput)
	}
	if len(chunk.Embedding) == 0 {
		return "", fmt.Errorf("%w: chunk needs an embedding", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chunk.ID = uuid.New().String()
	s.chunks = append(s.chunks, chunk)
	return chunk.ID, nil
}

// GetAll returns every stored chunk in insertion order.
func (s *ChunkStore) GetAll(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out, nil
}

// Count returns the number of stored chunks.
func (s *ChunkStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Clear removes all chunks.
func (s *ChunkStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	return nil
}

// Close releases resources.
func (s *ChunkStore) Close() error {
	return nil
}
