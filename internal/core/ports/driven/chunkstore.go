package driven

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// ChunkStore persists chunks with their embeddings and supports full-scan
// retrieval. The store is append-only within a session: there is no update
// or single-delete path, only Clear.
//
// Backed by SQLite for durable storage; an in-memory implementation exists
// for tests and ephemeral runs.
type ChunkStore interface {
	// Put persists one chunk and returns its newly assigned unique id.
	// Each call is independently durable; ingestion stores one chunk at a
	// time, not batched.
	Put(ctx context.Context, chunk domain.Chunk) (string, error)

	// GetAll returns every stored chunk, including id and embedding, in
	// insertion order.
	GetAll(ctx context.Context) ([]domain.Chunk, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Clear removes all chunks. Exposed for explicit re-ingestion; never
	// invoked automatically.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
