// Package driving provides interfaces for the application's entry points (primary/inbound ports).
package driving

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// IngestService turns a content bundle into persisted, embedded chunks.
type IngestService interface {
	// Ingest chunks, embeds and stores every usable field of the bundle.
	// Per-chunk embedding failures are skipped and counted in the report;
	// a model-load or store-level failure aborts with an error.
	//
	// Re-invoking Ingest without Reset appends duplicate chunks: the store
	// is append-only within a session.
	Ingest(ctx context.Context, bundle *domain.ContentBundle) (*IngestReport, error)

	// Reset removes all stored chunks so the next Ingest starts fresh.
	Reset(ctx context.Context) error
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// FieldsProcessed is the number of content sources that yielded text.
	FieldsProcessed int

	// ChunksStored is the number of chunks persisted with embeddings.
	ChunksStored int

	// ChunksSkipped is the number of chunks dropped because embedding
	// failed. Skips do not fail the run.
	ChunksSkipped int
}
