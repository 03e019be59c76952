package driving

import (
	"context"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// RetrievalService answers a query with ranked chunks.
type RetrievalService interface {
	// FindSimilar returns up to k stored chunks ranked by descending cosine
	// similarity to the query. Ties keep insertion order. A query that
	// cannot be embedded yields an empty result, not an error; store
	// failures surface as errors so the caller can report degraded mode.
	FindSimilar(ctx context.Context, query string, k int) ([]domain.SimilarityResult, error)
}

// AssistantService answers natural-language questions grounded in the
// retrieved portfolio context.
type AssistantService interface {
	// Answer retrieves context for the question, assembles a prompt and
	// calls the language model. When retrieval finds nothing, the model is
	// told no portfolio context exists rather than being handed an empty
	// block.
	Answer(ctx context.Context, question string) (*AssistantAnswer, error)

	// State reports the index lifecycle for UI rendering.
	State() domain.IndexState

	// LLMModelName reports the configured chat model, or "" when answers
	// are served from retrieved context alone.
	LLMModelName() string
}

// AssistantAnswer is the assistant's reply plus the context that grounded it.
type AssistantAnswer struct {
	// Text is the generated reply.
	Text string

	// Context is the ranked retrieval result used to ground the reply,
	// empty when nothing relevant was found.
	Context []domain.SimilarityResult
}
