package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or empty input. It is recovered
	// locally (log and produce nothing) and never aborts a pipeline.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable indicates the embedding model failed to load or
	// infer. Ingestion skips the affected chunk; retrieval returns an empty
	// result for the query.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrStorageUnavailable indicates the durable chunk store cannot be
	// reached or written. It is a hard failure for the operation in flight.
	ErrStorageUnavailable = errors.New("chunk store unavailable")

	// ErrLLMUnavailable indicates the language model service is not
	// configured. Retrieval still works; answering degrades to raw chunks.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrDimensionMismatch indicates an embedding does not match the
	// store-wide dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
