// Package domain contains the core types for the portfolio knowledge base.
package domain

// Chunk is the atomic retrievable unit: a bounded span of portfolio text
// together with its embedding vector and provenance.
type Chunk struct {
	// ID is the unique identifier, assigned by the chunk store on put.
	ID string

	// Text is the chunk content after normalisation and filtering.
	Text string

	// Source identifies the content field or document the chunk came from,
	// e.g. "about", "skills" or "document_resume.txt".
	Source string

	// Metadata contains source-specific key-value pairs. At minimum it
	// carries a "type" key ("portfolio", "document", "github", "youtube").
	Metadata map[string]any

	// Embedding is the vector representation of Text. All chunks in one
	// store share the same dimensionality.
	Embedding []float32
}

// SimilarityResult pairs a stored chunk with its cosine similarity to one
// query. Results are transient and never persisted.
type SimilarityResult struct {
	Chunk Chunk

	// Score is the cosine similarity in [-1, 1].
	Score float64
}
