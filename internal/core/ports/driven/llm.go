package driven

import "context"

// LLMService provides chat completion for the assistant. This is an
// optional service - when nil, queries degrade to raw retrieved chunks.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI and OpenAI-compatible endpoints (OpenRouter, LM Studio)
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the assistant
	// message content.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
