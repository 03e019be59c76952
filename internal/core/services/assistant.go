package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// answerMaxTokens bounds a single reply.
const answerMaxTokens = 1000

// answerTemperature keeps replies grounded but not robotic.
const answerTemperature = 0.7

const systemPrompt = `You are an assistant for a personal portfolio. Answer questions about the portfolio owner's background, skills, projects and experience in a professional, engaging tone.

Guidelines:
1. When the context below contains relevant information, use it as your primary source and cite the bracketed source tags.
2. When the context has nothing relevant, say that the portfolio does not cover it; you may add general knowledge, but be transparent about what is general knowledge versus portfolio content.
3. Be concise but thorough, and combine related pieces of context logically.`

// AssistantService grounds chat answers in retrieved portfolio chunks.
type AssistantService struct {
	retrieval driving.RetrievalService
	llm       driven.LLMService
	gateway   *Gateway
	topK      int
}

// NewAssistantService creates the chat assistant. llm may be nil, in which
// case Answer returns the retrieved context with ErrLLMUnavailable.
func NewAssistantService(retrieval driving.RetrievalService, llm driven.LLMService, gateway *Gateway, topK int) *AssistantService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AssistantService{
		retrieval: retrieval,
		llm:       llm,
		gateway:   gateway,
		topK:      topK,
	}
}

// State reports the index lifecycle for UI rendering.
func (s *AssistantService) State() domain.IndexState {
	return s.gateway.State()
}

// LLMModelName reports the configured chat model, or "" when no language
// model is wired in.
func (s *AssistantService) LLMModelName() string {
	if s.llm == nil {
		return ""
	}
	return s.llm.ModelName()
}

// Answer retrieves context for the question and asks the language model
// for a grounded reply.
func (s *AssistantService) Answer(ctx context.Context, question string) (*driving.AssistantAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}

	results, err := s.retrieval.FindSimilar(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}

	if s.llm == nil {
		return &driving.AssistantAnswer{Context: results}, domain.ErrLLMUnavailable
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt + "\n\n" + ContextBlock(results)},
		{Role: "user", Content: question},
	}

	logger.Debug("asking %s with %d context chunks", s.llm.ModelName(), len(results))
	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	return &driving.AssistantAnswer{
		Text:    strings.TrimSpace(reply),
		Context: results,
	}, nil
}

// ContextBlock renders ranked chunks as the prompt's context section, one
// "[source]: text" line per chunk. An empty result set renders an explicit
// no-context marker so the model does not hallucinate portfolio content.
func ContextBlock(results []domain.SimilarityResult) string {
	if len(results) == 0 {
		return "No specific information found in the portfolio."
	}

	var b strings.Builder
	b.WriteString("Context from portfolio:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "\n[%s]: %s\n", r.Chunk.Source, r.Chunk.Text)
	}
	return b.String()
}
