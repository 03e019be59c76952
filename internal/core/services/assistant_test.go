package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
)

// stubLLM records the last prompt and replies with a canned answer.
type stubLLM struct {
	reply    string
	err      error
	lastMsgs []driven.ChatMessage
}

var _ driven.LLMService = (*stubLLM)(nil)

func (s *stubLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	s.lastMsgs = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) ModelName() string { return "stub-llm" }

func (s *stubLLM) Close() error { return nil }

func newAssistantFixture(t *testing.T, llm driven.LLMService) *AssistantService {
	t.Helper()

	store := memory.NewChunkStore()
	_, err := store.Put(context.Background(), domain.Chunk{
		Text:      "Ten years of experience building backend services in Go.",
		Source:    "experience",
		Embedding: []float32{1, 0, 0},
	})
	require.NoError(t, err)

	emb := &vecEmbedder{vectors: map[string][]float32{
		"What is your experience?": {1, 0, 0},
	}}
	gateway := NewGateway(emb)
	retrieval := NewRetrievalService(gateway, store)
	return NewAssistantService(retrieval, llm, gateway, 3)
}

func TestAnswer_GroundsPromptInContext(t *testing.T) {
	llm := &stubLLM{reply: "The portfolio owner has ten years of Go experience."}
	svc := newAssistantFixture(t, llm)

	answer, err := svc.Answer(context.Background(), "What is your experience?")

	require.NoError(t, err)
	assert.Equal(t, "The portfolio owner has ten years of Go experience.", answer.Text)
	require.Len(t, answer.Context, 1)
	assert.Equal(t, "experience", answer.Context[0].Chunk.Source)

	// The system message carries the retrieved context.
	require.Len(t, llm.lastMsgs, 2)
	assert.Equal(t, "system", llm.lastMsgs[0].Role)
	assert.Contains(t, llm.lastMsgs[0].Content, "[experience]: Ten years of experience")
	assert.Equal(t, "user", llm.lastMsgs[1].Role)
	assert.Equal(t, "What is your experience?", llm.lastMsgs[1].Content)
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	svc := newAssistantFixture(t, &stubLLM{reply: "never reached"})

	answer, err := svc.Answer(context.Background(), "   ")

	assert.Nil(t, answer)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswer_NoLLMDegradesToContext(t *testing.T) {
	svc := newAssistantFixture(t, nil)

	answer, err := svc.Answer(context.Background(), "What is your experience?")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	require.NotNil(t, answer)
	assert.Empty(t, answer.Text)
	require.Len(t, answer.Context, 1)
}

func TestAnswer_TrimsReply(t *testing.T) {
	llm := &stubLLM{reply: "\n  A reply with stray whitespace.  \n"}
	svc := newAssistantFixture(t, llm)

	answer, err := svc.Answer(context.Background(), "What is your experience?")

	require.NoError(t, err)
	assert.Equal(t, "A reply with stray whitespace.", answer.Text)
}

func TestLLMModelName(t *testing.T) {
	assert.Equal(t, "stub-llm", newAssistantFixture(t, &stubLLM{}).LLMModelName())
	assert.Equal(t, "", newAssistantFixture(t, nil).LLMModelName())
}

func TestContextBlock_RendersSourceTaggedLines(t *testing.T) {
	block := ContextBlock([]domain.SimilarityResult{
		{Chunk: domain.Chunk{Source: "about", Text: "A generalist engineer."}, Score: 0.9},
		{Chunk: domain.Chunk{Source: "skills", Text: "Go, SQL, Kubernetes."}, Score: 0.8},
	})

	assert.True(t, strings.HasPrefix(block, "Context from portfolio:"))
	assert.Contains(t, block, "[about]: A generalist engineer.")
	assert.Contains(t, block, "[skills]: Go, SQL, Kubernetes.")
}

func TestContextBlock_EmptyResults(t *testing.T) {
	assert.Equal(t, "No specific information found in the portfolio.", ContextBlock(nil))
	assert.Equal(t, "No specific information found in the portfolio.", ContextBlock([]domain.SimilarityResult{}))
}
