package cli

import (
	"context"

	configfile "github.com/folio-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/folio-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/folio-labs/folio-cli/internal/chunker"
	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/services"
)

// stubEmbedder returns the same vector for every text so command tests
// run without a model.
type stubEmbedder struct {
	vec []float32
}

var _ driven.Embedder = (*stubEmbedder)(nil)

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	out := make([]float32, len(s.vec))
	copy(out, s.vec)
	return out, nil
}

func (s *stubEmbedder) Dimensions() int              { return len(s.vec) }
func (s *stubEmbedder) ModelName() string            { return "stub-model" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error                 { return nil }

// stubLLM replies with a canned answer.
type stubLLM struct {
	reply string
}

var _ driven.LLMService = (*stubLLM)(nil)

func (s *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return s.reply, nil
}

func (s *stubLLM) ModelName() string { return "stub-llm" }
func (s *stubLLM) Close() error      { return nil }

// setupTestServices wires the package-level services against an in-memory
// store and stub model adapters. The returned cleanup restores the
// previous wiring.
func setupTestServices() func() {
	oldCfg := cfg
	oldStore := chunkStore
	oldGateway := gateway
	oldIngest := ingestService
	oldRetrieval := retrievalService
	oldAssistant := assistantService

	cfg = &configfile.Config{TopK: 3}
	store := memory.NewChunkStore()
	chunkStore = store
	gateway = services.NewGateway(&stubEmbedder{vec: []float32{1, 0, 0}})
	ingestService = services.NewIngestService(chunker.New(), gateway, store)
	retrieval := services.NewRetrievalService(gateway, store)
	retrievalService = retrieval
	assistantService = services.NewAssistantService(retrieval, &stubLLM{reply: "A canned answer."}, gateway, cfg.TopK)

	return func() {
		cfg = oldCfg
		chunkStore = oldStore
		gateway = oldGateway
		ingestService = oldIngest
		retrievalService = oldRetrieval
		assistantService = oldAssistant
	}
}

// seedTestChunks stores a few chunks directly so retrieval commands have
// data to rank.
func seedTestChunks() error {
	for _, c := range []struct{ text, source string }{
		{"Ten years building backend services in Go.", "experience"},
		{"Speaks at conferences about developer tooling.", "about"},
	} {
		_, err := chunkStore.Put(context.Background(), domain.Chunk{
			Text:      c.text,
			Source:    c.source,
			Embedding: []float32{1, 0, 0},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
