package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Gateway wraps an Embedder with a one-shot, memoized initialisation and
// input validation. It is the only way the pipelines reach the model.
//
// Initialisation is guarded against concurrent first use: near-simultaneous
// Embed calls before the model is ready share a single in-flight attempt
// and its result. A failed attempt is sticky; the gateway moves to
// StateFailed and every later call observes the same error.
type Gateway struct {
	embedder driven.Embedder

	mu      sync.Mutex
	state   domain.IndexState
	initErr error
	dims    int           // measured at init; wins over the configured value
	done    chan struct{} // closed when the in-flight init settles
}

// initText is embedded once during initialisation to measure the model's
// actual output dimensionality. Adapters report a configured size, but
// the model decides what it emits.
const initText = "dimensionality check"

// NewGateway creates an uninitialised gateway around the embedder.
func NewGateway(embedder driven.Embedder) *Gateway {
	return &Gateway{
		embedder: embedder,
		state:    domain.StateUninitialized,
	}
}

// State reports the current lifecycle state.
func (g *Gateway) State() domain.IndexState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Init loads the model at most once per process lifetime. Safe to call
// concurrently; all callers share the first attempt's outcome.
func (g *Gateway) Init(ctx context.Context) error {
	g.mu.Lock()
	switch g.state {
	case domain.StateReady:
		g.mu.Unlock()
		return nil
	case domain.StateFailed:
		err := g.initErr
		g.mu.Unlock()
		return err
	case domain.StateInitializing:
		done := g.done
		g.mu.Unlock()
		select {
		case <-done:
			return g.Init(ctx) // settled; re-read the outcome
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// StateUninitialized: this caller owns the attempt.
	g.state = domain.StateInitializing
	g.done = make(chan struct{})
	done := g.done
	g.mu.Unlock()

	logger.Info("initialising embedding model %s", g.embedder.ModelName())
	err := g.embedder.Ping(ctx)
	var dims int
	if err == nil {
		var vec []float32
		vec, err = g.embedder.Embed(ctx, initText)
		if err == nil && len(vec) == 0 {
			err = errors.New("model returned an empty vector")
		}
		dims = len(vec)
	}

	g.mu.Lock()
	if err != nil {
		g.state = domain.StateFailed
		g.initErr = fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
		logger.Error("embedding model failed to initialise: %v", err)
	} else {
		if configured := g.embedder.Dimensions(); configured != dims {
			logger.Warn("model emits %d-dimensional vectors, configured %d; using %d",
				dims, configured, dims)
		}
		g.dims = dims
		g.state = domain.StateReady
		logger.Info("embedding model ready (%d dimensions)", dims)
	}
	out := g.initErr
	g.mu.Unlock()
	close(done)

	return out
}

// Embed validates text and delegates to the model. Invalid input returns
// (nil, nil) with a logged warning rather than failing the caller; model
// failures propagate so the caller decides between skip and abort.
func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		logger.Warn("embed: empty text, skipping")
		return nil, nil
	}

	if err := g.Init(ctx); err != nil {
		return nil, err
	}

	vec, err := g.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	return vec, nil
}

// Dimensions returns the embedding size measured at initialisation, or
// the adapter's configured value before the first Init.
func (g *Gateway) Dimensions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dims > 0 {
		return g.dims
	}
	return g.embedder.Dimensions()
}

// ModelName returns the underlying model identifier.
func (g *Gateway) ModelName() string {
	return g.embedder.ModelName()
}
