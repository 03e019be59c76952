package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrModelUnavailable,
		ErrStorageUnavailable,
		ErrLLMUnavailable,
		ErrDimensionMismatch,
	}
	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrors_WrapAndMatch(t *testing.T) {
	wrapped := fmt.Errorf("ingest about: %w", ErrModelUnavailable)

	assert.ErrorIs(t, wrapped, ErrModelUnavailable)
	assert.NotErrorIs(t, wrapped, ErrStorageUnavailable)
}
