package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

func passagesOf(texts ...string) []domain.Passage {
	out := make([]domain.Passage, len(texts))
	for i, t := range texts {
		out[i] = domain.Passage{Type: domain.PassageParagraph, Text: t}
	}
	return out
}

func TestEmbeddingEngine_EmbedPassages(t *testing.T) {
	ctx := context.Background()

	t.Run("aligns vectors with passages", func(t *testing.T) {
		svc := &mockEmbeddingService{dims: 4}
		engine, corr := NewEmbeddingEngine(svc, 0, 2)
		require.Nil(t, corr)

		vectors, err := engine.EmbedPassages(ctx, passagesOf("a", "bb", "ccc"))
		require.NoError(t, err)
		require.Len(t, vectors, 3)

		// The mock derives component 0 from text length, so order is
		// observable.
		assert.Equal(t, float32(1), vectors[0][0])
		assert.Equal(t, float32(2), vectors[1][0])
		assert.Equal(t, float32(3), vectors[2][0])
		assert.Equal(t, 2, svc.batches, "three passages at batch size two")
	})

	t.Run("reduced dimensionality truncates every vector", func(t *testing.T) {
		svc := &mockEmbeddingService{dims: 8}
		engine, corr := NewEmbeddingEngine(svc, 3, 10)
		require.Nil(t, corr)
		assert.Equal(t, 3, engine.Dimensions())

		vectors, err := engine.EmbedPassages(ctx, passagesOf("a", "bb"))
		require.NoError(t, err)
		for _, v := range vectors {
			assert.Len(t, v, 3)
		}

		q, err := engine.EmbedQuery(ctx, "some query")
		require.NoError(t, err)
		assert.Len(t, q, 3, "queries share the passage truncation rule")
	})

	t.Run("empty input", func(t *testing.T) {
		engine, _ := NewEmbeddingEngine(&mockEmbeddingService{dims: 4}, 0, 10)
		_, err := engine.EmbedPassages(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyContent)
	})

	t.Run("provider returning too few vectors", func(t *testing.T) {
		engine, _ := NewEmbeddingEngine(&mockEmbeddingService{dims: 4, dropLast: true}, 0, 10)
		_, err := engine.EmbedPassages(ctx, passagesOf("a", "bb"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrDimensionMismatch,
			"a count mismatch is not a dimensionality problem")
		assert.Contains(t, err.Error(), "1 vectors for 2 texts")
	})

	t.Run("provider error surfaces", func(t *testing.T) {
		boom := errors.New("provider down")
		engine, _ := NewEmbeddingEngine(&mockEmbeddingService{dims: 4, embedErr: boom}, 0, 10)
		_, err := engine.EmbedPassages(ctx, passagesOf("a"))
		assert.ErrorIs(t, err, boom)
	})
}

func TestNewEmbeddingEngine_ReducedBeyondNative(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4}
	engine, corr := NewEmbeddingEngine(svc, 99, 10)

	require.NotNil(t, corr, "the fallback is reported, never silent")
	assert.Equal(t, 4, engine.Dimensions())
}

func TestEmbeddingEngine_Ping(t *testing.T) {
	engine, _ := NewEmbeddingEngine(&mockEmbeddingService{dims: 4, pingErr: errors.New("no model")}, 0, 10)
	err := engine.Ping(context.Background())
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}
