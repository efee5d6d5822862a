package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

func TestFor_SelectsBySampleCount(t *testing.T) {
	assert.Equal(t, domain.ProjectionPCA, For(1, 0).Method())
	assert.Equal(t, domain.ProjectionPCA, For(3, 0).Method())
	assert.Equal(t, domain.ProjectionTSNE, For(4, 0).Method())
	assert.Equal(t, domain.ProjectionTSNE, For(100, 0).Method())
}

func TestFor_ShrinksPerplexity(t *testing.T) {
	p, ok := For(5, 0).(*TSNE)
	require.True(t, ok)
	assert.Equal(t, 4, p.Perplexity())

	p, ok = For(200, 0).(*TSNE)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultPerplexity, p.Perplexity())
}

func TestPCA_Project(t *testing.T) {
	t.Run("single vector lands at the origin", func(t *testing.T) {
		points, err := NewPCA().Project([]domain.Vector{{1, 2, 3, 4}})
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, domain.Point3{}, points[0])
	})

	t.Run("preserves count and order", func(t *testing.T) {
		vectors := []domain.Vector{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
		}
		points, err := NewPCA().Project(vectors)
		require.NoError(t, err)
		assert.Len(t, points, len(vectors))
	})

	t.Run("separated inputs stay separated", func(t *testing.T) {
		// Two tight clusters far apart must not collapse onto each other.
		vectors := []domain.Vector{
			{0, 0, 0, 0},
			{0.1, 0, 0, 0},
			{10, 10, 10, 10},
			{10.1, 10, 10, 10},
		}
		points, err := NewPCA().Project(vectors)
		require.NoError(t, err)

		near := distance3(points[0], points[1])
		far := distance3(points[0], points[2])
		assert.Greater(t, far, near*10)
	})

	t.Run("deterministic", func(t *testing.T) {
		vectors := []domain.Vector{{1, 2}, {3, 1}, {2, 5}}
		a, err := NewPCA().Project(vectors)
		require.NoError(t, err)
		b, err := NewPCA().Project(vectors)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := NewPCA().Project(nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTSNE_Project(t *testing.T) {
	t.Run("rejects tiny sample sets", func(t *testing.T) {
		_, err := NewTSNE(2, 0).Project([]domain.Vector{{1, 2}, {3, 4}, {5, 6}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects oversized perplexity", func(t *testing.T) {
		vectors := []domain.Vector{{1, 0}, {0, 1}, {1, 1}, {2, 2}}
		_, err := NewTSNE(30, 0).Project(vectors)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("projects to one point per vector", func(t *testing.T) {
		vectors := make([]domain.Vector, 8)
		for i := range vectors {
			vectors[i] = domain.Vector{float32(i), float32(i % 3), float32(i % 5), 1}
		}
		points, err := NewTSNE(domain.PerplexityFor(len(vectors)), 42).Project(vectors)
		require.NoError(t, err)
		assert.Len(t, points, len(vectors))
	})
}

func distance3(a, b domain.Point3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}
