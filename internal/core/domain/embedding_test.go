package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_Truncate(t *testing.T) {
	v := Vector{1, 2, 3, 4}

	assert.Equal(t, Vector{1, 2}, v.Truncate(2))
	assert.Equal(t, v, v.Truncate(0), "non-positive n keeps the vector")
	assert.Equal(t, v, v.Truncate(-1))
	assert.Equal(t, v, v.Truncate(4), "n equal to length keeps the vector")
	assert.Equal(t, v, v.Truncate(10), "n beyond length keeps the vector")
}

func TestMeanVector(t *testing.T) {
	t.Run("component-wise mean", func(t *testing.T) {
		mean, err := MeanVector([]Vector{
			{1, 0, 2},
			{3, 2, 4},
		})
		require.NoError(t, err)
		assert.Equal(t, Vector{2, 1, 3}, mean)
	})

	t.Run("single vector is its own mean", func(t *testing.T) {
		mean, err := MeanVector([]Vector{{0.5, -0.5}})
		require.NoError(t, err)
		assert.Equal(t, Vector{0.5, -0.5}, mean)
	})

	t.Run("empty set", func(t *testing.T) {
		_, err := MeanVector(nil)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := MeanVector([]Vector{{1, 2}, {1, 2, 3}})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
