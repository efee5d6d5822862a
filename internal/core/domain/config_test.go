package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	t.Run("defaults pass unchanged", func(t *testing.T) {
		cfg, corrections, err := ValidateConfig(DefaultConfig())
		require.NoError(t, err)
		assert.Empty(t, corrections)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("recoverable values corrected with report", func(t *testing.T) {
		bad := DefaultConfig()
		bad.Fetch.Timeout = 0
		bad.Fetch.RatePerSec = -1
		bad.Embedding.BatchSize = 0

		cfg, corrections, err := ValidateConfig(bad)
		require.NoError(t, err)
		assert.Len(t, corrections, 3, "every substitution is reported")
		assert.Equal(t, DefaultFetchTimeout, cfg.Fetch.Timeout)
		assert.Equal(t, DefaultFetchRate, cfg.Fetch.RatePerSec)
		assert.Equal(t, DefaultBatchSize, cfg.Embedding.BatchSize)
	})

	t.Run("unknown provider is unrecoverable", func(t *testing.T) {
		bad := DefaultConfig()
		bad.Embedding.Provider = "huggingface"

		_, _, err := ValidateConfig(bad)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidateQueries(t *testing.T) {
	t.Run("trims and keeps order", func(t *testing.T) {
		got, err := ValidateQueries([]string{"  seo tool ", "page comparison", ""})
		require.NoError(t, err)
		assert.Equal(t, []string{"seo tool", "page comparison"}, got)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := ValidateQueries(nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("only blank entries", func(t *testing.T) {
		_, err := ValidateQueries([]string{"  ", ""})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too many", func(t *testing.T) {
		many := make([]string, MaxQueries+1)
		for i := range many {
			many[i] = "query"
		}
		_, err := ValidateQueries(many)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ValidateQueries([]string{"a"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := ValidateQueries([]string{strings.Repeat("q", MaxQueryLength+1)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
