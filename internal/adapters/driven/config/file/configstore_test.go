package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
output_dir = "results"

[fetch]
timeout = 10
retry_delay = 0.5

[embedding]
provider = "openai"
model = "text-embedding-3-small"
reduced_dimensions = 256

[extract]
paragraphs = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Fetch.RetryDelay)
	assert.Equal(t, domain.EmbeddingProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, 256, cfg.Embedding.ReducedDimensions)
	assert.True(t, cfg.Extract.Paragraphs)

	// Untouched sections keep their defaults.
	assert.Equal(t, domain.DefaultConfig().TestOutputDir, cfg.TestOutputDir)
	assert.Equal(t, domain.DefaultConfig().Fetch.Retries, cfg.Fetch.Retries)
	assert.Equal(t, domain.DefaultConfig().Visualization, cfg.Visualization)
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.toml")

	want := domain.DefaultConfig()
	want.OutputDir = "custom-out"
	want.Fetch.Timeout = 12 * time.Second
	want.Embedding.Provider = domain.EmbeddingProviderOpenAI
	want.Embedding.Model = "text-embedding-3-large"
	want.Embedding.APIKey = "sk-test"
	want.Extract.Images = true

	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "config may hold an API key")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
