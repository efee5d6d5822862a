package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherQueries(t *testing.T) {
	t.Run("flags only", func(t *testing.T) {
		got, err := gatherQueries([]string{"one", "two"}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, got)
	})

	t.Run("file lines appended after flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "queries.txt")
		content := "project tools\n\n# a comment\n  team plans  \n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		got, err := gatherQueries([]string{"from flag"}, path)
		require.NoError(t, err)
		assert.Equal(t, []string{"from flag", "project tools", "team plans"}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := gatherQueries(nil, filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}
