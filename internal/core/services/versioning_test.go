package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

func TestVersionManager_NextVersion(t *testing.T) {
	t.Run("starts at one for an empty store", func(t *testing.T) {
		m := NewVersionManager(newMemStore())

		v, err := m.NextVersion(domain.RoleClient, "example-com", domain.ArtifactMarkup)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("continues after the highest version on disk", func(t *testing.T) {
		m := NewVersionManager(newMemStore(
			"client-example-com-v1.html",
			"client-example-com-v7.html",
			"client-example-com-v3.html",
		))

		v, err := m.NextVersion(domain.RoleClient, "example-com", domain.ArtifactMarkup)
		require.NoError(t, err)
		assert.Equal(t, 8, v)
	})

	t.Run("repeated reservations within one run stay monotonic", func(t *testing.T) {
		m := NewVersionManager(newMemStore("client-example-com-v2.html"))

		first, err := m.NextVersion(domain.RoleClient, "example-com", domain.ArtifactMarkup)
		require.NoError(t, err)
		second, err := m.NextVersion(domain.RoleClient, "example-com", domain.ArtifactMarkup)
		require.NoError(t, err)

		assert.Equal(t, 3, first)
		assert.Equal(t, 4, second)
	})

	t.Run("kinds version independently", func(t *testing.T) {
		m := NewVersionManager(newMemStore("client-example-com-v5.html"))

		v, err := m.NextVersion(domain.RoleClient, "example-com", domain.ArtifactJSON)
		require.NoError(t, err)
		assert.Equal(t, 1, v, "json versions are independent of markup versions")
	})

	t.Run("unrelated names are ignored", func(t *testing.T) {
		m := NewVersionManager(newMemStore(
			"client-example-com-extra-v9.html",
			"competitor-example-com-v9.html",
			"client-example-com-v2.meta.json",
			"notes.txt",
		))

		v, err := m.NextVersion(domain.RoleClient, "example-com", domain.ArtifactMarkup)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("empty slug", func(t *testing.T) {
		m := NewVersionManager(newMemStore())

		_, err := m.NextVersion(domain.RoleClient, "", domain.ArtifactMarkup)
		assert.ErrorIs(t, err, domain.ErrNaming)
	})
}

func TestVersionManager_LatestVersion(t *testing.T) {
	m := NewVersionManager(newMemStore("embedding_comparison-v4.html"))

	t.Run("reports the version on disk", func(t *testing.T) {
		v, ok, err := m.LatestVersion("", "embedding_comparison", domain.ArtifactVisualization)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 4, v)
	})

	t.Run("ignores in-run reservations", func(t *testing.T) {
		_, err := m.NextVersion("", "embedding_comparison", domain.ArtifactVisualization)
		require.NoError(t, err)

		v, ok, err := m.LatestVersion("", "embedding_comparison", domain.ArtifactVisualization)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 4, v, "LatestVersion locates the previous run's artifact")
	})

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := m.LatestVersion(domain.RoleClient, "nowhere", domain.ArtifactMarkup)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
