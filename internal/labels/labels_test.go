package labels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("preserves file order and trims whitespace", func(t *testing.T) {
		path := writeLabels(t, "Tomato___Late_blight\n  Tomato___healthy  \nApple___Apple_scab\n")

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 3, c.Len())
		assert.Equal(t, "Tomato___Late_blight", c.At(0))
		assert.Equal(t, "Tomato___healthy", c.At(1))
		assert.Equal(t, "Apple___Apple_scab", c.At(2))
	})

	t.Run("never sorts or deduplicates", func(t *testing.T) {
		path := writeLabels(t, "b\na\nb\n")

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 3, c.Len())
		assert.Equal(t, "b", c.At(0))
		assert.Equal(t, "a", c.At(1))
		assert.Equal(t, "b", c.At(2))
	})

	t.Run("skips blank lines", func(t *testing.T) {
		path := writeLabels(t, "a\n\n   \nb\n")

		c, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))

		assert.Error(t, err)
	})
}

func TestNilCatalogLen(t *testing.T) {
	var c *Catalog

	assert.Equal(t, 0, c.Len())
}

func writeLabels(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
