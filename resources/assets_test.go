package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcon_LoadsAndCaches(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused, IconDone} {
		first, err := Icon(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(first.Content()), "<svg", name)

		second, err := Icon(name)
		require.NoError(t, err)
		assert.Same(t, first, second, "cached resource expected for %s", name)
	}
}

func TestIcon_Missing(t *testing.T) {
	_, err := Icon("missing.svg")
	assert.ErrorContains(t, err, "load resource icons/missing.svg")
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
