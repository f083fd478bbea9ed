package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sednafm/aircurator/internal/catalog"
)

func testEpisodes(n int) []catalog.Episode {
	eps := make([]catalog.Episode, 0, n)
	for i := 1; i <= n; i++ {
		eps = append(eps, catalog.Episode{ID: i})
	}
	return eps
}

func TestFilter(t *testing.T) {
	t.Run("empty exclusion returns full catalog without reset", func(t *testing.T) {
		eps := testEpisodes(5)
		available, didReset := Filter(eps, nil)

		assert.Equal(t, eps, available)
		assert.False(t, didReset)
	})

	t.Run("removes excluded ids", func(t *testing.T) {
		eps := testEpisodes(5)
		available, didReset := Filter(eps, []int{2, 4})

		require.Len(t, available, 3)
		assert.Equal(t, 1, available[0].ID)
		assert.Equal(t, 3, available[1].ID)
		assert.Equal(t, 5, available[2].ID)
		assert.False(t, didReset)
	})

	t.Run("excluding everything resets to full catalog", func(t *testing.T) {
		eps := testEpisodes(10)
		available, didReset := Filter(eps, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

		assert.Equal(t, eps, available)
		assert.True(t, didReset)
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		eps := testEpisodes(3)
		available, didReset := Filter(eps, []int{42, 99})

		assert.Equal(t, eps, available)
		assert.False(t, didReset)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		eps := testEpisodes(4)
		Filter(eps, []int{1, 3})

		assert.Equal(t, testEpisodes(4), eps)
	})
}
