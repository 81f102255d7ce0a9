package covertree

import (
	"math/rand"
	"testing"

	"github.com/hupe1980/covertree/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		tree, err := New(metric.Euclidean)
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Size())
		assert.Equal(t, 0, tree.MaxLevel())
		assert.Equal(t, 0, tree.MinLevel())
	})

	t.Run("NilMetric", func(t *testing.T) {
		_, err := New[[]float64](nil)
		require.ErrorIs(t, err, ErrNilMetric)
	})

	t.Run("InvalidBase", func(t *testing.T) {
		_, err := New(metric.Euclidean, WithBase(1.0))
		require.ErrorIs(t, err, ErrInvalidBase)

		_, err = New(metric.Euclidean, WithBase(0.5))
		require.ErrorIs(t, err, ErrInvalidBase)
	})

	t.Run("PositiveMaxMinLevelLiftsStartingLevel", func(t *testing.T) {
		tree, err := New(metric.Euclidean, WithMaxMinLevel(3))
		require.NoError(t, err)
		assert.Equal(t, 3, tree.MaxLevel())
		assert.Equal(t, 3, tree.MinLevel())
	})
}

func TestAdd(t *testing.T) {
	t.Run("DistinctElements", func(t *testing.T) {
		tree, err := New(metric.Euclidean)
		require.NoError(t, err)

		points := [][]float64{{1, 2}, {5, 7}, {-10, 4}, {9, 8}, {3, 3}}
		for _, p := range points {
			assert.True(t, tree.Add(p))
		}
		assert.Equal(t, len(points), tree.Size())
	})

	t.Run("DuplicatesAreRejected", func(t *testing.T) {
		tree, err := New(metric.Euclidean)
		require.NoError(t, err)

		require.True(t, tree.Add([]float64{1, 2}))
		require.True(t, tree.Add([]float64{5, 7}))

		assert.False(t, tree.Add([]float64{1, 2}))
		assert.False(t, tree.Add([]float64{5, 7}))
		assert.Equal(t, 2, tree.Size())

		// Queries are unaffected by the rejected duplicates.
		nearest, ok := tree.NearestNeighbor([]float64{0, 0})
		require.True(t, ok)
		assert.Equal(t, []float64{1, 2}, nearest)
	})

	t.Run("DuplicateRootIsRejected", func(t *testing.T) {
		tree, err := New(metric.Euclidean)
		require.NoError(t, err)

		require.True(t, tree.Add([]float64{1, 2}))
		assert.False(t, tree.Add([]float64{1, 2}))
		assert.Equal(t, 1, tree.Size())
	})

	t.Run("FarElementGrowsTreeUpward", func(t *testing.T) {
		tree, err := New(metric.Euclidean, WithBase(2))
		require.NoError(t, err)

		require.True(t, tree.Add([]float64{0, 0}))
		// Distance 10 exceeds base^(maxLevel+1) = 2, so the root is wrapped
		// until its cover contains the new element: 2^4 = 16 >= 10.
		require.True(t, tree.Add([]float64{10, 0}))

		assert.Equal(t, 4, tree.MaxLevel())
		assert.Equal(t, 2, tree.Size())

		nearest, ok := tree.NearestNeighbor([]float64{9, 0})
		require.True(t, ok)
		assert.Equal(t, []float64{10, 0}, nearest)
	})

	t.Run("DeepElementExtendsMinLevel", func(t *testing.T) {
		tree, err := New(metric.Euclidean, WithBase(2))
		require.NoError(t, err)

		require.True(t, tree.Add([]float64{0, 0}))
		require.True(t, tree.Add([]float64{1, 0}))

		assert.Equal(t, -1, tree.MinLevel())
		assert.Equal(t, 2, tree.Size())
	})

	t.Run("MaxMinLevelFloorRejectsDeepElement", func(t *testing.T) {
		tree, err := New(metric.Euclidean, WithBase(2), WithMaxMinLevel(0))
		require.NoError(t, err)

		require.True(t, tree.Add([]float64{0, 0}))
		// Would have to be admitted at level -1, below the floor.
		assert.False(t, tree.Add([]float64{1, 0}))
		assert.Equal(t, 1, tree.Size())
	})
}

func TestSizeAbove(t *testing.T) {
	tree, err := New(metric.Euclidean, WithBase(2))
	require.NoError(t, err)

	require.True(t, tree.Add([]float64{0, 0}))
	require.True(t, tree.Add([]float64{10, 0})) // admitted at maxLevel-1 = 3
	require.True(t, tree.Add([]float64{1, 0}))  // admitted at level -1

	assert.Equal(t, 3, tree.Size())
	assert.Equal(t, 3, tree.SizeAbove(tree.MinLevel()))
	assert.Equal(t, 2, tree.SizeAbove(0))
	assert.Equal(t, 1, tree.SizeAbove(tree.MaxLevel()))

	// Monotonically non-increasing as the level rises.
	prev := tree.Size()
	for level := tree.MinLevel(); level <= tree.MaxLevel(); level++ {
		size := tree.SizeAbove(level)
		assert.LessOrEqual(t, size, prev)
		prev = size
	}
}

func TestCover(t *testing.T) {
	tree, err := New(metric.Euclidean, WithBase(2))
	require.NoError(t, err)

	require.True(t, tree.Add([]float64{0, 0}))
	require.True(t, tree.Add([]float64{10, 0}))

	// The top cover holds only the root element.
	assert.Equal(t, [][]float64{{0, 0}}, tree.Cover(tree.MaxLevel()))

	// One level below, both elements are present.
	assert.ElementsMatch(t, [][]float64{{0, 0}, {10, 0}}, tree.Cover(tree.MaxLevel()-1))

	t.Run("Empty", func(t *testing.T) {
		empty, err := New(metric.Euclidean)
		require.NoError(t, err)
		assert.Empty(t, empty.Cover(0))
	})
}

func TestStats(t *testing.T) {
	tree, err := New(metric.Euclidean, WithBase(2))
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		tree.Add([]float64{rnd.Float64() * 100, rnd.Float64() * 100})
	}

	stats := tree.Stats()
	assert.Equal(t, tree.Size(), stats.Size)
	assert.Equal(t, 2.0, stats.Base)
	assert.GreaterOrEqual(t, stats.MaxLevel, stats.MinLevel)
	assert.NotZero(t, stats.DistanceEvals)
}

func TestMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	tree, err := New(metric.Euclidean, WithMetricsCollector(mc))
	require.NoError(t, err)

	tree.Add([]float64{1, 2})
	tree.Add([]float64{1, 2}) // duplicate
	tree.NearestNeighbor([]float64{0, 0})
	tree.KNearestNeighbors([]float64{0, 0}, 1)
	tree.Neighborhood([]float64{0, 0}, 1)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.AddCount)
	assert.Equal(t, int64(1), stats.AddRejected)
	assert.Equal(t, int64(3), stats.SearchCount)
}
