package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEuclidean(t *testing.T) {
	assert.Equal(t, 5.0, Euclidean([]float64{0, 0}, []float64{3, 4}))
	assert.Equal(t, 0.0, Euclidean([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t,
		Euclidean([]float64{1, 2}, []float64{5, 7}),
		Euclidean([]float64{5, 7}, []float64{1, 2}),
	)
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 7.0, Manhattan([]float64{0, 0}, []float64{3, 4}))
	assert.Equal(t, 0.0, Manhattan([]float64{1, 2}, []float64{1, 2}))
}

func TestChebyshev(t *testing.T) {
	assert.Equal(t, 4.0, Chebyshev([]float64{0, 0}, []float64{3, 4}))
	assert.Equal(t, 0.0, Chebyshev([]float64{1, 2}, []float64{1, 2}))
}

func TestHaversine(t *testing.T) {
	berlin := [2]float64{52.52, 13.405}
	hamburg := [2]float64{53.551, 9.994}

	assert.Equal(t, 0.0, Haversine(berlin, berlin))
	assert.Equal(t, Haversine(berlin, hamburg), Haversine(hamburg, berlin))

	// Berlin to Hamburg is roughly 255 km great-circle.
	d := Haversine(berlin, hamburg)
	assert.InDelta(t, 255_000, d, 5_000)
}
