// Package metric provides ready-made distance functions for common element
// types. Every function in this package is a true metric: non-negative, zero
// only for equal elements, symmetric and satisfying the triangle inequality,
// as required by the cover tree.
package metric

import "math"

// Euclidean calculates the L2 distance between two equal-length vectors.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan calculates the L1 distance between two equal-length vectors.
func Manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// Chebyshev calculates the L-infinity distance between two equal-length
// vectors.
func Chebyshev(a, b []float64) float64 {
	var max float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}

// earthRadiusMeters is the mean earth radius used by Haversine.
const earthRadiusMeters = 6_371_000

// Haversine calculates the great-circle distance in meters between two
// points given as {latitude, longitude} in degrees.
func Haversine(a, b [2]float64) float64 {
	lat1 := a[0] * math.Pi / 180
	lat2 := b[0] * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b[1] - a[1]) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
