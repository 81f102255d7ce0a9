// Package covertree provides an exact nearest-neighbor index over an
// arbitrary metric space.
//
// The index is a cover tree (Beygelzimer et al., "Cover Trees for Nearest
// Neighbor", ICML '06, in the Loehndorf variant): a multi-level structure in
// which points kept at level L are at least base^L apart while every child
// lies within base^L of its parent. Queries descend level by level and use
// these invariants to prune candidates without ever computing all pairwise
// distances.
//
// The element type is fully generic; the caller supplies the geometry as a
// Metric function satisfying the metric axioms:
//
//	tree, _ := covertree.New(metric.Euclidean)
//	tree.Add([]float64{1, 2})
//	tree.Add([]float64{5, 7})
//
//	nearest, ok := tree.NearestNeighbor([]float64{4, 2})
//	top3 := tree.KNearestNeighbors([]float64{4, 2}, 3)
//	near := tree.Neighborhood([]float64{4, 2}, 3.5)
//
// # Query types
//
//   - NearestNeighbor: the single closest element
//   - KNearestNeighbors: the k closest elements, ascending by distance,
//     boundary ties included
//   - Neighborhood: every element within a given range, unordered
//
// # Capacity control
//
// AddCapped bounds memory by evicting the most redundant elements once the
// tree grows past a capacity, and KCenters extracts (at least) a requested
// number of maximally separated centers, pruning everything else.
//
// All operations on a tree are serialized by a single internal lock and are
// safe for concurrent use.
package covertree
