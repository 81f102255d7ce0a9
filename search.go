package covertree

import (
	"container/heap"
	"sort"
	"time"
)

// NearestNeighbor returns the element closest to point. The second return
// value is false if the tree is empty.
//
// The search descends from the highest level and keeps, per level, only
// candidates that could still beat the best distance seen so far: any node
// farther than minDist + base^level cannot contain a closer descendant and is
// pruned before expansion.
func (t *Tree[E]) NearestNeighbor(point E) (E, bool) {
	start := time.Now()

	t.mu.Lock()
	defer func() {
		t.mu.Unlock()
		t.metrics.RecordNearest(time.Since(start))
	}()

	var zero E
	if t.root == nil {
		return zero, false
	}

	candidates := []*node[E]{t.root}
	minDist := t.distance(t.root.element, point)
	t.root.dist = minDist

	for level := t.maxLevel; level > t.minLevel; level-- {
		var next []*node[E]
		for _, candidate := range candidates {
			candidate.ensureExpanded()
			for _, child := range candidate.children {
				if t.colocated(candidate.element, child.element) {
					child.dist = candidate.dist
				} else {
					child.dist = t.distance(child.element, point)
					if child.dist < minDist {
						minDist = child.dist
					}
				}
				next = append(next, child)
			}
		}

		// Keep only nodes that could still contain a closer descendant.
		bound := minDist + t.coverDist(level)
		candidates = candidates[:0]
		for _, c := range next {
			if c.dist <= bound {
				candidates = append(candidates, c)
			}
		}
	}

	for _, candidate := range candidates {
		if candidate.dist == minDist {
			return candidate.element, true
		}
	}

	return zero, false
}

// KNearestNeighbors returns the k elements closest to point, ascending by
// distance. If several elements are tied at the k-th distance, all of them
// are included, so the result may hold more than k elements. A k <= 0 or an
// empty tree yields an empty result.
func (t *Tree[E]) KNearestNeighbors(point E, k int) []E {
	start := time.Now()

	t.mu.Lock()
	defer func() {
		t.mu.Unlock()
		t.metrics.RecordKNearest(k, time.Since(start))
	}()

	if t.root == nil || k <= 0 {
		return nil
	}

	// Bounded max-heap of the k smallest distances seen so far; the top is
	// the current k-th smallest and drives the prune bound.
	kSmallest := &maxDistHeap{}
	heap.Init(kSmallest)

	candidates := []*node[E]{t.root}
	t.root.dist = t.distance(t.root.element, point)
	heap.Push(kSmallest, t.root.dist)

	for level := t.maxLevel; level > t.minLevel; level-- {
		var next []*node[E]
		for _, candidate := range candidates {
			candidate.ensureExpanded()
			for _, child := range candidate.children {
				if t.colocated(candidate.element, child.element) {
					child.dist = candidate.dist
				} else {
					child.dist = t.distance(child.element, point)
					if kSmallest.Len() < k {
						heap.Push(kSmallest, child.dist)
					} else if child.dist < kSmallest.top() {
						// Evict the current k-th smallest for the closer child.
						heap.Pop(kSmallest)
						heap.Push(kSmallest, child.dist)
					}
				}
				next = append(next, child)
			}
		}

		bound := kSmallest.top() + t.coverDist(level)
		candidates = candidates[:0]
		for _, c := range next {
			if c.dist <= bound {
				candidates = append(candidates, c)
			}
		}
	}

	kth := kSmallest.top()

	var result []*node[E]
	for _, candidate := range candidates {
		if candidate.dist <= kth {
			result = append(result, candidate)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].dist < result[j].dist
	})

	elements := make([]E, 0, len(result))
	for _, n := range result {
		elements = append(elements, n.element)
	}

	return elements
}

// Neighborhood returns all elements within r of point (inclusive), i.e. all
// elements inside the ball of radius r around point. The result is in no
// particular order.
func (t *Tree[E]) Neighborhood(point E, r float64) []E {
	start := time.Now()

	t.mu.Lock()
	defer func() {
		t.mu.Unlock()
		t.metrics.RecordNeighborhood(time.Since(start))
	}()

	if t.root == nil {
		return nil
	}

	candidates := []*node[E]{t.root}
	t.root.dist = t.distance(t.root.element, point)

	for level := t.maxLevel; level > t.minLevel; level-- {
		var next []*node[E]
		for _, candidate := range candidates {
			candidate.ensureExpanded()
			for _, child := range candidate.children {
				if t.colocated(candidate.element, child.element) {
					child.dist = candidate.dist
				} else {
					child.dist = t.distance(child.element, point)
				}
				next = append(next, child)
			}
		}

		bound := r + t.coverDist(level)
		candidates = candidates[:0]
		for _, c := range next {
			if c.dist <= bound {
				candidates = append(candidates, c)
			}
		}
	}

	var elements []E
	for _, candidate := range candidates {
		if candidate.dist <= r {
			elements = append(elements, candidate.element)
		}
	}

	return elements
}

// maxDistHeap is a max-heap of distances used to track the k smallest
// distances seen during a k-nearest-neighbor search.
type maxDistHeap []float64

func (h maxDistHeap) Len() int           { return len(h) }
func (h maxDistHeap) Less(i, j int) bool { return h[i] > h[j] }
func (h maxDistHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxDistHeap) Push(x any)        { *h = append(*h, x.(float64)) }

func (h *maxDistHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func (h maxDistHeap) top() float64 { return h[0] }
