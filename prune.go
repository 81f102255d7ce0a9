package covertree

import (
	"fmt"
	"math"
	"time"
)

// KCenters returns at least numCenters elements that are maximally apart from
// each other and destructively prunes the tree: every bottom-level element
// not selected as a center is removed.
//
// The function only works as designed when elements were added with AddCapped;
// otherwise it falls back to returning the cover one level above the bottom of
// the tree, extended greedily to numCenters elements.
//
// It panics with *InvariantError if the cover-tree invariants have been
// violated, e.g. when the existing cover already exceeds numCenters.
func (t *Tree[E]) KCenters(numCenters int) []E {
	start := time.Now()

	t.mu.Lock()

	if t.root == nil {
		t.mu.Unlock()
		return nil
	}

	before := t.sizeAbove(t.minLevel)
	coverset := t.removeNodes(numCenters)
	removed := before - t.sizeAbove(t.minLevel)

	t.logger.Debug("tree pruned to centers", "centers", len(coverset), "removed", removed)

	centers := make([]E, 0, len(coverset))
	for _, n := range coverset {
		centers = append(centers, n.element)
	}

	t.mu.Unlock()

	t.metrics.RecordPrune(removed, time.Since(start))

	return centers
}

// removeNodes extends the cover one level above the bottom to at least
// numCenters nodes using a farthest-point heuristic, then physically removes
// every bottom-level node that was not promoted. It returns the resulting
// cover set. Caller must hold the lock.
func (t *Tree[E]) removeNodes(numCenters int) []*node[E] {
	// Compute the cover set one level above the bottom.
	coverset := []*node[E]{t.root}
	for level := t.maxLevel; level > t.minLevel+1; level-- {
		var next []*node[E]
		for _, n := range coverset {
			n.ensureExpanded()
			next = append(next, n.children...)
		}
		coverset = next
	}

	if missing := numCenters - len(coverset); missing < 0 {
		panic(&InvariantError{
			Op:     "KCenters",
			Detail: fmt.Sprintf("cover set exceeds requested centers: missing=%d", missing),
		})
	}

	// The candidates are the bottom-level nodes: children of the cover set
	// that are not mere continuations of their parents.
	var candidates []*node[E]
	for _, n := range coverset {
		n.ensureExpanded()
		for _, child := range n.children {
			if !t.colocated(n.element, child.element) {
				candidates = append(candidates, child)
			}
		}
	}

	if len(coverset) < numCenters {
		// Seed every candidate with its minimum distance to the cover set.
		// The nearest cover-set element is always reachable through the
		// uncles, the children of the candidate's grandparent.
		for _, c := range candidates {
			minDist := math.Inf(1)
			for _, uncle := range c.parent.parent.children {
				if d := t.distance(c.element, uncle.element); d < minDist {
					minDist = d
				}
			}
			if math.IsInf(minDist, 1) {
				panic(&InvariantError{
					Op:     "KCenters",
					Detail: "infinite minimum distance to cover set",
				})
			}
			c.dist = minDist
		}

		// Repeatedly promote the candidate farthest from the cover set.
		for len(coverset) < numCenters {
			if len(candidates) == 0 {
				panic(&InvariantError{
					Op:     "KCenters",
					Detail: "ran out of candidates before reaching the requested centers",
				})
			}

			farthest := 0
			for i, c := range candidates {
				if c.dist > candidates[farthest].dist {
					farthest = i
				}
			}
			promoted := candidates[farthest]
			candidates = append(candidates[:farthest], candidates[farthest+1:]...)
			coverset = append(coverset, promoted)

			// The new center can only lower the minimum distances of the
			// remaining candidates; never recompute them from scratch.
			for _, c := range candidates {
				if d := t.distance(c.element, promoted.element); d < c.dist {
					c.dist = d
				}
			}
		}
	}

	// Detach everything that was never promoted so queries no longer see it.
	for _, c := range candidates {
		c.parent.removeChild(c)
		t.levels.dec(t.minLevel)
	}

	return coverset
}

// removeLowestCover cuts off the cover at the lowest level of the tree by
// dropping the children of the cover set one level above it. Caller must hold
// the lock.
func (t *Tree[E]) removeLowestCover() {
	coverset := []*node[E]{t.root}
	for level := t.maxLevel; level > t.minLevel+1; level-- {
		var next []*node[E]
		for _, n := range coverset {
			n.ensureExpanded()
			next = append(next, n.children...)
		}
		coverset = next
	}

	for _, n := range coverset {
		n.removeChildren()
	}

	t.minLevel++
	t.logger.Debug("lowest cover removed", "min_level", t.minLevel)
}
