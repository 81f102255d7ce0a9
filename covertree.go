package covertree

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Compile-time check to ensure Tree satisfies the Index interface.
var _ Index[[]float64] = (*Tree[[]float64])(nil)

// Metric computes the distance between two elements. Implementations must
// satisfy the metric axioms:
//
//   - non-negativity: distance(a, b) >= 0
//   - identity of indiscernibles: distance(a, b) == 0 only for equal elements
//   - symmetry: distance(a, b) == distance(b, a)
//   - triangle inequality: distance(a, c) <= distance(a, b) + distance(b, c)
//
// The tree trusts this contract completely; a non-metric distance silently
// invalidates all pruning guarantees.
type Metric[E any] func(a, b E) float64

// Index is the interface for exact nearest-neighbor computation over a
// metric space. Tree is the cover-tree implementation.
type Index[E any] interface {
	// Add inserts an element. It reports whether the element was added,
	// i.e. was not contained already.
	Add(element E) bool

	// Size returns the number of elements contained.
	Size() int

	// NearestNeighbor returns the element closest to point. The second
	// return value is false if the index is empty.
	NearestNeighbor(point E) (E, bool)

	// KNearestNeighbors returns the k elements closest to point, ascending
	// by distance. Ties at the k-th distance are all included.
	KNearestNeighbors(point E, k int) []E

	// Neighborhood returns all elements within r of point (inclusive), in
	// no particular order.
	Neighborhood(point E, r float64) []E
}

// Tree is a cover tree: an exact nearest-neighbor index for elements of an
// arbitrary metric space.
//
// All exported methods are safe for concurrent use. They serialize on a
// single lock per tree; traversals share per-node scratch state, so no two
// operations may overlap.
type Tree[E any] struct {
	mu     sync.Mutex
	metric Metric[E]
	base   float64

	root     *node[E]
	maxLevel int
	minLevel int

	// maxMinLevel is the floor below which minLevel never extends. Inserts
	// that would require a deeper level are rejected.
	maxMinLevel int

	levels    levelCounts
	distEvals uint64

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty cover tree over the given metric.
// By default the tree starts at level 0 and expands above and below as
// elements are added.
func New[E any](m Metric[E], optFns ...func(o *Options)) (*Tree[E], error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if m == nil {
		return nil, ErrNilMetric
	}
	if opts.Base <= 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidBase, opts.Base)
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetricsCollector{}
	}

	t := &Tree[E]{
		metric:      m,
		base:        opts.Base,
		maxMinLevel: opts.MaxMinLevel,
		levels:      levelCounts{},
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}

	if opts.MaxMinLevel > 0 {
		// A positive floor also lifts the starting level so the tree does
		// not have to grow upward past it first.
		t.maxLevel = opts.MaxMinLevel
		t.minLevel = opts.MaxMinLevel
	}

	return t, nil
}

// Add inserts element into the tree. It returns false without modifying the
// tree if an equal element (distance zero) is already contained, or if the
// insertion would require extending the tree below the configured MaxMinLevel
// floor.
func (t *Tree[E]) Add(element E) bool {
	start := time.Now()

	t.mu.Lock()
	added := t.add(element)
	t.mu.Unlock()

	t.metrics.RecordAdd(time.Since(start), added)

	return added
}

// AddCapped inserts element and keeps the tree bounded to roughly capacity
// elements: once the level above the bottom already holds capacity elements
// the bottom cover is cut off, and once the bottom level reaches twice the
// capacity the most redundant elements are evicted via the k-centers pruning.
//
// It reports whether the element was added. Mixing AddCapped with plain Add
// on the same tree weakens the capacity bound.
func (t *Tree[E]) AddCapped(element E, capacity int) bool {
	start := time.Now()

	t.mu.Lock()
	added := t.add(element)

	// Only prune once the tree spans more than two levels.
	if t.maxLevel-t.minLevel > 2 {
		if t.sizeAbove(t.minLevel+1) >= capacity {
			t.removeLowestCover()
			// Do not accept new nodes below the new minimum level.
			t.maxMinLevel = t.minLevel + 1
		}
		if t.sizeAbove(t.minLevel) >= 2*capacity {
			t.removeNodes(capacity)
		}
	}
	t.mu.Unlock()

	t.metrics.RecordAdd(time.Since(start), added)

	return added
}

func (t *Tree[E]) add(element E) bool {
	// The first element becomes the root.
	if t.root == nil {
		t.root = &node[E]{element: element}
		t.levels.inc(t.maxLevel)
		return true
	}

	t.root.dist = t.distance(t.root.element, element)
	if t.root.dist == 0 {
		return false
	}

	// If the element lies outside the cover of the root and its descendants,
	// insert it above the root.
	if t.root.dist > t.coverDist(t.maxLevel+1) {
		t.insertAtRoot(element)
		return true
	}

	// Descend level by level, tracking the cover set of nodes whose cover
	// could still contain the element.
	coverset := []*node[E]{t.root}
	level := t.maxLevel

	var parent *node[E]
	parentLevel := t.maxLevel

	for {
		parentFound := true

		var candidates []*node[E]
		for _, n := range coverset {
			n.ensureExpanded()
			for _, child := range n.children {
				if t.colocated(n.element, child.element) {
					child.dist = n.dist
				} else {
					child.dist = t.distance(child.element, element)
					// Already contained in the tree.
					if child.dist == 0 {
						return false
					}
				}

				if child.dist <= t.coverDist(level) {
					candidates = append(candidates, child)
					parentFound = false
				}
			}
		}

		// If no child of the cover set is within base^level, an element of
		// the cover set covers the gap and becomes the parent.
		if parentFound {
			break
		}

		// Designate one node of the cover set as the parent so far.
		for _, n := range coverset {
			if n.dist <= t.coverDist(level) {
				parent = n
				parentLevel = level
				break
			}
		}

		level--
		coverset = candidates
	}

	// A parent was never designated: the element is a sibling of the root,
	// so the cover of the root is increased instead.
	if parent == nil {
		t.insertAtRoot(element)
		return true
	}

	if parentLevel-1 < t.minLevel {
		if parentLevel-1 < t.maxMinLevel {
			// Capacity floor reached; refusing to deepen the tree.
			return false
		}
		t.minLevel = parentLevel - 1
		t.logger.Debug("min level extended", "min_level", t.minLevel)
	}

	parent.addChild(&node[E]{element: element})
	t.levels.inc(parentLevel - 1)

	return true
}

// insertAtRoot inserts element above the current root: the cover of the root
// is increased by wrapping it in self-rooted nodes one level higher until the
// element fits, then the element is attached as a child of the new root.
func (t *Tree[E]) insertAtRoot(element E) {
	dist := t.distance(t.root.element, element)
	for dist > t.coverDist(t.maxLevel) {
		next := &node[E]{element: t.root.element}
		next.addChild(t.root)
		t.root = next

		t.levels.dec(t.maxLevel)
		t.maxLevel++
		t.levels.inc(t.maxLevel)

		t.logger.Debug("root cover expanded", "max_level", t.maxLevel)
	}

	t.root.addChild(&node[E]{element: element})
	t.levels.inc(t.maxLevel - 1)
}

// Size returns the number of elements contained in the tree.
func (t *Tree[E]) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sizeAbove(t.minLevel)
}

// SizeAbove returns the number of elements admitted at or above the given
// level.
func (t *Tree[E]) SizeAbove(level int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sizeAbove(level)
}

func (t *Tree[E]) sizeAbove(level int) int {
	return t.levels.sumFrom(level)
}

// Cover returns the elements present at the given level. Any two distinct
// elements of a cover are at least base^level apart. Intended for inspection
// and debugging.
func (t *Tree[E]) Cover(level int) []E {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.root == nil {
		return nil
	}

	coverset := []*node[E]{t.root}
	for l := t.maxLevel; l > level; l-- {
		var next []*node[E]
		for _, n := range coverset {
			n.ensureExpanded()
			next = append(next, n.children...)
		}
		coverset = next
	}

	cover := make([]E, 0, len(coverset))
	for _, n := range coverset {
		cover = append(cover, n.element)
	}

	return cover
}

// MaxLevel returns the current highest level of the tree.
func (t *Tree[E]) MaxLevel() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.maxLevel
}

// MinLevel returns the current lowest level of the tree.
func (t *Tree[E]) MinLevel() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.minLevel
}

// coverDist returns base^level, the cover radius at the given level.
func (t *Tree[E]) coverDist(level int) float64 {
	return math.Pow(t.base, float64(level))
}

func (t *Tree[E]) distance(a, b E) float64 {
	t.distEvals++
	return t.metric(a, b)
}

// colocated reports whether two elements are at the same location under the
// metric. Traversals use it to reuse an already computed distance instead of
// evaluating the metric against the query again, which matters for the chains
// of implicit self-children.
func (t *Tree[E]) colocated(a, b E) bool {
	return t.distance(a, b) == 0
}
