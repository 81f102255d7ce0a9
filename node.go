package covertree

// node is a vertex of the cover tree. It owns its children; the parent link
// is a non-owning back-reference (nil for the root).
//
// dist is per-traversal scratch space: it holds the distance to the current
// query or insertion point and is only meaningful between the moment a
// traversal sets it and the end of that traversal. The tree lock guarantees
// at most one traversal touches it at a time.
type node[E any] struct {
	element  E
	parent   *node[E]
	children []*node[E]
	dist     float64
}

// addChild appends child and transfers ownership to n.
func (n *node[E]) addChild(child *node[E]) {
	child.parent = n
	n.children = append(n.children, child)
}

// ensureExpanded materializes the implicit self-child.
//
// A point present at level L is conceptually present at every level below L.
// Rather than duplicating the point eagerly per level, a childless node lazily
// grows a single child carrying the same element (at distance zero to itself)
// the first time its children are about to be traversed. Traversals call this
// before reading n.children so that every visited node has at least one child.
func (n *node[E]) ensureExpanded() {
	if len(n.children) == 0 {
		n.addChild(&node[E]{element: n.element})
	}
}

// removeChild unlinks the given child. Linear scan; fan-out is small.
func (n *node[E]) removeChild(child *node[E]) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// removeChildren drops all children of n.
func (n *node[E]) removeChildren() {
	n.children = nil
}
