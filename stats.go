package covertree

// Stats is a point-in-time snapshot of the shape of a tree.
type Stats struct {
	// Size is the number of elements contained.
	Size int

	// MaxLevel and MinLevel delimit the levels the tree currently spans.
	MaxLevel int
	MinLevel int

	// Base is the configured geometric growth factor.
	Base float64

	// DistanceEvals is the total number of metric evaluations performed by
	// all operations so far.
	DistanceEvals uint64
}

// Stats returns statistics about the tree.
func (t *Tree[E]) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		Size:          t.sizeAbove(t.minLevel),
		MaxLevel:      t.maxLevel,
		MinLevel:      t.minLevel,
		Base:          t.base,
		DistanceEvals: t.distEvals,
	}
}
