package covertree

// levelCounts tracks, per level, how many elements were admitted exactly at
// that level. Levels are signed and unbounded; the map grows as the tree
// expands upward or downward, so level bookkeeping can never run out of a
// preconfigured window.
type levelCounts map[int]int

func (lc levelCounts) inc(level int) {
	lc[level]++
}

func (lc levelCounts) dec(level int) {
	lc[level]--
	if lc[level] == 0 {
		delete(lc, level)
	}
}

// sumFrom returns the number of elements admitted at or above level.
func (lc levelCounts) sumFrom(level int) int {
	sum := 0
	for l, c := range lc {
		if l >= level {
			sum += c
		}
	}
	return sum
}
