package covertree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBase is returned by New when the configured base is not
	// greater than 1.
	ErrInvalidBase = errors.New("base must be greater than 1")

	// ErrNilMetric is returned by New when no metric is supplied.
	ErrNilMetric = errors.New("metric must not be nil")
)

// InvariantError reports a violated cover-tree invariant. It indicates a bug
// in the insertion or pruning logic rather than bad input and is therefore
// carried by panic, never returned.
type InvariantError struct {
	Op     string // the operation that detected the violation
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("covertree: invariant violated in %s: %s", e.Op, e.Detail)
}
