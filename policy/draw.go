package policy

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

var ErrEmptyDrawRange = errors.New("empty draw range")

// drawRange draws uniformly from the closed interval [lo, hi].
func drawRange(r *rand.Rand, lo, hi int) (int, error) {
	if lo > hi {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrEmptyDrawRange, lo, hi)
	}
	return lo + r.Intn(hi-lo+1), nil
}

// chance reports true with probability p.
func chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
