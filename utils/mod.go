package utils

import "golang.org/x/exp/rand"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func FindIndexFunc[T any](slice []T, match func(T) bool) int {
	for i, v := range slice {
		if match(v) {
			return i
		}
	}
	return -1
}

// SplitSeed derives n child seeds from seed, one per independent random stream.
func SplitSeed(seed uint64, n int) []uint64 {
	r := rand.New(rand.NewSource(seed))
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = r.Uint64()
	}
	return seeds
}
