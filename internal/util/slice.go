package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func Min(s []float64) float64 {
	if len(s) < 1 {
		return 0
	}
	return slices.Min(s)
}

func Max(s []float64) float64 {
	if len(s) < 1 {
		return 0
	}
	return slices.Max(s)
}

// SortedKeys returns the keys of the given map in increasing order
func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	result := maps.Keys(input)
	slices.Sort(result)
	return result
}
