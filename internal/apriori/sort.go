package apriori

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"
)

// SortBySize orders itemsets by ascending size. Itemsets of equal size keep
// their relative order.
func SortBySize[T constraints.Ordered](sets []Itemset[T]) {
	slices.SortStableFunc(sets, func(a, b Itemset[T]) int {
		return cmp.Compare(len(a), len(b))
	})
}

// SortFrequentBySize is SortBySize for itemsets carrying their support.
func SortFrequentBySize[T constraints.Ordered](sets []Frequent[T]) {
	slices.SortStableFunc(sets, func(a, b Frequent[T]) int {
		return cmp.Compare(len(a.Items), len(b.Items))
	})
}
