package apriori

import "golang.org/x/exp/constraints"

// Combinations returns every distinct subset of universe with exactly n items.
//
// The universe is sorted and deduplicated first, and subsets are enumerated
// in lexicographic order of their positions, so no combination is produced
// twice. An n outside [1, len(universe)] yields no combinations.
func Combinations[T constraints.Ordered](universe []T, n int) []Itemset[T] {
	items := normalize(universe)
	if n < 1 || n > len(items) {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var out []Itemset[T]
	for {
		combination := make(Itemset[T], n)
		for i, j := range idx {
			combination[i] = items[j]
		}
		out = append(out, combination)

		// Find the rightmost position that can still move forward.
		i := n - 1
		for i >= 0 && idx[i] == len(items)-n+i {
			i--
		}
		if i < 0 {
			return out
		}

		idx[i]++
		for j := i + 1; j < n; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
