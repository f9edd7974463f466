package apriori

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCombinations_Pairs(t *testing.T) {
	got := Combinations([]int{4, 3, 2, 1}, 2)
	want := []Itemset[int]{
		{1, 2}, {1, 3}, {1, 4},
		{2, 3}, {2, 4},
		{3, 4},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combinations() mismatch (-want +got):\n%s", diff)
	}
}

func TestCombinations_EdgeSizes(t *testing.T) {
	tests := []struct {
		name     string
		universe []int
		n        int
		want     int
	}{
		{"empty universe", nil, 2, 0},
		{"zero size", []int{1, 2, 3}, 0, 0},
		{"negative size", []int{1, 2, 3}, -1, 0},
		{"singletons", []int{1, 2, 3}, 1, 3},
		{"whole universe", []int{1, 2, 3}, 3, 1},
		{"larger than universe", []int{1, 2, 3}, 4, 0},
		{"duplicates in universe", []int{1, 1, 2, 2, 3}, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combinations(tt.universe, tt.n)
			if len(got) != tt.want {
				t.Errorf("expected %d combinations, got %d: %v", tt.want, len(got), got)
			}
		})
	}
}

func TestCombinations_CountsAndUniqueness(t *testing.T) {
	universe := []int{10, 20, 30, 40, 50, 60, 70}

	for n := 1; n <= len(universe); n++ {
		got := Combinations(universe, n)

		if want := binomial(len(universe), n); len(got) != want {
			t.Errorf("n=%d: expected %d combinations, got %d", n, want, len(got))
		}

		seen := make(map[string]bool)
		for _, c := range got {
			if c.Len() != n {
				t.Errorf("n=%d: combination %v has size %d", n, c, c.Len())
			}
			if seen[c.Key()] {
				t.Errorf("n=%d: duplicate combination %v", n, c)
			}
			seen[c.Key()] = true
		}
	}
}

func TestCombinations_DoesNotAliasUniverse(t *testing.T) {
	universe := []int{3, 1, 2}
	got := Combinations(universe, 2)
	got[0][0] = 42

	if diff := cmp.Diff([]int{3, 1, 2}, universe); diff != "" {
		t.Errorf("universe was modified (-want +got):\n%s", diff)
	}
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
