package apriori

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
)

// Transaction is an immutable set of items that occurred together.
// Items are stored sorted and without duplicates.
type Transaction[T constraints.Ordered] struct {
	items []T
}

// NewTransaction builds a transaction from items. Duplicates are dropped.
func NewTransaction[T constraints.Ordered](items ...T) Transaction[T] {
	return Transaction[T]{items: normalize(items)}
}

// Items returns a copy of the transaction's items in ascending order.
func (t Transaction[T]) Items() []T {
	return slices.Clone(t.items)
}

// Len returns the number of distinct items in the transaction.
func (t Transaction[T]) Len() int {
	return len(t.items)
}

// Contains reports whether item is part of the transaction.
func (t Transaction[T]) Contains(item T) bool {
	_, ok := slices.BinarySearch(t.items, item)
	return ok
}

// ContainsAll reports whether every item of set is part of the transaction.
func (t Transaction[T]) ContainsAll(set Itemset[T]) bool {
	if len(set) > len(t.items) {
		return false
	}

	// Both sides are sorted, so a single merge walk is enough.
	i := 0
	for _, want := range set {
		for i < len(t.items) && t.items[i] < want {
			i++
		}
		if i == len(t.items) || t.items[i] != want {
			return false
		}
		i++
	}
	return true
}

// Itemset is a sorted, duplicate-free combination of items.
type Itemset[T constraints.Ordered] []T

// NewItemset builds an itemset from items in any order. Duplicates are dropped.
func NewItemset[T constraints.Ordered](items ...T) Itemset[T] {
	return Itemset[T](normalize(items))
}

// Len returns the number of items in the set.
func (s Itemset[T]) Len() int {
	return len(s)
}

// Equal reports whether both itemsets hold the same items.
func (s Itemset[T]) Equal(other Itemset[T]) bool {
	return slices.Equal(s, other)
}

// Key returns a canonical string for the itemset, suitable as a map key.
func (s Itemset[T]) Key() string {
	parts := make([]string, len(s))
	for i, item := range s {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, "\x1f")
}

// String formats the itemset as {a, b, c}.
func (s Itemset[T]) String() string {
	parts := make([]string, len(s))
	for i, item := range s {
		parts[i] = fmt.Sprint(item)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Frequent is an itemset together with the number of transactions containing it.
type Frequent[T constraints.Ordered] struct {
	Items   Itemset[T]
	Support int
}

// Universe returns the distinct items of all transactions in ascending order.
func Universe[T constraints.Ordered](transactions []Transaction[T]) []T {
	seen := make(map[T]struct{})
	var items []T
	for _, tx := range transactions {
		for _, item := range tx.items {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			items = append(items, item)
		}
	}
	slices.Sort(items)
	return items
}

// normalize returns a sorted copy of items with duplicates removed.
func normalize[T constraints.Ordered](items []T) []T {
	out := slices.Clone(items)
	slices.Sort(out)
	return slices.Compact(out)
}
