package apriori

import (
	"context"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// Support returns the number of transactions that contain every item of candidate.
func Support[T constraints.Ordered](candidate Itemset[T], transactions []Transaction[T]) int {
	count := 0
	for _, tx := range transactions {
		if tx.ContainsAll(candidate) {
			count++
		}
	}
	return count
}

// CountAndFilter returns the candidates whose support is at least threshold,
// in their original order.
func CountAndFilter[T constraints.Ordered](candidates []Itemset[T], transactions []Transaction[T], threshold int) []Itemset[T] {
	var kept []Itemset[T]
	for _, candidate := range candidates {
		if Support(candidate, transactions) >= threshold {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// CountSupports computes the support of every candidate. counts[i] belongs to
// candidates[i]. With workers > 1 the candidates are split into chunks that
// are counted concurrently; transactions are only read.
func CountSupports[T constraints.Ordered](ctx context.Context, candidates []Itemset[T], transactions []Transaction[T], workers int) ([]int, error) {
	counts := make([]int, len(candidates))

	if workers <= 1 || len(candidates) < 2 {
		for i, candidate := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			counts[i] = Support(candidate, transactions)
		}
		return counts, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (len(candidates) + workers - 1) / workers
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				counts[i] = Support(candidates[i], transactions)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
