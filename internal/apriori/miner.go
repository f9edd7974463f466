package apriori

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/exp/constraints"
)

// ErrNegativeThreshold is returned when a support threshold below zero is requested.
var ErrNegativeThreshold = errors.New("support threshold must not be negative")

// StopRule decides when the miner stops growing candidate size.
type StopRule int

const (
	// StopAtMostOne ends mining after a round that keeps zero or one itemset.
	StopAtMostOne StopRule = iota
	// StopWhenEmpty ends mining after a round that keeps no itemset (classical Apriori).
	StopWhenEmpty
)

// String returns the name used in flags and stored runs.
func (r StopRule) String() string {
	switch r {
	case StopAtMostOne:
		return "at-most-one"
	case StopWhenEmpty:
		return "when-empty"
	default:
		return fmt.Sprintf("StopRule(%d)", int(r))
	}
}

// ParseStopRule is the inverse of StopRule.String.
func ParseStopRule(s string) (StopRule, error) {
	switch s {
	case "at-most-one", "":
		return StopAtMostOne, nil
	case "when-empty":
		return StopWhenEmpty, nil
	default:
		return 0, fmt.Errorf("unknown stop rule %q (want at-most-one or when-empty)", s)
	}
}

func (r StopRule) done(survivors int) bool {
	if r == StopWhenEmpty {
		return survivors == 0
	}
	return survivors <= 1
}

// Options tune a Miner. The zero value reproduces Mine.
type Options struct {
	// Workers bounds concurrent support counting within a round. 0 or 1 counts sequentially.
	Workers int

	StopRule StopRule

	// PruneInfrequentItems drops items whose own support is below the
	// threshold before candidates are generated. The result is unchanged.
	PruneInfrequentItems bool

	// Logger receives one debug record per round. nil discards.
	Logger *slog.Logger
}

// Result holds the outcome of a mining call.
type Result[T constraints.Ordered] struct {
	// Itemsets in discovery order: by round, then generator order.
	Itemsets     []Frequent[T]
	Rounds       int
	UniverseSize int
}

// Sets returns the frequent itemsets without their supports.
func (r *Result[T]) Sets() []Itemset[T] {
	sets := make([]Itemset[T], len(r.Itemsets))
	for i, f := range r.Itemsets {
		sets[i] = f.Items
	}
	return sets
}

// Miner runs the frequent itemset search. A Miner holds no state between
// calls and may be shared by goroutines.
type Miner[T constraints.Ordered] struct {
	opts   Options
	logger *slog.Logger
}

// NewMiner creates a Miner with the given options.
func NewMiner[T constraints.Ordered](opts Options) *Miner[T] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Miner[T]{opts: opts, logger: logger}
}

// Mine returns every itemset of two or more items contained in at least
// threshold transactions.
func (m *Miner[T]) Mine(ctx context.Context, transactions []Transaction[T], threshold int) (*Result[T], error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeThreshold, threshold)
	}

	universe := Universe(transactions)
	res := &Result[T]{UniverseSize: len(universe)}

	if m.opts.PruneInfrequentItems {
		universe = pruneUniverse(universe, transactions, threshold)
		m.logger.Debug("pruned universe", "items", res.UniverseSize, "kept", len(universe))
	}

	for n := 2; ; n++ {
		candidates := Combinations(universe, n)

		counts, err := CountSupports(ctx, candidates, transactions, m.opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("failed to count supports for size %d: %w", n, err)
		}
		res.Rounds++

		survivors := 0
		for i, candidate := range candidates {
			if counts[i] >= threshold {
				res.Itemsets = append(res.Itemsets, Frequent[T]{Items: candidate, Support: counts[i]})
				survivors++
			}
		}

		m.logger.Debug("mining round",
			"size", n,
			"candidates", len(candidates),
			"frequent", survivors)

		if m.opts.StopRule.done(survivors) {
			break
		}
	}

	return res, nil
}

// Mine runs a Miner with default options and returns only the itemsets.
func Mine[T constraints.Ordered](transactions []Transaction[T], threshold int) ([]Itemset[T], error) {
	res, err := NewMiner[T](Options{}).Mine(context.Background(), transactions, threshold)
	if err != nil {
		return nil, err
	}
	return res.Sets(), nil
}

// pruneUniverse keeps the items that appear in at least threshold transactions.
func pruneUniverse[T constraints.Ordered](universe []T, transactions []Transaction[T], threshold int) []T {
	occurrences := make(map[T]int, len(universe))
	for _, tx := range transactions {
		for _, item := range tx.items {
			occurrences[item]++
		}
	}

	kept := make([]T, 0, len(universe))
	for _, item := range universe {
		if occurrences[item] >= threshold {
			kept = append(kept, item)
		}
	}
	return kept
}
