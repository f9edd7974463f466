// Package apriori mines frequent itemsets from a transaction database.
//
// A transaction is a set of items bought together (for example the SKUs on a
// supermarket receipt). Given a minimum support threshold, the miner finds
// every combination of at least two items that appears in at least that many
// transactions. Candidate itemsets are generated for sizes 2, 3, 4, ... from
// the universe of observed items and counted against every transaction until
// a round no longer produces enough frequent itemsets to continue.
//
// The implementation favours correctness over asymptotic performance: there
// is no hash tree and no join/prune step between rounds. It is suitable for
// small to moderate item universes.
//
// Example usage:
//
//	transactions := []apriori.Transaction[int64]{
//		apriori.NewTransaction[int64](1, 2, 3, 4),
//		apriori.NewTransaction[int64](1, 2, 4),
//		apriori.NewTransaction[int64](1, 2),
//	}
//
//	sets, err := apriori.Mine(transactions, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//	apriori.SortBySize(sets)
//
//	// Or with options and supports:
//	m := apriori.NewMiner[int64](apriori.Options{Workers: 4})
//	res, err := m.Mine(ctx, transactions, 2)
package apriori
