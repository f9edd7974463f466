// Package watcher re-mines a transaction file whenever it changes.
//
// The Watcher subscribes to filesystem events for the directory holding the
// file (so editors that save by renaming a temp file into place are seen),
// debounces bursts of writes, reloads the transactions and hands them to a
// callback. Load and mining errors are logged and the watcher keeps running;
// it stops when its context is cancelled.
//
// Example usage:
//
//	w, err := watcher.New("receipts.txt", func(ctx context.Context, txs []apriori.Transaction[int64]) error {
//		res, err := miner.Mine(ctx, txs, 3)
//		if err != nil {
//			return err
//		}
//		fmt.Println(len(res.Itemsets), "frequent itemsets")
//		return nil
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := w.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
package watcher
