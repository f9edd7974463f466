// Command apriori mines frequent itemsets from transaction databases.
package main

import (
	"fmt"
	"os"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/app"
)

func main() {
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
