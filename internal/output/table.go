// Package output provides terminal output utilities for apriori.
//
// This package includes:
//   - Table rendering for frequent itemsets, mining runs and stored datasets
//   - A spinner for mining runs that take a while
//
// Tables use plain ASCII alignment plus ANSI colour codes when stdout is a
// terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/config"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

// ANSI color codes for support share display
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderItemsetTable renders frequent itemsets with their support.
// total is the number of transactions mined and drives the share column.
// labels may be nil. Does not sort - expects itemsets in presentation order.
func RenderItemsetTable(itemsets []apriori.Frequent[int64], total int, labels *config.Labels) string {
	if len(itemsets) == 0 {
		return "No frequent itemsets found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-8s %-7s %s\n", "Size", "Support", "Share", "Itemset"))
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n")

	for _, f := range itemsets {
		share := 0.0
		if total > 0 {
			share = float64(f.Support) * 100 / float64(total)
		}
		shareStr := fmt.Sprintf("%-7s", fmt.Sprintf("%.0f%%", share))

		sb.WriteString(fmt.Sprintf("%-5d %-8d %s %s\n",
			f.Items.Len(),
			f.Support,
			colorize(shareColor(share), shareStr),
			formatItemset(f.Items, labels)))
	}

	return sb.String()
}

// formatItemset renders {1, 2} or, when every item has a label,
// {1, 2} butter + bread.
func formatItemset(set apriori.Itemset[int64], labels *config.Labels) string {
	if labels == nil || len(labels.Names) == 0 {
		return set.String()
	}

	names := make([]string, 0, len(set))
	for _, sku := range set {
		name := labels.Name(sku)
		if name == "" {
			return set.String()
		}
		names = append(names, name)
	}
	return set.String() + " " + strings.Join(names, " + ")
}

func shareColor(share float64) string {
	switch {
	case share >= 50:
		return colorGreen
	case share >= 25:
		return colorYellow
	default:
		return colorGray
	}
}

// RenderSummary renders the one-line result header printed above an itemset table.
func RenderSummary(found, rounds, universe, threshold int, took time.Duration) string {
	noun := "itemsets"
	if found == 1 {
		noun = "itemset"
	}
	return fmt.Sprintf("%s %d frequent %s (support ≥ %d) over %d items in %d rounds, %s",
		colorize(colorBold, "Found"),
		found, noun, threshold, universe, rounds, formatDuration(took))
}

// RenderRunTable renders recorded mining runs, newest first as given.
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No mining runs recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-16s %-8s %-12s %-7s %-9s %-10s %s\n",
		"ID", "Dataset", "Support", "Stop Rule", "Rounds", "Itemsets", "Took", "When"))
	sb.WriteString(strings.Repeat("─", 88))
	sb.WriteString("\n")

	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%-5d %-16s %-8d %-12s %-7d %-9d %-10s %s\n",
			run.ID,
			truncate(run.Dataset, 16),
			run.Threshold,
			run.StopRule,
			run.Rounds,
			run.ItemsetCount,
			formatDuration(run.Duration),
			humanize.Time(run.StartedAt)))
	}

	return sb.String()
}

// RenderDatasetTable renders stored datasets.
func RenderDatasetTable(datasets []*store.Dataset) string {
	if len(datasets) == 0 {
		return "No datasets imported.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-16s %-13s %-7s %-16s %s\n",
		"Dataset", "Transactions", "Items", "Imported", "Source"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, ds := range datasets {
		source := ds.Source
		if source == "" {
			source = "built-in"
		}
		sb.WriteString(fmt.Sprintf("%-16s %-13s %-7s %-16s %s\n",
			truncate(ds.Name, 16),
			humanize.Comma(int64(ds.TransactionCount)),
			humanize.Comma(int64(ds.ItemCount)),
			humanize.Time(ds.CreatedAt),
			source))
	}

	return sb.String()
}

// formatDuration rounds durations for display: 850µs, 12ms, 1.4s.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
