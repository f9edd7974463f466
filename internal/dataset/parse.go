// Package dataset reads and writes transaction databases.
//
// The text format holds one transaction per line. Items are integer SKUs
// separated by commas and/or whitespace, optionally wrapped in braces:
//
//	# weekday receipts
//	{1,2,3,4}
//	1 2 4
//	1, 2
//
// Blank lines and lines starting with # are skipped.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
)

// ErrEmptyFile is returned when an input holds no transactions.
var ErrEmptyFile = errors.New("no transactions found")

// ParseError reports a malformed item on a given line.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid item %q: %v", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MaxLineSize is the longest transaction line Parse accepts, in bytes.
// Longer lines fail with an error wrapping bufio.ErrTooLong.
const MaxLineSize = 16 << 20

// Parse reads transactions from r.
func Parse(r io.Reader) ([]apriori.Transaction[int64], error) {
	return parse(r, MaxLineSize)
}

func parse(r io.Reader, maxLine int) ([]apriori.Transaction[int64], error) {
	var transactions []apriori.Transaction[int64]

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "{")
		line = strings.TrimSuffix(line, "}")

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})

		items := make([]int64, 0, len(fields))
		for _, field := range fields {
			item, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Token: field, Err: err}
			}
			items = append(items, item)
		}

		transactions = append(transactions, apriori.NewTransaction(items...))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions after line %d: %w", lineNo, err)
	}

	if len(transactions) == 0 {
		return nil, ErrEmptyFile
	}

	return transactions, nil
}

// LoadFile parses the transaction file at path.
func LoadFile(path string) ([]apriori.Transaction[int64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	transactions, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return transactions, nil
}

// Write emits transactions in the format Parse reads, one {a,b,c} per line.
func Write(w io.Writer, transactions []apriori.Transaction[int64]) error {
	bw := bufio.NewWriter(w)
	for _, tx := range transactions {
		items := tx.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = strconv.FormatInt(item, 10)
		}
		if _, err := fmt.Fprintf(bw, "{%s}\n", strings.Join(parts, ",")); err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}
	}
	return bw.Flush()
}

// Sample returns the supermarket example: seven receipts over four SKUs.
func Sample() []apriori.Transaction[int64] {
	return []apriori.Transaction[int64]{
		apriori.NewTransaction[int64](1, 2, 3, 4),
		apriori.NewTransaction[int64](1, 2, 4),
		apriori.NewTransaction[int64](1, 2),
		apriori.NewTransaction[int64](2, 3, 4),
		apriori.NewTransaction[int64](2, 3),
		apriori.NewTransaction[int64](3, 4),
		apriori.NewTransaction[int64](2, 4),
	}
}
