package dataset

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
)

func itemsets(transactions []apriori.Transaction[int64]) []string {
	out := make([]string, len(transactions))
	for i, tx := range transactions {
		out[i] = apriori.NewItemset(tx.Items()...).String()
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "braces and commas",
			input: "{1,2,3,4}\n{1,2,4}\n",
			want:  []string{"{1, 2, 3, 4}", "{1, 2, 4}"},
		},
		{
			name:  "whitespace separated",
			input: "1 2\t4\n  3   4  \n",
			want:  []string{"{1, 2, 4}", "{3, 4}"},
		},
		{
			name:  "mixed separators and duplicates",
			input: "4, 1 ,1,, 2\n",
			want:  []string{"{1, 2, 4}"},
		},
		{
			name:  "comments and blank lines",
			input: "# receipts\n\n1,2\n   \n# end\n",
			want:  []string{"{1, 2}"},
		},
		{
			name:  "empty transaction",
			input: "{}\n1\n",
			want:  []string{"{}", "{1}"},
		},
		{
			name:  "negative skus",
			input: "-1, 5\n",
			want:  []string{"{-1, 5}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			gotSets := itemsets(got)
			if strings.Join(gotSets, " ") != strings.Join(tt.want, " ") {
				t.Errorf("expected %v, got %v", tt.want, gotSets)
			}
		})
	}
}

func TestParse_InvalidItem(t *testing.T) {
	_, err := Parse(strings.NewReader("1,2\n3,bread\n"))

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Line != 2 || perr.Token != "bread" {
		t.Errorf("expected line 2 token bread, got line %d token %q", perr.Line, perr.Token)
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("expected wrapped strconv.ErrSyntax, got %v", err)
	}
}

func longLine(items int) string {
	var sb strings.Builder
	for i := 1; i <= items; i++ {
		if i > 1 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(i))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func TestParse_LongLine(t *testing.T) {
	line := longLine(20000)
	if len(line) <= bufio.MaxScanTokenSize {
		t.Fatalf("test line too short: %d bytes", len(line))
	}

	transactions, err := Parse(strings.NewReader("1 2\n" + line + "3\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(transactions))
	}
	if transactions[1].Len() != 20000 {
		t.Errorf("expected 20000 items on the long line, got %d", transactions[1].Len())
	}
}

func TestParse_LineTooLong(t *testing.T) {
	_, err := parse(strings.NewReader("1 2\n"+longLine(1000)), 1024)
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("expected bufio.ErrTooLong, got %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "# only a comment\n"} {
		if _, err := Parse(strings.NewReader(input)); !errors.Is(err, ErrEmptyFile) {
			t.Errorf("Parse(%q): expected ErrEmptyFile, got %v", input, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.txt")
	if err := os.WriteFile(path, []byte("{1,2}\n{2,3}\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 transactions, got %d", len(got))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist for missing file, got %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Sample()); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "{1,2,3,4}\n{1,2,4}\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse() of written output failed: %v", err)
	}
	if strings.Join(itemsets(parsed), " ") != strings.Join(itemsets(Sample()), " ") {
		t.Errorf("round trip changed transactions: %v", itemsets(parsed))
	}
}

func TestSample(t *testing.T) {
	sample := Sample()
	if len(sample) != 7 {
		t.Fatalf("expected 7 transactions, got %d", len(sample))
	}
	if n := len(apriori.Universe(sample)); n != 4 {
		t.Errorf("expected 4 distinct items, got %d", n)
	}
}
