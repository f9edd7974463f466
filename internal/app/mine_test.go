package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/store"
)

// resetMineFlags restores flag defaults before and after a test.
func resetMineFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		mineSupport = 2
		mineDataset = ""
		mineSample = false
		mineClassical = false
		mineStopRule = "at-most-one"
		mineWorkers = 1
		minePrune = false
		mineSave = false
		mineLabels = ""
		mineQuiet = true
	}
	reset()
	t.Cleanup(reset)
}

func TestMineCommand_Flags(t *testing.T) {
	flags := map[string]string{
		"support":   "2",
		"dataset":   "",
		"sample":    "false",
		"classical": "false",
		"stop-rule": "at-most-one",
		"workers":   "1",
		"prune":     "false",
		"save":      "false",
		"labels":    "",
		"quiet":     "false",
	}

	for name, def := range flags {
		flag := mineCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("flag %s not defined", name)
			continue
		}
		if flag.DefValue != def {
			t.Errorf("%s flag default: got %s, want %s", name, flag.DefValue, def)
		}
	}
}

func TestRunMine_File(t *testing.T) {
	setupTestEnv(t)
	resetMineFlags(t)

	path := writeFile(t, "receipts.txt", "{1,2,3,4}\n{1,2,4}\n{1,2}\n{2,3,4}\n{2,3}\n{3,4}\n{2,4}\n")
	mineSupport = 3

	cmd, out := newTestCommand()
	if err := runMine(cmd, []string{path}); err != nil {
		t.Fatalf("runMine failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Found 4 frequent itemsets", "{1, 2}", "{2, 3}", "{2, 4}", "{3, 4}"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "{1, 4}") || strings.Contains(got, "{1, 2, 4}") {
		t.Errorf("infrequent itemsets must not be printed, got:\n%s", got)
	}
	if strings.Contains(got, "Saved as run") {
		t.Errorf("run must not be saved without --save, got:\n%s", got)
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Errorf("mining a file without --save must not create the database")
	}
}

func TestRunMine_SortsBySize(t *testing.T) {
	setupTestEnv(t)
	resetMineFlags(t)
	mineSample = true
	mineSupport = 2

	cmd, out := newTestCommand()
	if err := runMine(cmd, nil); err != nil {
		t.Fatalf("runMine failed: %v", err)
	}

	got := out.String()
	lastPair := strings.LastIndex(got, "{3, 4}")
	firstTriple := strings.Index(got, "{1, 2, 4}")
	if lastPair < 0 || firstTriple < 0 || lastPair > firstTriple {
		t.Errorf("expected pairs before triples, got:\n%s", got)
	}
}

func TestRunMine_Labels(t *testing.T) {
	setupTestEnv(t)
	resetMineFlags(t)
	mineSample = true
	mineSupport = 4
	mineLabels = writeFile(t, "labels", "2 = bread\n4 = butter\n")

	cmd, out := newTestCommand()
	if err := runMine(cmd, nil); err != nil {
		t.Fatalf("runMine failed: %v", err)
	}
	if !strings.Contains(out.String(), "{2, 4} bread + butter") {
		t.Errorf("expected labelled itemset, got:\n%s", out.String())
	}
}

func TestRunMine_Validation(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name    string
		setup   func()
		args    []string
		wantErr string
	}{
		{"no source", func() {}, nil, "exactly one"},
		{"two sources", func() { mineSample = true }, []string{"x.txt"}, "exactly one"},
		{"negative support", func() { mineSample = true; mineSupport = -1 }, nil, "non-negative"},
		{"unknown stop rule", func() { mineSample = true; mineStopRule = "never" }, nil, "unknown stop rule"},
		{"zero workers", func() { mineSample = true; mineWorkers = 0 }, nil, "workers"},
		{"missing file", func() {}, []string{filepath.Join(t.TempDir(), "nope.txt")}, "no such file"},
		{"uninitialized database", func() { mineDataset = "ghost" }, nil, "apriori import"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetMineFlags(t)
			tt.setup()

			cmd, _ := newTestCommand()
			err := runMine(cmd, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRunMine_NegativeSupportIsThresholdError(t *testing.T) {
	setupTestEnv(t)
	resetMineFlags(t)
	mineSample = true
	mineSupport = -3

	cmd, _ := newTestCommand()
	if err := runMine(cmd, nil); !errors.Is(err, apriori.ErrNegativeThreshold) {
		t.Errorf("expected ErrNegativeThreshold, got %v", err)
	}
}

func TestRunMine_UnknownDataset(t *testing.T) {
	setupTestEnv(t)
	resetMineFlags(t)
	importSampleDataset(t)
	mineDataset = "ghost"

	cmd, _ := newTestCommand()
	err := runMine(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), `dataset "ghost" not found`) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestRunMine_DatasetWithSave(t *testing.T) {
	setupTestEnv(t)
	resetMineFlags(t)
	importSampleDataset(t)

	mineDataset = "sample"
	mineSupport = 3
	mineSave = true
	mineClassical = true
	mineWorkers = 4

	cmd, out := newTestCommand()
	if err := runMine(cmd, nil); err != nil {
		t.Fatalf("runMine failed: %v", err)
	}
	if !strings.Contains(out.String(), "Saved as run #1") {
		t.Errorf("expected saved run, got:\n%s", out.String())
	}

	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	run, err := st.GetRun(1)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Dataset != "sample" || run.Threshold != 3 || run.Transactions != 7 {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.StopRule != "when-empty" || run.ItemsetCount != 4 {
		t.Errorf("unexpected run result: %+v", run)
	}
}

func TestRunMine_StopRuleFlag(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name       string
		stopRule   string
		classical  bool
		wantRounds string
		wantSaved  string
	}{
		{"default", "at-most-one", false, "in 2 rounds", "at-most-one"},
		{"when-empty", "when-empty", false, "in 2 rounds", "when-empty"},
		{"classical shorthand", "at-most-one", true, "in 2 rounds", "when-empty"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetMineFlags(t)
			mineSample = true
			mineSupport = 3
			mineSave = true
			mineStopRule = tt.stopRule
			mineClassical = tt.classical

			cmd, out := newTestCommand()
			if err := runMine(cmd, nil); err != nil {
				t.Fatalf("runMine failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.wantRounds) {
				t.Errorf("expected %q, got:\n%s", tt.wantRounds, out.String())
			}

			st, err := store.New(dbPath)
			if err != nil {
				t.Fatalf("failed to open store: %v", err)
			}
			defer st.Close()

			run, err := st.GetRun(int64(i + 1))
			if err != nil {
				t.Fatalf("GetRun failed: %v", err)
			}
			if run.StopRule != tt.wantSaved {
				t.Errorf("expected stop rule %s, got %s", tt.wantSaved, run.StopRule)
			}
		})
	}
}

func TestResolveStopRule(t *testing.T) {
	tests := []struct {
		name      string
		stopRule  string
		classical bool
		want      apriori.StopRule
		wantErr   bool
	}{
		{"at-most-one", "at-most-one", false, apriori.StopAtMostOne, false},
		{"when-empty", "when-empty", false, apriori.StopWhenEmpty, false},
		{"empty means default", "", false, apriori.StopAtMostOne, false},
		{"classical wins", "", true, apriori.StopWhenEmpty, false},
		{"unknown", "sometimes", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveStopRule(tt.stopRule, tt.classical)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveStopRule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("resolveStopRule() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMineCommand_StopRuleFlagsExclusive(t *testing.T) {
	RootCmd.SetArgs([]string{"mine", "--sample", "--stop-rule", "when-empty", "--classical"})
	defer RootCmd.SetArgs(nil)
	defer func() {
		mineSample = false
		mineStopRule = "at-most-one"
		mineClassical = false
		for _, name := range []string{"stop-rule", "classical", "sample"} {
			mineCmd.Flags().Lookup(name).Changed = false
		}
	}()

	if err := Execute(); err == nil {
		t.Error("expected error combining --stop-rule and --classical")
	}
}
