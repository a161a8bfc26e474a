package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/moneymoves/internal/config"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/store"

	"github.com/shopspring/decimal"
)

// isolate points config and env at an empty temp setup and returns a data dir.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvDataDir, config.EnvBackend, config.EnvLogLevel, config.EnvCurrency} {
		t.Setenv(k, "")
	}
	t.Cleanup(func() {
		flagDataDir, flagBackend, flagMonth = "", "", ""
		flagQuiet, flagEphemeral = false, false
		addType, addCategory = string(model.Expense), "food"
		addAmount, addDate, addNote, addWant = "", "", "", false
		resetYes = false
	})
	return t.TempDir()
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func loadFileLedger(t *testing.T, dir string) *model.Ledger {
	t.Helper()
	b, err := store.OpenFile(filepath.Join(dir, "snapshots"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l, err := store.NewSnapshot(b, "").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

func TestAddAndQuickPersist(t *testing.T) {
	dir := isolate(t)

	if err := run(t, "add", "--amount", "12.50", "--note", "Lunch", "-d", dir, "--backend", "file", "-q"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := run(t, "quick", "coffee", "-d", dir, "--backend", "file", "-q"); err != nil {
		t.Fatalf("quick: %v", err)
	}

	l := loadFileLedger(t, dir)
	if len(l.Transactions) != 4 {
		t.Fatalf("transactions = %d, want 4 (2 seeded + 2 added)", len(l.Transactions))
	}
	if got := l.Transactions[1]; got.Note != "Lunch (need)" || !got.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("added tx = %+v", got)
	}
	if l.Game.XP != 15+10 {
		t.Errorf("XP = %d, want 25", l.Game.XP)
	}
}

func TestAddRejectsBadAmount(t *testing.T) {
	dir := isolate(t)
	if err := run(t, "add", "--amount", "lots", "-d", dir, "--backend", "file", "-q"); err == nil {
		t.Error("expected an error for a non-numeric amount")
	}
	if _, err := os.Stat(filepath.Join(dir, "snapshots")); !os.IsNotExist(err) {
		t.Error("a rejected add should not open the backend")
	}
}

func TestBadMonthFlag(t *testing.T) {
	dir := isolate(t)
	if err := run(t, "summary", "--month", "May", "-d", dir, "--backend", "file"); err == nil {
		t.Error("expected an error for a malformed --month")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(t.TempDir(), "backup.json")

	if err := run(t, "goals", "add", "Trip", "800", "2024-12-01", "-d", dir, "--backend", "file", "-q"); err != nil {
		t.Fatalf("goals add: %v", err)
	}
	if err := run(t, "export", out, "-d", dir, "--backend", "file", "-q"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := run(t, "reset", "--yes", "-d", dir, "--backend", "file", "-q"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := len(loadFileLedger(t, dir).Goals); got != 1 {
		t.Fatalf("goals after reset = %d, want 1", got)
	}
	if err := run(t, "import", out, "-d", dir, "--backend", "file", "-q"); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := len(loadFileLedger(t, dir).Goals); got != 2 {
		t.Errorf("goals after import = %d, want 2", got)
	}
}

func TestResolveGoal(t *testing.T) {
	l := &model.Ledger{Goals: []model.Goal{
		{ID: "abc123", Name: "Trip"},
		{ID: "abd456", Name: "Bike"},
	}}
	tests := []struct {
		ref, want string
		ok        bool
	}{
		{"abc123", "abc123", true},
		{"abd", "abd456", true},
		{"trip", "abc123", true},
		{"ab", "", false},
		{"zzz", "", false},
	}
	for _, tt := range tests {
		g, err := resolveGoal(l, tt.ref)
		if (err == nil) != tt.ok {
			t.Errorf("resolveGoal(%q) err = %v, want ok=%v", tt.ref, err, tt.ok)
			continue
		}
		if tt.ok && g.ID != tt.want {
			t.Errorf("resolveGoal(%q) = %s, want %s", tt.ref, g.ID, tt.want)
		}
	}
}

func TestMonthTitle(t *testing.T) {
	if got := monthTitle("2024-05"); got != "May 2024" {
		t.Errorf("monthTitle = %q", got)
	}
	if got := monthTitle("bogus"); got != "bogus" {
		t.Errorf("monthTitle(bogus) = %q", got)
	}
}

func TestTUILogsToDataDir(t *testing.T) {
	dir := isolate(t)
	cfg := config.DefaultConfig()
	cfg.General.DataDir = filepath.Join(dir, "nested")
	cfg.Log.Level = "debug"

	out, closeLog := tuiLogOutput(cfg)
	newLoggerTo(cfg, out).Warn("snapshot fallback")
	closeLog()
	t.Cleanup(func() { newLoggerTo(config.DefaultConfig(), io.Discard) })

	data, err := os.ReadFile(filepath.Join(cfg.General.DataDir, tuiLogFile))
	if err != nil {
		t.Fatalf("reading tui log: %v", err)
	}
	if !strings.Contains(string(data), "snapshot fallback") {
		t.Errorf("tui log = %q, want the warning", data)
	}
}

func TestStatusShowsSaveTime(t *testing.T) {
	dir := isolate(t)
	if err := run(t, "quick", "coffee", "-d", dir, "--backend", "file", "-q"); err != nil {
		t.Fatalf("quick: %v", err)
	}
	b, err := store.OpenFile(filepath.Join(dir, "snapshots"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.NewSnapshot(b, "").SavedAt(context.Background()); !ok {
		t.Error("file backend should report when the ledger was saved")
	}
	if err := run(t, "status", "-d", dir, "--backend", "file"); err != nil {
		t.Errorf("status: %v", err)
	}
}
