// Package cmd implements the moneymoves CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/config"
	"github.com/theirongolddev/moneymoves/internal/game"
	"github.com/theirongolddev/moneymoves/internal/ledger"
	"github.com/theirongolddev/moneymoves/internal/log"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagDataDir   string
	flagBackend   string
	flagMonth     string
	flagQuiet     bool
	flagEphemeral bool
)

var rootCmd = &cobra.Command{
	Use:          "moneymoves",
	Short:        "Budget tracker with a coach and a game",
	Long:         "Track spending, budgets and savings goals. Earn XP, streaks and badges for keeping at it.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger directory (default from config, then XDG data dir)")
	pf.StringVar(&flagBackend, "backend", "", "Storage backend: "+strings.Join(store.Kinds, ", "))
	pf.StringVarP(&flagMonth, "month", "m", "", "Month to report on, YYYY-MM (default current month)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress XP and informational output")
	pf.BoolVar(&flagEphemeral, "ephemeral", false, "Use an in-memory ledger that is discarded on exit")
}

// loadConfig loads the config and applies flag overrides. An unreadable
// config falls back to defaults so commands can still run.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
		config.ApplyEnv(&cfg)
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.General.Backend = strings.ToLower(flagBackend)
	}
	if flagEphemeral {
		cfg.General.Backend = store.KindMemory
	}
	return cfg
}

func newLogger(cfg config.Config) *log.Logger {
	return newLoggerTo(cfg, os.Stderr)
}

func newLoggerTo(cfg config.Config, out io.Writer) *log.Logger {
	lc := log.DefaultConfig()
	lc.Output = out
	level, err := log.ParseLevel(cfg.Log.Level)
	lc.Level = level
	logger := log.New(lc)
	if err != nil {
		logger.Warn("bad log level in config, using warn", "error", err)
	}
	log.SetDefault(logger)
	return logger
}

func openBackend(cfg config.Config, logger *log.Logger) (store.Backend, error) {
	dir := cfg.ResolvedDataDir()
	b, err := store.OpenBackend(cfg.General.Backend, dir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s backend in %s: %w", cfg.General.Backend, dir, err)
	}
	logger.Debug("backend opened", "kind", cfg.General.Backend, "dir", dir)
	return b, nil
}

func openBook(ctx context.Context, b store.Backend, cfg config.Config, logger *log.Logger) (*ledger.Book, error) {
	return ledger.Open(ctx, store.NewSnapshot(b, cfg.General.Namespace), ledger.Options{Logger: logger})
}

// session is everything a ledger command needs.
type session struct {
	cfg     config.Config
	log     *log.Logger
	backend store.Backend
	book    *ledger.Book
	month   string
}

func openSession(ctx context.Context) (*session, error) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	b, err := openBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	book, err := openBook(ctx, b, cfg, logger)
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	month := flagMonth
	if month == "" {
		month = model.CurrentMonth(book.Clock())
	} else if _, ok := model.ParseMonth(month); !ok {
		_ = b.Close()
		return nil, fmt.Errorf("invalid --month %q (want YYYY-MM)", month)
	}

	return &session{cfg: cfg, log: logger, backend: b, book: book, month: month}, nil
}

func (s *session) Close() error {
	return s.backend.Close()
}

func (s *session) money(d decimal.Decimal) string {
	return cli.FormatMoney(d, s.cfg.Display.CurrencySymbol)
}

func (s *session) apply(ctx context.Context, muts ...ledger.Mutation) error {
	rewards, err := s.book.Apply(ctx, muts...)
	if err != nil {
		return err
	}
	printRewards(rewards)
	return nil
}

func printRewards(rewards []game.Reward) {
	if flagQuiet {
		return
	}
	for _, r := range rewards {
		fmt.Println(cli.RenderReward(r.Amount, r.Reason))
	}
}

func info(format string, args ...any) {
	if !flagQuiet {
		fmt.Printf("  "+format+"\n", args...)
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ledger.ErrInvalidAmount, s)
	}
	return d, nil
}

// monthTitle renders a month key as "May 2024".
func monthTitle(key string) string {
	if t, ok := model.ParseMonth(key); ok {
		return t.Format("January 2006")
	}
	return key
}

// resolveGoal finds a goal by id, unique id prefix or case-insensitive name.
func resolveGoal(l *model.Ledger, ref string) (model.Goal, error) {
	var matches []model.Goal
	for _, g := range l.Goals {
		if g.ID == ref {
			return g, nil
		}
		if strings.HasPrefix(g.ID, ref) || strings.EqualFold(g.Name, ref) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return model.Goal{}, fmt.Errorf("no goal matches %q", ref)
	case 1:
		return matches[0], nil
	}
	return model.Goal{}, errors.New("ambiguous goal " + ref + ": use more of the id")
}
