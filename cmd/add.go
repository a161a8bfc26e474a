package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/ledger"
	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/spf13/cobra"
)

var (
	addType     string
	addCategory string
	addAmount   string
	addDate     string
	addNote     string
	addWant     bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a transaction",
	Example: `  moneymoves add --amount 12.50 --category food --note Lunch
  moneymoves add --type income --amount 1200 --category savings`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var quickCmd = &cobra.Command{
	Use:       "quick <preset>",
	Short:     "Log a preset transaction (" + strings.Join(presetKeys(), ", ") + ")",
	Args:      cobra.ExactArgs(1),
	ValidArgs: presetKeys(),
	RunE:      runQuick,
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", string(model.Expense), "income or expense")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "food", "Category id")
	addCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "Amount (positive)")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&addNote, "note", "n", "", "Note")
	addCmd.Flags().BoolVar(&addWant, "want", false, "Tag as a want instead of a need")
	_ = addCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(addCmd, quickCmd)
}

func presetKeys() []string {
	keys := make([]string, len(ledger.QuickPresets))
	for i, p := range ledger.QuickPresets {
		keys[i] = p.Key
	}
	return keys
}

func runAdd(cmd *cobra.Command, _ []string) error {
	amount, err := parseAmount(addAmount)
	if err != nil {
		return err
	}
	intent := ledger.Need
	if addWant {
		intent = ledger.Want
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	l := s.book.Ledger()
	if _, ok := l.Category(addCategory); !ok {
		fmt.Fprintf(os.Stderr, "  Warning: no category %q, logging anyway\n", addCategory)
	}

	tx := model.Transaction{
		Type:       model.TxType(strings.ToLower(addType)),
		CategoryID: addCategory,
		Amount:     amount,
		Date:       addDate,
		Note:       ledger.TaggedNote(addNote, intent),
	}
	if err := s.apply(cmd.Context(), ledger.LogTransaction(tx)...); err != nil {
		return err
	}
	info("Logged %s %s in %s", tx.Type, s.money(amount), l.CategoryName(addCategory))
	return nil
}

func runQuick(cmd *cobra.Command, args []string) error {
	p, ok := ledger.PresetByKey(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q (want one of %s)", args[0], strings.Join(presetKeys(), ", "))
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.apply(cmd.Context(), ledger.QuickAdd(p)...); err != nil {
		return err
	}
	info("Logged %s", p.Label)
	return nil
}
