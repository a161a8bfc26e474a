package cmd

import (
	"fmt"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	historyCategory string
	historyLimit    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Transactions for the month, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyCategory, "category", "c", "", "Only this category id")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most n transactions (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	l := s.book.Ledger()
	txs := pipeline.FilterByMonth(l.Transactions, s.month)
	if historyCategory != "" {
		txs = pipeline.FilterByCategory(txs, historyCategory)
	}
	if historyLimit > 0 && len(txs) > historyLimit {
		txs = txs[:historyLimit]
	}

	if len(txs) == 0 {
		fmt.Printf("\n  No transactions in %s.\n", monthTitle(s.month))
		return nil
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		amount := s.money(tx.Amount)
		if tx.Type == model.Income {
			amount = "+" + amount
		}
		rows = append(rows, []string{
			tx.Date,
			l.CategoryName(tx.CategoryID),
			cli.Truncate(tx.Note, 32),
			amount,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "History  " + monthTitle(s.month),
		Headers:  []string{"Date", "Category", "Note", "Amount"},
		Rows:     rows,
		LeftCols: 3,
	}))
	return nil
}
