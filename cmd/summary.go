package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/coach"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Month totals, budgets and coach insights",
	RunE:  runSummary,
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Coach insights for the month",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(summaryCmd, insightsCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	l := s.book.Ledger()
	sum := pipeline.MonthSummary(l, s.month)

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONEYMOVES  " + monthTitle(s.month)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Income", s.money(sum.Income)},
			{"Expenses", s.money(sum.Expenses)},
			{"Net", cli.FormatSigned(sum.Net, s.cfg.Display.CurrencySymbol)},
			cli.Separator,
			{"Transactions", strconv.Itoa(len(sum.Transactions))},
		},
	}))
	fmt.Println()

	fmt.Print(budgetTable(s, l))
	fmt.Println()

	printInsights(s, l)
	return nil
}

func runInsights(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	fmt.Println()
	printInsights(s, s.book.Ledger())
	return nil
}

func printInsights(s *session, l *model.Ledger) {
	c := coach.New(s.book.Clock(), cli.MoneyFormatter(s.cfg.Display.CurrencySymbol))
	insights := c.Insights(l, s.month)

	fmt.Println(cli.RenderSection("Coach"))
	if len(insights) == 0 {
		fmt.Println(cli.Muted("  Nothing to report. Keep logging!"))
		return
	}
	fmt.Print(cli.RenderInsights(insights, 72))
}

// budgetTable renders category progress for the session month.
func budgetTable(s *session, l *model.Ledger) string {
	rows := make([][]string, 0, len(l.Categories))
	for _, row := range pipeline.CategoryBreakdown(l, s.month) {
		limit, bar := "-", cli.Muted("no limit")
		if row.Category.Limit.IsPositive() {
			limit = s.money(row.Category.Limit)
			bar = cli.RenderProgressBar(row.Ratio, 20) + " " + cli.FormatPercent(row.RawRatio)
		}
		rows = append(rows, []string{
			row.Category.Name,
			s.money(row.Spent),
			limit,
			bar,
			s.money(row.Remaining),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Spent", "Limit", "Progress", "Left"},
		Rows:    rows,
	})
}
