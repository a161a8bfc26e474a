package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/ledger"
	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/spf13/cobra"
)

var budgetsCmd = &cobra.Command{
	Use:     "budgets",
	Aliases: []string{"budget"},
	Short:   "Category budgets for the month",
	Args:    cobra.NoArgs,
	RunE:    runBudgets,
}

var budgetsSetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Set a category's monthly limit (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetsSet,
}

var budgetsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBudgetsAdd,
}

func init() {
	budgetsCmd.AddCommand(budgetsSetCmd, budgetsAddCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	fmt.Println()
	fmt.Print(budgetTable(s, s.book.Ledger()))
	return nil
}

func runBudgetsSet(cmd *cobra.Command, args []string) error {
	limit, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	c, ok := s.book.Ledger().Category(args[0])
	if !ok {
		return fmt.Errorf("no category %q", args[0])
	}
	if err := s.apply(cmd.Context(), ledger.SetLimit(c.ID, limit)...); err != nil {
		return err
	}
	if limit.IsPositive() {
		info("%s limit set to %s", c.Name, s.money(limit))
	} else {
		info("%s has no limit", c.Name)
	}
	return nil
}

func runBudgetsAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.apply(cmd.Context(), ledger.NewCategory(name)...); err != nil {
		return err
	}
	info("Added category %s (id %s)", name, model.CategoryID(name))
	return nil
}
