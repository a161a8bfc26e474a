package cmd

import (
	"fmt"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/ledger"
	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/spf13/cobra"
)

// goalIDWidth is how much of a goal id the list shows; any unique prefix
// works as a reference.
const goalIDWidth = 8

var goalsCmd = &cobra.Command{
	Use:     "goals",
	Aliases: []string{"goal"},
	Short:   "Savings goals",
	Args:    cobra.NoArgs,
	RunE:    runGoals,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <name> <target> [YYYY-MM-DD]",
	Short: "Create a goal (default deadline 60 days out)",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runGoalsAdd,
}

var goalsSaveCmd = &cobra.Command{
	Use:   "save <goal> <amount>",
	Short: "Move money into a goal (negative to withdraw)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsSave,
}

var goalsRemoveCmd = &cobra.Command{
	Use:     "remove <goal>",
	Aliases: []string{"rm"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalsRemove,
}

func init() {
	goalsCmd.AddCommand(goalsAddCmd, goalsSaveCmd, goalsRemoveCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	l := s.book.Ledger()
	if len(l.Goals) == 0 {
		fmt.Println("\n  No goals yet. Try: moneymoves goals add \"Trip\" 800")
		return nil
	}

	today := s.book.Today()
	rows := make([][]string, 0, len(l.Goals))
	for _, g := range l.Goals {
		ratio := 0.0
		if g.Target.IsPositive() {
			ratio = g.Saved.Div(g.Target).InexactFloat64()
		}
		rows = append(rows, []string{
			g.ID[:min(len(g.ID), goalIDWidth)],
			g.Name,
			s.money(g.Saved),
			s.money(g.Target),
			cli.RenderProgressBar(ratio, 16) + " " + cli.FormatPercent(min(ratio, 1)),
			goalDue(g, today),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Goals",
		Headers:  []string{"ID", "Goal", "Saved", "Target", "Progress", "Due"},
		Rows:     rows,
		LeftCols: 2,
	}))
	return nil
}

func goalDue(g model.Goal, today string) string {
	if !g.Remaining().IsPositive() {
		return "reached"
	}
	days, ok := model.DaysBetween(today, g.TargetDate)
	switch {
	case !ok:
		return g.TargetDate
	case days < 0:
		return cli.FormatDays(-days) + " overdue"
	case days == 0:
		return "today"
	}
	return "in " + cli.FormatDays(days)
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	target, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	g := model.Goal{Name: args[0], Target: target}
	if len(args) == 3 {
		g.TargetDate = args[2]
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.apply(cmd.Context(), ledger.NewGoal(g)...); err != nil {
		return err
	}
	info("Created goal %s: %s", g.Name, s.money(target))
	return nil
}

func runGoalsSave(cmd *cobra.Command, args []string) error {
	delta, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	g, err := resolveGoal(s.book.Ledger(), args[0])
	if err != nil {
		return err
	}
	if err := s.apply(cmd.Context(), ledger.AdjustGoal(g.ID, delta)...); err != nil {
		return err
	}

	if updated, ok := s.book.Ledger().Goal(g.ID); ok {
		info("%s: %s of %s", updated.Name, s.money(updated.Saved), s.money(updated.Target))
	}
	return nil
}

func runGoalsRemove(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	g, err := resolveGoal(s.book.Ledger(), args[0])
	if err != nil {
		return err
	}
	if err := s.apply(cmd.Context(), ledger.DeleteGoal(g.ID)...); err != nil {
		return err
	}
	info("Removed goal %s", g.Name)
	return nil
}
