package cmd

import (
	"fmt"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/game"

	"github.com/spf13/cobra"
)

var challengesCmd = &cobra.Command{
	Use:     "challenges",
	Aliases: []string{"challenge"},
	Short:   "Monthly challenges and their status",
	Args:    cobra.NoArgs,
	RunE:    runChallenges,
}

var challengesClaimCmd = &cobra.Command{
	Use:   "claim <id>",
	Short: "Claim the XP for a completed challenge",
	Args:  cobra.ExactArgs(1),
	RunE:  runChallengesClaim,
}

func init() {
	challengesCmd.AddCommand(challengesClaimCmd)
	rootCmd.AddCommand(challengesCmd)
}

func runChallenges(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	statuses := game.Status(s.book.Ledger(), s.month)
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		state := "in progress"
		switch {
		case st.Done:
			state = "claimed"
		case st.Claimable():
			state = "ready"
		}
		rows = append(rows, []string{st.ID, st.Title, cli.FormatXP(st.XPReward), state})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Challenges  " + monthTitle(s.month),
		Headers:  []string{"ID", "Challenge", "Reward", "Status"},
		Rows:     rows,
		LeftCols: 2,
	}))
	info("Claim a ready challenge with: moneymoves challenges claim <id>")
	return nil
}

func runChallengesClaim(cmd *cobra.Command, args []string) error {
	id := args[0]
	c, ok := game.ChallengeByID(id)
	if !ok {
		return fmt.Errorf("no challenge %q", id)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if s.book.Ledger().Game.HasCompleted(id) {
		info("Already claimed: %s", c.Title)
		return nil
	}

	r, ok, err := s.book.Claim(cmd.Context(), id, s.month)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not completed yet: %s", c.Desc)
	}
	printRewards([]game.Reward{r})
	return nil
}
