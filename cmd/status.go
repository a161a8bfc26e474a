package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/game"
	"github.com/theirongolddev/moneymoves/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, streak and badges",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	g := s.book.Ledger().Game
	level := game.Level(g.XP)
	into := g.XP % 100

	fmt.Println()
	fmt.Println(cli.RenderTitle("PLAYER STATUS"))
	fmt.Println()

	last := g.LastActionDate
	if last == "" {
		last = "never"
	}
	saved := "not recorded"
	if at, ok := store.NewSnapshot(s.backend, s.cfg.General.Namespace).SavedAt(cmd.Context()); ok {
		saved = humanize.Time(at)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Stat", "Value"},
		Rows: [][]string{
			{"Level", strconv.Itoa(level)},
			{"XP", cli.FormatNumber(int64(g.XP))},
			{"Next level", cli.RenderProgressBar(float64(into)/100, 20) +
				fmt.Sprintf(" %d XP to go", 100-into)},
			cli.Separator,
			{"Streak", cli.FormatDays(g.Streak)},
			{"Last active", last},
			{"Last saved", saved},
			{"Challenges done", fmt.Sprintf("%d / %d", len(g.CompletedChallengeIDs), len(game.Challenges))},
		},
	}))
	fmt.Println()

	fmt.Println(cli.RenderSection("Badges"))
	if len(g.Badges) == 0 {
		fmt.Println(cli.Muted("  None yet. Log a transaction to get started."))
		return nil
	}
	star := lipgloss.NewStyle().Foreground(cli.ColorYellow).Render("★")
	for _, id := range g.Badges {
		fmt.Printf("  %s %s\n", star, game.BadgeLabel(id))
	}
	return nil
}
