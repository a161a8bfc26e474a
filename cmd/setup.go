package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/moneymoves/internal/config"
	"github.com/theirongolddev/moneymoves/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Flags are not saved; start from the file and environment only.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable, starting from defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}

	fmt.Println()
	fmt.Println("  Welcome to moneymoves!")
	fmt.Println()

	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}
	vals.Apply(&cfg)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `moneymoves setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
