package cmd

import (
	"fmt"

	"github.com/theirongolddev/moneymoves/internal/config"
	"github.com/theirongolddev/moneymoves/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.ResolvedDataDir())
	fmt.Printf("    Backend:        %s\n", cfg.General.Backend)
	ns := cfg.General.Namespace
	if ns == "" {
		ns = store.DefaultNamespace + " (default)"
	}
	fmt.Printf("    Namespace:      %s\n", ns)
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency: %s\n", cfg.Display.CurrencySymbol)
	fmt.Printf("    Theme:    %s\n", cfg.Display.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s, %s\n",
		config.EnvDataDir, config.EnvBackend, config.EnvLogLevel, config.EnvCurrency)
	fmt.Println("  Run `moneymoves setup` to reconfigure.")
	return nil
}
