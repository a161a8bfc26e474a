package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/theirongolddev/moneymoves/internal/config"
	"github.com/theirongolddev/moneymoves/internal/ledger"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/tui"
	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

const tuiLogFile = "tui.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Display.Theme)

	// Stderr belongs to the alt screen while the program runs.
	logOut, closeLog := tuiLogOutput(cfg)
	defer closeLog()
	logger := newLoggerTo(cfg, logOut)

	if flagMonth != "" {
		if _, ok := model.ParseMonth(flagMonth); !ok {
			return fmt.Errorf("invalid --month %q (want YYYY-MM)", flagMonth)
		}
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	backend, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	app := tui.NewApp(tui.Options{
		Open: func(ctx context.Context) (*ledger.Book, error) {
			return openBook(ctx, backend, cfg, logger)
		},
		Config:    cfg,
		Month:     flagMonth,
		NeedSetup: !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiLogOutput opens tui.log in the data dir for appending, or discards
// logs when it cannot.
func tuiLogOutput(cfg config.Config) (io.Writer, func()) {
	dir := cfg.ResolvedDataDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, tuiLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}
