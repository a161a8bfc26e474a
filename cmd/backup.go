package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var resetYes bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the ledger as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the ledger with an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the ledger with the starter data",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	data, err := s.book.Export()
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	info("Exported to %s", args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.book.Import(cmd.Context(), data); err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}
	l := s.book.Ledger()
	info("Imported %d transactions, %d categories, %d goals",
		len(l.Transactions), len(l.Categories), len(l.Goals))
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset the ledger?").
			Description("All transactions, goals and XP are replaced by the starter data.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			info("Nothing changed.")
			return nil
		}
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.book.Reset(cmd.Context()); err != nil {
		return err
	}
	info("Ledger reset.")
	return nil
}
