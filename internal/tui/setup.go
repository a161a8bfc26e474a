package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/config"
	"github.com/theirongolddev/moneymoves/internal/store"
	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the choices made in the setup wizard.
type SetupValues struct {
	Currency string
	Theme    string
	Backend  string
}

// NewSetupValues seeds the wizard from the current config.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Currency: cfg.Display.CurrencySymbol,
		Theme:    cfg.Display.Theme,
		Backend:  cfg.General.Backend,
	}
}

// Apply copies the wizard choices into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.Display.CurrencySymbol = strings.TrimSpace(v.Currency)
	cfg.Display.Theme = v.Theme
	cfg.General.Backend = v.Backend
}

// NewSetupForm builds the first-run wizard. It is embedded in the dashboard
// and also run standalone by the setup command.
func NewSetupForm(v *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Description("Shown in front of every amount.").
				Placeholder("$").
				Value(&v.Currency).
				Validate(validateCurrency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Storage backend").
				Description("Takes effect the next time moneymoves starts.").
				Options(huh.NewOptions(store.Kinds...)...).
				Value(&v.Backend),
		),
	).WithTheme(huh.ThemeCharm())
}

func validateCurrency(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("currency symbol is required")
	}
	if len([]rune(s)) > 4 {
		return errors.New("keep the symbol to 4 characters or fewer")
	}
	return nil
}
